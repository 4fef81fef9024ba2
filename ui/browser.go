package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"treepak/ds"
	"treepak/pak"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
	directoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
)

// Browser walks the tree of a container: one directory is shown at a time.
type Browser struct {
	container string
	trail     *ds.Stack[*pak.Node]
	cursors   *ds.Stack[int]
	cursor    int
}

func NewBrowser(container string, root *pak.Node) *Browser {
	trail := ds.NewStack[*pak.Node]()
	trail.Push(root)
	return &Browser{
		container: container,
		trail:     trail,
		cursors:   ds.NewStack[int](),
	}
}

func (s *Browser) current() *pak.Node {
	return s.trail.Peek()
}

// Location is the slash-separated path of the directory being shown.
func (s *Browser) Location() string {
	names := lo.FilterMap(
		s.trail.Items(),
		func(node *pak.Node, _ int) (string, bool) {
			return node.Name, node.Name != pak.RootName
		},
	)
	return "/" + strings.Join(names, "/")
}

func (s *Browser) Selected() *pak.Node {
	children := s.current().Children
	if len(children) == 0 {
		return nil
	}
	return children[s.cursor]
}

func (s *Browser) enter() {
	selected := s.Selected()
	if selected == nil || !selected.IsDir() {
		return
	}
	s.cursors.Push(s.cursor)
	s.trail.Push(selected)
	s.cursor = 0
}

func (s *Browser) leave() {
	if s.trail.Len() == 1 {
		return
	}
	s.trail.Pop()
	s.cursor = s.cursors.Pop()
}

func (s *Browser) Init() tea.Cmd {
	return nil
}

func (s *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return s, tea.Quit
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.current().Children)-1 {
			s.cursor++
		}
	case "enter", "right", "l":
		s.enter()
	case "backspace", "left", "h":
		s.leave()
	}
	return s, nil
}

func (s *Browser) View() string {
	output := titleStyle.Render("TREEPAK "+s.container) + "\n\n"
	output += s.Location() + "\n\n"

	children := s.current().Children
	if len(children) == 0 {
		output += "(empty directory)\n"
	}
	for i, child := range children {
		line := fmt.Sprintf("%-40s %12d B", child.Name, child.Size)
		if child.IsDir() {
			line = directoryStyle.Render(fmt.Sprintf("%-40s %12d entries", child.Name+"/", len(child.Children)))
		}
		if i == s.cursor {
			line = selectedStyle.Render(line)
		}
		output += line + "\n"
	}

	output += "\n" + helpStyle.Render("↑/↓ move • enter open • backspace up • q quit") + "\n"
	return output
}
