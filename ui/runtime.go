package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"treepak/pak"
)

func Start(container string, root *pak.Node) error {
	browser := NewBrowser(container, root)
	if err := tea.NewProgram(browser).Start(); err != nil {
		return errors.Wrap(err, "ui.Start error running browser")
	}
	return nil
}
