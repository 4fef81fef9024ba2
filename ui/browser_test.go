package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"treepak/pak"
	"treepak/pak/pblock"
)

func sampleTree() *pak.Node {
	return &pak.Node{
		Name: pak.RootName,
		Kind: pblock.TypeDirectory,
		Children: []*pak.Node{
			{Name: "a.txt", Kind: pblock.TypeFile, Size: 5},
			{
				Name: "docs",
				Kind: pblock.TypeDirectory,
				Children: []*pak.Node{
					{Name: "readme.md", Kind: pblock.TypeFile, Size: 9},
				},
			},
			{Name: "empty", Kind: pblock.TypeDirectory, Children: []*pak.Node{}},
		},
	}
}

func press(browser *Browser, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = browser.Update(msg)
	}
	return cmd
}

var (
	keyUp        = tea.KeyMsg{Type: tea.KeyUp}
	keyDown      = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
	keyQuit      = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestBrowser_Navigation(t *testing.T) {
	browser := NewBrowser("test.pak", sampleTree())
	assert.Equal(t, "/", browser.Location())
	assert.Equal(t, "a.txt", browser.Selected().Name)

	press(browser, keyUp)
	assert.Equal(t, "a.txt", browser.Selected().Name)

	// entering a file does nothing
	press(browser, keyEnter)
	assert.Equal(t, "/", browser.Location())

	press(browser, keyDown, keyEnter)
	assert.Equal(t, "/docs", browser.Location())
	assert.Equal(t, "readme.md", browser.Selected().Name)

	press(browser, keyBackspace)
	assert.Equal(t, "/", browser.Location())
	assert.Equal(t, "docs", browser.Selected().Name)

	press(browser, keyDown, keyDown, keyDown, keyEnter)
	assert.Equal(t, "/empty", browser.Location())
	assert.Nil(t, browser.Selected())
	assert.Contains(t, browser.View(), "(empty directory)")

	// leaving the root is a no-op
	press(browser, keyBackspace, keyBackspace)
	assert.Equal(t, "/", browser.Location())
}

func TestBrowser_View(t *testing.T) {
	browser := NewBrowser("test.pak", sampleTree())
	view := browser.View()

	assert.Contains(t, view, "test.pak")
	assert.Contains(t, view, "a.txt")
	assert.Contains(t, view, "docs/")
	assert.Contains(t, view, "5 B")
}

func TestBrowser_Quit(t *testing.T) {
	browser := NewBrowser("test.pak", sampleTree())
	assert.Nil(t, press(browser, keyDown))
	assert.NotNil(t, press(browser, keyQuit))
	assert.Nil(t, browser.Init())
}
