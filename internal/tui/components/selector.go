package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Option is one selectable row: a label shown in the list, an optional
// description rendered below it, and the value reported on selection.
type Option struct {
	Label       string
	Description string
	Value       string
}

// Selector is a single-choice list driven by arrow keys.
type Selector struct {
	title     string
	options   []Option
	cursor    int
	selected  int
	submitted bool
	cancelled bool
	keyMap    selectorKeyMap
	styles    selectorStyles
}

type selectorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

type selectorStyles struct {
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Unselected  lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
}

// NewSelector creates a selector over the given options.
func NewSelector(title string, options []Option) Selector {
	return Selector{
		title:    title,
		options:  options,
		selected: -1,
		keyMap: selectorKeyMap{
			Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
			Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q/esc", "quit")),
		},
		styles: selectorStyles{
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
			Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
			Unselected:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Description: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(4),
			Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
		},
	}
}

// Init implements tea.Model.
func (s Selector) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (s Selector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(keyMsg, s.keyMap.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(keyMsg, s.keyMap.Down):
		if s.cursor < len(s.options)-1 {
			s.cursor++
		}
	case key.Matches(keyMsg, s.keyMap.Select):
		s.selected = s.cursor
		s.submitted = true
		return s, tea.Quit
	case key.Matches(keyMsg, s.keyMap.Quit):
		s.cancelled = true
		return s, tea.Quit
	}
	return s, nil
}

// View implements tea.Model.
func (s Selector) View() string {
	var b strings.Builder

	b.WriteString(s.styles.Title.Render(s.title))
	b.WriteString("\n\n")

	for i, opt := range s.options {
		cursor := "  "
		style := s.styles.Unselected
		symbol := "○"
		if i == s.cursor {
			cursor = ""
			style = s.styles.Selected
			symbol = "●"
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + opt.Label))
		b.WriteString("\n")
		if opt.Description != "" {
			b.WriteString(s.styles.Description.Render(opt.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString(s.styles.Help.Render("\n↑/↓ navigate • enter select • q quit"))
	return b.String()
}

// Submitted returns true if the user made a selection.
func (s Selector) Submitted() bool {
	return s.submitted
}

// Cancelled returns true if the user quit without selecting.
func (s Selector) Cancelled() bool {
	return s.cancelled
}

// Value returns the value of the selected option, or "" if none.
func (s Selector) Value() string {
	if s.selected >= 0 && s.selected < len(s.options) {
		return s.options[s.selected].Value
	}
	return ""
}
