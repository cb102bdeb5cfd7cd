package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type selectItem string

func (i selectItem) FilterValue() string { return string(i) }

type selectDelegate struct{}

func (d selectDelegate) Height() int                             { return 1 }
func (d selectDelegate) Spacing() int                            { return 0 }
func (d selectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d selectDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(selectItem)
	if !ok {
		return
	}

	str := string(i)
	if index == m.Index() {
		fmt.Fprint(w, selectedItemStyle.Render("> "+str))
		return
	}
	fmt.Fprint(w, itemStyle.Render(str))
}

type selectModel struct {
	list     list.Model
	choice   string
	quitting bool
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if i, ok := m.list.SelectedItem().(selectItem); ok {
				m.choice = string(i)
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	if m.choice != "" || m.quitting {
		return ""
	}
	return "\n" + m.list.View()
}

// Select shows an interactive picker over items and returns the chosen
// one. Rendered on stderr so stdout stays eval-safe.
func Select(title string, items []string) (string, error) {
	listItems := make([]list.Item, 0, len(items))
	for _, it := range items {
		listItems = append(listItems, selectItem(it))
	}

	l := list.New(listItems, selectDelegate{}, 40, len(items)+6)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	p := tea.NewProgram(selectModel{list: l}, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(selectModel)
	if !ok || m.choice == "" {
		return "", fmt.Errorf("cancelled")
	}
	return m.choice, nil
}
