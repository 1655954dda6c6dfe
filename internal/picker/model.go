package picker

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/wsp/pkg/types"
)

// Config holds the picker's layout and styles
type Config struct {
	Title             string
	Width             int
	Height            int
	HelpText          string
	TitleStyle        lipgloss.Style
	ItemStyle         lipgloss.Style
	SelectedItemStyle lipgloss.Style
	DescStyle         lipgloss.Style
	HelpStyle         lipgloss.Style
}

// DefaultConfig returns the standard picker look
func DefaultConfig() Config {
	return Config{
		Width:             80,
		Height:            20,
		HelpText:          "↑/↓: Navigate • Enter: Remove • Esc: Cancel",
		TitleStyle:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1),
		ItemStyle:         lipgloss.NewStyle().PaddingLeft(4),
		SelectedItemStyle: lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170")),
		DescStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		HelpStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// dirItem is a list entry for one directory
type dirItem struct {
	dir types.Dir
}

func (i dirItem) Title() string { return i.dir.Path }

func (i dirItem) Description() string {
	if i.dir.HasInit() {
		return "init: " + i.dir.Init
	}
	return "no init script"
}

func (i dirItem) FilterValue() string { return i.dir.Path }

// dirDelegate renders a path line followed by its init script
type dirDelegate struct {
	itemStyle         lipgloss.Style
	selectedItemStyle lipgloss.Style
	descStyle         lipgloss.Style
}

func (d dirDelegate) Height() int  { return 2 }
func (d dirDelegate) Spacing() int { return 1 }

func (d dirDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d dirDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(dirItem)
	if !ok {
		return
	}

	var title string
	if index == m.Index() {
		title = d.selectedItemStyle.Render("▸ " + item.Title())
	} else {
		title = d.itemStyle.Render("  " + item.Title())
	}
	desc := d.itemStyle.Render(d.descStyle.Render(item.Description()))
	_, _ = fmt.Fprintf(w, "%s\n%s", title, desc)
}

// model is the bubbletea model behind the picker
type model struct {
	list      list.Model
	config    Config
	selected  *types.Dir
	cancelled bool
}

func newModel(ws *types.Workspace, cfg Config) *model {
	items := make([]list.Item, len(ws.Dirs))
	for i, d := range ws.Dirs {
		items[i] = dirItem{dir: d}
	}

	delegate := dirDelegate{
		itemStyle:         cfg.ItemStyle,
		selectedItemStyle: cfg.SelectedItemStyle,
		descStyle:         cfg.DescStyle,
	}

	title := cfg.Title
	if title == "" {
		title = fmt.Sprintf("Remove a directory from %s", ws.Name)
	}

	l := list.New(items, delegate, cfg.Width, cfg.Height-4)
	l.Title = title
	l.Styles.Title = cfg.TitleStyle
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.KeyMap.Filter = key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	)

	return &model{list: l, config: cfg}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		const minWidth, minHeight = 40, 10
		width, height := max(msg.Width, minWidth), max(msg.Height, minHeight)
		m.list.SetWidth(width)
		m.list.SetHeight(height - 4)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			// Esc first leaves an active filter
			if msg.String() == "esc" && m.list.FilterState() != list.Unfiltered {
				break
			}
			m.cancelled = true
			return m, tea.Quit
		case "up":
			m.list.CursorUp()
			return m, nil
		case "down":
			m.list.CursorDown()
			return m, nil
		case "enter":
			if m.list.FilterState() == list.Filtering {
				break
			}
			if item, ok := m.list.SelectedItem().(dirItem); ok {
				d := item.dir
				m.selected = &d
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	if m.selected != nil || m.cancelled {
		return ""
	}

	view := m.list.View()
	if m.config.HelpText != "" {
		view += "\n" + m.config.HelpStyle.Render(m.config.HelpText)
	}
	return view
}
