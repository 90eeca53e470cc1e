// Package tui is the interactive Bubble Tea front end over the store.
// Every mutation goes through the store and is persisted before the next
// frame renders.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aybkr/tudu/internal/model"
	"github.com/aybkr/tudu/internal/session"
	"github.com/aybkr/tudu/internal/store"
	"github.com/aybkr/tudu/internal/ui"
)

// listItem adapts model.Todo to bubbles/list.Item.
type listItem struct {
	todo model.Todo
}

func (i listItem) Title() string       { return i.todo.Description }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Description }

// itemDelegate renders one row: checkbox, description, selection marker.
type itemDelegate struct {
	styles ui.Styles
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := d.styles.Muted.Render(d.styles.BoxUnchecked)
	text := it.todo.Description
	if it.todo.Done {
		box = d.styles.Success.Render(d.styles.BoxChecked)
		text = d.styles.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.styles.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

// Model is the Bubble Tea model for the interactive list.
type Model struct {
	st     *store.Store
	sess   *session.Session
	styles ui.Styles
	keys   keyMap

	list list.Model

	// One input per draft: switching modes never clobbers another draft.
	addInput    textinput.Model
	editInput   textinput.Model
	searchInput textinput.Model

	adding bool

	width  int
	height int
}

// New builds the interactive model over an opened store.
func New(st *store.Store, styles ui.Styles) Model {
	l := list.New(nil, itemDelegate{styles: styles}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false) // search mode does its own filtering
	l.Styles.Title = styles.Title
	l.Styles.HelpStyle = styles.Help
	l.Styles.PaginationStyle = styles.Help
	l.SetStatusBarItemName("item", "items")

	keys := defaultKeyMap()
	l.AdditionalShortHelpKeys = keys.shortHelp
	l.AdditionalFullHelpKeys = keys.fullHelp

	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholder
		ti.CharLimit = 200
		return ti
	}

	m := Model{
		st:          st,
		sess:        &session.Session{},
		styles:      styles,
		keys:        keys,
		list:        l,
		addInput:    newInput("New item..."),
		editInput:   newInput("Edit item..."),
		searchInput: newInput("Search..."),
	}
	m.searchInput.Prompt = "/ "
	m.refresh()
	return m
}

// Run starts the interactive list over the given store.
func Run(st *store.Store, styles ui.Styles) error {
	p := tea.NewProgram(New(st, styles), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.resize()
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}
	if _, editing := m.sess.Active(); editing {
		return m.updateEditing(msg)
	}
	if m.sess.Searching() {
		return m.updateSearching(msg)
	}
	return m.updateBrowsing(msg)
}

// updateAdding handles the inline add input. An empty submit is silently
// ignored; the input stays open until something is entered or it is
// cancelled.
func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			if _, err := m.st.Add(m.sess.AddDraft); err == nil {
				m.closeAdd()
				m.refresh()
				m.list.Select(0)
			}
			return m, nil
		case "esc":
			m.closeAdd()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	m.sess.AddDraft = m.addInput.Value()
	return m, cmd
}

func (m *Model) closeAdd() {
	m.adding = false
	m.sess.AddDraft = ""
	m.addInput.SetValue("")
	m.addInput.Blur()
}

// updateEditing handles the inline edit input. Submit commits through the
// store; an empty draft is silently ignored and the edit stays open.
func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			if strings.TrimSpace(m.sess.EditDraft) == "" {
				return m, nil
			}
			if id, draft, ok := m.sess.SubmitEdit(); ok {
				_ = m.st.Update(id, draft) // unknown id is a no-op
			}
			m.editInput.SetValue("")
			m.editInput.Blur()
			m.refresh()
			return m, nil
		case "esc":
			m.sess.CancelEdit()
			m.editInput.SetValue("")
			m.editInput.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.sess.EditDraft = m.editInput.Value()
	return m, cmd
}

// updateSearching feeds keystrokes into the live filter. Arrows still move
// the selection; esc or another ctrl+f restores the full list.
func (m Model) updateSearching(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case k.String() == "esc", key.Matches(k, m.keys.Search):
			m.sess.ToggleSearch()
			m.searchInput.SetValue("")
			m.searchInput.Blur()
			m.refresh()
			return m, nil
		case k.String() == "up" || k.String() == "down":
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.sess.SearchQuery = m.searchInput.Value()
	m.refresh()
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit), k.String() == "esc":
			return m, tea.Quit

		case key.Matches(k, m.keys.Toggle):
			if id, ok := m.selectedID(); ok {
				if _, err := m.st.Toggle(id); err == nil {
					m.refreshKeepSelection()
				}
			}
			return m, nil

		case key.Matches(k, m.keys.Delete):
			if id, ok := m.selectedID(); ok {
				if err := m.st.Remove(id); err == nil {
					m.sess.NoteRemoved(id)
					m.refreshKeepSelection()
				}
			}
			return m, nil

		case key.Matches(k, m.keys.Add):
			m.adding = true
			m.addInput.SetValue("")
			m.sess.AddDraft = ""
			m.addInput.Focus()
			return m, textinput.Blink

		case key.Matches(k, m.keys.Edit):
			if id, ok := m.selectedID(); ok {
				if t, found := m.st.Get(id); found {
					m.sess.StartEdit(id, t.Description)
					m.editInput.SetValue(t.Description)
					m.editInput.CursorEnd()
					m.editInput.Focus()
					return m, textinput.Blink
				}
			}
			return m, nil

		case key.Matches(k, m.keys.MoveUp):
			if id, ok := m.selectedID(); ok {
				if err := m.st.Move(id, -1); err == nil {
					m.refresh()
					m.selectID(id)
				}
			}
			return m, nil

		case key.Matches(k, m.keys.MoveDown):
			if id, ok := m.selectedID(); ok {
				if err := m.st.Move(id, 1); err == nil {
					m.refresh()
					m.selectID(id)
				}
			}
			return m, nil

		case key.Matches(k, m.keys.Search):
			m.sess.ToggleSearch()
			m.searchInput.SetValue("")
			m.searchInput.Focus()
			m.refresh()
			return m, textinput.Blink
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// visible returns the rows to render: the filtered view in search mode,
// the full stored order otherwise.
func (m *Model) visible() []model.Todo {
	if m.sess.Searching() {
		return m.st.Filter(m.sess.SearchQuery)
	}
	return m.st.Items()
}

func (m *Model) selectedID() (string, bool) {
	items := m.visible()
	i := m.list.Index()
	if i < 0 || i >= len(items) {
		return "", false
	}
	return items[i].ID, true
}

func (m *Model) selectID(id string) {
	for i, t := range m.visible() {
		if t.ID == id {
			m.list.Select(i)
			return
		}
	}
}

// refresh rebuilds the list rows and the header counts from the store.
func (m *Model) refresh() {
	items := m.visible()
	rows := make([]list.Item, 0, len(items))
	for _, t := range items {
		rows = append(rows, listItem{todo: t})
	}
	m.list.SetItems(rows)
	if m.list.Index() >= len(rows) && len(rows) > 0 {
		m.list.Select(len(rows) - 1)
	}

	done, pending := 0, 0
	for _, t := range m.st.Items() {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		m.styles.Title.Render("Todos"),
		m.styles.Success.Render("✔"), done,
		m.styles.Pending.Render("•"), pending,
		m.styles.Accent.Render("Total"), done+pending,
	)
}

func (m *Model) refreshKeepSelection() {
	i := m.list.Index()
	m.refresh()
	if n := len(m.list.Items()); n > 0 {
		if i >= n {
			i = n - 1
		}
		m.list.Select(i)
	}
}

func (m *Model) resize() {
	listHeight := m.height - 4
	if m.inputOpen() {
		listHeight = m.height - 6
	}
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(m.width-2, listHeight)
}

func (m *Model) inputOpen() bool {
	_, editing := m.sess.Active()
	return m.adding || editing || m.sess.Searching()
}

func (m Model) View() string {
	m.resize()
	content := m.list.View()

	if m.inputOpen() {
		bar := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
		var title string
		var input textinput.Model
		switch {
		case m.adding:
			title = "Add new item"
			input = m.addInput
		case m.sess.Searching():
			title = "Search"
			input = m.searchInput
		default:
			title = "Edit item"
			input = m.editInput
		}
		content = content + "\n" + bar.Render(title+"\n"+input.View())
	}
	return m.styles.Panel(content)
}
