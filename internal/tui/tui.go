// Package tui is the interactive list: filtering, live search, inline
// add/edit, completion celebration, reorder, themes and statistics.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/i18n"
	"taskdeck/internal/store"
	"taskdeck/internal/task"
	"taskdeck/internal/ui"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeSearch
	modeConfirmDelete
	modeStats
)

// Edit field order: title, priority, category, due date, notes.
const (
	fieldTitle = iota
	fieldPriority
	fieldCategory
	fieldDue
	fieldNotes
	fieldCount
)

var (
	statusCycle   = []task.Status{task.StatusAll, task.StatusActive, task.StatusToday, task.StatusWeek, task.StatusCompleted}
	priorityCycle = []task.Priority{"", task.PriorityHigh, task.PriorityMedium, task.PriorityLow}
	categoryCycle = []task.Category{"", task.CategoryWork, task.CategoryPersonal, task.CategoryHealth, task.CategoryLearning}
)

type editDraft struct {
	id       int64
	title    string
	priority task.Priority
	category task.Category
	due      string
	notes    string
	field    int
}

type langChangedMsg string
type flashClearMsg struct{}

// Model is the bubbletea model for the interactive list.
type Model struct {
	store  *store.Store
	prefs  *store.Prefs
	tr     *i18n.Translator
	langCh <-chan string
	now    func() time.Time

	styles Styles
	theme  string
	list   list.Model
	ti     textinput.Model

	mode   mode
	filter task.Filter
	draft  editDraft

	pendingDelete int64
	flash         string
	inputErr      string

	width, height int
}

// New builds the model around an opened store.
func New(st *store.Store, prefs *store.Prefs, tr *i18n.Translator, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	theme := prefs.Theme(context.Background())
	styles := NewStyles(theme)

	m := Model{
		store:  st,
		prefs:  prefs,
		tr:     tr,
		langCh: tr.Changes(),
		now:    now,
		styles: styles,
		theme:  theme,
		filter: task.Filter{Status: task.StatusAll},
	}

	delegate := taskDelegate{styles: &m.styles, tr: tr, now: now}
	l := list.New(nil, delegate, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false) // search is store-side, not fuzzy
	l.Styles.Title = m.styles.Title
	l.Styles.HelpStyle = m.styles.Help
	l.Styles.PaginationStyle = m.styles.Help
	l.SetStatusBarItemName("task", "tasks")

	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		key.NewBinding(key.WithKeys("J", "K"), key.WithHelp("J/K", "move")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "language")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return bindings }
	l.AdditionalFullHelpKeys = func() []key.Binding { return bindings }
	m.list = l

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.refresh()
	return m
}

// Run starts the program and blocks until quit.
func Run(st *store.Store, prefs *store.Prefs, tr *i18n.Translator) error {
	m := New(st, prefs, tr, time.Now)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return waitForLanguage(m.langCh)
}

func waitForLanguage(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		lang, ok := <-ch
		if !ok {
			return nil
		}
		return langChangedMsg(lang)
	}
}

func clearFlashAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return flashClearMsg{} })
}

// refresh re-derives the visible items from the store and filter.
func (m *Model) refresh() {
	var items []list.Item
	for t := range m.store.Query(m.filter) {
		items = append(items, taskItem{t: t})
	}
	m.list.SetItems(items)
	m.list.Title = m.headerTitle()
}

func (m *Model) headerTitle() string {
	p := m.store.ProgressToday()
	return fmt.Sprintf("%s  %s %d%%",
		m.styles.Title.Render(m.tr.T("app.title")),
		ui.ProgressBar(p.Completed, p.Total, 16), p.Percent)
}

func (m *Model) selected() (task.Task, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return task.Task{}, false
	}
	return it.t, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	case langChangedMsg:
		m.refresh()
		return m, waitForLanguage(m.langCh)
	case flashClearMsg:
		m.flash = ""
		return m, nil
	}

	switch m.mode {
	case modeAdd:
		return m.updateAdd(msg)
	case modeEdit:
		return m.updateEdit(msg)
	case modeSearch:
		return m.updateSearch(msg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(msg)
	case modeStats:
		return m.updateStats(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "esc":
			if m.filter.Search != "" {
				m.filter.Search = ""
				m.refresh()
				return m, nil
			}
			return m, tea.Quit

		case " ":
			if t, ok := m.selected(); ok {
				toggled, err := m.store.ToggleComplete(ctx, t.ID)
				if err == nil && toggled.Completed {
					m.flash = m.tr.T("celebration.message")
					m.refresh()
					return m, clearFlashAfter(2 * time.Second)
				}
				m.refresh()
			}
			return m, nil

		case "a":
			m.mode = modeAdd
			m.inputErr = ""
			m.ti.SetValue("")
			m.ti.Placeholder = m.tr.T("input.placeholder")
			m.ti.Focus()
			return m, nil

		case "e":
			if t, ok := m.selected(); ok {
				m.mode = modeEdit
				m.inputErr = ""
				m.draft = editDraft{
					id:       t.ID,
					title:    t.Title,
					priority: t.Priority,
					category: t.Category,
					due:      t.DueDate,
					notes:    t.Notes,
				}
				m.ti.SetValue(t.Title)
				m.ti.CursorEnd()
				m.ti.Focus()
			}
			return m, nil

		case "d":
			if t, ok := m.selected(); ok {
				m.mode = modeConfirmDelete
				m.pendingDelete = t.ID
			}
			return m, nil

		case "/":
			m.mode = modeSearch
			m.ti.SetValue(m.filter.Search)
			m.ti.Placeholder = ""
			m.ti.Focus()
			return m, nil

		case "f":
			m.filter.Status = cycle(statusCycle, m.filter.Status)
			m.refresh()
			return m, nil

		case "p":
			m.filter.Priority = cycle(priorityCycle, m.filter.Priority)
			m.refresh()
			return m, nil

		case "c":
			m.filter.Category = cycle(categoryCycle, m.filter.Category)
			m.refresh()
			return m, nil

		case "J":
			return m.swapWithNeighbor(ctx, 1), nil
		case "K":
			return m.swapWithNeighbor(ctx, -1), nil

		case "s", "tab":
			m.mode = modeStats
			return m, nil

		case "l":
			next := cycle(i18n.Supported, m.tr.Language())
			if err := m.tr.SetLanguage(next); err != nil {
				return m, nil
			}
			m.prefs.SetLanguage(ctx, next)
			// The subscription delivers langChangedMsg, which refreshes.
			return m, nil

		case "t":
			if m.theme == store.ThemeDark {
				m.theme = store.ThemeLight
			} else {
				m.theme = store.ThemeDark
			}
			m.prefs.SetTheme(ctx, m.theme)
			m.styles = NewStyles(m.theme)
			m.list.SetDelegate(taskDelegate{styles: &m.styles, tr: m.tr, now: m.now})
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// swapWithNeighbor trades places with the adjacent visible task.
func (m Model) swapWithNeighbor(ctx context.Context, dir int) Model {
	i := m.list.Index()
	j := i + dir
	items := m.list.Items()
	if i < 0 || j < 0 || j >= len(items) {
		return m
	}
	a := items[i].(taskItem).t.ID
	b := items[j].(taskItem).t.ID
	if err := m.store.Reorder(ctx, a, b); err != nil {
		return m
	}
	m.refresh()
	m.list.Select(j)
	return m
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			_, err := m.store.Create(context.Background(), m.ti.Value())
			if err != nil {
				// Blank titles are rejected quietly; keep the bar open.
				m.inputErr = m.tr.T("input.placeholder")
				return m, nil
			}
			m.leaveInput()
			m.refresh()
			return m, nil
		case "esc":
			m.leaveInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.commitDraftField()
			m.saveDraft()
			m.leaveInput()
			m.refresh()
			return m, nil
		case "esc":
			m.leaveInput()
			return m, nil
		case "tab":
			m.commitDraftField()
			m.draft.field = (m.draft.field + 1) % fieldCount
			m.enterDraftField()
			return m, nil
		case "shift+tab":
			m.commitDraftField()
			m.draft.field = (m.draft.field + fieldCount - 1) % fieldCount
			m.enterDraftField()
			return m, nil
		case "left", "right":
			switch m.draft.field {
			case fieldPriority:
				m.draft.priority = cycle(priorityCycle[1:], m.draft.priority)
				return m, nil
			case fieldCategory:
				m.draft.category = cycle(categoryCycle[1:], m.draft.category)
				return m, nil
			}
		}
	}
	if m.draftFieldIsText() {
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) draftFieldIsText() bool {
	switch m.draft.field {
	case fieldTitle, fieldDue, fieldNotes:
		return true
	}
	return false
}

func (m *Model) commitDraftField() {
	switch m.draft.field {
	case fieldTitle:
		m.draft.title = m.ti.Value()
	case fieldDue:
		m.draft.due = strings.TrimSpace(m.ti.Value())
	case fieldNotes:
		m.draft.notes = m.ti.Value()
	}
}

func (m *Model) enterDraftField() {
	switch m.draft.field {
	case fieldTitle:
		m.ti.SetValue(m.draft.title)
		m.ti.Focus()
	case fieldDue:
		m.ti.SetValue(m.draft.due)
		m.ti.Placeholder = task.DateLayout
		m.ti.Focus()
	case fieldNotes:
		m.ti.SetValue(m.draft.notes)
		m.ti.Focus()
	default:
		m.ti.Blur()
	}
	m.ti.CursorEnd()
}

func (m *Model) saveDraft() {
	d := m.draft
	_, _ = m.store.Update(context.Background(), d.id, store.Patch{
		Title:    &d.title,
		Priority: &d.priority,
		Category: &d.category,
		DueDate:  &d.due,
		Notes:    &d.notes,
	})
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.leaveInput()
			return m, nil
		case "esc":
			m.filter.Search = ""
			m.leaveInput()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	// Live search: the filter follows every keystroke.
	m.filter.Search = m.ti.Value()
	m.refresh()
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y", "Y":
			m.store.Delete(context.Background(), m.pendingDelete)
			m.mode = modeBrowse
			m.pendingDelete = 0
			m.refresh()
			return m, nil
		case "n", "N", "esc":
			m.mode = modeBrowse
			m.pendingDelete = 0
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "s", "tab", "esc", "q", "enter":
			m.mode = modeBrowse
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) leaveInput() {
	m.mode = modeBrowse
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m Model) View() string {
	if m.mode == modeStats {
		return m.styles.Border.Render(m.statsView())
	}

	var b strings.Builder
	b.WriteString(m.list.View())

	switch m.mode {
	case modeAdd:
		title := m.tr.T("button.add")
		if m.inputErr != "" {
			title += " — " + m.styles.Error.Render(m.inputErr)
		}
		b.WriteString("\n" + m.styles.Border.Render(title+"\n"+m.ti.View()))
	case modeEdit:
		b.WriteString("\n" + m.styles.Border.Render(m.editView()))
	case modeSearch:
		b.WriteString("\n" + m.styles.Border.Render("/ "+m.ti.View()))
	case modeConfirmDelete:
		b.WriteString("\n" + m.styles.Border.Render(m.tr.T("confirm.delete")+" [y/n]"))
	}

	b.WriteString("\n" + m.filterLine())
	if m.flash != "" {
		b.WriteString("\n" + m.styles.Flash.Render("🎉 "+m.flash))
	}
	return m.styles.Border.Render(b.String())
}

func (m Model) filterLine() string {
	parts := []string{m.tr.T("filter." + string(m.filter.Status))}
	if m.filter.Priority != "" {
		parts = append(parts, m.tr.T("priority."+string(m.filter.Priority)))
	}
	if m.filter.Category != "" {
		parts = append(parts, m.tr.T("category."+string(m.filter.Category)))
	}
	if m.filter.Search != "" {
		parts = append(parts, "/"+m.filter.Search)
	}
	return m.styles.Help.Render(strings.Join(parts, " · "))
}

func (m Model) editView() string {
	d := m.draft
	label := func(field int, name, value string) string {
		if d.field == field {
			return m.styles.Selected.Render(name) + " " + value
		}
		return m.styles.Muted.Render(name) + " " + value
	}
	rows := []string{
		m.tr.T("button.save") + " (enter) · tab",
		label(fieldTitle, "title", valueOrInput(d.field == fieldTitle, m.ti.View(), d.title)),
		label(fieldPriority, m.tr.T("priority."+string(d.priority)), "◀ ▶"),
		label(fieldCategory, m.tr.T("category."+string(d.category)), "◀ ▶"),
		label(fieldDue, m.tr.T("task.due"), valueOrInput(d.field == fieldDue, m.ti.View(), d.due)),
		label(fieldNotes, m.tr.T("task.notes"), valueOrInput(d.field == fieldNotes, m.ti.View(), d.notes)),
	}
	return strings.Join(rows, "\n")
}

func valueOrInput(active bool, input, value string) string {
	if active {
		return input
	}
	return value
}

func (m Model) statsView() string {
	s := m.store.Statistics()
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	var chart strings.Builder
	for i, d := range days {
		bars := s.WeekHeights[i] / 10
		chart.WriteString(fmt.Sprintf("%s %s %d\n", m.styles.Muted.Render(d),
			m.styles.Accent.Render(strings.Repeat("▇", bars)), s.Week[i]))
	}

	return strings.Join([]string{
		m.styles.Title.Render(m.tr.T("stats.title")),
		fmt.Sprintf("%s: %d", m.tr.T("stats.total"), s.Total),
		fmt.Sprintf("%s: %d", m.tr.T("stats.completed"), s.Completed),
		fmt.Sprintf("%s: %d%%", m.tr.T("stats.completionRate"), s.CompletionRate),
		fmt.Sprintf("%s: %d", m.tr.T("stats.thisWeek"), s.CreatedThisWeek),
		"",
		chart.String(),
	}, "\n")
}

// cycle advances v to the next element of vals, wrapping around.
func cycle[T comparable](vals []T, v T) T {
	for i, x := range vals {
		if x == v {
			return vals[(i+1)%len(vals)]
		}
	}
	return vals[0]
}
