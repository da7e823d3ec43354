package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/i18n"
	"taskdeck/internal/task"
)

// taskItem adapts task.Task to bubbles/list.Item.
type taskItem struct {
	t task.Task
}

func (i taskItem) Title() string       { return i.t.Title }
func (i taskItem) Description() string { return i.t.Notes }
func (i taskItem) FilterValue() string { return i.t.Title + " " + i.t.Notes }

// taskDelegate renders one task per line: checkbox, title, priority
// dot, category, due date (red when overdue), notes marker.
type taskDelegate struct {
	styles *Styles
	tr     *i18n.Translator
	now    func() time.Time
}

func (d taskDelegate) Height() int                               { return 1 }
func (d taskDelegate) Spacing() int                              { return 0 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	s := d.styles
	t := it.t

	box := s.Muted.Render(s.BoxUnchecked)
	title := t.Title
	if t.Completed {
		box = s.Success.Render(s.BoxChecked)
		title = s.Done.Render(title)
	}

	prio := d.priorityDot(t.Priority) + " " + s.Muted.Render(d.tr.T("priority."+string(t.Priority)))
	cat := s.Accent.Render(d.tr.T("category." + string(t.Category)))

	line := fmt.Sprintf("%s %s  %s  %s", box, title, prio, cat)

	if t.DueDate != "" {
		due := d.tr.T("task.due") + " " + d.tr.ParseAndFormatDate(t.DueDate)
		if t.Overdue(d.now()) {
			line += "  " + s.Overdue.Render(due)
		} else {
			line += "  " + s.Muted.Render(due)
		}
	}
	if t.Notes != "" {
		line += "  " + s.Muted.Render("["+d.tr.T("task.notes")+"]")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = s.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

func (d taskDelegate) priorityDot(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return d.styles.PrioHigh.Render("●")
	case task.PriorityLow:
		return d.styles.PrioLow.Render("●")
	default:
		return d.styles.PrioMedium.Render("●")
	}
}
