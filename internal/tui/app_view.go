package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"notesflow-cli/internal/model"
	"notesflow-cli/internal/state"
)

func (m appModel) View() string {
	switch m.view {
	case viewLogin, viewRegister:
		return m.viewAuth()
	case viewDetail:
		return m.viewDetail()
	default:
		return m.viewBoard()
	}
}

func (m appModel) header() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("NotesFlow")
	who := ""
	if u := m.client.Session().User(); u != nil {
		who = styleMuted().Render("  " + u.Email)
	}
	return title + who
}

func (m appModel) footer(help string) string {
	out := styleMuted().Render(help)
	if m.toast != "" {
		out += "\n" + lipgloss.NewStyle().Foreground(colorAccent).Render(m.toast)
	}
	return out
}

func (m appModel) viewAuth() string {
	heading := "Log in"
	hint := "enter: submit   tab: next field   ctrl+r: create an account   ctrl+c: quit"
	if m.view == viewRegister {
		heading = "Create an account"
		hint = "enter: submit   tab: next field   ctrl+r: back to login   ctrl+c: quit"
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(heading))
	b.WriteString("\n\n")
	for i := range m.authInputs {
		b.WriteString(m.authInputs[i].View())
		b.WriteString("\n")
	}
	if m.authBusy {
		b.WriteString("\n" + styleMuted().Render("Signing in…"))
	}
	if m.authErr != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(colorDanger).Render(m.authErr))
	}
	b.WriteString("\n\n")
	b.WriteString(m.footer(hint))
	return b.String()
}

func (m appModel) viewBoard() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.tabBar())
	b.WriteString("\n")
	b.WriteString(m.statsLine())
	b.WriteString("\n\n")

	if m.searching || m.query != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	if p, ok := m.ctrl.Pending(); ok {
		b.WriteString(m.deleteModal(p))
	} else if m.tab == tabNotes {
		b.WriteString(m.noteRows())
	} else {
		b.WriteString(m.taskRows())
	}

	b.WriteString("\n\n")
	help := "enter: open  n: new  d: delete  !: pin  c: color  S: share  /: search  tab: switch  r: refresh  q: quit"
	if m.tab == tabTasks {
		help = "enter: open  n: new  s: status  p: priority  d: delete  !: pin  S: share  /: search  tab: switch  q: quit"
	}
	b.WriteString(m.footer(help))
	return b.String()
}

func (m appModel) tabBar() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(colorAccentFg).Background(colorAccent).Padding(0, 1)
	inactive := styleMuted().Padding(0, 1)

	notes := inactive.Render(fmt.Sprintf("Notes %d", len(m.ctrl.Notes())))
	tasks := inactive.Render(fmt.Sprintf("Tasks %d", len(m.ctrl.Tasks())))
	if m.tab == tabNotes {
		notes = active.Render(fmt.Sprintf("Notes %d", len(m.ctrl.Notes())))
	} else {
		tasks = active.Render(fmt.Sprintf("Tasks %d", len(m.ctrl.Tasks())))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, notes, " ", tasks)
	if m.loading {
		out += styleMuted().Render("  refreshing…")
	}
	return out
}

// statsLine mirrors the dashboard counters and updates in the same frame as
// an optimistic status change.
func (m appModel) statsLine() string {
	s := m.ctrl.Stats()
	part := func(c lipgloss.TerminalColor, label string, n int) string {
		return lipgloss.NewStyle().Foreground(c).Render(fmt.Sprintf("%d %s", n, label))
	}
	return strings.Join([]string{
		part(colorStatusPending, "pending", s.Pending),
		part(colorStatusInProgress, "in progress", s.InProgress),
		part(colorStatusCompleted, "completed", s.Completed),
		styleMuted().Render(fmt.Sprintf("%d total", s.Total())),
	}, styleMuted().Render("  ·  "))
}

func (m appModel) rowWidth() int {
	if m.width <= 0 {
		return 120
	}
	return m.width
}

func (m appModel) listHeight() int {
	h := m.height - 10
	if h < 5 {
		h = 5
	}
	return h
}

// visibleWindow keeps the selection inside the rendered slice on small
// terminals.
func visibleWindow(selected, total, height int) (start, end int) {
	if total <= height {
		return 0, total
	}
	start = selected - height/2
	if start < 0 {
		start = 0
	}
	end = start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}

func (m appModel) noteRows() string {
	notes := m.ctrl.Notes()
	if len(notes) == 0 {
		if m.query != "" {
			return styleMuted().Render("No notes match your search.")
		}
		return styleMuted().Render("No notes yet. Press n to create one.")
	}

	now := time.Now()
	start, end := visibleWindow(m.selNote, len(notes), m.listHeight())
	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, m.noteRow(notes[i], i == m.selNote, now))
	}
	return strings.Join(rows, "\n")
}

func (m appModel) noteRow(n model.Note, selected bool, now time.Time) string {
	pin := "  "
	if n.IsPinned {
		pin = lipgloss.NewStyle().Foreground(colorPin).Render("★ ")
	}
	shared := ""
	if n.ShareToken != nil {
		shared = styleMuted().Render(" ⇗")
	}
	title := model.Truncate(n.Title, 48)
	preview := model.Truncate(strings.ReplaceAll(n.Content, "\n", " "), 40)
	when := model.RelativeTime(n.UpdatedAt, now)

	line := fmt.Sprintf("%s%s%s  %s  %s",
		pin,
		lipgloss.NewStyle().Bold(true).Render(title),
		shared,
		styleMuted().Render(preview),
		styleMuted().Render(when),
	)
	if selected {
		line = styleSelected().Render("▸ ") + line
	} else {
		line = "  " + line
	}
	return fitLine(line, m.rowWidth())
}

func (m appModel) taskRows() string {
	tasks := m.ctrl.Tasks()
	if len(tasks) == 0 {
		if m.query != "" {
			return styleMuted().Render("No tasks match your search.")
		}
		return styleMuted().Render("No tasks yet. Press n to create one.")
	}

	now := time.Now()
	start, end := visibleWindow(m.selTask, len(tasks), m.listHeight())
	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, m.taskRow(tasks[i], i == m.selTask, now))
	}
	return strings.Join(rows, "\n")
}

func (m appModel) taskRow(t model.Task, selected bool, now time.Time) string {
	pin := "  "
	if t.IsPinned {
		pin = lipgloss.NewStyle().Foreground(colorPin).Render("★ ")
	}
	status := lipgloss.NewStyle().Foreground(statusColor(t.Status)).Render(statusGlyph(t.Status) + " " + t.Status.Label())
	prio := lipgloss.NewStyle().Foreground(priorityColor(t.Priority)).Render(string(t.Priority))
	due := ""
	if t.DueDate != nil {
		due = styleMuted().Render("  due " + t.DueDate.Format("Jan 2"))
	}

	line := fmt.Sprintf("%s%s  %s  %s%s  %s",
		pin,
		lipgloss.NewStyle().Bold(true).Render(model.Truncate(t.Title, 44)),
		status,
		prio,
		due,
		styleMuted().Render(model.RelativeTime(t.UpdatedAt, now)),
	)
	if selected {
		line = styleSelected().Render("▸ ") + line
	} else {
		line = "  " + line
	}
	return fitLine(line, m.rowWidth())
}

func statusGlyph(s model.Status) string {
	switch s {
	case model.StatusInProgress:
		return "◐"
	case model.StatusCompleted:
		return "✓"
	default:
		return "○"
	}
}

func (m appModel) deleteModal(p state.PendingDelete) string {
	kind := "note"
	if p.Type == state.RecordTask {
		kind = "task"
	}
	body := fmt.Sprintf("Delete %s %q?\nThis cannot be undone.", kind, p.Title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDanger).
		Padding(1, 2).
		Render(body + "\n\n" + styleMuted().Render("y/enter: delete   n/esc: keep"))
	return box
}

func (m appModel) viewDetail() string {
	kind := "Note"
	if m.editKind == state.RecordTask {
		kind = "Task"
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Bold(true).Render("Edit " + kind)
	if m.saveNote != "" {
		label += styleMuted().Render("  " + m.saveNote)
	}
	b.WriteString(label)
	b.WriteString("\n\n")
	b.WriteString(m.titleIn.View())
	b.WriteString("\n\n")
	b.WriteString(m.bodyIn.View())

	// Live markdown preview for notes; tasks show their metadata instead.
	if m.editKind == state.RecordNote {
		if body := strings.TrimSpace(m.bodyIn.Value()); body != "" {
			w := m.width - 4
			if w > 100 {
				w = 100
			}
			b.WriteString("\n\n")
			b.WriteString(styleMuted().Render("Preview"))
			b.WriteString("\n")
			b.WriteString(renderMarkdown(body, w))
		}
	} else {
		for _, t := range m.ctrl.Tasks() {
			if t.ID == m.editID {
				b.WriteString("\n\n")
				b.WriteString(lipgloss.NewStyle().Foreground(statusColor(t.Status)).Render(statusGlyph(t.Status) + " " + t.Status.Label()))
				b.WriteString(styleMuted().Render("  ·  "))
				b.WriteString(lipgloss.NewStyle().Foreground(priorityColor(t.Priority)).Render(string(t.Priority) + " priority"))
				break
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.footer("tab: title/body   esc: done (saves)   ctrl+c: quit"))
	return b.String()
}
