package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasklist/internal/config"
	"tasklist/internal/task"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	dialogStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	focusedLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	statusBadges = map[task.Status]lipgloss.Style{
		task.StatusNew:        lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		task.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Tasks"))
	b.WriteString("\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")

	if len(m.view.Tasks) == 0 {
		if m.store.Len() == 0 {
			b.WriteString(fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.cfg.Keys.Add))
		} else {
			b.WriteString(dimStyle.Render("Nothing on this page."))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderPager())
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString("\n")
		b.WriteString(m.renderForm("Create task"))
	case modeEdit:
		b.WriteString("\n")
		b.WriteString(m.renderForm("Edit task"))
	case modeSearch:
		b.WriteString("\nSearch: ")
		b.WriteString(m.input.View())
	case modeDate:
		b.WriteString("\nCreated on: ")
		b.WriteString(m.input.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderFilters() string {
	parts := []string{}
	if m.filter.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", m.filter.Search))
	}
	if m.filter.Date != nil {
		parts = append(parts, "created "+m.filter.Date.String())
	}
	if m.filter.HideCompleted {
		parts = append(parts, "completed hidden")
	}
	if len(parts) == 0 {
		return dimStyle.Render("no filters")
	}
	return dimStyle.Render("filters: " + strings.Join(parts, " • "))
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, t := range m.view.Tasks {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = cursorStyle.Render(">")
		}

		checkbox := "[ ]"
		title := t.Title
		if t.Done() {
			checkbox = "[x]"
			title = doneStyle.Render(title)
		}

		b.WriteString(fmt.Sprintf("%s %s %s %s\n", cursor, checkbox, title, renderStatus(t.Status)))
		if t.Description != "" {
			b.WriteString("      ")
			b.WriteString(dimStyle.Render(t.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderStatus(s task.Status) string {
	style, ok := statusBadges[s]
	if !ok {
		style = dimStyle
	}
	return style.Render("[" + s.Label() + "]")
}

// renderPager shows the page position against the unfiltered page count.
func (m Model) renderPager() string {
	pages := max(m.view.PageCount, 1)
	return dimStyle.Render(fmt.Sprintf("Page %d of %d • %d matching", m.view.Page, pages, m.view.Matched))
}

func (m Model) renderForm(title string) string {
	labels := [2]string{"Title", "Description"}
	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	for i, f := range m.fields {
		label := labels[i]
		if i == m.index {
			label = focusedLabel.Render(label)
		}
		b.WriteString("\n")
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(f.View())
	}
	return dialogStyle.Render(b.String())
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s/%s page • %s add • %s edit • space toggle • %s delete • %s search • %s date • %s hide done • %s clear • %s quit",
		k.Up, k.Down, k.PrevPage, k.NextPage, k.Add, k.Edit, k.Delete, k.Search, k.FilterDate, k.HideCompleted, k.ClearFilters, k.Quit)
}
