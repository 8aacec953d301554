package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/client/model"
	"taskboard/internal/client/tasklist"
	"taskboard/internal/core/domain"
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	highStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	lowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

type column struct {
	key   tasklist.Key
	title string
	width int
}

const minTitleWidth = 20

var columns = []column{
	{key: tasklist.KeyID, title: "ID", width: 5},
	{key: tasklist.KeyTitle, title: "Title", width: 40},
	{key: tasklist.KeyDueDate, title: "Due", width: 12},
	{key: tasklist.KeyPriority, title: "Priority", width: 10},
	{key: tasklist.KeyStatus, title: "Status", width: 12},
}

// RenderTable draws tasks as a table. The active sort column carries an arrow and the row at
// selected is highlighted. A width of 0 keeps the default column widths.
func RenderTable(tasks []model.Task, selected int, sort tasklist.Sort, width int) string {
	cols := fitColumns(width)

	var header []string
	for _, col := range cols {
		title := col.title
		if col.key == sort.Key {
			if sort.Direction == tasklist.Desc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		header = append(header, pad(title, col.width))
	}

	lines := []string{
		headerStyle.Render(strings.Join(header, " ")),
		strings.Repeat("─", totalWidth(cols)),
	}

	if len(tasks) == 0 {
		lines = append(lines, labelStyle.Render("No tasks."))
		return strings.Join(lines, "\n")
	}

	for i, task := range tasks {
		cells := []string{
			pad(task.ID, cols[0].width),
			pad(task.Title, cols[1].width),
			pad(dueDate(task), cols[2].width),
			pad(string(task.Priority), cols[3].width),
			pad(string(task.Status), cols[4].width),
		}
		if i == selected {
			lines = append(lines, selectedStyle.Render(strings.Join(cells, " ")))
			continue
		}
		cells[3] = priorityStyle(task.Priority).Render(cells[3])
		if task.Status == domain.TaskStatusDone {
			cells[4] = doneStyle.Render(cells[4])
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func fitColumns(width int) []column {
	cols := append([]column(nil), columns...)
	if width <= 0 {
		return cols
	}
	fixed := totalWidth(cols) - cols[1].width
	cols[1].width = max(width-fixed, minTitleWidth)
	return cols
}

func totalWidth(cols []column) int {
	total := len(cols) - 1
	for _, col := range cols {
		total += col.width
	}
	return total
}

func priorityStyle(priority domain.TaskPriority) lipgloss.Style {
	switch priority {
	case domain.TaskPriorityHigh:
		return highStyle
	case domain.TaskPriorityLow:
		return lowStyle
	}
	return lipgloss.NewStyle()
}

func dueDate(task model.Task) string {
	if task.DueDate == nil {
		return "-"
	}
	return domain.FormatDate(*task.DueDate)
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-n)
}

func sortLabel(sort tasklist.Sort) string {
	if sort.Key == tasklist.KeyNone {
		return "none"
	}
	return fmt.Sprintf("%s %s", sort.Key, sort.Direction)
}
