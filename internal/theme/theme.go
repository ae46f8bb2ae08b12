// Package theme renders goals, activities and notifications for the terminal.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/templui/studytrack/internal/dates"
	"github.com/templui/studytrack/internal/model"
	"github.com/templui/studytrack/internal/notify"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
)

var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

var ItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

var DoneStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// StatusStyle returns a color-coded style for an activity status.
func StatusStyle(status model.ActivityStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.ActivityStatusInProgress:
		return base.Foreground(ColorBlue)
	case model.ActivityStatusPaused:
		return base.Foreground(ColorYellow)
	case model.ActivityStatusCompleted:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// NotificationStyle returns the style for a notification kind.
func NotificationStyle(kind notify.Kind) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch kind {
	case notify.KindSuccess:
		return base.Foreground(ColorGreen)
	case notify.KindWarning:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorRed)
	}
}

func Goals(goals []model.Goal) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Goals (%d)", len(goals))))
	b.WriteString("\n")

	if len(goals) == 0 {
		b.WriteString(ItemStyle.Render(MutedStyle.Render("No goals yet.")))
		b.WriteString("\n")
		return b.String()
	}

	for _, g := range goals {
		mark := "[ ]"
		title := g.Title
		if g.Completed {
			mark = "[x]"
			title = DoneStyle.Render(title)
		}

		line := fmt.Sprintf("%s %s  %s  due %s", mark, title, MutedStyle.Render(g.ID), dates.Format(g.TargetDate))
		if done := g.DisplayCompletionDate(); done != nil {
			line += fmt.Sprintf(", done %s", dates.Format(*done))
		}
		b.WriteString(ItemStyle.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func Activities(activities []model.Activity) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Activities (%d)", len(activities))))
	b.WriteString("\n")

	if len(activities) == 0 {
		b.WriteString(ItemStyle.Render(MutedStyle.Render("No activities yet.")))
		b.WriteString("\n")
		return b.String()
	}

	for _, a := range activities {
		bullet := lipgloss.NewStyle().Foreground(lipgloss.Color(a.Color)).Render("●")
		status := StatusStyle(a.Status).Render(a.Status.Label())

		line := fmt.Sprintf("%s %s  %s  %s  due %s", bullet, a.Title, status, MutedStyle.Render(a.ID), dates.Format(a.TargetDate))
		if a.Subject != "" {
			line += "  " + MutedStyle.Render(a.Subject)
		}
		if done := a.DisplayCompletionDate(); done != nil {
			line += fmt.Sprintf(", done %s", dates.Format(*done))
		}
		b.WriteString(ItemStyle.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func Stats(goals model.GoalStats, activities model.ActivityStats) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Progress"))
	b.WriteString("\n")
	b.WriteString(ItemStyle.Render(fmt.Sprintf("Goals: %d total, %d completed, %d pending",
		goals.Total, goals.Completed, goals.Pending)))
	b.WriteString("\n")
	b.WriteString(ItemStyle.Render(fmt.Sprintf("Activities: %d total", activities.Total)))
	b.WriteString("\n")
	for _, status := range model.ActivityStatuses {
		line := fmt.Sprintf("%s: %d", StatusStyle(status).Render(status.Label()), activities.ByStatus[status])
		b.WriteString(ItemStyle.PaddingLeft(4).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func Notifications(items []notify.Notification) string {
	var b strings.Builder
	for _, n := range items {
		b.WriteString(NotificationStyle(n.Kind).Render(n.Title + ":"))
		b.WriteString(" ")
		b.WriteString(n.Message)
		b.WriteString("\n")
	}
	return b.String()
}
