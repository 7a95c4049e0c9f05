package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quietfield/tomoplan/internal/constants"
	"github.com/quietfield/tomoplan/internal/models"
	"github.com/quietfield/tomoplan/internal/planner"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.loadErr != nil {
		return docStyle.Render(dangerStyle.Render(fmt.Sprintf("Failed to load day: %v", m.loadErr)))
	}

	timeline := m.viewTimeline()
	backlog := m.viewBacklog()
	body := lipgloss.JoinHorizontal(lipgloss.Top, timeline, "   ", backlog)

	status := ""
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("tomoplan · %s", m.date)),
		"",
		body,
		"",
		status,
		m.help.View(m),
	))
}

func (m Model) viewTimeline() string {
	if len(m.plan.Segments) == 0 {
		return "No schedulable time today.\nConfigure a day template with 'tomoplan template set'."
	}

	var b strings.Builder
	for i, s := range m.plan.Segments {
		line := fmt.Sprintf("%s-%s %s",
			s.Start.Format(constants.TimeFormat), s.End.Format(constants.TimeFormat),
			m.segmentText(i, s))

		switch {
		case m.gesture.Active() && i == m.gesture.Target():
			line = targetStyle.Render("▸ " + line)
		case i == m.cursor:
			line = cursorStyle.Render("▸ " + line)
		default:
			line = "  " + m.segmentStyle(s).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, a := range m.plan.Allocations {
		if a.Overflow {
			b.WriteString(overflowStyle.Render(fmt.Sprintf("  %s-%s overflow: %s (unit %d)",
				a.Start.Format(constants.TimeFormat), a.End.Format(constants.TimeFormat),
				a.Title, a.UnitIndex)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) segmentText(globalIndex int, s models.Segment) string {
	label := string(s.Kind)
	if s.Kind == models.SegmentWork || s.Kind == models.SegmentBreak {
		label = fmt.Sprintf("%s %s #%d", s.Kind, s.Category, s.SeqInCategory)
	}
	if a, ok := m.allocationAt(globalIndex); ok {
		label += allocationStyle.Render(fmt.Sprintf("  ← %s (unit %d)", a.Title, a.UnitIndex))
	}
	return label
}

func (m Model) segmentStyle(s models.Segment) lipgloss.Style {
	switch s.Kind {
	case models.SegmentWork:
		return workStyle
	case models.SegmentBreak:
		return breakStyle
	case models.SegmentAppointment:
		return appointmentStyle
	default:
		return idleStyle
	}
}

func (m Model) viewBacklog() string {
	var b strings.Builder
	b.WriteString("Backlog\n")
	if len(m.todos) == 0 {
		b.WriteString("  (empty)\n")
		return b.String()
	}
	for _, t := range m.todos {
		prio := "-"
		if t.Priority > 0 {
			prio = fmt.Sprintf("P%d", t.Priority)
		}
		marker := " "
		if m.gesture.Active() && m.gesture.ItemID() == t.ID {
			marker = "✈"
		}
		b.WriteString(fmt.Sprintf("%s %-3s %dx %-10s %s\n",
			marker, prio, planner.RequiredUnits(t), t.UnitType, t.Title))
	}
	return b.String()
}
