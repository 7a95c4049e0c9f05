package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quietfield/tomoplan/internal/models"
	"github.com/quietfield/tomoplan/internal/planner"
	"github.com/quietfield/tomoplan/internal/reassign"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.gesture.Active() {
				m.gesture.Cancel()
				m.status = "Move cancelled."
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
			return m, nil

		case key.Matches(msg, m.keys.Move):
			if !m.gesture.Active() {
				m.beginMove()
			}
			return m, nil

		case key.Matches(msg, m.keys.Drop):
			if m.gesture.Active() {
				m.drop()
			}
			return m, nil

		case key.Matches(msg, m.keys.Cancel):
			if m.gesture.Active() {
				m.gesture.Cancel()
				m.status = "Move cancelled."
			}
			return m, nil

		case key.Matches(msg, m.keys.Done):
			if !m.gesture.Active() {
				m.markDone()
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			if err := m.reload(); err != nil {
				m.status = fmt.Sprintf("Reload failed: %v", err)
			} else {
				m.status = "Refreshed."
			}
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m, nil
}

// moveCursor steps through the timeline. In move mode every step re-resolves
// the drop target under the cursor.
func (m *Model) moveCursor(delta int) {
	if len(m.plan.Segments) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.plan.Segments) {
		m.cursor = len(m.plan.Segments) - 1
	}
	if m.gesture.Active() {
		m.gesture.Move(m.cursor, m.plan.Segments, m.plan.Allocations)
	}
}

// beginMove starts a gesture for the allocation under the cursor.
func (m *Model) beginMove() {
	alloc, ok := m.allocationAt(m.cursor)
	if !ok {
		m.status = "Nothing to move here."
		return
	}
	if !m.gesture.Begin(alloc.WorkItemID, alloc.UnitIndex) {
		return
	}
	m.gesture.Move(m.cursor, m.plan.Segments, m.plan.Allocations)
	m.status = fmt.Sprintf("Moving %s. Pick a free work unit and press enter.", alloc.Title)
}

// drop ends the gesture, persisting the new position hint when it lands.
func (m *Model) drop() {
	itemID := m.gesture.ItemID()
	items := planner.WorkItems(m.todos)
	cfg := m.planner.AssignConfig(time.Now().In(m.planner.Loc))

	updated, allocs, result := m.gesture.Drop(items, m.plan.Segments, m.plan.Allocations, cfg)
	switch result {
	case reassign.ResultNoTarget:
		m.status = "No valid drop target."
		return
	case reassign.ResultOccupied:
		m.status = "That slot is held by another todo."
		return
	}

	m.plan.Allocations = allocs
	for _, item := range updated {
		if item.ID != itemID {
			continue
		}
		todo, err := m.store.GetTodo(itemID)
		if err != nil {
			m.status = fmt.Sprintf("Move applied but not saved: %v", err)
			return
		}
		todo.GlobalIndexHint = item.GlobalIndexHint
		if err := m.store.UpdateTodo(todo); err != nil {
			m.status = fmt.Sprintf("Move applied but not saved: %v", err)
			return
		}
	}
	if err := m.reload(); err != nil {
		m.status = fmt.Sprintf("Reload failed: %v", err)
		return
	}
	m.status = "Moved."
}

// markDone completes the todo allocated under the cursor, stamping its
// execution timestamps.
func (m *Model) markDone() {
	alloc, ok := m.allocationAt(m.cursor)
	if !ok {
		m.status = "Nothing allocated here."
		return
	}
	todo, err := m.store.GetTodo(alloc.WorkItemID)
	if err != nil {
		m.status = fmt.Sprintf("Todo not found: %v", err)
		return
	}
	now := time.Now().Format(time.RFC3339)
	if todo.StartedAt == "" {
		todo.StartedAt = now
	}
	todo.FinishedAt = now
	todo.Status = models.TodoStatusDone
	if err := m.store.UpdateTodo(todo); err != nil {
		m.status = fmt.Sprintf("Failed to save: %v", err)
		return
	}
	if err := m.reload(); err != nil {
		m.status = fmt.Sprintf("Reload failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("Done: %s", todo.Title)
}
