// Package tui is the interactive day view: the computed timeline on the
// left, the backlog on the right, and a move mode that drives the
// drag-to-reassign gesture with the keyboard.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quietfield/tomoplan/internal/models"
	"github.com/quietfield/tomoplan/internal/planner"
	"github.com/quietfield/tomoplan/internal/reassign"
	"github.com/quietfield/tomoplan/internal/storage"
)

type Model struct {
	store   storage.Provider
	date    string
	planner *planner.Planner
	plan    planner.Plan
	todos   []models.Todo

	cursor  int
	gesture reassign.Gesture

	keys     KeyMap
	help     help.Model
	status   string
	loadErr  error
	width    int
	height   int
	quitting bool
}

func NewModel(store storage.Provider, date string) Model {
	m := Model{
		store: store,
		date:  date,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.loadErr = m.reload()
	return m
}

// reload pulls the day's inputs from storage and recomputes the plan.
func (m *Model) reload() error {
	settings, err := m.store.GetSettings()
	if err != nil {
		return err
	}
	p, err := planner.New(settings)
	if err != nil {
		return err
	}
	m.planner = p

	blocks, err := m.store.GetBlocks()
	if err != nil {
		return err
	}
	appts, err := m.store.GetAppointments(m.date)
	if err != nil {
		return err
	}
	todos, err := m.store.GetTodos(m.date)
	if err != nil {
		return err
	}
	open := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if t.Status != models.TodoStatusDone {
			open = append(open, t)
		}
	}

	m.todos = open
	m.plan = p.Compute(m.date, blocks, appts, open, time.Now().In(p.Loc))
	if m.cursor >= len(m.plan.Segments) {
		m.cursor = len(m.plan.Segments) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return nil
}

// allocationAt returns the non-overflow allocation anchored at a global
// index, if any.
func (m *Model) allocationAt(globalIndex int) (models.Allocation, bool) {
	for _, a := range m.plan.Allocations {
		if !a.Overflow && a.GlobalIndex == globalIndex {
			return a, true
		}
	}
	return models.Allocation{}, false
}

func (m Model) ShortHelp() []key.Binding {
	if m.gesture.Active() {
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Drop, m.keys.Cancel}
	}
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Move, m.keys.Done, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.Move, m.keys.Drop, m.keys.Cancel},
		{m.keys.Done, m.keys.Refresh},
		{m.keys.Help, m.keys.Quit},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}
