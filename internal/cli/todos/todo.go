package todos

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/quietfield/tomoplan/internal/cli"
	"github.com/quietfield/tomoplan/internal/models"
	"github.com/quietfield/tomoplan/internal/planner"
	"github.com/quietfield/tomoplan/internal/validation"
)

type AddCmd struct {
	Title     string `arg:"" optional:"" help:"Todo title. Prompts interactively when omitted."`
	Priority  int    `short:"p" help:"Priority (1 is highest, 0 means unprioritized)." default:"0"`
	Estimates []int  `short:"e" help:"Estimated work units (repeatable)."`
	Type      string `short:"t" help:"Unit type (standard|leisure|long_focus)." default:"standard"`
	Date      string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if c.Title == "" {
		if err := c.promptForm(); err != nil {
			return err
		}
	}
	if len(c.Estimates) == 0 {
		c.Estimates = []int{1}
	}

	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	todo := models.Todo{
		ID:        uuid.New().String(),
		Title:     c.Title,
		Date:      date,
		Priority:  c.Priority,
		Estimates: c.Estimates,
		UnitType:  models.UnitType(strings.ToLower(c.Type)),
		Status:    models.TodoStatusOpen,
	}

	result := validation.New().ValidateTodos([]models.Todo{todo})
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}

	if err := ctx.Store.AddTodo(todo); err != nil {
		return err
	}
	fmt.Printf("Added todo: %s (%d units, ID: %s)\n", todo.Title, planner.RequiredUnits(todo), todo.ID)
	return nil
}

func (c *AddCmd) promptForm() error {
	var priority, estimate string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}).
				Value(&c.Title),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Standard (work + break)", "standard"),
					huh.NewOption("Leisure (strict pair)", "leisure"),
					huh.NewOption("Long focus (double cycle)", "long_focus"),
				).
				Value(&c.Type),
			huh.NewInput().
				Title("Priority (1 is highest, empty for none)").
				Value(&priority),
			huh.NewInput().
				Title("Estimated units").
				Placeholder("1").
				Value(&estimate),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if priority != "" {
		p, err := strconv.Atoi(priority)
		if err != nil || p < 0 {
			return fmt.Errorf("invalid priority: %s", priority)
		}
		c.Priority = p
	}
	if estimate != "" {
		e, err := strconv.Atoi(estimate)
		if err != nil || e <= 0 {
			return fmt.Errorf("invalid estimate: %s", estimate)
		}
		c.Estimates = []int{e}
	}
	return nil
}

type ListCmd struct {
	Date string `help:"Date (YYYY-MM-DD). Defaults to today."`
	All  bool   `short:"a" help:"Include completed todos."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	todos, err := ctx.Store.GetTodos(date)
	if err != nil {
		return err
	}

	shown := 0
	fmt.Printf("Todos on %s:\n", date)
	for _, t := range todos {
		if t.Status == models.TodoStatusDone && !c.All {
			continue
		}
		marker := "[ ]"
		if t.Status == models.TodoStatusDone {
			marker = "[x]"
		}
		prio := "-"
		if t.Priority > 0 {
			prio = fmt.Sprintf("P%d", t.Priority)
		}
		fmt.Printf("  %s %-3s %dx %-10s %s  (%s)\n",
			marker, prio, planner.RequiredUnits(t), t.UnitType, t.Title, t.ID)
		shown++
	}
	if shown == 0 {
		fmt.Println("  (none)")
	}
	return nil
}

// StartCmd stamps a todo's actual start time for the execution record.
type StartCmd struct {
	ID string `arg:"" help:"Todo ID."`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	todo, err := ctx.Store.GetTodo(c.ID)
	if err != nil {
		return fmt.Errorf("todo not found: %s", c.ID)
	}
	todo.StartedAt = time.Now().Format(time.RFC3339)
	if err := ctx.Store.UpdateTodo(todo); err != nil {
		return err
	}
	fmt.Printf("Started: %s\n", todo.Title)
	return nil
}

// DoneCmd marks a todo complete, stamping its finish time. The start time
// is stamped too if it was never recorded.
type DoneCmd struct {
	ID string `arg:"" help:"Todo ID."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	todo, err := ctx.Store.GetTodo(c.ID)
	if err != nil {
		return fmt.Errorf("todo not found: %s", c.ID)
	}
	now := time.Now().Format(time.RFC3339)
	if todo.StartedAt == "" {
		todo.StartedAt = now
	}
	todo.FinishedAt = now
	todo.Status = models.TodoStatusDone
	if err := ctx.Store.UpdateTodo(todo); err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", todo.Title)
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Todo ID."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteTodo(c.ID); err != nil {
		return fmt.Errorf("failed to delete todo %s: %w", c.ID, err)
	}
	fmt.Printf("Deleted todo: %s\n", c.ID)
	return nil
}
