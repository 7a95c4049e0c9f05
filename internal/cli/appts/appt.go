package appts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quietfield/tomoplan/internal/cli"
	"github.com/quietfield/tomoplan/internal/models"
	"github.com/quietfield/tomoplan/internal/utils"
	"github.com/quietfield/tomoplan/internal/validation"
)

type AddCmd struct {
	Title    string `arg:"" help:"Appointment title."`
	Start    string `short:"s" help:"Start time (HH:MM)." required:""`
	Duration int    `short:"d" help:"Duration in minutes." required:""`
	Date     string `help:"Date (YYYY-MM-DD). Defaults to today."`
	Idle     bool   `help:"Mark as idle downtime rather than a commitment."`
}

func (c *AddCmd) Validate() error {
	if !utils.ValidateTimeFormat(c.Start) {
		return fmt.Errorf("invalid start time format (expected HH:MM): %s", c.Start)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be greater than zero")
	}
	return nil
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	appt := models.Appointment{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Date:        date,
		Start:       c.Start,
		DurationMin: c.Duration,
		Idle:        c.Idle,
	}

	result := validation.New().ValidateAppointments([]models.Appointment{appt})
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}

	if err := ctx.Store.AddAppointment(appt); err != nil {
		return err
	}
	fmt.Printf("Added appointment: %s at %s on %s (ID: %s)\n", c.Title, c.Start, date, appt.ID)
	return nil
}

type ListCmd struct {
	Date string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	appts, err := ctx.Store.GetAppointments(date)
	if err != nil {
		return err
	}
	if len(appts) == 0 {
		fmt.Printf("No appointments on %s.\n", date)
		return nil
	}

	fmt.Printf("Appointments on %s:\n", date)
	for _, a := range appts {
		marker := " "
		if a.FinishedAt != "" {
			marker = "✓"
		}
		kind := ""
		if a.Idle {
			kind = " [idle]"
		}
		fmt.Printf("  %s %s  %dm  %s%s  (%s)\n", marker, a.Start, a.DurationMin, a.Title, kind, a.ID)
	}
	return nil
}

// DoneCmd records that an appointment actually happened, stamping its
// finish time for the execution record.
type DoneCmd struct {
	ID string `arg:"" help:"Appointment ID."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate("")
	if err != nil {
		return err
	}
	appts, err := ctx.Store.GetAppointments(date)
	if err != nil {
		return err
	}
	for _, a := range appts {
		if a.ID == c.ID {
			a.FinishedAt = time.Now().Format(time.RFC3339)
			if err := ctx.Store.UpdateAppointment(a); err != nil {
				return err
			}
			fmt.Printf("Marked appointment done: %s\n", a.Title)
			return nil
		}
	}
	return fmt.Errorf("appointment not found on %s: %s", date, c.ID)
}

type DeleteCmd struct {
	ID string `arg:"" help:"Appointment ID."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteAppointment(c.ID); err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", c.ID, err)
	}
	fmt.Printf("Deleted appointment: %s\n", c.ID)
	return nil
}
