package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quietfield/tomoplan/internal/cli"
	"github.com/quietfield/tomoplan/internal/tui"
)

type TuiCmd struct {
	Date string `short:"d" help:"Date to show (YYYY-MM-DD). Defaults to today."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, date), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
