package templates

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/quietfield/tomoplan/internal/cli"
	"github.com/quietfield/tomoplan/internal/models"
	"github.com/quietfield/tomoplan/internal/template"
	"github.com/quietfield/tomoplan/internal/validation"
)

// SetCmd appends one block to the day template.
type SetCmd struct {
	Category string `arg:"" help:"Block category (focus|leisure|rest)."`
	Start    string `arg:"" help:"Start time (HH:MM)."`
	End      string `arg:"" help:"End time (HH:MM)."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	blocks, err := ctx.Store.GetBlocks()
	if err != nil {
		return err
	}

	block := models.DayBlock{
		ID:       uuid.New().String(),
		Category: models.BlockCategory(strings.ToLower(c.Category)),
		Start:    c.Start,
		End:      c.End,
		Position: len(blocks),
	}
	candidate := append(append([]models.DayBlock{}, blocks...), block)

	result := validation.New().ValidateBlocks(candidate)
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}

	if err := ctx.Store.SaveBlocks(candidate); err != nil {
		return err
	}
	fmt.Printf("Added %s block %s-%s (ID: %s)\n", block.Category, block.Start, block.End, block.ID)
	return nil
}

// ListCmd prints the day template in chronological order.
type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	blocks, err := ctx.Store.GetBlocks()
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		fmt.Println("No day template configured. Add blocks with 'tomoplan template set'.")
		return nil
	}

	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Start < blocks[j].Start })
	fmt.Println("Day template:")
	for _, b := range blocks {
		fmt.Printf("  %s-%s  %-8s %s\n", b.Start, b.End, b.Category, b.ID)
	}
	return nil
}

// ClearCmd removes all blocks from the day template.
type ClearCmd struct{}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ClearBlocks(); err != nil {
		return err
	}
	fmt.Println("Cleared day template.")
	return nil
}

// ImportCmd replaces the day template with one loaded from a YAML file.
type ImportCmd struct {
	Path string `arg:"" help:"Path to the YAML template file."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	blocks, err := template.Load(c.Path)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveBlocks(blocks); err != nil {
		return err
	}
	fmt.Printf("Imported %d blocks from %s\n", len(blocks), c.Path)
	return nil
}

// ExportCmd writes the current day template as YAML.
type ExportCmd struct {
	Path string `arg:"" optional:"" help:"Destination file. Writes to stdout when omitted."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	blocks, err := ctx.Store.GetBlocks()
	if err != nil {
		return err
	}
	data, err := template.Marshal(blocks)
	if err != nil {
		return err
	}
	if c.Path == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(c.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}
	fmt.Printf("Exported %d blocks to %s\n", len(blocks), c.Path)
	return nil
}
