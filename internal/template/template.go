package template

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/quietfield/tomoplan/internal/models"
	"github.com/quietfield/tomoplan/internal/validation"
)

// File is the on-disk YAML shape of a day template.
type File struct {
	Blocks []FileBlock `yaml:"blocks"`
}

// FileBlock is one template block as written in YAML. IDs are optional;
// missing ones are generated on import.
type FileBlock struct {
	ID       string `yaml:"id,omitempty"`
	Category string `yaml:"category"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
}

// Load reads and validates a day template from a YAML file. The returned
// blocks are ready to store: every block has an ID and a position matching
// its order in the file.
func Load(path string) ([]models.DayBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML template content.
func Parse(data []byte) ([]models.DayBlock, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if len(file.Blocks) == 0 {
		return nil, fmt.Errorf("template contains no blocks")
	}

	blocks := make([]models.DayBlock, 0, len(file.Blocks))
	for i, fb := range file.Blocks {
		id := fb.ID
		if id == "" {
			id = uuid.New().String()
		}
		blocks = append(blocks, models.DayBlock{
			ID:       id,
			Category: models.BlockCategory(fb.Category),
			Start:    fb.Start,
			End:      fb.End,
			Position: i,
		})
	}

	result := validation.New().ValidateBlocks(blocks)
	if result.HasConflicts() {
		return nil, fmt.Errorf("invalid template:\n%s", result.FormatReport())
	}
	return blocks, nil
}

// Marshal renders blocks back to the YAML file shape, preserving order by
// position.
func Marshal(blocks []models.DayBlock) ([]byte, error) {
	file := File{Blocks: make([]FileBlock, 0, len(blocks))}
	for _, b := range blocks {
		file.Blocks = append(file.Blocks, FileBlock{
			ID:       b.ID,
			Category: string(b.Category),
			Start:    b.Start,
			End:      b.End,
		})
	}
	return yaml.Marshal(file)
}
