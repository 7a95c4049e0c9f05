package template

import (
	"strings"
	"testing"

	"github.com/quietfield/tomoplan/internal/models"
)

func TestParse_ValidTemplate(t *testing.T) {
	data := []byte(`
blocks:
  - category: focus
    start: "09:00"
    end: "12:00"
  - category: rest
    start: "12:00"
    end: "13:00"
  - id: afternoon
    category: leisure
    start: "13:00"
    end: "15:00"
`)
	blocks, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	for i, b := range blocks {
		if b.ID == "" {
			t.Errorf("block %d missing generated ID", i)
		}
		if b.Position != i {
			t.Errorf("block %d position = %d", i, b.Position)
		}
	}
	if blocks[2].ID != "afternoon" {
		t.Errorf("explicit ID not preserved: %s", blocks[2].ID)
	}
	if blocks[0].Category != models.CategoryFocus {
		t.Errorf("category = %s", blocks[0].Category)
	}
}

func TestParse_RejectsOverlappingBlocks(t *testing.T) {
	data := []byte(`
blocks:
  - category: focus
    start: "09:00"
    end: "12:00"
  - category: leisure
    start: "11:00"
    end: "13:00"
`)
	_, err := Parse(data)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "overlap") {
		t.Errorf("error does not mention overlap: %v", err)
	}
}

func TestParse_RejectsEmptyTemplate(t *testing.T) {
	if _, err := Parse([]byte("blocks: []")); err == nil {
		t.Fatal("expected error for empty template")
	}
}

func TestParse_RejectsBadYAML(t *testing.T) {
	if _, err := Parse([]byte("blocks: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	blocks := []models.DayBlock{
		{ID: "b1", Category: models.CategoryFocus, Start: "09:00", End: "12:00", Position: 0},
		{ID: "b2", Category: models.CategoryRest, Start: "12:00", End: "13:00", Position: 1},
	}
	data, err := Marshal(blocks)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed) != 2 || parsed[0].ID != "b1" || parsed[1].Category != models.CategoryRest {
		t.Errorf("round trip mismatch: %+v", parsed)
	}
}
