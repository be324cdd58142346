package region

import (
	"errors"
	"testing"
)

const singleBox = `editor text
  ┌─ Targets ──┐
  │ test       │
  │ build      │
  └────────────┘
status line`

const twoBoxes = `┌──┐
│a │
└──┘
   ┌────┐
   │one │
   │two │
   │    │
   └────┘`

func TestExtract_SingleRegion(t *testing.T) {
	got, err := Extract(singleBox, Largest)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := " test       \n build      "
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtract_NoRegion(t *testing.T) {
	for _, screen := range []string{"", "plain\nscreen", "┌ without rule", "┌──┐\n│open│"} {
		_, err := Extract(screen, Largest)
		if !errors.Is(err, ErrNoRegion) {
			t.Errorf("Extract(%q) error = %v, want ErrNoRegion", screen, err)
		}
	}
}

func TestExtract_Selection(t *testing.T) {
	tests := []struct {
		name  string
		which int
		want  string
	}{
		{"largest", Largest, "one \ntwo \n    "},
		{"first", 0, "a "},
		{"second", 1, "one \ntwo \n    "},
		{"out of range falls back to first", 5, "a "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(twoBoxes, tt.which)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_LargestTiePicksFirst(t *testing.T) {
	screen := "┌─┐\n│x│\n└─┘\n┌─┐\n│y│\n└─┘"
	got, err := Extract(screen, Largest)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "x" {
		t.Errorf("Extract() = %q, want %q", got, "x")
	}
}

func TestExtract_SkipsLinesWithoutBothBorders(t *testing.T) {
	screen := "┌────┐\n│keep│\n no border\n│half\n└────┘"
	got, err := Extract(screen, 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "keep" {
		t.Errorf("Extract() = %q, want %q", got, "keep")
	}
}

func TestFind(t *testing.T) {
	got := Find(twoBoxes)
	want := []Bounds{{Top: 0, Bottom: 2}, {Top: 3, Bottom: 7}}
	if len(got) != len(want) {
		t.Fatalf("Find() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Find()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
