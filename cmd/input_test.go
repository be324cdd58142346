package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/schovi/ptyprobe/internal/region"
)

func TestParseRegionSelector(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"largest", region.Largest, false},
		{"LARGEST", region.Largest, false},
		{"0", 0, false},
		{"3", 3, false},
		{"-1", 0, true},
		{"biggest", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRegionSelector(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRegionSelector(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseRegionSelector(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.raw")
	if err := os.WriteFile(path, []byte("\x1b[2Jhi"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := readInput([]string{path})
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if string(got) != "\x1b[2Jhi" {
		t.Errorf("readInput() = %q", got)
	}

	if _, err := readInput([]string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTerminalSize_ExplicitWins(t *testing.T) {
	cols, rows := terminalSize(100, 40)
	if cols != 100 || rows != 40 {
		t.Errorf("terminalSize(100, 40) = %dx%d", cols, rows)
	}
}

func TestScreenResult(t *testing.T) {
	boxed := "title\n┌──────┐\n│ menu │\n└──────┘"
	tests := []struct {
		name       string
		screen     string
		withRegion bool
		wantRegion string
		wantErr    bool
	}{
		{"screen only", boxed, false, "", false},
		{"region from capture", boxed, true, " menu ", false},
		{"no box on capture", "plain text", true, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := screenResult(tt.screen, 20, 4, region.Largest, tt.withRegion)
			if (err != nil) != tt.wantErr {
				t.Fatalf("screenResult error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.Screen != tt.screen {
				t.Errorf("Screen = %q, want %q", got.Screen, tt.screen)
			}
			if got.Region != tt.wantRegion {
				t.Errorf("Region = %q, want %q", got.Region, tt.wantRegion)
			}
			if got.Cols != 20 || got.Rows != 4 {
				t.Errorf("size = %dx%d, want 20x4", got.Cols, got.Rows)
			}
		})
	}
}
