package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sawitlabs/petamap/pkg/errors"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")

	m := Default()
	if _, err := m.Create(KindTextBox, Rect{Left: 0.40, Bottom: 0.45, Width: 0.20, Height: 0.08}); err != nil {
		t.Fatal(err)
	}
	hidden := false
	if err := m.Update("overview", Patch{Visible: &hidden, Style: map[string]any{"title": "LOKASI"}}); err != nil {
		t.Fatal(err)
	}

	if err := m.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Len() != m.Len() {
		t.Fatalf("element count: got %d, want %d", got.Len(), m.Len())
	}
	for _, name := range m.Names() {
		want, _ := m.Get(name)
		have, ok := got.Get(name)
		if !ok {
			t.Fatalf("element %q lost in round trip", name)
		}
		if have.Kind != want.Kind {
			t.Errorf("%s: kind %q != %q", name, have.Kind, want.Kind)
		}
		if have.Position != want.Position {
			t.Errorf("%s: position %+v != %+v", name, have.Position, want.Position)
		}
		if have.Visible != want.Visible {
			t.Errorf("%s: visible %v != %v", name, have.Visible, want.Visible)
		}
		if have.Protected != want.Protected {
			t.Errorf("%s: protected %v != %v", name, have.Protected, want.Protected)
		}
	}

	ov, _ := got.Get("overview")
	if ov.Visible {
		t.Error("overview visibility not persisted")
	}
	if ov.StyleString("title", "") != "LOKASI" {
		t.Error("overview style override not persisted")
	}
}

func TestLoadInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIn  string
	}{
		{
			name:    "not json",
			content: `{{{{`,
			wantIn:  "JSON",
		},
		{
			name:    "short position",
			content: `{"main_map": {"kind": "main_map", "position": [0.1, 0.1, 0.5]}}`,
			wantIn:  "main_map",
		},
		{
			name:    "non numeric position",
			content: `{"box": {"kind": "text_box", "position": [0.1, "x", 0.5, 0.5]}}`,
			wantIn:  "box",
		},
		{
			name:    "zero width",
			content: `{"box": {"kind": "text_box", "position": [0.1, 0.1, 0, 0.5]}}`,
			wantIn:  "box",
		},
		{
			name:    "missing kind",
			content: `{"box": {"position": [0.1, 0.1, 0.5, 0.5]}}`,
			wantIn:  "box",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "layout.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("expected INVALID_LAYOUT, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantIn)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Fatalf("expected INVALID_LAYOUT, got %v", err)
	}
}

func TestLoadToleratesUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	content := `{"watermark_1": {"kind": "watermark", "position": [0.3, 0.3, 0.4, 0.4], "opacity": 0.5}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	e, ok := m.Get("watermark_1")
	if !ok {
		t.Fatal("unknown-kind element dropped")
	}
	if e.Kind != Kind("watermark") {
		t.Errorf("kind = %q", e.Kind)
	}
	if e.Protected {
		t.Error("unknown-kind element must not be protected")
	}
	if e.StyleFloat("opacity", 0) != 0.5 {
		t.Error("style keys of unknown-kind element not preserved")
	}
}

func TestLoadErrorLeavesNothingApplied(t *testing.T) {
	// One good element followed by one bad one: the whole load fails.
	path := filepath.Join(t.TempDir(), "layout.json")
	content := `{
		"compass_1": {"kind": "compass", "position": [0.5, 0.8, 0.1, 0.1]},
		"zzz_bad": {"kind": "text_box", "position": [0.1, 0.1, -1, 0.5]}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if m != nil {
		t.Error("Load must return nil model on failure")
	}
}

func TestVisibleDefaultsTrue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	content := `{"compass_1": {"kind": "compass", "position": [0.5, 0.8, 0.1, 0.1]}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	e, _ := m.Get("compass_1")
	if !e.Visible {
		t.Error("visible should default to true")
	}
}
