package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sawitlabs/petamap/pkg/layout"
)

// press sends a key to the editor and returns the updated model.
func press(t *testing.T, m EditorModel, key string) EditorModel {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	em, ok := next.(EditorModel)
	if !ok {
		t.Fatalf("Update returned %T, want EditorModel", next)
	}
	return em
}

// selectElement moves the cursor to the named element.
func selectElement(t *testing.T, m EditorModel, name string) EditorModel {
	t.Helper()
	for i, n := range m.names {
		if n == name {
			m.cursor = i
			return m
		}
	}
	t.Fatalf("element %q not in editor list %v", name, m.names)
	return m
}

func TestEditorMoveElement(t *testing.T) {
	m := NewEditorModel("layout.json", layout.Default())
	m = selectElement(t, m, "main_map")

	before, _ := m.Layout.Get("main_map")
	m = press(t, m, "right")
	after, _ := m.Layout.Get("main_map")

	if after.Position.Left != before.Position.Left+stepCoarse {
		t.Errorf("Left = %f, want %f", after.Position.Left, before.Position.Left+stepCoarse)
	}
	if !m.Dirty {
		t.Error("movement did not mark the editor dirty")
	}
}

func TestEditorFineMovement(t *testing.T) {
	m := NewEditorModel("layout.json", layout.Default())
	m = selectElement(t, m, "title")
	m = press(t, m, "f")

	before, _ := m.Layout.Get("title")
	m = press(t, m, "left")
	after, _ := m.Layout.Get("title")

	if after.Position.Left != before.Position.Left-stepFine {
		t.Errorf("Left = %f, want %f", after.Position.Left, before.Position.Left-stepFine)
	}
}

func TestEditorResizeClampsAtZero(t *testing.T) {
	m := NewEditorModel("layout.json", layout.Default())
	m = selectElement(t, m, "compass_1")

	// Shrinking far below zero must be rejected, leaving the size intact.
	before, _ := m.Layout.Get("compass_1")
	for i := 0; i < 200; i++ {
		m = press(t, m, "-")
	}
	after, _ := m.Layout.Get("compass_1")
	if after.Position.Width <= 0 || after.Position.Height <= 0 {
		t.Errorf("size went non-positive: %f x %f", after.Position.Width, after.Position.Height)
	}
	if after.Position.Width > before.Position.Width {
		t.Error("shrinking grew the element")
	}
}

func TestEditorToggleVisibility(t *testing.T) {
	m := NewEditorModel("layout.json", layout.Default())
	m = selectElement(t, m, "legend")

	m = press(t, m, "v")
	el, _ := m.Layout.Get("legend")
	if el.Visible {
		t.Error("legend still visible after toggle")
	}
	m = press(t, m, "v")
	el, _ = m.Layout.Get("legend")
	if !el.Visible {
		t.Error("legend not visible after second toggle")
	}
}

func TestEditorAddElement(t *testing.T) {
	m := NewEditorModel("layout.json", layout.Default())

	m = press(t, m, "a")
	if m.mode != modeAdd {
		t.Fatal("'a' did not enter add mode")
	}
	m = press(t, m, "t")

	if _, ok := m.Layout.Get("text_box_1"); !ok {
		t.Fatal("text_box_1 not created")
	}
	if m.names[m.cursor] != "text_box_1" {
		t.Errorf("cursor on %q, want the new element", m.names[m.cursor])
	}

	// Cancelling add mode creates nothing.
	count := m.Layout.Len()
	m = press(t, m, "a")
	m = press(t, m, "x")
	if m.Layout.Len() != count {
		t.Error("cancelled add changed the model")
	}
}

func TestEditorDeleteProtected(t *testing.T) {
	m := NewEditorModel("layout.json", layout.Default())
	m = selectElement(t, m, "main_map")

	m = press(t, m, "d")
	if _, ok := m.Layout.Get("main_map"); !ok {
		t.Fatal("protected element was deleted")
	}
	if m.status == "" {
		t.Error("no status message for rejected delete")
	}
}

func TestEditorDeleteDynamic(t *testing.T) {
	m := NewEditorModel("layout.json", layout.Default())
	m = selectElement(t, m, "compass_1")

	m = press(t, m, "d")
	if _, ok := m.Layout.Get("compass_1"); ok {
		t.Fatal("compass_1 survived delete")
	}
	if m.cursor >= len(m.names) {
		t.Error("cursor out of range after delete")
	}
}

func TestEditorResetAll(t *testing.T) {
	m := NewEditorModel("layout.json", layout.Default())
	m = press(t, m, "a")
	m = press(t, m, "c")
	m = selectElement(t, m, "main_map")
	m = press(t, m, "right")

	m = press(t, m, "R")

	def, _ := layout.Default().Get("main_map")
	got, _ := m.Layout.Get("main_map")
	if got.Position != def.Position {
		t.Error("main_map position not restored")
	}
	if _, ok := m.Layout.Get("compass_2"); ok {
		t.Error("dynamic element survived reset all")
	}
}

func TestEditorSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	m := NewEditorModel(path, layout.Default())
	m = selectElement(t, m, "title")
	m = press(t, m, "right")

	m = press(t, m, "w")
	if !m.Saved || m.Dirty {
		t.Fatalf("after save: Saved=%v Dirty=%v", m.Saved, m.Dirty)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("layout file not written: %v", err)
	}

	loaded, err := layout.Load(path)
	if err != nil {
		t.Fatalf("saved layout does not load: %v", err)
	}
	moved, _ := loaded.Get("title")
	def, _ := layout.Default().Get("title")
	if moved.Position.Left != def.Position.Left+stepCoarse {
		t.Error("saved layout missing the edit")
	}
}

func TestEditorQuitConfirmation(t *testing.T) {
	m := NewEditorModel("layout.json", layout.Default())
	m = press(t, m, "right")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(EditorModel)
	if cmd != nil {
		t.Fatal("first q with unsaved changes quit immediately")
	}
	if m.mode != modeQuit {
		t.Fatal("first q did not ask for confirmation")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("second q did not quit")
	}
}

func TestEditorViewShowsElements(t *testing.T) {
	m := NewEditorModel("layout.json", layout.Default())
	view := m.View()

	for _, name := range []string{"main_map", "title", "legend", "overview", "logo_info"} {
		if !strings.Contains(view, name) {
			t.Errorf("view missing element %q", name)
		}
	}
	if !strings.Contains(view, "Layout Editor") {
		t.Error("view missing title")
	}
}
