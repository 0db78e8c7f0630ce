package layout

import (
	"testing"

	"github.com/sawitlabs/petamap/pkg/errors"
)

func TestDefaultHasCoreElements(t *testing.T) {
	m := Default()
	for _, name := range []string{"main_map", "title", "legend", "overview", "logo_info"} {
		e, ok := m.Get(name)
		if !ok {
			t.Fatalf("default model missing core element %q", name)
		}
		if !e.Protected {
			t.Errorf("core element %q should be protected", name)
		}
	}
}

func TestCreateAutoNames(t *testing.T) {
	m := Default()

	// The default model ships with compass_1; two creates must continue the
	// sequence without collisions.
	first, err := m.Create(KindCompass, Rect{Left: 0.1, Bottom: 0.1, Width: 0.1, Height: 0.1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := m.Create(KindCompass, Rect{Left: 0.3, Bottom: 0.3, Width: 0.1, Height: 0.1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Name == second.Name {
		t.Fatalf("auto-generated names collided: %q", first.Name)
	}
	if first.Name != "compass_2" || second.Name != "compass_3" {
		t.Errorf("expected compass_2, compass_3; got %q, %q", first.Name, second.Name)
	}
	if first.Protected || second.Protected {
		t.Error("dynamic elements must not be protected")
	}
}

func TestCreateFromEmptyModel(t *testing.T) {
	m := New()
	tests := []struct {
		kind Kind
		want string
	}{
		{KindCompass, "compass_1"},
		{KindCompass, "compass_2"},
		{KindScaleBar, "scale_bar_1"},
		{KindTextBox, "text_box_1"},
	}
	for _, tt := range tests {
		e, err := m.Create(tt.kind, Rect{Left: 0, Bottom: 0, Width: 0.2, Height: 0.2})
		if err != nil {
			t.Fatalf("Create(%s): %v", tt.kind, err)
		}
		if e.Name != tt.want {
			t.Errorf("Create(%s) = %q, want %q", tt.kind, e.Name, tt.want)
		}
	}
}

func TestCreateNamedDuplicate(t *testing.T) {
	m := New()
	if _, err := m.CreateNamed("north", KindCompass, Rect{Width: 0.1, Height: 0.1}); err != nil {
		t.Fatalf("CreateNamed: %v", err)
	}
	_, err := m.CreateNamed("north", KindCompass, Rect{Width: 0.1, Height: 0.1})
	if !errors.Is(err, errors.ErrCodeDuplicateName) {
		t.Fatalf("expected DUPLICATE_NAME, got %v", err)
	}
}

func TestCreateRejectsInvalidRect(t *testing.T) {
	m := New()
	if _, err := m.Create(KindTextBox, Rect{Width: 0, Height: 0.1}); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := m.Create(KindTextBox, Rect{Width: 0.1, Height: -0.2}); err == nil {
		t.Fatal("expected error for negative height")
	}
}

func TestDeleteProtected(t *testing.T) {
	m := Default()
	before := m.Len()
	for _, name := range []string{"main_map", "title", "legend", "overview", "logo_info"} {
		err := m.Delete(name)
		if !errors.Is(err, errors.ErrCodeProtectedElement) {
			t.Errorf("Delete(%q): expected PROTECTED_ELEMENT, got %v", name, err)
		}
	}
	if m.Len() != before {
		t.Errorf("model changed after failed deletes: %d -> %d", before, m.Len())
	}
}

func TestDeleteDynamic(t *testing.T) {
	m := Default()
	if err := m.Delete("compass_1"); err != nil {
		t.Fatalf("Delete(compass_1): %v", err)
	}
	if _, ok := m.Get("compass_1"); ok {
		t.Error("compass_1 still present after delete")
	}
	err := m.Delete("compass_1")
	if !errors.Is(err, errors.ErrCodeElementNotFound) {
		t.Errorf("expected ELEMENT_NOT_FOUND, got %v", err)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	m := Default()

	pos := Rect{Left: 0.2, Bottom: 0.2, Width: 0.4, Height: 0.4}
	hidden := false
	err := m.Update("legend", Patch{
		Position: &pos,
		Visible:  &hidden,
		Style:    map[string]any{"title": "KETERANGAN", "border": nil},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	e, _ := m.Get("legend")
	if e.Position != pos {
		t.Errorf("position = %+v, want %+v", e.Position, pos)
	}
	if e.Visible {
		t.Error("visible should be false")
	}
	if got := e.StyleString("title", ""); got != "KETERANGAN" {
		t.Errorf("title = %q", got)
	}
	if _, ok := e.Style["border"]; ok {
		t.Error("nil style value should remove the key")
	}
	// Untouched style keys survive.
	if e.StyleFloat("title_font_size", 0) != 12.0 {
		t.Error("unpatched style key was lost")
	}
}

func TestUpdateNotFound(t *testing.T) {
	m := Default()
	err := m.Update("nope", Patch{})
	if !errors.Is(err, errors.ErrCodeElementNotFound) {
		t.Fatalf("expected ELEMENT_NOT_FOUND, got %v", err)
	}
}

func TestResetAllDropsDynamicElements(t *testing.T) {
	m := Default()
	if _, err := m.Create(KindTextBox, Rect{Left: 0.4, Bottom: 0.4, Width: 0.2, Height: 0.1}); err != nil {
		t.Fatal(err)
	}
	pos := Rect{Left: 0, Bottom: 0, Width: 0.1, Height: 0.1}
	if err := m.Update("main_map", Patch{Position: &pos}); err != nil {
		t.Fatal(err)
	}

	m.ResetAll()

	if _, ok := m.Get("text_box_1"); ok {
		t.Error("dynamic element survived ResetAll")
	}
	e, _ := m.Get("main_map")
	if e.Position.Width != 0.60 {
		t.Errorf("main_map position not restored: %+v", e.Position)
	}
}

func TestResetSingle(t *testing.T) {
	m := Default()
	pos := Rect{Left: 0.1, Bottom: 0.1, Width: 0.2, Height: 0.2}
	if err := m.Update("title", Patch{Position: &pos}); err != nil {
		t.Fatal(err)
	}
	if err := m.Reset("title"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	e, _ := m.Get("title")
	if e.Position.Left != 0.66 {
		t.Errorf("title position not restored: %+v", e.Position)
	}
}

func TestElementsDrawOrder(t *testing.T) {
	m := Default()
	elems := m.Elements()

	idx := make(map[string]int, len(elems))
	for i, e := range elems {
		idx[e.Name] = i
	}

	// Overlays draw after the main map.
	if idx["compass_1"] < idx["main_map"] {
		t.Error("compass must draw after main_map")
	}
	if idx["scale_bar_1"] < idx["main_map"] {
		t.Error("scale_bar must draw after main_map")
	}
}
