package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sawitlabs/petamap/pkg/errors"
)

// On-disk format: a single JSON object mapping element name to descriptor.
// Each descriptor carries "kind", "position" ([left, bottom, width, height]),
// "visible", and any style overrides as flat keys:
//
//	{
//	  "main_map": {"kind": "main_map", "position": [0.05, 0.05, 0.60, 0.93], "visible": true, "border": true},
//	  "compass_1": {"kind": "compass", "position": [0.54, 0.84, 0.09, 0.12], "visible": true}
//	}

// reservedKeys are descriptor fields that are not style overrides.
var reservedKeys = map[string]bool{
	"kind":     true,
	"position": true,
	"visible":  true,
}

// MarshalJSON encodes the model as the flat on-disk object.
func (m *Model) MarshalJSON() ([]byte, error) {
	doc := make(map[string]map[string]any, len(m.elements))
	for name, e := range m.elements {
		entry := make(map[string]any, len(e.Style)+3)
		for k, v := range e.Style {
			if !reservedKeys[k] {
				entry[k] = v
			}
		}
		entry["kind"] = string(e.Kind)
		entry["position"] = []float64{e.Position.Left, e.Position.Bottom, e.Position.Width, e.Position.Height}
		entry["visible"] = e.Visible
		doc[name] = entry
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes and validates the flat on-disk object. Every
// descriptor is validated before any is applied: a corrupt file never
// partially replaces the model.
func (m *Model) UnmarshalJSON(data []byte) error {
	var doc map[string]map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "layout file is not a JSON object")
	}

	parsed := make(map[string]*Element, len(doc))
	for name, entry := range doc {
		e, err := parseElement(name, entry)
		if err != nil {
			return err
		}
		parsed[name] = e
	}

	m.elements = parsed
	return nil
}

// parseElement validates one descriptor. Unknown kinds are preserved (the
// renderer skips them with a warning rather than failing the whole file);
// structural problems are INVALID_LAYOUT errors naming the element.
func parseElement(name string, entry map[string]any) (*Element, error) {
	if err := errors.ValidateElementName(name); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "element %q", name)
	}

	kindStr, ok := entry["kind"].(string)
	if !ok || kindStr == "" {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "element %q: missing kind", name)
	}
	kind := Kind(kindStr)

	rawPos, ok := entry["position"].([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "element %q: missing position", name)
	}
	if len(rawPos) != 4 {
		return nil, errors.New(errors.ErrCodeInvalidLayout,
			"element %q: position must have 4 values, got %d", name, len(rawPos))
	}
	var pos [4]float64
	for i, v := range rawPos {
		f, ok := v.(float64)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidLayout,
				"element %q: position[%d] is not a number", name, i)
		}
		pos[i] = f
	}
	rect := Rect{Left: pos[0], Bottom: pos[1], Width: pos[2], Height: pos[3]}
	if rect.Width <= 0 || rect.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout,
			"element %q: width and height must be positive", name)
	}

	visible := true
	if v, ok := entry["visible"].(bool); ok {
		visible = v
	}

	style := make(map[string]any)
	for k, v := range entry {
		if !reservedKeys[k] {
			style[k] = v
		}
	}

	return &Element{
		Name:      name,
		Kind:      kind,
		Position:  rect,
		Visible:   visible,
		Protected: IsCore(kind),
		Style:     style,
	}, nil
}

// Save serializes the model to path as indented JSON.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "write layout file %s", path)
	}
	return nil
}

// Load reads and validates a layout file. On any error the receiving model
// is left unchanged.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "read layout file %s", path)
	}
	m := New()
	if err := json.Unmarshal(data, m); err != nil {
		if errors.GetCode(err) != "" {
			return nil, fmt.Errorf("layout file %s: %w", path, err)
		}
		// json syntax errors never reach UnmarshalJSON, so they arrive
		// uncoded here.
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "layout file %s is not valid JSON", path)
	}
	return m, nil
}
