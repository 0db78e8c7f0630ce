// Package layout implements the declarative Layout Model for map reports.
//
// A Model maps element names to Element descriptors. Each descriptor places
// one report panel (main map, legend, overview inset, compass, ...) on the
// page using a rectangle in normalized page coordinates. The Model is edited
// interactively by the TUI editor and consumed by the report renderer; it is
// persisted as a flat JSON document (see file.go).
//
// Core elements (main_map, title, legend, overview, logo_info) always exist
// and cannot be deleted. Dynamic elements (compass, scale_bar, text_box) are
// created with auto-generated names like "compass_1" and may be removed.
package layout

import (
	"fmt"
	"sort"

	"github.com/sawitlabs/petamap/pkg/errors"
)

// Kind identifies what a layout element renders.
type Kind string

// The closed set of element kinds understood by the renderer.
const (
	KindMainMap  Kind = "main_map"
	KindTitle    Kind = "title"
	KindLegend   Kind = "legend"
	KindOverview Kind = "overview"
	KindLogoInfo Kind = "logo_info"
	KindCompass  Kind = "compass"
	KindScaleBar Kind = "scale_bar"
	KindTextBox  Kind = "text_box"
)

// coreKinds are the protected kinds: exactly one element of each exists in
// every model and cannot be deleted.
var coreKinds = map[Kind]bool{
	KindMainMap:  true,
	KindTitle:    true,
	KindLegend:   true,
	KindOverview: true,
	KindLogoInfo: true,
}

// knownKinds is the full recognized set.
var knownKinds = map[Kind]bool{
	KindMainMap:  true,
	KindTitle:    true,
	KindLegend:   true,
	KindOverview: true,
	KindLogoInfo: true,
	KindCompass:  true,
	KindScaleBar: true,
	KindTextBox:  true,
}

// DrawOrder is the fixed z-order for rendering. Overlay kinds (compass,
// scale_bar) come after main_map so they sit visually on top of it. This is
// the only ordering constraint in the system, so it is an explicit list
// rather than map iteration order.
var DrawOrder = []Kind{
	KindMainMap,
	KindTitle,
	KindLegend,
	KindOverview,
	KindLogoInfo,
	KindTextBox,
	KindCompass,
	KindScaleBar,
}

// IsCore reports whether k is a protected core kind.
func IsCore(k Kind) bool { return coreKinds[k] }

// IsKnown reports whether k is a recognized kind.
func IsKnown(k Kind) bool { return knownKinds[k] }

// Rect is a position rectangle in normalized page coordinates (unit square,
// origin bottom-left). Values may legally fall outside [0,1]; such elements
// render partially or fully off-page. Width and height must be positive.
type Rect struct {
	Left   float64
	Bottom float64
	Width  float64
	Height float64
}

// Validate checks the positivity invariant.
func (r Rect) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"position width and height must be positive (got %.3f x %.3f)", r.Width, r.Height)
	}
	return nil
}

// Element is one named, positioned, styled panel descriptor.
type Element struct {
	Name      string
	Kind      Kind
	Position  Rect
	Visible   bool
	Protected bool
	// Style holds flat presentation overrides (font size, colors, border,
	// label text). Recognized keys depend on Kind; unrecognized keys are
	// preserved across save/load and ignored by renderers.
	Style map[string]any
}

// clone returns a deep copy of the element.
func (e *Element) clone() *Element {
	c := *e
	if e.Style != nil {
		c.Style = make(map[string]any, len(e.Style))
		for k, v := range e.Style {
			c.Style[k] = v
		}
	}
	return &c
}

// StyleString returns a string style value, or def if absent or not a string.
func (e *Element) StyleString(key, def string) string {
	if v, ok := e.Style[key].(string); ok {
		return v
	}
	return def
}

// StyleFloat returns a numeric style value, or def if absent or not numeric.
func (e *Element) StyleFloat(key string, def float64) float64 {
	switch v := e.Style[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// StyleBool returns a boolean style value, or def if absent or not boolean.
func (e *Element) StyleBool(key string, def bool) bool {
	if v, ok := e.Style[key].(bool); ok {
		return v
	}
	return def
}

// Model holds the full collection of element descriptors for one report.
// It is not safe for concurrent use; one editor session owns one Model.
type Model struct {
	elements map[string]*Element
}

// New returns an empty model. Most callers want Default instead.
func New() *Model {
	return &Model{elements: make(map[string]*Element)}
}

// Get returns a copy of the named element.
func (m *Model) Get(name string) (*Element, bool) {
	e, ok := m.elements[name]
	if !ok {
		return nil, false
	}
	return e.clone(), true
}

// Len returns the number of elements.
func (m *Model) Len() int { return len(m.elements) }

// Names returns all element names in lexical order.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.elements))
	for n := range m.elements {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Elements returns copies of all elements in draw order, with lexical name
// order within a kind. Elements of unrecognized kinds sort after known ones.
func (m *Model) Elements() []*Element {
	rank := make(map[Kind]int, len(DrawOrder))
	for i, k := range DrawOrder {
		rank[k] = i
	}
	out := make([]*Element, 0, len(m.elements))
	for _, e := range m.elements {
		out = append(out, e.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iKnown := rank[out[i].Kind]
		rj, jKnown := rank[out[j].Kind]
		if iKnown != jKnown {
			return iKnown
		}
		if iKnown && ri != rj {
			return ri < rj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Create adds a new element of the given kind with an auto-generated unique
// name "<kind>_<n>", using the smallest positive integer not yet in use for
// that kind. Core kinds cannot be created this way (they always exist).
func (m *Model) Create(kind Kind, pos Rect) (*Element, error) {
	if !IsKnown(kind) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown element kind %q", kind)
	}
	if IsCore(kind) {
		return nil, errors.New(errors.ErrCodeDuplicateName,
			"core element %q already exists", kind)
	}
	return m.CreateNamed(m.nextName(kind), kind, pos)
}

// CreateNamed adds a new element with an explicit name. It fails with
// DUPLICATE_NAME if the name is already in use.
func (m *Model) CreateNamed(name string, kind Kind, pos Rect) (*Element, error) {
	if err := errors.ValidateElementName(name); err != nil {
		return nil, err
	}
	if !IsKnown(kind) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown element kind %q", kind)
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	if _, exists := m.elements[name]; exists {
		return nil, errors.New(errors.ErrCodeDuplicateName, "element %q already exists", name)
	}
	e := &Element{
		Name:      name,
		Kind:      kind,
		Position:  pos,
		Visible:   true,
		Protected: IsCore(kind),
		Style:     defaultStyle(kind),
	}
	m.elements[name] = e
	return e.clone(), nil
}

// nextName generates "<kind>_<n>" with the smallest unused positive n.
func (m *Model) nextName(kind Kind) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s_%d", kind, n)
		if _, exists := m.elements[name]; !exists {
			return name
		}
	}
}

// Patch describes a partial update to an element. Nil fields are untouched.
// Style entries are merged key-by-key; a nil value removes the key.
type Patch struct {
	Position *Rect
	Visible  *bool
	Style    map[string]any
}

// Update merges the patch into the named element.
func (m *Model) Update(name string, patch Patch) error {
	e, ok := m.elements[name]
	if !ok {
		return errors.New(errors.ErrCodeElementNotFound, "no element named %q", name)
	}
	if patch.Position != nil {
		if err := patch.Position.Validate(); err != nil {
			return err
		}
		e.Position = *patch.Position
	}
	if patch.Visible != nil {
		e.Visible = *patch.Visible
	}
	for k, v := range patch.Style {
		if v == nil {
			delete(e.Style, k)
			continue
		}
		if e.Style == nil {
			e.Style = make(map[string]any)
		}
		e.Style[k] = v
	}
	return nil
}

// Delete removes a non-protected element. Deleting a core element fails with
// PROTECTED_ELEMENT and leaves the model unchanged.
func (m *Model) Delete(name string) error {
	e, ok := m.elements[name]
	if !ok {
		return errors.New(errors.ErrCodeElementNotFound, "no element named %q", name)
	}
	if e.Protected {
		return errors.New(errors.ErrCodeProtectedElement,
			"core element %q cannot be deleted", name)
	}
	delete(m.elements, name)
	return nil
}

// Reset restores the shipped default position and style for a single element.
// Only elements present in the shipped defaults can be reset.
func (m *Model) Reset(name string) error {
	if _, ok := m.elements[name]; !ok {
		return errors.New(errors.ErrCodeElementNotFound, "no element named %q", name)
	}
	def, ok := defaultElements()[name]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "element %q has no shipped default", name)
	}
	m.elements[name] = def.clone()
	return nil
}

// ResetAll reinitializes the model to the shipped defaults, dropping any
// dynamically added elements.
func (m *Model) ResetAll() {
	m.elements = make(map[string]*Element)
	for name, def := range defaultElements() {
		m.elements[name] = def.clone()
	}
}
