// Package geo loads the geospatial inputs for map reports.
//
// Features are read from ESRI shapefiles or GeoJSON feature collections into
// orb geometries with flat attribute maps, then normalized to WGS84 degrees
// (see crs.go). The renderer only ever sees WGS84 layers.
package geo

import (
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Feature is one geometry with its attributes.
type Feature struct {
	Geometry orb.Geometry
	Props    map[string]any
}

// Attr returns the string form of an attribute, trimmed. Missing attributes
// return "".
func (f *Feature) Attr(name string) string {
	v, ok := f.Props[name]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// LabelPoint returns a representative point for placing a label: the
// area-weighted centroid for polygonal geometries, the geometry centroid
// otherwise.
func (f *Feature) LabelPoint() orb.Point {
	c, _ := planar.CentroidArea(f.Geometry)
	return c
}

// Layer is an ordered collection of features from one source.
type Layer struct {
	Features []*Feature
	// Projected records whether the source coordinates looked projected
	// before normalization (see DetectProjected).
	Projected bool
}

// Bound returns the union bound of all feature geometries.
func (l *Layer) Bound() orb.Bound {
	var b orb.Bound
	for i, f := range l.Features {
		if i == 0 {
			b = f.Geometry.Bound()
			continue
		}
		b = b.Union(f.Geometry.Bound())
	}
	return b
}

// Empty reports whether the layer has no features.
func (l *Layer) Empty() bool { return l == nil || len(l.Features) == 0 }

// Filter returns a new layer keeping only features whose attribute matches
// one of the given values. An empty value list keeps everything.
func (l *Layer) Filter(attr string, values []string) *Layer {
	if len(values) == 0 {
		return l
	}
	want := make(map[string]bool, len(values))
	for _, v := range values {
		want[strings.TrimSpace(v)] = true
	}
	out := &Layer{Projected: l.Projected}
	for _, f := range l.Features {
		if want[f.Attr(attr)] {
			out.Features = append(out.Features, f)
		}
	}
	return out
}

// DistinctValues returns the sorted distinct non-empty values of an
// attribute across the layer.
func (l *Layer) DistinctValues(attr string) []string {
	seen := make(map[string]bool)
	for _, f := range l.Features {
		if v := f.Attr(attr); v != "" {
			seen[v] = true
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
