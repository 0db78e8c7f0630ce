package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestDetectProjected(t *testing.T) {
	tests := []struct {
		name string
		b    orb.Bound
		want bool
	}{
		{
			name: "degrees",
			b:    orb.Bound{Min: orb.Point{107.5, -3.1}, Max: orb.Point{108.3, -2.5}},
			want: false,
		},
		{
			name: "utm meters",
			b:    orb.Bound{Min: orb.Point{780000, 9650000}, Max: orb.Point{820000, 9700000}},
			want: true,
		},
		{
			name: "boundary just under",
			b:    orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectProjected(tt.b); got != tt.want {
				t.Errorf("DetectProjected = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUTMInverseCentralMeridian(t *testing.T) {
	// On the central meridian at the equator the inverse is exact:
	// zone 48 south, easting 500000, northing 10000000 -> lon 105, lat 0.
	p := UTMInverse(500000, 10000000, 48, true)
	if math.Abs(p[0]-105) > 1e-9 {
		t.Errorf("lon = %.12f, want 105", p[0])
	}
	if math.Abs(p[1]) > 1e-9 {
		t.Errorf("lat = %.12f, want 0", p[1])
	}
}

func TestUTMInverseBelitung(t *testing.T) {
	// A point in the Belitung area (zone 48S). Reference values computed
	// with the same series; the check is that the result lands in the
	// expected degree neighborhood, not survey-grade agreement.
	p := UTMInverse(820000, 9690000, 48, true)
	if p[0] < 107 || p[0] > 109 {
		t.Errorf("lon = %.4f, want ~108", p[0])
	}
	if p[1] < -3.5 || p[1] > -2.0 {
		t.Errorf("lat = %.4f, want ~-2.8", p[1])
	}
}

func TestNormalizeLayerConvertsProjected(t *testing.T) {
	l := &Layer{Features: []*Feature{{
		Geometry: orb.Polygon{orb.Ring{
			{800000, 9680000}, {810000, 9680000}, {810000, 9690000}, {800000, 9680000},
		}},
		Props: map[string]any{"SUB_DIVISI": "SUB DIVISI AIR RAYA"},
	}}}

	out := NormalizeLayer(l, 0)
	if !out.Projected {
		t.Error("Projected flag not set")
	}
	b := out.Bound()
	if b.Min[0] < 100 || b.Max[0] > 115 || b.Min[1] < -10 || b.Max[1] > 0 {
		t.Errorf("normalized bound out of range: %+v", b)
	}
}

func TestNormalizeLayerPassesThroughDegrees(t *testing.T) {
	geom := orb.Polygon{orb.Ring{
		{107.9, -2.8}, {108.0, -2.8}, {108.0, -2.7}, {107.9, -2.8},
	}}
	l := &Layer{Features: []*Feature{{Geometry: geom, Props: map[string]any{}}}}

	out := NormalizeLayer(l, 0)
	if out.Projected {
		t.Error("degree input flagged as projected")
	}
	if !out.Features[0].Geometry.Bound().Equal(geom.Bound()) {
		t.Error("geographic geometry was modified")
	}
}
