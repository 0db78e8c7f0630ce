package geo

import (
	"math"
	"reflect"
	"testing"

	"github.com/paulmach/orb"
)

func square(x, y, size float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y},
	}}
}

func testLayer() *Layer {
	return &Layer{Features: []*Feature{
		{Geometry: square(107.0, -3.0, 0.1), Props: map[string]any{"SUB_DIVISI": "SUB DIVISI AIR RAYA", "BLOK": "A-01"}},
		{Geometry: square(107.2, -3.0, 0.1), Props: map[string]any{"SUB_DIVISI": "SUB DIVISI AIR CENDONG", "BLOK": "B-02"}},
		{Geometry: square(107.4, -3.0, 0.1), Props: map[string]any{"SUB_DIVISI": "SUB DIVISI AIR RAYA", "BLOK": "A-03"}},
		{Geometry: square(107.6, -3.0, 0.1), Props: map[string]any{"SUB_DIVISI": "  INCLAVE  ", "BLOK": ""}},
	}}
}

func TestAttrTrimsWhitespace(t *testing.T) {
	l := testLayer()
	if got := l.Features[3].Attr("SUB_DIVISI"); got != "INCLAVE" {
		t.Errorf("Attr = %q, want INCLAVE", got)
	}
	if got := l.Features[0].Attr("MISSING"); got != "" {
		t.Errorf("missing attr = %q, want empty", got)
	}
}

func TestDistinctValuesSortedUnique(t *testing.T) {
	got := testLayer().DistinctValues("SUB_DIVISI")
	want := []string{"INCLAVE", "SUB DIVISI AIR CENDONG", "SUB DIVISI AIR RAYA"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DistinctValues = %v, want %v", got, want)
	}
}

func TestFilterBySubdivision(t *testing.T) {
	l := testLayer()

	out := l.Filter("SUB_DIVISI", []string{"SUB DIVISI AIR RAYA"})
	if len(out.Features) != 2 {
		t.Fatalf("filtered features = %d, want 2", len(out.Features))
	}
	for _, f := range out.Features {
		if f.Attr("SUB_DIVISI") != "SUB DIVISI AIR RAYA" {
			t.Errorf("unexpected feature %q", f.Attr("SUB_DIVISI"))
		}
	}

	// Empty filter keeps everything.
	if all := l.Filter("SUB_DIVISI", nil); len(all.Features) != len(l.Features) {
		t.Error("empty filter must keep all features")
	}
}

func TestLayerBoundUnion(t *testing.T) {
	// The corners come from float sums (107.6 + 0.1), so compare within an
	// epsilon rather than exactly.
	const eps = 1e-9
	near := func(got, want float64) bool {
		return math.Abs(got-want) < eps
	}

	b := testLayer().Bound()
	if !near(b.Min[0], 107.0) || !near(b.Max[0], 107.7) {
		t.Errorf("bound x = [%v, %v], want [107.0, 107.7]", b.Min[0], b.Max[0])
	}
	if !near(b.Min[1], -3.0) || !near(b.Max[1], -2.9) {
		t.Errorf("bound y = [%v, %v], want [-3.0, -2.9]", b.Min[1], b.Max[1])
	}
}

func TestLabelPointInsideSquare(t *testing.T) {
	f := &Feature{Geometry: square(10, 20, 2)}
	p := f.LabelPoint()
	if p[0] != 11 || p[1] != 21 {
		t.Errorf("LabelPoint = %v, want (11, 21)", p)
	}
}
