package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// CRS handling. Inputs either carry WGS84 degrees already or projected UTM
// meters; shapefiles in this domain rarely ship a usable .prj, so detection
// falls back to coordinate magnitude. Projected inputs are assumed UTM zone
// 48S (EPSG:32748, Belitung) unless the config overrides the zone.

// DefaultUTMZone is the zone assumed for projected inputs without an
// explicit override.
const DefaultUTMZone = 48

// WGS84 ellipsoid.
const (
	wgs84A = 6378137.0
	wgs84F = 1 / 298.257223563
)

// UTM projection constants.
const (
	utmScale        = 0.9996
	utmFalseEasting = 500000.0
	utmFalseNorth   = 10000000.0
)

// DetectProjected reports whether a bound looks like projected meters rather
// than geographic degrees. Degrees never exceed 180 in magnitude; UTM
// coordinates are in the hundreds of thousands.
func DetectProjected(b orb.Bound) bool {
	for _, v := range []float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]} {
		if math.Abs(v) > 1000 {
			return true
		}
	}
	return false
}

// UTMInverse converts a UTM easting/northing in the given zone to WGS84
// lon/lat degrees using the inverse transverse Mercator series (Snyder,
// Map Projections: A Working Manual, eq. 8-17..8-25).
func UTMInverse(easting, northing float64, zone int, south bool) orb.Point {
	e2 := wgs84F * (2 - wgs84F)
	ep2 := e2 / (1 - e2)

	x := easting - utmFalseEasting
	y := northing
	if south {
		y -= utmFalseNorth
	}

	m := y / utmScale
	mu := m / (wgs84A * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)

	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := wgs84A / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	r1 := wgs84A * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	d := x / (n1 * utmScale)

	lat := phi1 - (n1*tanPhi1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*math.Pow(d, 4)/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*math.Pow(d, 6)/720)

	lon0 := float64(zone*6-183) * math.Pi / 180
	lon := lon0 + (d-
		(1+2*t1+c1)*math.Pow(d, 3)/6+
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*math.Pow(d, 5)/120)/cosPhi1

	return orb.Point{lon * 180 / math.Pi, lat * 180 / math.Pi}
}

// NormalizeLayer converts a layer detected as projected to WGS84 degrees in
// place. Already-geographic layers pass through untouched.
func NormalizeLayer(l *Layer, zone int) *Layer {
	if l.Empty() {
		return l
	}
	if !DetectProjected(l.Bound()) {
		return l
	}
	l.Projected = true
	if zone <= 0 {
		zone = DefaultUTMZone
	}
	for _, f := range l.Features {
		f.Geometry = transformGeometry(f.Geometry, func(p orb.Point) orb.Point {
			return UTMInverse(p[0], p[1], zone, true)
		})
	}
	return l
}

// transformGeometry applies fn to every point of a geometry.
func transformGeometry(g orb.Geometry, fn func(orb.Point) orb.Point) orb.Geometry {
	switch g := g.(type) {
	case orb.Point:
		return fn(g)
	case orb.MultiPoint:
		out := make(orb.MultiPoint, len(g))
		for i, p := range g {
			out[i] = fn(p)
		}
		return out
	case orb.LineString:
		out := make(orb.LineString, len(g))
		for i, p := range g {
			out[i] = fn(p)
		}
		return out
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(g))
		for i, ls := range g {
			out[i] = transformGeometry(ls, fn).(orb.LineString)
		}
		return out
	case orb.Ring:
		out := make(orb.Ring, len(g))
		for i, p := range g {
			out[i] = fn(p)
		}
		return out
	case orb.Polygon:
		out := make(orb.Polygon, len(g))
		for i, r := range g {
			out[i] = transformGeometry(r, fn).(orb.Ring)
		}
		return out
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, p := range g {
			out[i] = transformGeometry(p, fn).(orb.Polygon)
		}
		return out
	case orb.Collection:
		out := make(orb.Collection, len(g))
		for i, c := range g {
			out[i] = transformGeometry(c, fn)
		}
		return out
	}
	return g
}
