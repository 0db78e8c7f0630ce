package geo

import (
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"github.com/sawitlabs/petamap/pkg/errors"
)

// ReadShapefile reads an ESRI shapefile (.shp plus its .dbf sidecar) into a
// layer. All DBF attributes are carried as trimmed strings; geometries are
// converted to orb types with polygon rings grouped by winding (shapefile
// outer rings are clockwise, holes counter-clockwise).
func ReadShapefile(path string) (*Layer, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "open shapefile %s", path)
	}
	defer r.Close()

	fields := r.Fields()
	layer := &Layer{}

	for r.Next() {
		idx, shape := r.Shape()
		geom, err := shapeGeometry(shape)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataSource, err,
				"shapefile %s: record %d", path, idx)
		}
		if geom == nil {
			continue
		}
		props := make(map[string]any, len(fields))
		for j := range fields {
			name := strings.TrimRight(fields[j].String(), "\x00")
			props[name] = strings.TrimSpace(r.ReadAttribute(idx, j))
		}
		layer.Features = append(layer.Features, &Feature{Geometry: geom, Props: props})
	}
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "read shapefile %s", path)
	}
	if layer.Empty() {
		return nil, errors.New(errors.ErrCodeDataSource, "shapefile %s contains no features", path)
	}
	return layer, nil
}

// shapeGeometry converts one shapefile record to an orb geometry. Null
// shapes return nil with no error.
func shapeGeometry(s shp.Shape) (orb.Geometry, error) {
	switch s := s.(type) {
	case *shp.Null:
		return nil, nil
	case *shp.Point:
		return orb.Point{s.X, s.Y}, nil
	case *shp.PointZ:
		return orb.Point{s.X, s.Y}, nil
	case *shp.PolyLine:
		return polyLineGeometry(s.Parts, s.Points), nil
	case *shp.PolyLineZ:
		return polyLineGeometry(s.Parts, s.Points), nil
	case *shp.Polygon:
		return polygonGeometry(s.Parts, s.Points), nil
	case *shp.PolygonZ:
		return polygonGeometry(s.Parts, s.Points), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported shape type %T", s)
	}
}

func polyLineGeometry(parts []int32, points []shp.Point) orb.Geometry {
	lines := make(orb.MultiLineString, 0, len(parts))
	for _, pts := range splitParts(parts, points) {
		ls := make(orb.LineString, len(pts))
		for i, p := range pts {
			ls[i] = orb.Point{p.X, p.Y}
		}
		lines = append(lines, ls)
	}
	if len(lines) == 1 {
		return lines[0]
	}
	return lines
}

// polygonGeometry groups rings into polygons: each clockwise ring starts a
// new polygon, counter-clockwise rings are holes of the preceding one.
func polygonGeometry(parts []int32, points []shp.Point) orb.Geometry {
	var polys orb.MultiPolygon
	for _, pts := range splitParts(parts, points) {
		ring := make(orb.Ring, len(pts))
		for i, p := range pts {
			ring[i] = orb.Point{p.X, p.Y}
		}
		if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}
		if signedArea(ring) <= 0 || len(polys) == 0 {
			// Clockwise: a new outer ring. Files with a leading hole ring
			// are malformed; treat it as an outer ring rather than dropping it.
			polys = append(polys, orb.Polygon{ring})
		} else {
			polys[len(polys)-1] = append(polys[len(polys)-1], ring)
		}
	}
	if len(polys) == 1 {
		return polys[0]
	}
	return polys
}

// splitParts slices the flat point array into per-part runs.
func splitParts(parts []int32, points []shp.Point) [][]shp.Point {
	if len(parts) == 0 {
		if len(points) == 0 {
			return nil
		}
		return [][]shp.Point{points}
	}
	out := make([][]shp.Point, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || int(start) > len(points) || end < start {
			continue
		}
		out = append(out, points[start:end])
	}
	return out
}

// signedArea computes twice the signed area of a ring. Positive means
// counter-clockwise.
func signedArea(r orb.Ring) float64 {
	var sum float64
	for i := 0; i < len(r)-1; i++ {
		sum += r[i][0]*r[i+1][1] - r[i+1][0]*r[i][1]
	}
	return sum
}
