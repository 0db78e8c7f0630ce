package geo

import (
	"os"

	"github.com/paulmach/orb/geojson"

	"github.com/sawitlabs/petamap/pkg/errors"
)

// ReadGeoJSON reads a GeoJSON feature collection into a layer.
func ReadGeoJSON(path string) (*Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "read %s", path)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "parse GeoJSON %s", path)
	}

	layer := &Layer{}
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		props := make(map[string]any, len(f.Properties))
		for k, v := range f.Properties {
			props[k] = v
		}
		layer.Features = append(layer.Features, &Feature{Geometry: f.Geometry, Props: props})
	}
	if layer.Empty() {
		return nil, errors.New(errors.ErrCodeDataSource, "%s contains no features", path)
	}
	return layer, nil
}
