package geo

import (
	"path/filepath"
	"strings"

	"github.com/sawitlabs/petamap/pkg/errors"
)

// Read loads a layer from path, dispatching on the file extension, and
// normalizes it to WGS84. zone overrides the UTM zone assumed for projected
// inputs; pass 0 for the default.
func Read(path string, zone int) (*Layer, error) {
	var (
		layer *Layer
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		layer, err = ReadShapefile(path)
	case ".json", ".geojson":
		layer, err = ReadGeoJSON(path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported input format %q (want .shp, .json or .geojson)", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return NormalizeLayer(layer, zone), nil
}
