package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sawitlabs/petamap/pkg/errors"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"SUB_DIVISI": "SUB DIVISI AIR CENDONG", "BLOK": "B-12"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[107.9, -2.8], [108.0, -2.8], [108.0, -2.7], [107.9, -2.7], [107.9, -2.8]]]
      }
    }
  ]
}`

func TestReadGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.geojson")
	if err := os.WriteFile(path, []byte(sampleGeoJSON), 0644); err != nil {
		t.Fatal(err)
	}

	layer, err := Read(path, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(layer.Features) != 1 {
		t.Fatalf("features = %d, want 1", len(layer.Features))
	}
	if got := layer.Features[0].Attr("BLOK"); got != "B-12" {
		t.Errorf("BLOK = %q", got)
	}
	if layer.Projected {
		t.Error("degree GeoJSON flagged as projected")
	}
}

func TestReadGeoJSONInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.geojson")
	if err := os.WriteFile(path, []byte("{not geojson"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadGeoJSON(path)
	if !errors.Is(err, errors.ErrCodeDataSource) {
		t.Fatalf("expected DATA_SOURCE, got %v", err)
	}
}
