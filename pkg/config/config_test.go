package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawitlabs/petamap/pkg/errors"
)

const sampleConfig = `
title = "PETA KEBUN 1 B\nPT. REBINMAS JAYA"

[company]
name = "PT. REBINMAS JAYA"
program = "Program: IT Rebinmas | Data: Surveyor RMJ"

[assets]
logo = "assets/rebinmas_logo.jpg"
compass = "assets/kompas.webp"

[data]
overview = "data/batas_desa_belitung.shp"
subdivision_attr = "SUB_DIVISI"
utm_zone = 48

[output]
dpi = 150

[colors]
"SUB DIVISI AIR RAYA" = "#FF0000"
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petamap.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "PETA KEBUN 1 B\nPT. REBINMAS JAYA", cfg.Title)
	assert.Equal(t, "PT. REBINMAS JAYA", cfg.Company.Name)
	assert.Equal(t, "assets/kompas.webp", cfg.Assets.Compass)
	assert.Equal(t, 48, cfg.Data.UTMZone)
	assert.Equal(t, 150, cfg.Output.DPI)
	assert.Equal(t, "#FF0000", cfg.Colors["SUB DIVISI AIR RAYA"])
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Output.DPI, "default dpi")
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name string
		path string
	}{
		{"malformed toml", write("bad.toml", "title = [")},
		{"missing file", filepath.Join(dir, "nope.toml")},
		{"negative dpi", write("neg.toml", "[output]\ndpi = -1\n")},
		{"zone out of range", write("zone.toml", "[data]\nutm_zone = 99\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig),
				"expected INVALID_CONFIG, got %v", err)
		})
	}
}
