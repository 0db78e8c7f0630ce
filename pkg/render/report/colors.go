package report

import "hash/fnv"

// Sub-division fill colors. The named entries are the plantation's house
// palette; anything else gets a stable color from the fallback palette so a
// sub-division keeps its color across renders.
var defaultColors = map[string]string{
	"SUB DIVISI AIR RAYA":    "#FFB6C1",
	"SUB DIVISI AIR CENDONG": "#98FB98",
	"SUB DIVISI AIR KANDIS":  "#F4A460",
	"IUP TIMAH":              "#FF8C00",
	"INCLAVE":                "#9370DB",
}

var fallbackPalette = []string{
	"#87CEEB", "#DDA0DD", "#F0E68C", "#FFA07A", "#20B2AA",
	"#B0C4DE", "#FFDAB9", "#98D8C8", "#E6A8D7", "#C5E384",
}

// ColorMap resolves sub-division names to fill colors.
type ColorMap struct {
	colors map[string]string
}

// NewColorMap builds a color map from the defaults with optional overrides.
func NewColorMap(overrides map[string]string) *ColorMap {
	colors := make(map[string]string, len(defaultColors)+len(overrides))
	for k, v := range defaultColors {
		colors[k] = v
	}
	for k, v := range overrides {
		colors[k] = v
	}
	return &ColorMap{colors: colors}
}

// For returns the fill color for a sub-division name. Unknown names hash
// into the fallback palette, so the same name always gets the same color.
func (c *ColorMap) For(name string) string {
	if col, ok := c.colors[name]; ok {
		return col
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return fallbackPalette[h.Sum32()%uint32(len(fallbackPalette))]
}
