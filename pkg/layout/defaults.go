package layout

// Shipped default layout. Positions follow the A3-landscape surveyor layout:
// the main map fills the left 60% of the page and the info boxes share a
// fixed-width column on the right. The compass and scale bar are overlay
// elements anchored inside the main map frame.

// Default returns a model initialized to the shipped defaults.
func Default() *Model {
	m := New()
	m.ResetAll()
	return m
}

// defaultStyle returns the initial style map for a freshly created element.
func defaultStyle(kind Kind) map[string]any {
	switch kind {
	case KindCompass:
		return map[string]any{"style": "image"}
	case KindScaleBar:
		return map[string]any{"units": "auto"}
	case KindTextBox:
		return map[string]any{
			"text":             "New Text Box",
			"font_size":        12.0,
			"text_color":       "black",
			"background_color": "white",
			"border":           true,
			"border_width":     1.0,
		}
	default:
		return map[string]any{}
	}
}

// defaultElements builds the shipped default element set. A fresh map is
// returned on every call so callers can mutate their copy freely.
func defaultElements() map[string]*Element {
	defs := []Element{
		{
			Name:     string(KindMainMap),
			Kind:     KindMainMap,
			Position: Rect{Left: 0.05, Bottom: 0.05, Width: 0.60, Height: 0.93},
			Style: map[string]any{
				"border":       true,
				"border_color": "black",
				"border_width": 2.0,
			},
		},
		{
			Name:     string(KindTitle),
			Kind:     KindTitle,
			Position: Rect{Left: 0.66, Bottom: 0.88, Width: 0.32, Height: 0.10},
			Style: map[string]any{
				"font_size":        14.0,
				"text_color":       "black",
				"background_color": "white",
				"border":           true,
			},
		},
		{
			Name:     string(KindOverview),
			Kind:     KindOverview,
			Position: Rect{Left: 0.66, Bottom: 0.58, Width: 0.32, Height: 0.28},
			Style: map[string]any{
				"title":            "LOKASI DALAM BELITUNG",
				"title_font_size":  10.0,
				"background_color": "white",
				"border":           true,
			},
		},
		{
			Name:     string(KindLegend),
			Kind:     KindLegend,
			Position: Rect{Left: 0.66, Bottom: 0.38, Width: 0.32, Height: 0.18},
			Style: map[string]any{
				"title":            "LEGENDA",
				"title_font_size":  12.0,
				"item_font_size":   10.0,
				"background_color": "white",
				"border":           true,
			},
		},
		{
			Name:     string(KindLogoInfo),
			Kind:     KindLogoInfo,
			Position: Rect{Left: 0.66, Bottom: 0.02, Width: 0.32, Height: 0.14},
			Style: map[string]any{
				"font_size":        8.0,
				"background_color": "white",
				"border":           true,
			},
		},
		// Overlay elements. Positions are normalized page coordinates like
		// everything else; the defaults sit inside the main map frame.
		{
			Name:     "compass_1",
			Kind:     KindCompass,
			Position: Rect{Left: 0.54, Bottom: 0.84, Width: 0.09, Height: 0.12},
			Style:    map[string]any{"style": "image"},
		},
		{
			Name:     "scale_bar_1",
			Kind:     KindScaleBar,
			Position: Rect{Left: 0.07, Bottom: 0.07, Width: 0.16, Height: 0.08},
			Style:    map[string]any{"units": "auto"},
		},
	}

	out := make(map[string]*Element, len(defs))
	for i := range defs {
		e := defs[i]
		e.Visible = true
		e.Protected = IsCore(e.Kind)
		out[e.Name] = &e
	}
	return out
}
