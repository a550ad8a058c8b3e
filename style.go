package commap

// Style is the visual state of a drawable or marker. Colors are CSS hex
// strings understood by the rendering surface.
type Style struct {
	FillColor    string  `json:"fillColor"`
	FillOpacity  float64 `json:"fillOpacity"`
	StrokeColor  string  `json:"strokeColor"`
	StrokeWeight float64 `json:"strokeWeight"`
}

func DefaultCountryStyle() Style {
	return Style{
		FillColor:    "#6baed6",
		FillOpacity:  0.2,
		StrokeColor:  "#3182bd",
		StrokeWeight: 1,
	}
}

func HighlightedCountryStyle() Style {
	return Style{
		FillColor:    "#fd8d3c",
		FillOpacity:  0.55,
		StrokeColor:  "#e6550d",
		StrokeWeight: 3,
	}
}

func HoverCountryStyle() Style {
	s := DefaultCountryStyle()
	s.FillOpacity = 0.4
	return s
}

// TransparentStyle is applied to boundary features whose id has no
// dataset entry. They stay on the map but are invisible and never
// interactive.
func TransparentStyle() Style {
	return Style{FillOpacity: 0, StrokeWeight: 0}
}

// Drawable is one owned boundary primitive on the rendering surface,
// associated 1:1 with a country identifier.
type Drawable interface {
	SetStyle(style Style)
}

// LayerRegistry maps country identifiers to their drawable handles. It is
// populated once per geometry load and read-only afterward; selection
// changes mutate styles through the handles, never the mapping itself.
type LayerRegistry struct {
	layers map[string]Drawable
}

func NewLayerRegistry() *LayerRegistry {
	return &LayerRegistry{layers: make(map[string]Drawable)}
}

func (r *LayerRegistry) Register(countryID string, d Drawable) {
	r.layers[countryID] = d
}

func (r *LayerRegistry) Lookup(countryID string) (Drawable, bool) {
	d, ok := r.layers[countryID]
	return d, ok
}

func (r *LayerRegistry) Len() int {
	return len(r.layers)
}

func (r *LayerRegistry) Reset() {
	r.layers = make(map[string]Drawable)
}

// StyleSynchronizer keeps at most one drawable highlighted. On every
// change it restores the previous drawable to the default style before
// applying the highlight, so no observation point sees two highlighted
// drawables. Owned by the event loop; not safe for concurrent use.
type StyleSynchronizer struct {
	registry    *LayerRegistry
	highlighted string
}

func NewStyleSynchronizer(registry *LayerRegistry) *StyleSynchronizer {
	return &StyleSynchronizer{registry: registry}
}

// Highlight switches the highlighted drawable to countryID. Restoring
// the prior style happens first. Highlighting the already-highlighted
// country is a no-op.
func (s *StyleSynchronizer) Highlight(countryID string) {
	if s.highlighted == countryID {
		return
	}
	s.restore()
	d, ok := s.registry.Lookup(countryID)
	if !ok {
		return
	}
	s.highlighted = countryID
	d.SetStyle(HighlightedCountryStyle())
}

// Clear restores the highlighted drawable to the default style and
// forgets the reference.
func (s *StyleSynchronizer) Clear() {
	s.restore()
}

func (s *StyleSynchronizer) Highlighted() string {
	return s.highlighted
}

// Hover applies or removes the hover emphasis on a country drawable. The
// currently highlighted drawable is never touched, so a hover exit can
// not overwrite the selection style.
func (s *StyleSynchronizer) Hover(countryID string, hovered bool) {
	if countryID == s.highlighted {
		return
	}
	d, ok := s.registry.Lookup(countryID)
	if !ok {
		return
	}
	if hovered {
		d.SetStyle(HoverCountryStyle())
	} else {
		d.SetStyle(DefaultCountryStyle())
	}
}

func (s *StyleSynchronizer) restore() {
	if len(s.highlighted) == 0 {
		return
	}
	if d, ok := s.registry.Lookup(s.highlighted); ok {
		d.SetStyle(DefaultCountryStyle())
	}
	s.highlighted = ""
}
