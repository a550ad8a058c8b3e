package commap

import (
	"context"
	"math"
)

const (
	// Permanent city labels: always at zoom >= 10, members-gated on the
	// two bands below, hover-only under zoom 6.
	cityLabelAlwaysZoom ZoomLevel = 10
	cityLabelLargeZoom  ZoomLevel = 8
	cityLabelHugeZoom   ZoomLevel = 6
	cityLabelLargeMin             = 30000
	cityLabelHugeMin              = 100000

	// Permanent place labels: always at zoom >= 14, members-gated at
	// [12,14), hover-only below.
	placeLabelAlwaysZoom ZoomLevel = 14
	placeLabelLargeZoom  ZoomLevel = 12
	placeLabelLargeMin             = 3000

	selectedRadiusBonus = 3
	hoverRadiusBonus    = 2
)

type MarkerKind int

const (
	CityMarker MarkerKind = iota + 1
	PlaceMarker
)

func (k MarkerKind) String() string {
	switch k {
	case CityMarker:
		return "city"
	case PlaceMarker:
		return "place"
	default:
		return "unknown marker kind"
	}
}

type LabelMode int

const (
	// LabelHover shows the community identifier only while the pointer
	// rests on the marker.
	LabelHover LabelMode = iota
	// LabelPermanent shows the display name at all times.
	LabelPermanent
)

// Marker is one derived entry of the marker plan. It has no lifecycle
// beyond a single render pass: every zoom or selection change rebuilds
// the full plan from scratch.
type Marker struct {
	Kind      MarkerKind
	CountryID string
	CityID    string
	PlaceID   string
	Name      string
	Community string
	Members   int
	Latitude  float64
	Longitude float64
	Radius    float64
	Style     Style
	Label     LabelMode
	Selected  bool
}

func DefaultCityMarkerStyle() Style {
	return Style{
		FillColor:    "#f03b20",
		FillOpacity:  0.8,
		StrokeColor:  "#ffffff",
		StrokeWeight: 1,
	}
}

func DefaultPlaceMarkerStyle() Style {
	return Style{
		FillColor:    "#31a354",
		FillOpacity:  0.8,
		StrokeColor:  "#ffffff",
		StrokeWeight: 1,
	}
}

func SelectedMarkerStyle() Style {
	return Style{
		FillColor:    "#fd8d3c",
		FillOpacity:  0.95,
		StrokeColor:  "#e6550d",
		StrokeWeight: 2,
	}
}

// MarkerPlanner decides, purely from zoom and selection, which city and
// place markers exist and how they are labeled. City markers appear at
// zoom >= 4, place markers at zoom >= 10.
type MarkerPlanner struct {
	dataset Dataset
}

func NewMarkerPlanner(dataset Dataset) *MarkerPlanner {
	return &MarkerPlanner{dataset: dataset}
}

// Plan produces the complete marker set for the given zoom and
// selection. The result replaces any previous plan entirely; consumers
// must clear old markers before adding these.
func (p *MarkerPlanner) Plan(ctx context.Context, zoom ZoomLevel, sel Selection) []Marker {
	if zoom < cityMarkerZoom {
		return nil
	}
	markers := make([]Marker, 0, 64)
	p.dataset.Each(ctx, func(c *Country) bool {
		for i := range c.Cities {
			city := &c.Cities[i]
			markers = append(markers, p.cityMarker(c, city, zoom, sel))
			if zoom < placeMarkerZoom {
				continue
			}
			for j := range city.Places {
				markers = append(markers, p.placeMarker(c, city, &city.Places[j], zoom, sel))
			}
		}
		return true
	})
	return markers
}

// cityMarker computes the selection-aware baseline of one city marker.
func (p *MarkerPlanner) cityMarker(c *Country, city *City, zoom ZoomLevel, sel Selection) Marker {
	m := Marker{
		Kind:      CityMarker,
		CountryID: c.ID,
		CityID:    city.ID,
		Name:      city.Name,
		Community: city.Community,
		Members:   city.Members,
		Latitude:  city.Latitude,
		Longitude: city.Longitude,
		Radius:    cityRadius(city.Members),
		Style:     DefaultCityMarkerStyle(),
		Label:     cityLabelMode(zoom, city.Members),
		Selected:  sel.City() == city,
	}
	if m.Selected {
		m.Radius += selectedRadiusBonus
		m.Style = SelectedMarkerStyle()
	}
	return m
}

func (p *MarkerPlanner) placeMarker(c *Country, city *City, place *Place, zoom ZoomLevel, sel Selection) Marker {
	m := Marker{
		Kind:      PlaceMarker,
		CountryID: c.ID,
		CityID:    city.ID,
		PlaceID:   place.ID,
		Name:      place.Name,
		Community: place.Community,
		Members:   place.Members,
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		Radius:    placeRadius(place.Members),
		Style:     DefaultPlaceMarkerStyle(),
		Label:     placeLabelMode(zoom, place.Members),
		Selected:  sel.Place() == place,
	}
	if m.Selected {
		m.Radius += selectedRadiusBonus
		m.Style = SelectedMarkerStyle()
	}
	return m
}

// HoverEmphasis is the transient pointer-over presentation of a marker.
// Hover exit reverts to the marker itself, which already carries the
// selection-aware baseline.
func HoverEmphasis(m Marker) Marker {
	m.Radius += hoverRadiusBonus
	m.Style.FillOpacity = 1
	return m
}

func cityRadius(members int) float64 {
	return math.Max(4, math.Log10(float64(members))*2)
}

func placeRadius(members int) float64 {
	return math.Max(10, (math.Log10(float64(members))-2)*4)
}

func cityLabelMode(zoom ZoomLevel, members int) LabelMode {
	switch {
	case zoom >= cityLabelAlwaysZoom:
		return LabelPermanent
	case zoom >= cityLabelLargeZoom:
		if members >= cityLabelLargeMin {
			return LabelPermanent
		}
	case zoom >= cityLabelHugeZoom:
		if members >= cityLabelHugeMin {
			return LabelPermanent
		}
	}
	return LabelHover
}

func placeLabelMode(zoom ZoomLevel, members int) LabelMode {
	switch {
	case zoom >= placeLabelAlwaysZoom:
		return LabelPermanent
	case zoom >= placeLabelLargeZoom:
		if members >= placeLabelLargeMin {
			return LabelPermanent
		}
	}
	return LabelHover
}
