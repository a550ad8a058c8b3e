package commap

import (
	"context"

	"github.com/tidwall/geojson"
)

func testCountries() []Country {
	return []Country{
		{
			ID: "840", Name: "United States", Community: "c/usa", Members: 520000,
			Latitude: 39.8, Longitude: -98.6,
			Cities: []City{
				{
					ID: "nyc", Name: "New York", Community: "c/nyc", Members: 250000,
					Latitude: 40.71, Longitude: -74.0,
					Places: []Place{
						{ID: "manhattan", Name: "Manhattan", Community: "c/manhattan", Members: 8000, Latitude: 40.78, Longitude: -73.97},
						{ID: "redhook", Name: "Red Hook", Community: "c/redhook", Members: 900, Latitude: 40.67, Longitude: -74.01},
					},
				},
				{ID: "chicago", Name: "Chicago", Community: "c/chicago", Members: 40000, Latitude: 41.88, Longitude: -87.63},
				{ID: "boise", Name: "Boise", Community: "c/boise", Members: 5000, Latitude: 43.62, Longitude: -116.2},
			},
		},
		{
			ID: "242", Name: "Fiji", Community: "c/fiji", Members: 1200,
			Latitude: -17.8, Longitude: 178.0,
		},
		{
			ID: "004", Name: "Afghanistan", Community: "c/afghanistan", Members: 3400,
			Latitude: 33.9, Longitude: 67.7,
		},
	}
}

func testDataset() Dataset {
	ds, err := NewDataset(testCountries())
	if err != nil {
		panic(err)
	}
	return ds
}

// testGeometry carries one plain polygon, one polygon crossing the
// antimeridian, and one feature without a dataset entry.
const testGeometry = `{"type":"FeatureCollection","features":[
{"type":"Feature","id":"840","properties":{"name":"United States"},"geometry":{"type":"Polygon","coordinates":[[[-125,24],[-66,24],[-66,49],[-125,49],[-125,24]]]}},
{"type":"Feature","id":"242","properties":{"name":"Fiji"},"geometry":{"type":"Polygon","coordinates":[[[176,-21],[-178,-21],[-178,-12],[176,-12],[176,-21]]]}},
{"type":"Feature","id":"999","properties":{"name":"Atlantis"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}}
]}`

type fakeDrawable struct {
	countryID string
	styles    []Style
}

func (d *fakeDrawable) SetStyle(style Style) {
	d.styles = append(d.styles, style)
}

func (d *fakeDrawable) last() Style {
	if len(d.styles) == 0 {
		return Style{}
	}
	return d.styles[len(d.styles)-1]
}

type fakeRenderer struct {
	drawables map[string]*fakeDrawable
	added     []string
	plans     [][]Marker
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{drawables: make(map[string]*fakeDrawable)}
}

func (r *fakeRenderer) AddBoundary(countryID string, _ geojson.Object, style Style) Drawable {
	d := &fakeDrawable{countryID: countryID}
	d.SetStyle(style)
	r.drawables[countryID] = d
	r.added = append(r.added, countryID)
	return d
}

func (r *fakeRenderer) ReplaceMarkers(markers []Marker) {
	r.plans = append(r.plans, markers)
}

func (r *fakeRenderer) lastPlan() []Marker {
	if len(r.plans) == 0 {
		return nil
	}
	return r.plans[len(r.plans)-1]
}

type fakeSource struct {
	raw string
	err error
}

func (s *fakeSource) Fetch(_ context.Context) (*geojson.FeatureCollection, error) {
	if s.err != nil {
		return nil, s.err
	}
	return ParseFeatureCollection(s.raw)
}
