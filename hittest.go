package commap

import (
	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"
	"github.com/tidwall/rtree"
	"github.com/uber/h3-go"

	"github.com/commap/commap/internal/geocell"
)

// hitCellLevel is the H3 resolution of the coarse prefilter cells.
// Resolution 2 cells are ~160km across, a reasonable grain for
// country-sized features.
const hitCellLevel = 2

// countryIndex resolves a pointer coordinate to the country whose
// boundary contains it. Features are bucketed into coarse H3 cells, each
// cell holding an rtree of feature bounding boxes; a candidate is
// confirmed by exact point-in-polygon intersection. Built once during
// geometry registration, read-only afterward.
type countryIndex struct {
	cells map[h3.H3Index]*hitCell
}

type hitCell struct {
	index *rtree.RTree
}

type hitEntry struct {
	countryID string
	boundary  geojson.Object
}

func newCountryIndex() *countryIndex {
	return &countryIndex{cells: make(map[h3.H3Index]*hitCell)}
}

func (x *countryIndex) add(countryID string, boundary geojson.Object) {
	if boundary == nil {
		return
	}
	entry := &hitEntry{countryID: countryID, boundary: boundary}
	bbox := boundary.Rect()
	for _, cellID := range geocell.Cover(boundary, hitCellLevel) {
		cell, ok := x.cells[cellID]
		if !ok {
			cell = &hitCell{index: &rtree.RTree{}}
			x.cells[cellID] = cell
		}
		cell.index.Insert(
			[2]float64{bbox.Min.X, bbox.Min.Y},
			[2]float64{bbox.Max.X, bbox.Max.Y},
			entry,
		)
	}
}

// lookup finds the country under the given coordinate. The query cell
// and its immediate neighbors are probed, because the bounding-box
// cover walk can skip a cell right at a boundary edge. Continuity
// correction can shift boundary longitudes beyond ±180, so the point is
// tested at lon, lon+360 and lon-360.
func (x *countryIndex) lookup(lon, lat float64) (string, bool) {
	for _, cellID := range h3.KRing(geocell.Cell(lat, lon, hitCellLevel), 1) {
		cell, ok := x.cells[cellID]
		if !ok {
			continue
		}
		for _, variant := range [3]float64{lon, lon + 360, lon - 360} {
			if id, found := cell.search(variant, lat); found {
				return id, true
			}
		}
	}
	return "", false
}

func (c *hitCell) search(lon, lat float64) (countryID string, found bool) {
	point := geojson.NewPoint(geometry.Point{X: lon, Y: lat})
	c.index.Search(
		[2]float64{lon, lat},
		[2]float64{lon, lat},
		func(_, _ [2]float64, value interface{}) bool {
			entry, ok := value.(*hitEntry)
			if !ok {
				return true
			}
			if entry.boundary.Intersects(point) {
				countryID = entry.countryID
				found = true
				return false
			}
			return true
		},
	)
	return
}
