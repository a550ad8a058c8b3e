package geocell

import (
	"github.com/tidwall/geojson"
	"github.com/uber/h3-go"
)

// Approximate H3 cell edge length per resolution, in kilometers.
const (
	level0km = 1107
	level1km = 418
	level2km = 158
	level3km = 59
	level4km = 22
	level5km = 8
	level6km = 3
)

var edges = map[int]float64{
	0: level0km,
	1: level1km,
	2: level2km,
	3: level3km,
	4: level4km,
	5: level5km,
	6: level6km,
}

const kmPerDegree = 111.0

// Cover returns the H3 cells of the given resolution overlapping the
// object's bounding box. The cover over-approximates: it walks the box
// at one cell-edge steps, so a cell may be returned that the geometry
// itself never touches. That is fine for the prefilter use case; exact
// containment is confirmed by the caller. Longitudes outside [-180, 180]
// (continuity-corrected geometry) are wrapped before indexing.
func Cover(o geojson.Object, level int) []h3.H3Index {
	if o == nil {
		return nil
	}
	level = clampLevel(level)
	bbox := o.Rect()
	step := edges[level] / kmPerDegree
	unique := make(map[h3.H3Index]struct{})
	for lat := bbox.Min.Y; ; lat += step {
		if lat > bbox.Max.Y {
			lat = bbox.Max.Y
		}
		for lon := bbox.Min.X; ; lon += step {
			if lon > bbox.Max.X {
				lon = bbox.Max.X
			}
			unique[Cell(lat, lon, level)] = struct{}{}
			if lon == bbox.Max.X {
				break
			}
		}
		if lat == bbox.Max.Y {
			break
		}
	}
	cells := make([]h3.H3Index, 0, len(unique))
	for cell := range unique {
		cells = append(cells, cell)
	}
	return cells
}

// Cell indexes a coordinate at the given resolution.
func Cell(lat, lon float64, level int) h3.H3Index {
	return h3.FromGeo(h3.GeoCoord{
		Latitude:  lat,
		Longitude: NormalizeLon(lon),
	}, clampLevel(level))
}

// NormalizeLon wraps a longitude back into [-180, 180].
func NormalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 6 {
		return 6
	}
	return level
}
