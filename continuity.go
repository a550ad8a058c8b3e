package commap

import (
	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"
)

// CorrectContinuity rewrites boundary geometry so that no edge jumps
// across the antimeridian. A ring crossing the ±180 line is extended
// monotonically (longitudes may leave [-180, 180]) instead of wrapping,
// which lets a renderer draw the short path rather than a full-width
// artifact. Applied once to the fetched feature collection before any
// drawable registration.
//
// Polygon and MultiPolygon geometry is corrected; Feature,
// FeatureCollection and GeometryCollection are walked structurally; all
// other geometry types pass through unmodified.
func CorrectContinuity(o geojson.Object) geojson.Object {
	switch obj := o.(type) {
	case *geojson.Polygon:
		return geojson.NewPolygon(correctPoly(obj.Base()))
	case *geojson.MultiPolygon:
		children := obj.Children()
		polys := make([]*geometry.Poly, 0, len(children))
		for _, child := range children {
			poly, ok := child.(*geojson.Polygon)
			if !ok {
				continue
			}
			polys = append(polys, correctPoly(poly.Base()))
		}
		return geojson.NewMultiPolygon(polys)
	case *geojson.Feature:
		return geojson.NewFeature(CorrectContinuity(obj.Base()), obj.Members())
	case *geojson.FeatureCollection:
		return geojson.NewFeatureCollection(correctChildren(obj.Children()))
	case *geojson.GeometryCollection:
		return geojson.NewGeometryCollection(correctChildren(obj.Children()))
	default:
		return o
	}
}

// CorrectRing normalizes consecutive longitudes of a single ring. After
// correction |lon[i]-lon[i-1]| <= 180 for all consecutive pairs, the
// point count is unchanged and latitudes are untouched. Rings shorter
// than two points are returned as-is. The first point is never offset.
func CorrectRing(points []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(points))
	copy(out, points)
	if len(points) < 2 {
		return out
	}
	var offset float64
	for i := 1; i < len(points); i++ {
		diff := points[i].X - points[i-1].X
		if diff > 180 {
			offset -= 360
		} else if diff < -180 {
			offset += 360
		}
		out[i].X += offset
	}
	return out
}

func correctPoly(p *geometry.Poly) *geometry.Poly {
	exterior := CorrectRing(ringPoints(p.Exterior))
	var holes [][]geometry.Point
	if len(p.Holes) > 0 {
		holes = make([][]geometry.Point, len(p.Holes))
		for i, hole := range p.Holes {
			holes[i] = CorrectRing(ringPoints(hole))
		}
	}
	return geometry.NewPoly(exterior, holes, nil)
}

func correctChildren(children []geojson.Object) []geojson.Object {
	out := make([]geojson.Object, len(children))
	for i, child := range children {
		out[i] = CorrectContinuity(child)
	}
	return out
}

func ringPoints(ring geometry.Ring) []geometry.Point {
	if ring == nil {
		return nil
	}
	points := make([]geometry.Point, ring.NumPoints())
	for i := 0; i < ring.NumPoints(); i++ {
		points[i] = ring.PointAt(i)
	}
	return points
}
