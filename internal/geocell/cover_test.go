package geocell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/geojson"
	"github.com/uber/h3-go"
)

func TestNormalizeLon(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeLon(0))
	assert.Equal(t, -178.0, NormalizeLon(182))
	assert.Equal(t, 178.0, NormalizeLon(-182))
	assert.Equal(t, 5.0, NormalizeLon(365))
}

func TestCellWrapsCorrectedLongitudes(t *testing.T) {
	// 182 and -178 are the same meridian; corrected geometry uses the
	// former, pointer coordinates the latter.
	assert.Equal(t, Cell(-17, -178, 2), Cell(-17, 182, 2))
}

func TestCoverContainsEveryCorner(t *testing.T) {
	object, err := geojson.Parse(`{"type":"Polygon","coordinates":[[
[10,40],[18,40],[18,46],[10,46],[10,40]]]}`, geojson.DefaultParseOptions)
	if err != nil {
		t.Fatal(err)
	}
	cells := Cover(object, 2)
	if len(cells) == 0 {
		t.Fatal("Cover() => no cells")
	}
	unique := make(map[h3.H3Index]struct{}, len(cells))
	for _, cell := range cells {
		unique[cell] = struct{}{}
	}
	assert.Len(t, cells, len(unique))
	for _, corner := range [][2]float64{{40, 10}, {40, 18}, {46, 10}, {46, 18}, {43, 14}} {
		if _, ok := unique[Cell(corner[0], corner[1], 2)]; !ok {
			t.Fatalf("Cover() misses cell of (%v, %v)", corner[0], corner[1])
		}
	}
}

func TestCoverNil(t *testing.T) {
	assert.Nil(t, Cover(nil, 2))
}
