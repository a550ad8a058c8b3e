package commap

import (
	"fmt"
	"strconv"
)

const (
	// MinZoom and MaxZoom bound the slippy-map zoom range of this
	// deployment. Level 2 shows a subcontinental area, 10 a metropolitan
	// area, 19 street-level detail.
	MinZoom ZoomLevel = 2
	MaxZoom ZoomLevel = 19

	// cityMarkerZoom and placeMarkerZoom are the levels at which city and
	// place markers start to exist.
	cityMarkerZoom  ZoomLevel = 4
	placeMarkerZoom ZoomLevel = 10
)

type ZoomLevel int

func (z ZoomLevel) Validate() (err error) {
	if z < MinZoom || z > MaxZoom {
		err = fmt.Errorf("commap/zoom: level %d out of range [%d, %d]", z, MinZoom, MaxZoom)
	}
	return
}

func (z ZoomLevel) Clamp(min, max ZoomLevel) ZoomLevel {
	if z < min {
		return min
	}
	if z > max {
		return max
	}
	return z
}

func (z ZoomLevel) Value() int {
	return int(z)
}

func (z ZoomLevel) String() string {
	return strconv.Itoa(int(z))
}
