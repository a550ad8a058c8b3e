package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_FromFile(t *testing.T) {
	conf, err := FromFile("./testdata/commap.yml")
	assert.Nil(t, err)
	assert.NotNil(t, conf)

	// logger
	assert.Equal(t, "development", conf.Logger.Env)
	assert.Equal(t, "commap", conf.Logger.Name)

	// map
	assert.Equal(t, "https://example.org/boundaries/countries.geojson", conf.Map.GeometryURL)
	assert.Equal(t, "https://tile.example.org/{z}/{x}/{y}.png", conf.Map.TileURL)
	assert.Equal(t, "./testdata/dataset.json", conf.Map.Dataset)
	assert.Equal(t, 2, conf.Map.MinZoom)
	assert.Equal(t, 19, conf.Map.MaxZoom)
	assert.Equal(t, 3, conf.Map.InitialZoom)
}

func TestConfig_MapDefaults(t *testing.T) {
	conf, err := FromBytes([]byte("map:\n  geometryURL: https://example.org/geo.json\n"))
	assert.Nil(t, err)
	assert.Equal(t, 2, conf.Map.MinZoom)
	assert.Equal(t, 19, conf.Map.MaxZoom)
	assert.Equal(t, 2, conf.Map.InitialZoom)
}

func TestConfig_MapInvalidZoomRange(t *testing.T) {
	_, err := FromBytes([]byte("map:\n  minZoom: 10\n  maxZoom: 4\n"))
	assert.NotNil(t, err)
}
