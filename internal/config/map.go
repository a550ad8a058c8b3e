package config

import "fmt"

// Map configures the interactive map surface: where boundary geometry
// and background tiles come from, where the dataset lives, and the zoom
// range of the deployment.
type Map struct {
	GeometryURL string `yaml:"geometryURL"`
	TileURL     string `yaml:"tileURL"`
	Dataset     string `yaml:"dataset"`
	MinZoom     int    `yaml:"minZoom"`
	MaxZoom     int    `yaml:"maxZoom"`
	InitialZoom int    `yaml:"initialZoom"`
}

func (m *Map) validate() error {
	if m.MinZoom == 0 && m.MaxZoom == 0 {
		m.MinZoom, m.MaxZoom = 2, 19
	}
	if m.MaxZoom < m.MinZoom {
		return fmt.Errorf("commap/config: maxZoom %d below minZoom %d", m.MaxZoom, m.MinZoom)
	}
	if m.InitialZoom == 0 {
		m.InitialZoom = m.MinZoom
	}
	if m.InitialZoom < m.MinZoom || m.InitialZoom > m.MaxZoom {
		return fmt.Errorf("commap/config: initialZoom %d out of range [%d, %d]",
			m.InitialZoom, m.MinZoom, m.MaxZoom)
	}
	return nil
}
