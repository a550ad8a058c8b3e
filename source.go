package commap

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/tidwall/geojson"
	"github.com/tidwall/gjson"
)

var ErrBadGeometry = errors.New("commap/source: document is not a feature collection")

// GeometrySource delivers the boundary feature collection. Conversion of
// topology documents to GeoJSON happens upstream; the source returns the
// converted collection, one feature per country, each carrying an id
// matching the dataset's country identifiers.
type GeometrySource interface {
	Fetch(ctx context.Context) (*geojson.FeatureCollection, error)
}

// HTTPGeometrySource fetches a GeoJSON feature collection with a single
// GET. No retries: a failed fetch leaves the map in tiles-only mode.
type HTTPGeometrySource struct {
	URL    string
	Client *http.Client
}

func NewHTTPGeometrySource(url string) *HTTPGeometrySource {
	return &HTTPGeometrySource{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPGeometrySource) Fetch(ctx context.Context) (*geojson.FeatureCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("commap/source: GET %s => %s", s.URL, resp.Status)
	}
	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return ParseFeatureCollection(string(raw))
}

func ParseFeatureCollection(raw string) (*geojson.FeatureCollection, error) {
	object, err := geojson.Parse(raw, geojson.DefaultParseOptions)
	if err != nil {
		return nil, err
	}
	collection, ok := object.(*geojson.FeatureCollection)
	if !ok {
		return nil, fmt.Errorf("%w - got %T", ErrBadGeometry, object)
	}
	return collection, nil
}

// FeatureID extracts the country identifier of a boundary feature: the
// top-level "id" member, falling back to "properties.id". Empty when the
// feature carries neither.
func FeatureID(f *geojson.Feature) string {
	members := f.Members()
	if id := gjson.Get(members, "id"); id.Exists() {
		return id.String()
	}
	if id := gjson.Get(members, "properties.id"); id.Exists() {
		return id.String()
	}
	return ""
}
