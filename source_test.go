package commap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tidwall/geojson"
)

func TestHTTPGeometrySourceFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testGeometry))
	}))
	defer server.Close()

	source := NewHTTPGeometrySource(server.URL)
	collection, err := source.Fetch(context.TODO())
	if err != nil {
		t.Fatal(err)
	}
	if have, want := len(collection.Children()), 3; have != want {
		t.Fatalf("Fetch() => %d features, want %d", have, want)
	}
}

func TestHTTPGeometrySourceFetchStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	source := NewHTTPGeometrySource(server.URL)
	if _, err := source.Fetch(context.TODO()); err == nil {
		t.Fatal("Fetch() => nil error, want status failure")
	}
}

func TestParseFeatureCollectionRejectsOtherTypes(t *testing.T) {
	_, err := ParseFeatureCollection(`{"type":"Point","coordinates":[0,0]}`)
	if err == nil {
		t.Fatal("ParseFeatureCollection(point) => nil error, want ErrBadGeometry")
	}
}

func TestFeatureID(t *testing.T) {
	collection, err := ParseFeatureCollection(testGeometry)
	if err != nil {
		t.Fatal(err)
	}
	feature := collection.Children()[0].(*geojson.Feature)
	if have, want := FeatureID(feature), "840"; have != want {
		t.Fatalf("FeatureID() => %s, want %s", have, want)
	}

	propsOnly, err := ParseFeatureCollection(`{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{"id":"036"},"geometry":{"type":"Point","coordinates":[134,-26]}}]}`)
	if err != nil {
		t.Fatal(err)
	}
	feature = propsOnly.Children()[0].(*geojson.Feature)
	if have, want := FeatureID(feature), "036"; have != want {
		t.Fatalf("FeatureID(properties.id) => %s, want %s", have, want)
	}

	bare, err := ParseFeatureCollection(`{"type":"FeatureCollection","features":[
{"type":"Feature","geometry":{"type":"Point","coordinates":[0,0]}}]}`)
	if err != nil {
		t.Fatal(err)
	}
	feature = bare.Children()[0].(*geojson.Feature)
	if have, want := FeatureID(feature), ""; have != want {
		t.Fatalf("FeatureID(bare) => %q, want empty", have)
	}
}
