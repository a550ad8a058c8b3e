package commap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrCountryNotFound = errors.New("commap/dataset: country not found")
	ErrCityNotFound    = errors.New("commap/dataset: city not found")
	ErrPlaceNotFound   = errors.New("commap/dataset: place not found")
)

// Country is the top level of the entity hierarchy. Its boundary geometry
// is not part of the dataset; it arrives separately from a GeometrySource
// keyed by the same identifier.
type Country struct {
	ID        string  `json:"id" msgpack:"id"`
	Name      string  `json:"name" msgpack:"name"`
	Community string  `json:"community" msgpack:"community"`
	Members   int     `json:"members" msgpack:"members"`
	Latitude  float64 `json:"lat" msgpack:"lat"`
	Longitude float64 `json:"lon" msgpack:"lon"`
	Cities    []City  `json:"cities,omitempty" msgpack:"cities"`
}

type City struct {
	ID        string  `json:"id" msgpack:"id"`
	Name      string  `json:"name" msgpack:"name"`
	Community string  `json:"community" msgpack:"community"`
	Members   int     `json:"members" msgpack:"members"`
	Latitude  float64 `json:"lat" msgpack:"lat"`
	Longitude float64 `json:"lon" msgpack:"lon"`
	Places    []Place `json:"places,omitempty" msgpack:"places"`
}

type Place struct {
	ID        string  `json:"id" msgpack:"id"`
	Name      string  `json:"name" msgpack:"name"`
	Community string  `json:"community" msgpack:"community"`
	Members   int     `json:"members" msgpack:"members"`
	Latitude  float64 `json:"lat" msgpack:"lat"`
	Longitude float64 `json:"lon" msgpack:"lon"`
}

// Dataset is the read-only entity catalog the engine plans and selects
// against. Implementations are immutable after construction, so lookups
// are safe from any goroutine.
type Dataset interface {
	Country(ctx context.Context, countryID string) (*Country, error)
	City(ctx context.Context, countryID, cityID string) (*Country, *City, error)
	Place(ctx context.Context, countryID, cityID, placeID string) (*Country, *City, *Place, error)
	Each(ctx context.Context, fn func(c *Country) bool)
	Len() int
}

type memoryDataset struct {
	countries []Country
	index     map[string]*Country
}

// NewDataset validates the country list and builds an indexed dataset.
// Country lookup accepts both the dataset identifier and its
// leading-zero-stripped variant, because boundary feature ids commonly
// drop the padding of numeric ISO codes.
func NewDataset(countries []Country) (Dataset, error) {
	ds := &memoryDataset{
		countries: countries,
		index:     make(map[string]*Country, len(countries)*2),
	}
	if err := validateCountries(countries); err != nil {
		return nil, err
	}
	for i := range ds.countries {
		c := &ds.countries[i]
		ds.index[c.ID] = c
		stripped := stripLeadingZeros(c.ID)
		if stripped != c.ID {
			ds.index[stripped] = c
		}
	}
	return ds, nil
}

func (ds *memoryDataset) Country(_ context.Context, countryID string) (*Country, error) {
	c, ok := ds.index[countryID]
	if !ok {
		c, ok = ds.index[stripLeadingZeros(countryID)]
	}
	if !ok {
		return nil, fmt.Errorf("%w - %s", ErrCountryNotFound, countryID)
	}
	return c, nil
}

func (ds *memoryDataset) City(ctx context.Context, countryID, cityID string) (*Country, *City, error) {
	c, err := ds.Country(ctx, countryID)
	if err != nil {
		return nil, nil, err
	}
	for i := range c.Cities {
		if c.Cities[i].ID == cityID {
			return c, &c.Cities[i], nil
		}
	}
	return nil, nil, fmt.Errorf("%w - %s/%s", ErrCityNotFound, countryID, cityID)
}

func (ds *memoryDataset) Place(ctx context.Context, countryID, cityID, placeID string) (*Country, *City, *Place, error) {
	c, city, err := ds.City(ctx, countryID, cityID)
	if err != nil {
		return nil, nil, nil, err
	}
	for i := range city.Places {
		if city.Places[i].ID == placeID {
			return c, city, &city.Places[i], nil
		}
	}
	return nil, nil, nil, fmt.Errorf("%w - %s/%s/%s", ErrPlaceNotFound, countryID, cityID, placeID)
}

func (ds *memoryDataset) Each(_ context.Context, fn func(c *Country) bool) {
	for i := range ds.countries {
		if !fn(&ds.countries[i]) {
			return
		}
	}
}

func (ds *memoryDataset) Len() int {
	return len(ds.countries)
}

// LoadDataset reads a JSON country list.
func LoadDataset(filename string) (Dataset, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return DatasetFromJSON(raw)
}

func DatasetFromJSON(raw []byte) (Dataset, error) {
	var countries []Country
	if err := json.Unmarshal(raw, &countries); err != nil {
		return nil, fmt.Errorf("commap/dataset: decode: %v", err)
	}
	return NewDataset(countries)
}

// LoadDatasetSnapshot reads the msgpack binary form produced by
// WriteDatasetSnapshot.
func LoadDatasetSnapshot(filename string) (Dataset, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var countries []Country
	if err := msgpack.Unmarshal(raw, &countries); err != nil {
		return nil, fmt.Errorf("commap/dataset: decode snapshot: %v", err)
	}
	return NewDataset(countries)
}

func WriteDatasetSnapshot(filename string, ds Dataset) error {
	countries := make([]Country, 0, ds.Len())
	ds.Each(context.Background(), func(c *Country) bool {
		countries = append(countries, *c)
		return true
	})
	raw, err := msgpack.Marshal(countries)
	if err != nil {
		return fmt.Errorf("commap/dataset: encode snapshot: %v", err)
	}
	return ioutil.WriteFile(filename, raw, 0644)
}

func validateCountries(countries []Country) error {
	seen := make(map[string]struct{}, len(countries))
	for i := range countries {
		c := &countries[i]
		if len(c.ID) == 0 {
			return fmt.Errorf("commap/dataset: country %q without id", c.Name)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("commap/dataset: duplicate country id %s", c.ID)
		}
		seen[c.ID] = struct{}{}
		if err := validateEntity(c.ID, c.Members, c.Latitude, c.Longitude); err != nil {
			return err
		}
		cities := make(map[string]struct{}, len(c.Cities))
		for j := range c.Cities {
			city := &c.Cities[j]
			if _, dup := cities[city.ID]; dup {
				return fmt.Errorf("commap/dataset: duplicate city id %s in country %s", city.ID, c.ID)
			}
			cities[city.ID] = struct{}{}
			if err := validateEntity(city.ID, city.Members, city.Latitude, city.Longitude); err != nil {
				return err
			}
			places := make(map[string]struct{}, len(city.Places))
			for k := range city.Places {
				place := &city.Places[k]
				if _, dup := places[place.ID]; dup {
					return fmt.Errorf("commap/dataset: duplicate place id %s in city %s", place.ID, city.ID)
				}
				places[place.ID] = struct{}{}
				if err := validateEntity(place.ID, place.Members, place.Latitude, place.Longitude); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func validateEntity(id string, members int, lat, lon float64) error {
	if members < 0 {
		return fmt.Errorf("commap/dataset: %s: negative member count %d", id, members)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("commap/dataset: %s: latitude %f out of range", id, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("commap/dataset: %s: longitude %f out of range", id, lon)
	}
	return nil
}

func stripLeadingZeros(id string) string {
	stripped := strings.TrimLeft(id, "0")
	if len(stripped) == 0 && len(id) > 0 {
		return "0"
	}
	return stripped
}
