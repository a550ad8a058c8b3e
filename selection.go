package commap

import (
	"context"
)

type SelectionLevel int

const (
	SelectionNone SelectionLevel = iota
	SelectionCountry
	SelectionCity
	SelectionPlace
)

func (l SelectionLevel) String() string {
	switch l {
	case SelectionCountry:
		return "country"
	case SelectionCity:
		return "city"
	case SelectionPlace:
		return "place"
	default:
		return "none"
	}
}

// Selection is the drill-down state of the map. A city selection always
// carries its owning country and a place selection its owning city and
// country; the parents are resolved from the dataset, never set
// independently.
type Selection struct {
	country *Country
	city    *City
	place   *Place
}

func (s Selection) Level() SelectionLevel {
	switch {
	case s.place != nil:
		return SelectionPlace
	case s.city != nil:
		return SelectionCity
	case s.country != nil:
		return SelectionCountry
	default:
		return SelectionNone
	}
}

func (s Selection) None() bool {
	return s.country == nil
}

func (s Selection) Country() *Country {
	return s.country
}

func (s Selection) City() *City {
	return s.city
}

func (s Selection) Place() *Place {
	return s.place
}

type commandKind int

const (
	cmdSelectCountry commandKind = iota + 1
	cmdSelectCity
	cmdSelectPlace
	cmdBack
	cmdClose
)

// command is a transition request. Event handlers enqueue commands and
// the machine consumes them in order, so the unhighlight-before-highlight
// ordering has a single authoritative owner.
type command struct {
	kind    commandKind
	country string
	city    string
	place   string
}

// SelectionMachine holds the current selection and drives highlight
// synchronization on every transition. Owned by the event loop; not safe
// for concurrent use.
type SelectionMachine struct {
	dataset Dataset
	styles  *StyleSynchronizer
	current Selection
}

func NewSelectionMachine(dataset Dataset, styles *StyleSynchronizer) *SelectionMachine {
	return &SelectionMachine{dataset: dataset, styles: styles}
}

func (m *SelectionMachine) Current() Selection {
	return m.current
}

// Apply executes one transition request and reports whether the
// selection changed. Lookups that fail leave the machine untouched:
// an unknown id is a no-op, not an error.
func (m *SelectionMachine) Apply(ctx context.Context, cmd command) bool {
	switch cmd.kind {
	case cmdSelectCountry:
		c, err := m.dataset.Country(ctx, cmd.country)
		if err != nil {
			return false
		}
		return m.commit(Selection{country: c})
	case cmdSelectCity:
		c, city, err := m.dataset.City(ctx, cmd.country, cmd.city)
		if err != nil {
			return false
		}
		return m.commit(Selection{country: c, city: city})
	case cmdSelectPlace:
		c, city, place, err := m.dataset.Place(ctx, cmd.country, cmd.city, cmd.place)
		if err != nil {
			return false
		}
		return m.commit(Selection{country: c, city: city, place: place})
	case cmdBack:
		return m.back()
	case cmdClose:
		return m.close()
	default:
		return false
	}
}

func (m *SelectionMachine) commit(next Selection) bool {
	changed := m.current != next
	m.current = next
	// Country-level highlighting persists across city and place
	// transitions; Highlight is a no-op for the already-highlighted id.
	m.styles.Highlight(next.country.ID)
	return changed
}

func (m *SelectionMachine) back() bool {
	switch m.current.Level() {
	case SelectionPlace:
		m.current.place = nil
	case SelectionCity:
		m.current.city = nil
		m.current.place = nil
	case SelectionCountry:
		m.styles.Clear()
		m.current = Selection{}
	default:
		return false
	}
	return true
}

func (m *SelectionMachine) close() bool {
	changed := !m.current.None()
	m.styles.Clear()
	m.current = Selection{}
	return changed
}
