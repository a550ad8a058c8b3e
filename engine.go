package commap

import (
	"context"
	"time"

	"github.com/rs/xid"
	"github.com/tidwall/geojson"
	"go.uber.org/zap"
)

type Key int

// KeyEscape is the single recognized keyboard signal; it maps to Back.
const KeyEscape Key = 27

// Renderer is the rendering surface the engine drives. AddBoundary draws
// one boundary feature and returns its drawable handle; ReplaceMarkers
// swaps the complete marker set, clearing whatever was shown before.
type Renderer interface {
	AddBoundary(countryID string, boundary geojson.Object, style Style) Drawable
	ReplaceMarkers(markers []Marker)
}

// SelectionHook observes committed selection transitions, e.g. to
// re-render an information panel.
type SelectionHook func(event Event)

type Event struct {
	ID        string
	DateTime  int64
	Zoom      ZoomLevel
	Selection Selection
}

func MakeEvent(sel Selection, zoom ZoomLevel) Event {
	return Event{
		ID:        xid.New().String(),
		DateTime:  time.Now().Unix(),
		Zoom:      zoom,
		Selection: sel,
	}
}

type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

func WithGeometrySource(source GeometrySource) Option {
	return func(e *Engine) {
		e.source = source
	}
}

func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

func WithZoomBounds(min, max ZoomLevel) Option {
	return func(e *Engine) {
		e.minZoom = min
		e.maxZoom = max
	}
}

func WithInitialZoom(zoom ZoomLevel) Option {
	return func(e *Engine) {
		e.zoom = zoom
	}
}

func WithSelectionHook(hook SelectionHook) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hook)
	}
}

// Engine is the geospatial-interaction core: it owns the layer registry,
// the highlighted-layer reference, the selection machine and the current
// zoom, and exposes them only through discrete event entrypoints. All
// mutation happens on non-overlapping event-loop callbacks; the engine
// is not safe for concurrent use and needs no locking when driven from a
// single goroutine.
type Engine struct {
	log      *zap.Logger
	dataset  Dataset
	source   GeometrySource
	renderer Renderer
	registry *LayerRegistry
	styles   *StyleSynchronizer
	machine  *SelectionMachine
	planner  *MarkerPlanner
	hits     *countryIndex
	zoom     ZoomLevel
	minZoom  ZoomLevel
	maxZoom  ZoomLevel
	pending  []command
	hooks    []SelectionHook
}

func New(dataset Dataset, opts ...Option) *Engine {
	e := &Engine{
		log:     zap.NewNop(),
		dataset: dataset,
		minZoom: MinZoom,
		maxZoom: MaxZoom,
		zoom:    MinZoom,
	}
	for _, f := range opts {
		f(e)
	}
	if e.renderer == nil {
		e.renderer = nopRenderer{}
	}
	e.zoom = e.zoom.Clamp(e.minZoom, e.maxZoom)
	e.registry = NewLayerRegistry()
	e.styles = NewStyleSynchronizer(e.registry)
	e.machine = NewSelectionMachine(dataset, e.styles)
	e.planner = NewMarkerPlanner(dataset)
	return e
}

// LoadGeometry fetches the boundary collection, corrects it for
// antimeridian continuity and registers one drawable per country.
// Registration is all-or-nothing: a failed fetch registers nothing and
// the map degrades to tiles-only (logged, never retried, not fatal).
// Features without a dataset entry are drawn transparent and stay
// non-interactive.
func (e *Engine) LoadGeometry(ctx context.Context) error {
	if e.source == nil {
		e.log.Warn("no geometry source configured; map stays tiles-only")
		return nil
	}
	collection, err := e.source.Fetch(ctx)
	if err != nil {
		e.log.Warn("geometry fetch failed; map stays tiles-only", zap.Error(err))
		return err
	}
	corrected, ok := CorrectContinuity(collection).(*geojson.FeatureCollection)
	if !ok {
		return ErrBadGeometry
	}
	hits := newCountryIndex()
	e.registry.Reset()
	for _, child := range corrected.Children() {
		id := ""
		boundary := child
		if feature, isFeature := child.(*geojson.Feature); isFeature {
			id = FeatureID(feature)
			boundary = feature.Base()
		}
		if len(id) > 0 {
			if c, lookupErr := e.dataset.Country(ctx, id); lookupErr == nil {
				drawable := e.renderer.AddBoundary(c.ID, boundary, DefaultCountryStyle())
				e.registry.Register(c.ID, drawable)
				hits.add(c.ID, boundary)
				continue
			}
		}
		// Boundary data may include territories outside the dataset.
		e.renderer.AddBoundary(id, boundary, TransparentStyle())
	}
	e.hits = hits
	e.log.Info("geometry registered",
		zap.Int("features", len(corrected.Children())),
		zap.Int("countries", e.registry.Len()),
	)
	return nil
}

// Click resolves a pointer coordinate to a country boundary and selects
// it. Clicks outside every boundary, or before geometry has loaded, are
// no-ops.
func (e *Engine) Click(ctx context.Context, lon, lat float64) bool {
	if e.hits == nil {
		return false
	}
	countryID, ok := e.hits.lookup(lon, lat)
	if !ok {
		return false
	}
	return e.dispatch(ctx, command{kind: cmdSelectCountry, country: countryID})
}

func (e *Engine) SelectCountry(ctx context.Context, countryID string) bool {
	return e.dispatch(ctx, command{kind: cmdSelectCountry, country: countryID})
}

// CityClick handles a city marker or panel row click.
func (e *Engine) CityClick(ctx context.Context, countryID, cityID string) bool {
	return e.dispatch(ctx, command{kind: cmdSelectCity, country: countryID, city: cityID})
}

// PlaceClick handles a place marker or panel row click.
func (e *Engine) PlaceClick(ctx context.Context, countryID, cityID, placeID string) bool {
	return e.dispatch(ctx, command{
		kind:    cmdSelectPlace,
		country: countryID,
		city:    cityID,
		place:   placeID,
	})
}

func (e *Engine) Back(ctx context.Context) bool {
	return e.dispatch(ctx, command{kind: cmdBack})
}

func (e *Engine) Close(ctx context.Context) bool {
	return e.dispatch(ctx, command{kind: cmdClose})
}

func (e *Engine) KeyPress(ctx context.Context, key Key) bool {
	if key != KeyEscape {
		return false
	}
	return e.Back(ctx)
}

// HoverCountry forwards pointer-over state to the style synchronizer,
// which protects the highlighted drawable from hover restyling.
func (e *Engine) HoverCountry(countryID string, hovered bool) {
	e.styles.Hover(countryID, hovered)
}

func (e *Engine) Selection() Selection {
	return e.machine.Current()
}

func (e *Engine) Zoom() ZoomLevel {
	return e.zoom
}

func (e *Engine) ZoomIn(ctx context.Context) ZoomLevel {
	return e.SetZoom(ctx, e.zoom+1)
}

func (e *Engine) ZoomOut(ctx context.Context) ZoomLevel {
	return e.SetZoom(ctx, e.zoom-1)
}

// SetZoom clamps the requested level to the configured bounds and, when
// it changes, rebuilds the marker plan from scratch.
func (e *Engine) SetZoom(ctx context.Context, zoom ZoomLevel) ZoomLevel {
	zoom = zoom.Clamp(e.minZoom, e.maxZoom)
	if zoom != e.zoom {
		e.zoom = zoom
		e.replan(ctx)
	}
	return e.zoom
}

// Release drops everything the engine owns: selection, highlight, layer
// registry and hit index. Used on host unmount.
func (e *Engine) Release() {
	e.machine.Apply(context.Background(), command{kind: cmdClose})
	e.registry.Reset()
	e.hits = nil
	e.pending = nil
}

// dispatch enqueues a transition request and drains the queue. Marker
// recomputation runs strictly after the queued transitions settled, and
// hooks observe only committed state.
func (e *Engine) dispatch(ctx context.Context, cmd command) bool {
	e.pending = append(e.pending, cmd)
	return e.drain(ctx)
}

func (e *Engine) drain(ctx context.Context) (changed bool) {
	for len(e.pending) > 0 {
		cmd := e.pending[0]
		e.pending = e.pending[1:]
		if e.machine.Apply(ctx, cmd) {
			changed = true
		}
	}
	if changed {
		e.replan(ctx)
		e.emit()
	}
	return
}

func (e *Engine) replan(ctx context.Context) {
	markers := e.planner.Plan(ctx, e.zoom, e.machine.Current())
	e.renderer.ReplaceMarkers(markers)
}

func (e *Engine) emit() {
	if len(e.hooks) == 0 {
		return
	}
	event := MakeEvent(e.machine.Current(), e.zoom)
	for _, hook := range e.hooks {
		hook(event)
	}
}

type nopRenderer struct{}

func (nopRenderer) AddBoundary(string, geojson.Object, Style) Drawable {
	return nopDrawable{}
}

func (nopRenderer) ReplaceMarkers([]Marker) {}

type nopDrawable struct{}

func (nopDrawable) SetStyle(Style) {}
