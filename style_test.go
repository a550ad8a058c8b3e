package commap

import (
	"testing"
)

func newTestSynchronizer() (*StyleSynchronizer, *fakeRenderer) {
	renderer := newFakeRenderer()
	registry := NewLayerRegistry()
	for _, id := range []string{"840", "242"} {
		registry.Register(id, renderer.AddBoundary(id, nil, DefaultCountryStyle()))
	}
	return NewStyleSynchronizer(registry), renderer
}

func TestHighlightRestoreBeforeApply(t *testing.T) {
	s, renderer := newTestSynchronizer()
	s.Highlight("840")
	s.Highlight("242")

	first := renderer.drawables["840"]
	second := renderer.drawables["242"]
	// Style sequences: the restore of the first drawable happens before
	// the second receives the highlight.
	if have, want := first.styles[len(first.styles)-1], DefaultCountryStyle(); have != want {
		t.Fatalf("first drawable => %+v, want restored default", have)
	}
	if have, want := len(second.styles), 2; have != want {
		t.Fatalf("second drawable restyled %d times, want %d", have, want)
	}
	if have, want := s.Highlighted(), "242"; have != want {
		t.Fatalf("Highlighted() => %s, want %s", have, want)
	}
}

func TestHighlightSameCountryIsNoop(t *testing.T) {
	s, renderer := newTestSynchronizer()
	s.Highlight("840")
	count := len(renderer.drawables["840"].styles)
	s.Highlight("840")
	if have, want := len(renderer.drawables["840"].styles), count; have != want {
		t.Fatalf("re-highlight restyled the drawable %d times, want %d", have, want)
	}
}

func TestHighlightUnknownCountryClearsPrevious(t *testing.T) {
	s, renderer := newTestSynchronizer()
	s.Highlight("840")
	s.Highlight("999")
	if have, want := renderer.drawables["840"].last(), DefaultCountryStyle(); have != want {
		t.Fatalf("drawable => %+v, want restored default", have)
	}
	if have, want := s.Highlighted(), ""; have != want {
		t.Fatalf("Highlighted() => %q, want empty", have)
	}
}

func TestClear(t *testing.T) {
	s, renderer := newTestSynchronizer()
	s.Highlight("840")
	s.Clear()
	if have, want := renderer.drawables["840"].last(), DefaultCountryStyle(); have != want {
		t.Fatalf("drawable => %+v, want default", have)
	}
	if have, want := s.Highlighted(), ""; have != want {
		t.Fatalf("Highlighted() => %q, want empty", have)
	}
}

func TestHoverNeverTouchesHighlighted(t *testing.T) {
	s, renderer := newTestSynchronizer()
	s.Highlight("840")

	s.Hover("840", true)
	if have, want := renderer.drawables["840"].last(), HighlightedCountryStyle(); have != want {
		t.Fatalf("hover over highlighted => %+v, want highlight preserved", have)
	}
	s.Hover("840", false)
	if have, want := renderer.drawables["840"].last(), HighlightedCountryStyle(); have != want {
		t.Fatalf("hover exit on highlighted => %+v, want highlight preserved", have)
	}

	s.Hover("242", true)
	if have, want := renderer.drawables["242"].last(), HoverCountryStyle(); have != want {
		t.Fatalf("hover => %+v, want hover style", have)
	}
	s.Hover("242", false)
	if have, want := renderer.drawables["242"].last(), DefaultCountryStyle(); have != want {
		t.Fatalf("hover exit => %+v, want default style", have)
	}
}
