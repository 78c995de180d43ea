package navigation

import "testing"

func newController(s State) (*Controller, *Bus) {
	bus := NewBus()
	return NewController(NewStoreWithState(s), bus), bus
}

func TestOpenThenSwitch(t *testing.T) {
	c, _ := newController(State{})

	c.TapPrimary("events")
	if got, want := c.Store().State(), (State{ActiveGroupID: "events", IsExpanded: true}); got != want {
		t.Fatalf("after tapping events: %+v; want %+v", got, want)
	}

	c.TapPrimary("finance")
	if got, want := c.Store().State(), (State{ActiveGroupID: "finance", IsExpanded: true}); got != want {
		t.Errorf("after tapping finance: %+v; want %+v", got, want)
	}
}

func TestTapOpenGroupAgainCollapses(t *testing.T) {
	c, _ := newController(State{})

	c.TapPrimary("events")
	c.TapPrimary("events")

	if got, want := c.Store().State(), (State{ActiveGroupID: "events"}); got != want {
		t.Errorf("state = %+v; want %+v", got, want)
	}
	if c.Mode() != ModeCollapsed {
		t.Errorf("mode = %s; want %s", c.Mode(), ModeCollapsed)
	}
}

func TestTapSelectedButCollapsedGroupReopens(t *testing.T) {
	c, _ := newController(State{ActiveGroupID: "events"})

	c.TapPrimary("events")

	if got, want := c.Store().State(), (State{ActiveGroupID: "events", IsExpanded: true}); got != want {
		t.Errorf("state = %+v; want %+v", got, want)
	}
}

func TestSubmenuEntryNavigatesAndCollapses(t *testing.T) {
	c, _ := newController(State{ActiveGroupID: "events", IsExpanded: true})

	effect := c.TapSubmenuEntry("/events/42")

	if effect.Push != "/events/42" {
		t.Errorf("Push = %q; want %q", effect.Push, "/events/42")
	}
	if got, want := c.Store().State(), (State{ActiveGroupID: "events"}); got != want {
		t.Errorf("state = %+v; want %+v", got, want)
	}
}

func TestMoreClosesSubmenu(t *testing.T) {
	c, _ := newController(State{ActiveGroupID: "events", IsExpanded: true})

	c.TapMore()

	s := c.Store().State()
	if s.IsExpanded || !s.IsMoreMenuOpen {
		t.Errorf("state = %+v; want overflow open and submenu closed", s)
	}
	if c.Mode() != ModeOverflowOpen {
		t.Errorf("mode = %s; want %s", c.Mode(), ModeOverflowOpen)
	}
}

func TestOverflowCloses(t *testing.T) {
	tests := []struct {
		name       string
		apply      func(c *Controller) Effect
		expectPush string
	}{
		{"more tapped again", func(c *Controller) Effect { c.TapMore(); return Effect{} }, ""},
		{"backdrop", func(c *Controller) Effect { c.CloseOverflow(); return Effect{} }, ""},
		{"overflow entry", func(c *Controller) Effect { return c.TapOverflowEntry("/knowledge") }, "/knowledge"},
		{"entry posted as submenu", func(c *Controller) Effect { return c.TapSubmenuEntry("/knowledge") }, "/knowledge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newController(State{ActiveGroupID: "main", IsMoreMenuOpen: true})
			effect := tt.apply(c)
			if c.Mode() != ModeCollapsed {
				t.Errorf("mode = %s; want %s", c.Mode(), ModeCollapsed)
			}
			if effect.Push != tt.expectPush {
				t.Errorf("Push = %q; want %q", effect.Push, tt.expectPush)
			}
		})
	}
}

func TestCloseOverflowWhenClosedIsNoop(t *testing.T) {
	c, _ := newController(State{ActiveGroupID: "events", IsExpanded: true})

	c.CloseOverflow()

	if got, want := c.Store().State(), (State{ActiveGroupID: "events", IsExpanded: true}); got != want {
		t.Errorf("state = %+v; want %+v", got, want)
	}
}

func TestOutsideClickListenerLifecycle(t *testing.T) {
	c, bus := newController(State{})

	if n := bus.Listeners(EventClickOutside); n != 0 {
		t.Fatalf("collapsed controller holds %d listeners; want 0", n)
	}

	c.TapPrimary("events")
	if n := bus.Listeners(EventClickOutside); n != 1 {
		t.Fatalf("submenu open holds %d listeners; want 1", n)
	}

	c.TapPrimary("finance")
	if n := bus.Listeners(EventClickOutside); n != 1 {
		t.Errorf("switching groups holds %d listeners; want 1", n)
	}

	c.ClickOutside()
	if got, want := c.Store().State(), (State{ActiveGroupID: "finance"}); got != want {
		t.Errorf("after outside click: %+v; want %+v", got, want)
	}
	if n := bus.Listeners(EventClickOutside); n != 0 {
		t.Errorf("collapsed after outside click holds %d listeners; want 0", n)
	}
}

func TestOutsideClickIgnoredWhenNotOpen(t *testing.T) {
	c, bus := newController(State{ActiveGroupID: "main", IsMoreMenuOpen: true})

	c.ClickOutside()

	if !c.Store().State().IsMoreMenuOpen {
		t.Error("outside click closed the overflow sheet")
	}
	if n := bus.Listeners(EventClickOutside); n != 0 {
		t.Errorf("overflow open holds %d listeners; want 0", n)
	}
}

func TestControllerAttachesForRehydratedOpenSubmenu(t *testing.T) {
	c, bus := newController(State{ActiveGroupID: "events", IsExpanded: true})
	if n := bus.Listeners(EventClickOutside); n != 1 {
		t.Fatalf("listeners = %d; want 1", n)
	}

	c.TapMore()
	if n := bus.Listeners(EventClickOutside); n != 0 {
		t.Errorf("listeners after opening overflow = %d; want 0", n)
	}

	c2, bus2 := newController(State{ActiveGroupID: "events", IsExpanded: true})
	c2.Close()
	if n := bus2.Listeners(EventClickOutside); n != 0 {
		t.Errorf("listeners after Close = %d; want 0", n)
	}
}

func TestBusUnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus()
	calls := 0
	off := bus.Subscribe(EventClickOutside, func() { calls++ })

	bus.Publish(EventClickOutside)
	off()
	off()
	bus.Publish(EventClickOutside)

	if calls != 1 {
		t.Errorf("listener called %d times; want 1", calls)
	}
	if n := bus.Listeners(EventClickOutside); n != 0 {
		t.Errorf("listeners = %d; want 0", n)
	}
}
