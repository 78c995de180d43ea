package navigation

// Mode is the interaction state of the bottom navigation
type Mode string

const (
	ModeCollapsed    Mode = "collapsed"
	ModeSubmenuOpen  Mode = "submenu_open"
	ModeOverflowOpen Mode = "overflow_open"
)

// ModeOf derives the interaction mode from a state
func ModeOf(s State) Mode {
	switch {
	case s.IsMoreMenuOpen:
		return ModeOverflowOpen
	case s.IsExpanded:
		return ModeSubmenuOpen
	default:
		return ModeCollapsed
	}
}

// Effect is a side effect requested by a transition
type Effect struct {
	// Push is the path the router should navigate to, empty when none
	Push string `json:"push,omitempty"`
}

// Controller applies user interactions to a Store.
// The click-outside listener is attached only while the submenu is open.
type Controller struct {
	store  *Store
	bus    *Bus
	detach func()
}

// NewController wires a controller to a store and its event bus. The outside-click
// listener is attached right away if the store is already in SubmenuOpen.
func NewController(store *Store, bus *Bus) *Controller {
	c := &Controller{store: store, bus: bus}
	c.sync()
	return c
}

func (c *Controller) Store() *Store { return c.store }

func (c *Controller) Mode() Mode { return ModeOf(c.store.State()) }

// TapPrimary handles a tap on a group's primary button.
// Tapping the group whose submenu is open collapses it but keeps it selected.
func (c *Controller) TapPrimary(groupID string) {
	s := c.store.State()
	if s.IsExpanded && s.ActiveGroupID == groupID {
		c.store.SetExpanded(false)
	} else {
		c.store.SwitchToGroup(groupID)
	}
	c.sync()
}

// TapSubmenuEntry collapses the navigation and navigates to href.
// Any entry tap ends collapsed, whichever panel it came from.
func (c *Controller) TapSubmenuEntry(href string) Effect {
	c.store.Collapse()
	c.sync()
	return Effect{Push: href}
}

// TapMore toggles the overflow sheet
func (c *Controller) TapMore() {
	c.store.ToggleMoreMenu()
	c.sync()
}

// CloseOverflow handles the backdrop and close button of the overflow sheet
func (c *Controller) CloseOverflow() {
	if c.store.State().IsMoreMenuOpen {
		c.store.ToggleMoreMenu()
	}
	c.sync()
}

// TapOverflowEntry closes the overflow sheet and navigates to href
func (c *Controller) TapOverflowEntry(href string) Effect {
	c.store.Collapse()
	c.sync()
	return Effect{Push: href}
}

// ClickOutside forwards a click outside the navigation region to the listener, if any
func (c *Controller) ClickOutside() {
	c.bus.Publish(EventClickOutside)
}

// Close detaches any listener still held by the controller
func (c *Controller) Close() {
	if c.detach != nil {
		c.detach()
		c.detach = nil
	}
}

func (c *Controller) onClickOutside() {
	c.store.SetExpanded(false)
	c.sync()
}

// sync attaches the outside-click listener on entering SubmenuOpen and detaches it on leaving
func (c *Controller) sync() {
	open := c.Mode() == ModeSubmenuOpen
	switch {
	case open && c.detach == nil:
		c.detach = c.bus.Subscribe(EventClickOutside, c.onClickOutside)
	case !open && c.detach != nil:
		c.Close()
	}
}
