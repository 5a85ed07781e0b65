package sidebar

import "errors"

// ErrOutsideController is the panic value raised when an item is bound to a
// nil State. Items must be composed inside a controller.
var ErrOutsideController = errors.New("sidebar: item must be bound to a controller state")

// State is the read-only view of the expanded flag handed to items.
type State interface {
	Expanded() bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithExpanded sets the initial expanded flag. Controllers start expanded.
func WithExpanded(expanded bool) Option {
	return func(c *Controller) {
		c.expanded = expanded
	}
}

// WithNav replaces the default navigation definition.
func WithNav(nav Nav) Option {
	return func(c *Controller) {
		c.nav = nav
	}
}

// WithTheme applies theme tokens to the rendered view.
func WithTheme(theme Theme) Option {
	return func(c *Controller) {
		c.theme = theme
	}
}

// Controller owns the expanded flag. It is the only writer; create one per
// owner (request, session) and do not share it across goroutines.
type Controller struct {
	expanded bool
	nav      Nav
	theme    Theme
}

// NewController returns an expanded controller over DefaultNav unless
// options say otherwise.
func NewController(options ...Option) *Controller {
	c := &Controller{
		expanded: true,
		nav:      DefaultNav(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Toggle flips the expanded flag.
func (c *Controller) Toggle() {
	c.expanded = !c.expanded
}

// Expanded reports the current flag.
func (c *Controller) Expanded() bool {
	return c.expanded
}

// State returns the read-only handle items are bound to.
func (c *Controller) State() State {
	return readOnly{c}
}

// Bind attaches item to this controller's state.
func (c *Controller) Bind(item Item) BoundItem {
	return NewBoundItem(c.State(), item)
}

// readOnly hides Toggle from holders of the State handle.
type readOnly struct {
	c *Controller
}

func (r readOnly) Expanded() bool {
	return r.c.expanded
}

func (r readOnly) theme() Theme {
	return r.c.theme
}
