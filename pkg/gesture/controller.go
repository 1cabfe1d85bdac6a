// Package gesture turns low-level pointer and wheel events into pan
// and zoom updates on a viewport transform store. It is a small state
// machine over the set of active contact points: one pointer drags,
// two pointers pinch, additional pointers are tracked but inert.
package gesture

import "math"

// Point is a pointer position in screen coordinates.
type Point struct {
	X float64
	Y float64
}

// Viewport is the subset of the transform store the controller
// drives.
type Viewport interface {
	Pan(dx, dy float64)
	ZoomBy(factor float64)
}

// WheelZoomRate converts a wheel deltaY into a zoom factor:
// factor = 1 - deltaY*WheelZoomRate.
const WheelZoomRate = 0.001

// State names the controller's current mode, derived from the number
// of active pointers.
type State int

const (
	StateIdle State = iota
	StateDragging
	StatePinching
	StateIdleExtra // three or more pointers; no defined gesture
)

// Controller consumes pointer lifecycle events and wheel events and
// feeds the viewport. Event delivery is single-threaded; the active
// pointer map is never mutated concurrently.
type Controller struct {
	viewport Viewport

	active map[int]Point

	// lastDrag is the most recent single-pointer position, the base
	// for the next pan delta.
	lastDrag    Point
	hasLastDrag bool

	// pinchDist is the two-pointer distance recorded at the most
	// recent move, the baseline for the next incremental zoom factor.
	pinchDist    float64
	hasPinchDist bool
}

// NewController creates a controller driving the given viewport.
func NewController(viewport Viewport) *Controller {
	return &Controller{
		viewport: viewport,
		active:   make(map[int]Point),
	}
}

// State reports the current gesture mode.
func (c *Controller) State() State {
	switch len(c.active) {
	case 0:
		return StateIdle
	case 1:
		return StateDragging
	case 2:
		return StatePinching
	default:
		return StateIdleExtra
	}
}

// PointerDown records a new contact point and makes it the drag base.
func (c *Controller) PointerDown(id int, x, y float64) {
	p := Point{X: x, Y: y}
	c.active[id] = p
	c.lastDrag = p
	c.hasLastDrag = true
}

// PointerMove updates a contact point and derives the gesture for the
// current pointer count: one pointer pans by the delta from the last
// recorded point, two pointers zoom by the ratio of the current to the
// previously recorded distance. The pinch baseline is refreshed on
// every move so zoom velocity tracks incremental distance change, not
// cumulative change since gesture start.
func (c *Controller) PointerMove(id int, x, y float64) {
	if _, ok := c.active[id]; !ok {
		// Moves for unknown pointers are ignored; the host may deliver
		// hover motion without a preceding down.
		return
	}
	p := Point{X: x, Y: y}
	c.active[id] = p

	switch len(c.active) {
	case 1:
		if c.hasLastDrag {
			c.viewport.Pan(p.X-c.lastDrag.X, p.Y-c.lastDrag.Y)
		}
		c.lastDrag = p
		c.hasLastDrag = true

	case 2:
		dist := c.pairDistance()
		if c.hasPinchDist && c.pinchDist > 0 {
			c.viewport.ZoomBy(dist / c.pinchDist)
		}
		c.pinchDist = dist
		c.hasPinchDist = true
	}
	// Three or more pointers: tracked, no gesture.
}

// PointerUp removes a contact point. Dropping below two pointers
// clears the pinch baseline so a later second pointer starts fresh;
// dropping to zero clears the drag base.
func (c *Controller) PointerUp(id int) {
	delete(c.active, id)
	if len(c.active) < 2 {
		c.pinchDist = 0
		c.hasPinchDist = false
	}
	if len(c.active) == 0 {
		c.hasLastDrag = false
	} else if len(c.active) == 1 {
		// The surviving pointer becomes the drag base so the next move
		// does not jump by the distance between the two contacts.
		for _, p := range c.active {
			c.lastDrag = p
		}
		c.hasLastDrag = true
	}
}

// PointerCancel is an abrupt, non-erroneous termination of a contact
// and is handled identically to PointerUp.
func (c *Controller) PointerCancel(id int) {
	c.PointerUp(id)
}

// Wheel applies an immediate zoom independent of pointer state.
func (c *Controller) Wheel(deltaY float64) {
	c.viewport.ZoomBy(1 - deltaY*WheelZoomRate)
}

// pairDistance returns the Euclidean distance between the two active
// pointers. Only called when exactly two are active.
func (c *Controller) pairDistance() float64 {
	pts := make([]Point, 0, 2)
	for _, p := range c.active {
		pts = append(pts, p)
	}
	dx := pts[0].X - pts[1].X
	dy := pts[0].Y - pts[1].Y
	return math.Hypot(dx, dy)
}
