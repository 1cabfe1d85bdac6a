package view

// Transform is the pan/zoom state applied uniformly to the rendered
// layout. Scale is always within [MinScale, MaxScale].
type Transform struct {
	PanX  float64
	PanY  float64
	Scale float64
}

// Scale clamp bounds and the fixed initial transform.
const (
	MinScale = 0.1
	MaxScale = 5.0

	initialPanX  = 50
	initialPanY  = 150
	initialScale = 0.8
)

// InitialTransform returns the transform used at startup and after a
// reset: the diagram nudged away from the screen origin and slightly
// zoomed out.
func InitialTransform() Transform {
	return Transform{PanX: initialPanX, PanY: initialPanY, Scale: initialScale}
}

// Panned returns a copy shifted by (dx, dy). Pan is unbounded; the
// canvas is conceptually infinite.
func (t Transform) Panned(dx, dy float64) Transform {
	t.PanX += dx
	t.PanY += dy
	return t
}

// Zoomed returns a copy with the scale multiplied by factor and
// clamped to [MinScale, MaxScale]. Zoom is applied around the pan
// origin, not the pointer position, so content can appear to shift
// while zooming.
func (t Transform) Zoomed(factor float64) Transform {
	t.Scale = clamp(t.Scale*factor, MinScale, MaxScale)
	return t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Apply maps a layout-space point to screen space.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.PanX + x*t.Scale, t.PanY + y*t.Scale
}

// TransformStore holds the current viewport transform and notifies a
// subscriber when it changes. Mutations replace the snapshot.
type TransformStore struct {
	current    Transform
	subscriber func(Transform)
}

// NewTransformStore creates a store holding the initial transform.
func NewTransformStore() *TransformStore {
	return &TransformStore{current: InitialTransform()}
}

// Current returns the current snapshot.
func (s *TransformStore) Current() Transform {
	return s.current
}

// Pan shifts the viewport by (dx, dy).
func (s *TransformStore) Pan(dx, dy float64) {
	s.set(s.current.Panned(dx, dy))
}

// ZoomBy multiplies the scale by factor, clamped to the scale bounds.
func (s *TransformStore) ZoomBy(factor float64) {
	s.set(s.current.Zoomed(factor))
}

// Reset restores the initial transform.
func (s *TransformStore) Reset() {
	s.set(InitialTransform())
}

// Subscribe registers fn to be called after every change. Only one
// subscriber is supported; a later call replaces the earlier one.
func (s *TransformStore) Subscribe(fn func(Transform)) {
	s.subscriber = fn
}

func (s *TransformStore) set(next Transform) {
	s.current = next
	if s.subscriber != nil {
		s.subscriber(next)
	}
}
