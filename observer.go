package pixpipe

// BoundaryObserver receives dirty rectangles after each render pass.
type BoundaryObserver interface {
	Update(r Rect)
}

// ObserverFunc adapts a function to BoundaryObserver.
type ObserverFunc func(r Rect)

// Update implements BoundaryObserver.
func (f ObserverFunc) Update(r Rect) { f(r) }

// ObserverKind selects which rectangle an observer receives.
type ObserverKind uint8

const (
	// Incremental observers receive the rectangle touched by the pass.
	Incremental ObserverKind = iota
	// Absolute observers receive the cumulative rectangle: everything
	// painted by persistent passes plus the current pass.
	Absolute
)

// String returns the kind name.
func (k ObserverKind) String() string {
	if k == Absolute {
		return "absolute"
	}
	return "incremental"
}

// Target is a screen that shows a canvas buffer. Present is called with
// the dirty rectangle of every Screen pass, clipped to the buffer.
type Target interface {
	Present(buf *Buffer, r Rect) error
}
