package pixpipe

// Option configures a Canvas during creation.
//
// Example:
//
//	// Plain offscreen canvas
//	c, err := pixpipe.NewCanvas(800, 600)
//
//	// Canvas that presents to a screen target and reports dirty rects
//	c, err := pixpipe.NewCanvas(800, 600,
//	    pixpipe.WithTarget(screen),
//	    pixpipe.WithObserver(pixpipe.Incremental, tracker))
type Option func(*options)

// options holds optional configuration for Canvas creation.
type options struct {
	buffer      *Buffer
	background  Pen
	transformer ImageTransformer
	target      Target
	incremental []BoundaryObserver
	absolute    []BoundaryObserver
	resize      ResizePolicy
	index       IndexPolicy
	indexSet    bool
	original    Size
}

// defaultOptions returns the default canvas options.
func defaultOptions() options {
	return options{
		resize: ResizePolicy{Strategy: Preserve},
	}
}

// WithBuffer renders into an existing buffer instead of allocating one.
// The canvas does not release it on Close.
func WithBuffer(b *Buffer) Option {
	return func(o *options) {
		o.buffer = b
	}
}

// WithBackground sets the pen that describes the unpainted background.
// Backdrop passes compare the destination against it.
func WithBackground(p Pen) Option {
	return func(o *options) {
		o.background = p
	}
}

// WithTransformer sets the collaborator used to rotate and scale image
// blits and to rescale the buffer.
func WithTransformer(t ImageTransformer) Option {
	return func(o *options) {
		o.transformer = t
	}
}

// WithTarget sets the screen presented by Screen passes.
func WithTarget(t Target) Option {
	return func(o *options) {
		o.target = t
	}
}

// WithObserver registers a boundary observer. May be given several times.
func WithObserver(kind ObserverKind, obs BoundaryObserver) Option {
	return func(o *options) {
		if kind == Absolute {
			o.absolute = append(o.absolute, obs)
		} else {
			o.incremental = append(o.incremental, obs)
		}
	}
}

// WithResizePolicy sets the policy used by Canvas.Resize.
func WithResizePolicy(p ResizePolicy) Option {
	return func(o *options) {
		o.resize = p
	}
}

// WithIndexPolicy sets the index policy of the canvas buffer.
func WithIndexPolicy(p IndexPolicy) Option {
	return func(o *options) {
		o.index = p
		o.indexSet = true
	}
}

// WithOriginalSize sets the floor for KeepOriginal resizes. It defaults to
// the size at construction.
func WithOriginalSize(s Size) Option {
	return func(o *options) {
		o.original = s
	}
}
