// Package transform implements pixpipe.ImageTransformer in software.
//
// A Transformer crops, scales, flips and rotates a pixpipe.Buffer with
// the interpolators of golang.org/x/image/draw. Interpolators are looked up
// by name in a gpucontext.Registry, so callers may register their own.
//
// Work runs as an awaited Task: Start launches it, Wait blocks until it
// finishes or the context is done. RotateAndScale does both.
//
//	t := transform.New()
//	canvas, err := pixpipe.NewCanvas(640, 480, pixpipe.WithTransformer(t))
package transform
