package main

import (
	"context"
	"fmt"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/pixpipe"
	"github.com/gogpu/pixpipe/scan"
	"github.com/gogpu/pixpipe/transform"
)

type step struct {
	name string
	req  pixpipe.Request
}

type totals struct {
	passes int
	stats  pixpipe.Stats
	dirty  pixpipe.Rect
}

func (t *totals) add(res pixpipe.Result) {
	t.passes++
	t.stats = t.stats.Add(res.Stats)
}

// renderScene draws the demo scene and returns the canvas, which the
// caller closes.
func renderScene(ctx context.Context, c *CLI) (*pixpipe.Canvas, totals, error) {
	var sum totals
	canvas, err := pixpipe.NewCanvas(c.Width, c.Height,
		pixpipe.WithBackground(pixpipe.SolidPen(c.bkg)),
		pixpipe.WithTransformer(transform.New()),
		pixpipe.WithObserver(pixpipe.Absolute, pixpipe.ObserverFunc(func(r pixpipe.Rect) {
			sum.dirty = r
		})),
	)
	if err != nil {
		return nil, sum, err
	}
	canvas.Clear(c.bkg)

	w, h := float32(c.Width), float32(c.Height)
	gradient := pixpipe.FuncPen(func(x, y int) uint32 {
		r := uint8(clamp(x * 255 / max(c.Width, 1)))
		g := uint8(clamp(y * 255 / max(c.Height, 1)))
		return pixpipe.Pack(0xFF, r, g, 0xC0)
	})

	steps := []step{
		{"triangle", pixpipe.Request{
			Config: pixpipe.Config{Persistent: true},
			Shape:  scan.Polygon([]f32.Vec2{{w * 0.1, h * 0.9}, {w * 0.5, h * 0.1}, {w * 0.9, h * 0.9}}),
			Fill:   gradient,
		}},
		{"glass panel", pixpipe.Request{
			Config: pixpipe.Config{Persistent: true, Backdrop: true, KeepBorderOnBackdrop: true},
			Shape:  alphaRect(pixpipe.Rect{X: c.Width / 8, Y: c.Height / 8, W: c.Width / 3, H: c.Height / 3}, 140),
			Fill:   pixpipe.SolidPen(pixpipe.White),
		}},
		{"frame", pixpipe.Request{
			Config: pixpipe.Config{Persistent: true, XORFill: true},
			Shape:  scan.Columns(pixpipe.Rect{X: c.Width - c.Width/6, Y: 0, W: 2, H: c.Height}),
			Fill:   pixpipe.SolidPen(0xFF00FFFF),
		}},
		{"outline", pixpipe.Request{
			Config: pixpipe.Config{Persistent: true, InvertColor: true},
			Shape:  scan.Outline(pixpipe.Rect{X: 2, Y: 2, W: c.Width - 4, H: c.Height - 4}),
			Stroke: pixpipe.SolidPen(pixpipe.Black),
		}},
		{"diagonal", pixpipe.Request{
			Config: pixpipe.Config{Persistent: true},
			Shape:  scan.Line(0, float64(h)-1, float64(w)-1, 0),
			Stroke: pixpipe.SolidPen(pixpipe.Red),
		}},
		{"stamp", pixpipe.Request{
			Config: pixpipe.Config{Persistent: true, SizeToFit: c.Grow},
			Image: &pixpipe.ImageBlit{
				Src:      checker(8, 4),
				Region:   pixpipe.Region{DstX: c.Width / 2, DstY: c.Height / 2},
				Alpha:    220,
				HasAlpha: true,
				Scale:    2,
				Rotation: c.Rotate,
				Interp:   c.interp,
			},
		}},
	}
	if c.Grow {
		// Reaches past the bottom-right corner.
		steps = append(steps, step{"overflow", pixpipe.Request{
			Config: pixpipe.Config{Persistent: true, SizeToFit: true},
			Shape:  scan.Rect(pixpipe.Rect{X: c.Width - 8, Y: c.Height - 8, W: 24, H: 24}),
			Fill:   pixpipe.SolidPen(0xFF40C040),
		}})
	}

	for _, s := range steps {
		res, err := canvas.Render(ctx, s.req)
		if s.req.Image != nil {
			s.req.Image.Src.Release()
		}
		if err != nil {
			canvas.Close()
			return nil, sum, fmt.Errorf("render %s: %w", s.name, err)
		}
		sum.add(res)
	}
	return canvas, sum, nil
}

// alphaRect returns the runs of r with coverage alpha.
func alphaRect(r pixpipe.Rect, alpha float32) *pixpipe.Scan {
	s := scan.Rect(r)
	for i := range s.Fill {
		s.Fill[i] = s.Fill[i].WithAlpha(alpha)
	}
	return s
}

// checker returns an n x n board of cell-sized squares.
func checker(n, cell int) *pixpipe.Buffer {
	b, _ := pixpipe.NewBuffer(n*cell, n*cell)
	for y := range b.Height() {
		for x := range b.Width() {
			c := uint32(0xFFF0F0F0)
			if (x/cell+y/cell)%2 == 1 {
				c = 0xFF3050A0
			}
			b.SetPixel(x, y, c)
		}
	}
	return b
}

func clamp(v int) int {
	return min(max(v, 0), 255)
}
