package pixpipe

import (
	"image"
	"image/color"
	"testing"
)

// runColors resolves a run through ColorRun with the ColorAt fallback,
// the way render passes do.
func runColors(p Pen, start, end, axis int, horizontal bool) []uint32 {
	colors, off, n := p.ColorRun(start, end, axis, horizontal)
	out := make([]uint32, end-start)
	for i := range out {
		switch {
		case i < n:
			out[i] = colors[off+i]
		case horizontal:
			out[i] = p.ColorAt(start+i, axis)
		default:
			out[i] = p.ColorAt(axis, start+i)
		}
	}
	return out
}

func checkRunMatchesAt(t *testing.T, name string, p Pen, start, end, axis int, horizontal bool) {
	t.Helper()
	got := runColors(p, start, end, axis, horizontal)
	for i, c := range got {
		x, y := start+i, axis
		if !horizontal {
			x, y = axis, start+i
		}
		if want := p.ColorAt(x, y); c != want {
			t.Errorf("%s: run[%d] = %#08x, ColorAt(%d,%d) = %#08x", name, i, c, x, y, want)
		}
	}
}

func TestSolidPen(t *testing.T) {
	p := SolidPen(Red)
	if p.ColorAt(100, -5) != Red {
		t.Error("SolidPen.ColorAt")
	}
	colors, off, n := p.ColorRun(3, 7, 0, true)
	if off != 0 || n != 4 || len(colors) != 4 || colors[3] != Red {
		t.Errorf("ColorRun = %v, %d, %d", colors, off, n)
	}
	if _, _, n := p.ColorRun(5, 5, 0, true); n != 0 {
		t.Error("empty run should have no colors")
	}
}

func TestFuncPen(t *testing.T) {
	p := FuncPen(func(x, y int) uint32 { return 0xFF000000 | uint32(x)<<8 | uint32(y) })
	checkRunMatchesAt(t, "horizontal", p, 2, 6, 3, true)
	checkRunMatchesAt(t, "vertical", p, 0, 4, 9, false)
}

func TestBufferPen(t *testing.T) {
	src, _ := NewBuffer(3, 2)
	for i := range src.Pix() {
		src.Pix()[i] = 0xFF000000 | uint32(i+1)
	}

	p := &BufferPen{Src: src, Origin: image.Pt(10, 20)}
	if got := p.ColorAt(11, 21); got != src.ReadPixel(1, 1) {
		t.Errorf("ColorAt = %#08x", got)
	}
	if p.ColorAt(0, 0) != None {
		t.Error("outside an untiled source should be None")
	}

	colors, off, n := p.ColorRun(11, 20, 20, true)
	if off != 1 || n != 2 || colors[off] != src.ReadPixel(1, 0) {
		t.Errorf("row view = %v, %d, %d", colors, off, n)
	}
	checkRunMatchesAt(t, "row overflow", p, 11, 20, 20, true)
	checkRunMatchesAt(t, "starts left", p, 8, 12, 21, true)
	checkRunMatchesAt(t, "vertical", p, 19, 23, 12, false)

	tiled := &BufferPen{Src: src, Tile: true}
	if tiled.ColorAt(3, 2) != src.ReadPixel(0, 0) || tiled.ColorAt(-1, -1) != src.ReadPixel(2, 1) {
		t.Error("tiled pen does not repeat")
	}
	checkRunMatchesAt(t, "tiled", tiled, -4, 7, 5, true)
}

func TestImagePen(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})
	p := ImagePen{Src: img, Offset: image.Pt(5, 5)}
	if p.ColorAt(6, 5) != Red {
		t.Errorf("ColorAt = %#08x", p.ColorAt(6, 5))
	}
	if p.ColorAt(1, 0) != None {
		t.Error("ColorAt outside the image should be None")
	}
	checkRunMatchesAt(t, "image", p, 4, 8, 5, true)
}

func TestScaledPen(t *testing.T) {
	src, _ := NewBuffer(2, 1)
	src.SetPixel(0, 0, Red)
	src.SetPixel(1, 0, Blue)

	p := ScaledPen{Src: src, Dst: Rect{X: 10, Y: 0, W: 4, H: 2}, Interp: Nearest}
	want := []uint32{Red, Red, Blue, Blue}
	for i, w := range want {
		if got := p.ColorAt(10+i, 1); got != w {
			t.Errorf("nearest x=%d: %#08x, want %#08x", 10+i, got, w)
		}
	}
	if p.ColorAt(9, 0) != None || p.ColorAt(14, 0) != None {
		t.Error("outside Dst should be None")
	}

	p.Interp = Bilinear
	mid := p.ColorAt(11, 0)
	if mid == Red || mid == Blue || Alpha(mid) != 0xFF {
		t.Errorf("bilinear midpoint = %#08x, want a mix", mid)
	}
	checkRunMatchesAt(t, "scaled", p, 8, 16, 1, true)
}
