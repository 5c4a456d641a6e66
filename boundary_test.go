package pixpipe

import (
	"image"
	"testing"
)

func bnd(pts ...[2]int) Boundary {
	var b Boundary
	for _, p := range pts {
		b.Notify(p[0], p[1])
	}
	return b
}

func TestBoundaryEmpty(t *testing.T) {
	var b Boundary
	if !b.Empty() {
		t.Error("zero Boundary should be empty")
	}
	if r := b.Rect(); r != (Rect{}) || !r.Empty() {
		t.Errorf("empty Rect = %v", r)
	}
	b.Notify(0, 0)
	if b.Empty() {
		t.Error("Notify(0, 0) should leave the boundary non-empty")
	}
	if r := b.Rect(); r != (Rect{X: 0, Y: 0, W: 1, H: 1}) {
		t.Errorf("single pixel Rect = %v", r)
	}
	b.Reset()
	if !b.Empty() {
		t.Error("Reset should empty the boundary")
	}
}

func TestBoundaryNegative(t *testing.T) {
	b := bnd([2]int{-3, -2}, [2]int{-1, -1})
	if r := b.Rect(); r != (Rect{X: -3, Y: -2, W: 3, H: 2}) {
		t.Errorf("Rect = %v", r)
	}
}

func TestBoundaryExtremes(t *testing.T) {
	// Diamond: left (0,2), top (2,0), right (4,2), bottom (2,4).
	b := bnd([2]int{2, 0}, [2]int{0, 2}, [2]int{4, 2}, [2]int{2, 4})
	x1, y1, x2, y2 := b.Corners()
	if x1 != 0 || y1 != 0 || x2 != 4 || y2 != 4 {
		t.Fatalf("Corners = %d,%d %d,%d", x1, y1, x2, y2)
	}
	want := Extremes{MinXAtY: 2, MinYAtX: 2, MaxXAtY: 2, MaxYAtX: 2}
	if got := b.Extremes(); got != want {
		t.Errorf("Extremes = %+v, want %+v", got, want)
	}
}

func TestBoundaryCompanionKeepsFirst(t *testing.T) {
	// Two pixels share the minimum x; the first one wins.
	b := bnd([2]int{1, 5}, [2]int{1, 7}, [2]int{3, 6})
	if got := b.Extremes().MinXAtY; got != 5 {
		t.Errorf("MinXAtY = %d, want 5", got)
	}
	if got := b.Extremes().MaxXAtY; got != 6 {
		t.Errorf("MaxXAtY = %d, want 6", got)
	}
	if got := b.Extremes().MaxYAtX; got != 1 {
		t.Errorf("MaxYAtX = %d, want 1", got)
	}
}

func TestNotifyRunMatchesPixels(t *testing.T) {
	runs := []ScanRun{HRun(3, -2, 6), VRun(7, 1, 4), HRun(0, 5, 1), VRun(-1, 9, 3)}
	for _, r := range runs {
		var fast, slow Boundary
		fast.Notify(4, 4)
		slow.Notify(4, 4)
		fast.NotifyRun(r)
		for i := range r.Length {
			slow.Notify(r.Pos(i))
		}
		if fast != slow {
			t.Errorf("NotifyRun(%+v) = %v %+v, want %v %+v", r, fast, fast.Extremes(), slow, slow.Extremes())
		}
	}

	var b Boundary
	b.NotifyRun(HRun(0, 0, 0))
	if !b.Empty() {
		t.Error("zero-length run should not touch the boundary")
	}
}

func TestBoundaryMergeIdentity(t *testing.T) {
	samples := []Boundary{
		{},
		bnd([2]int{0, 0}),
		bnd([2]int{2, 3}, [2]int{5, 1}),
		bnd([2]int{-4, 9}, [2]int{6, -2}, [2]int{6, 9}),
	}
	for i, b := range samples {
		if got := b.Merge(Boundary{}); got != b {
			t.Errorf("sample %d: Merge(empty) = %v, want %v", i, got, b)
		}
		if got := (Boundary{}).Merge(b); got != b {
			t.Errorf("sample %d: empty.Merge = %v, want %v", i, got, b)
		}
	}
}

func TestBoundaryMergeAssociative(t *testing.T) {
	samples := []Boundary{
		{},
		bnd([2]int{0, 0}),
		bnd([2]int{1, 1}, [2]int{3, 3}),
		bnd([2]int{0, 2}, [2]int{3, 0}),
		bnd([2]int{-1, 1}, [2]int{1, -1}),
		bnd([2]int{0, 5}, [2]int{3, 3}),
		bnd([2]int{3, 3}, [2]int{0, 5}),
	}
	for i, a := range samples {
		for j, b := range samples {
			for k, c := range samples {
				left := a.Merge(b).Merge(c)
				right := a.Merge(b.Merge(c))
				if left != right {
					t.Errorf("(%d,%d,%d): %v %+v != %v %+v", i, j, k,
						left, left.Extremes(), right, right.Extremes())
				}
			}
		}
	}
}

func TestBoundaryMergeUnion(t *testing.T) {
	a := bnd([2]int{1, 1}, [2]int{2, 2})
	b := bnd([2]int{5, 0}, [2]int{6, 1})
	if r := a.Merge(b).Rect(); r != (Rect{X: 1, Y: 0, W: 6, H: 3}) {
		t.Errorf("Merge Rect = %v", r)
	}
}

func TestBoundaryOffset(t *testing.T) {
	b := bnd([2]int{-2, 1}, [2]int{3, -4}).Offset(2, 4)
	x1, y1, x2, y2 := b.Corners()
	if x1 != 0 || y1 != 0 || x2 != 5 || y2 != 5 {
		t.Errorf("Corners = %d,%d %d,%d", x1, y1, x2, y2)
	}
	if e := b.Extremes(); e.MinXAtY != 5 || e.MinYAtX != 5 {
		t.Errorf("Extremes = %+v", e)
	}
	if !(Boundary{}).Offset(3, 3).Empty() {
		t.Error("Offset of empty boundary should stay empty")
	}
}

func TestRectOps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 4, H: 4}
	b := Rect{X: 2, Y: 3, W: 5, H: 5}
	if got := a.Intersect(b); got != (Rect{X: 2, Y: 3, W: 2, H: 1}) {
		t.Errorf("Intersect = %v", got)
	}
	if got := a.Intersect(Rect{X: 9, Y: 9, W: 1, H: 1}); got != (Rect{}) {
		t.Errorf("disjoint Intersect = %v", got)
	}
	if got := a.Union(b); got != (Rect{X: 0, Y: 0, W: 7, H: 8}) {
		t.Errorf("Union = %v", got)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union with empty = %v", got)
	}
	if got := RectFromImage(image.Rect(1, 2, 4, 6)); got != (Rect{X: 1, Y: 2, W: 3, H: 4}) {
		t.Errorf("RectFromImage = %v", got)
	}
	if got := b.Image(); got != image.Rect(2, 3, 7, 8) {
		t.Errorf("Image = %v", got)
	}
}
