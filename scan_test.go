package pixpipe

import "testing"

func TestScanRunGeometry(t *testing.T) {
	h := HRun(2, 5, 3)
	if x, y := h.Pos(2); x != 7 || y != 2 {
		t.Errorf("HRun Pos(2) = %d,%d", x, y)
	}
	v := VRun(2, 5, 3)
	if x, y := v.Pos(2); x != 2 || y != 7 {
		t.Errorf("VRun Pos(2) = %d,%d", x, y)
	}
	if h.End() != 8 {
		t.Errorf("End = %d", h.End())
	}

	th := h.Translate(1, 10)
	if x, y := th.Pos(0); x != 6 || y != 12 {
		t.Errorf("translated HRun starts at %d,%d", x, y)
	}
	tv := v.Translate(1, 10)
	if x, y := tv.Pos(0); x != 3 || y != 15 {
		t.Errorf("translated VRun starts at %d,%d", x, y)
	}
}

func TestAlphaByte(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-4, 0},
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{127.6, 128},
		{255, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := HRun(0, 0, 1).WithAlpha(tt.in).AlphaByte(); got != tt.want {
			t.Errorf("AlphaByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
		if got := (PointRun{Alpha: tt.in}).AlphaByte(); got != tt.want {
			t.Errorf("PointRun AlphaByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if HRun(0, 0, 1).AlphaByte() != 255 {
		t.Error("run without alpha should be opaque")
	}
}

func TestScanBounds(t *testing.T) {
	var s Scan
	if !s.Bounds().Empty() {
		t.Error("empty scan should have empty bounds")
	}
	s.AddRun(HRun(1, 2, 3), VRun(0, -1, 2))
	s.AddPoint(PointRun{X: 9, Y: 4, Alpha: 255})

	if got := s.Bounds().Rect(); got != (Rect{X: 0, Y: -1, W: 10, H: 6}) {
		t.Errorf("Bounds = %v", got)
	}
	n := 0
	for range s.Runs() {
		n++
	}
	for range s.Points() {
		n++
	}
	if n != 3 {
		t.Errorf("iterated %d items, want 3", n)
	}
}
