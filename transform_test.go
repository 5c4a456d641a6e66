package pixpipe

import "testing"

func TestTransformRequestSizes(t *testing.T) {
	src, _ := NewBuffer(4, 2)
	defer src.Release()

	tests := []struct {
		name     string
		req      TransformRequest
		identity bool
		want     Size
	}{
		{"identity", TransformRequest{}, true, Size{W: 4, H: 2}},
		{"scale one", TransformRequest{Scale: 1}, true, Size{W: 4, H: 2}},
		{"scale", TransformRequest{Scale: 2}, false, Size{W: 8, H: 4}},
		{"width only", TransformRequest{Width: 8}, false, Size{W: 8, H: 4}},
		{"height only", TransformRequest{Height: 1}, false, Size{W: 2, H: 1}},
		{"both sides", TransformRequest{Width: 3, Height: 7}, false, Size{W: 3, H: 7}},
		{"crop", TransformRequest{Crop: Rect{X: 1, W: 9, H: 1}, Scale: 2}, false, Size{W: 6, H: 2}},
		{"rotate no fit", TransformRequest{Rotation: 90}, false, Size{W: 4, H: 2}},
		{"rotate 90 fit", TransformRequest{Rotation: 90, SizeToFit: true}, false, Size{W: 2, H: 4}},
		{"rotate 360 fit", TransformRequest{Rotation: 360, SizeToFit: true}, false, Size{W: 4, H: 2}},
		{"flip", TransformRequest{Flip: FlipBoth}, false, Size{W: 4, H: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Src = src
			if got := tt.req.Identity(); got != tt.identity {
				t.Errorf("Identity() = %v, want %v", got, tt.identity)
			}
			if got := tt.req.OutputSize(); got != tt.want {
				t.Errorf("OutputSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutputSizeDiagonal(t *testing.T) {
	src, _ := NewBuffer(2, 2)
	defer src.Release()
	req := TransformRequest{Src: src, Rotation: 45, SizeToFit: true}
	// 2 * sqrt(2) ~ 2.83
	if got := req.OutputSize(); got != (Size{W: 3, H: 3}) {
		t.Errorf("OutputSize() = %v, want 3x3", got)
	}
}

func TestInterpolationString(t *testing.T) {
	for in, want := range map[Interpolation]string{Nearest: "nearest", Bilinear: "bilinear", Bicubic: "bicubic"} {
		if got := in.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
