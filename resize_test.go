package pixpipe

import (
	"context"
	"errors"
	"testing"
)

func TestResizePolicyTarget(t *testing.T) {
	cur := Size{W: 10, H: 10}
	orig := Size{W: 20, H: 5}
	tests := []struct {
		name   string
		policy ResizePolicy
		w, h   int
		want   Size
	}{
		{"plain", ResizePolicy{}, 4, 30, Size{W: 4, H: 30}},
		{"fit only", ResizePolicy{FitOnly: true}, 4, 30, Size{W: 10, H: 30}},
		{"keep original", ResizePolicy{KeepOriginal: true}, 4, 3, Size{W: 20, H: 5}},
		{"both", ResizePolicy{FitOnly: true, KeepOriginal: true}, 4, 3, Size{W: 20, H: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Target(cur, tt.w, tt.h, orig); got != tt.want {
				t.Errorf("Target() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResizerPreserve(t *testing.T) {
	ctx := context.Background()
	buf, _ := NewBuffer(3, 3)
	buf.SetPixel(2, 2, Red)
	buf.SetPixel(0, 0, Blue)

	r := Resizer{}
	got, size, err := r.Resize(ctx, buf, 5, 2, Size{})
	if err != nil {
		t.Fatal(err)
	}
	if got != buf || size != (Size{W: 5, H: 2}) {
		t.Fatalf("in place resize returned %p %v", got, size)
	}
	if buf.ReadPixel(0, 0) != Blue || buf.ReadPixel(4, 1) != None {
		t.Error("preserve should keep the overlap and pad with None")
	}
}

func TestResizerNewInstance(t *testing.T) {
	ctx := context.Background()
	buf, _ := NewBuffer(2, 2)
	buf.Clear(Green)
	buf.SetPolicy(IndexWrap)

	r := Resizer{Policy: ResizePolicy{NewInstance: true}}
	nb, size, err := r.Resize(ctx, buf, 3, 3, Size{})
	if err != nil {
		t.Fatal(err)
	}
	defer nb.Release()
	if nb == buf || buf.Size() != (Size{W: 2, H: 2}) {
		t.Error("new instance must leave the input untouched")
	}
	if size != (Size{W: 3, H: 3}) || nb.ReadPixel(1, 1) != Green || nb.ReadPixel(2, 2) != None {
		t.Errorf("new buffer %v content wrong", size)
	}
	if nb.Policy() != IndexWrap {
		t.Error("index policy should carry over")
	}

	same, _, _ := r.Resize(ctx, buf, 2, 2, Size{})
	if same == buf {
		t.Error("same size with new instance should clone")
	}
	same.Release()
}

func TestResizerErrors(t *testing.T) {
	ctx := context.Background()
	buf, _ := NewBuffer(2, 2)

	if _, _, err := (Resizer{}).Resize(ctx, buf, 0, 5, Size{}); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero width = %v, want ErrInvalidDimensions", err)
	}
	rescale := Resizer{Policy: ResizePolicy{Strategy: Rescale}}
	if _, _, err := rescale.Resize(ctx, buf, 4, 4, Size{}); !errors.Is(err, ErrNoTransformer) {
		t.Errorf("rescale without transformer = %v, want ErrNoTransformer", err)
	}
	rescale.Transformer = &fakeTransformer{err: errors.New("boom")}
	if _, _, err := rescale.Resize(ctx, buf, 4, 4, Size{}); !errors.Is(err, ErrTransformFailed) {
		t.Errorf("failing transformer = %v, want ErrTransformFailed", err)
	}

	buf.Release()
	if _, _, err := (Resizer{}).Resize(ctx, buf, 4, 4, Size{}); !errors.Is(err, ErrReleased) {
		t.Errorf("released = %v, want ErrReleased", err)
	}
}

func TestResizerRescale(t *testing.T) {
	ctx := context.Background()
	buf, _ := NewBuffer(2, 2)
	tr := &fakeTransformer{fill: Red, size: Size{W: 5, H: 3}}
	r := Resizer{Policy: ResizePolicy{Strategy: Rescale, Interp: Bilinear}, Transformer: tr}

	got, size, err := r.Resize(ctx, buf, 4, 4, Size{})
	if err != nil {
		t.Fatal(err)
	}
	// The achieved size comes from the transformer, not the request.
	if got != buf || size != (Size{W: 5, H: 3}) || buf.Size() != size {
		t.Errorf("size = %v, buffer %v", size, buf.Size())
	}
	if buf.ReadPixel(4, 2) != Red {
		t.Error("rescaled pixels not adopted")
	}
	req := tr.calls[0]
	if req.Width != 4 || req.Height != 4 || req.Interp != Bilinear {
		t.Errorf("request = %+v", req)
	}
}
