package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/pixpipe"
)

func validCLI(t *testing.T, output string) *CLI {
	t.Helper()
	c := &CLI{
		Width:      64,
		Height:     48,
		Output:     output,
		Format:     "auto",
		Background: "#102030",
		Rotate:     45,
		Interp:     "bilinear",
		Lang:       "en",
	}
	if err := c.Validate(nil); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	return c
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CLI)
		wantErr bool
		format  string
	}{
		{"defaults", func(*CLI) {}, false, "png"},
		{"bmp extension", func(c *CLI) { c.Output = "x.BMP" }, false, "bmp"},
		{"tif extension", func(c *CLI) { c.Output = "x.tif" }, false, "tiff"},
		{"explicit format", func(c *CLI) { c.Output = "x.out"; c.Format = "tiff" }, false, "tiff"},
		{"unknown extension", func(c *CLI) { c.Output = "x.out" }, true, ""},
		{"zero width", func(c *CLI) { c.Width = 0 }, true, ""},
		{"bad color", func(c *CLI) { c.Background = "#12" }, true, ""},
		{"bad language", func(c *CLI) { c.Lang = "not a tag!" }, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CLI{Width: 10, Height: 10, Output: "x.png", Format: "auto", Background: "#fff", Interp: "nearest", Lang: "en"}
			tt.mutate(c)
			err := c.Validate(nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && c.Format != tt.format {
				t.Errorf("Format = %q, want %q", c.Format, tt.format)
			}
		})
	}
}

func TestValidateParsesBackground(t *testing.T) {
	c := validCLI(t, "x.png")
	if c.bkg != 0xFF102030 {
		t.Errorf("bkg = %#08x", c.bkg)
	}
	if c.interp != pixpipe.Bilinear {
		t.Errorf("interp = %v", c.interp)
	}
}

func TestRenderScene(t *testing.T) {
	c := validCLI(t, "x.png")
	canvas, sum, err := renderScene(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	defer canvas.Close()

	if sum.passes != 6 || sum.stats.Written == 0 {
		t.Errorf("totals = %+v", sum)
	}
	if sum.dirty.Empty() {
		t.Error("absolute observer saw nothing")
	}
	if canvas.Size() != (pixpipe.Size{W: 64, H: 48}) {
		t.Errorf("size = %v", canvas.Size())
	}
}

func TestRenderSceneGrow(t *testing.T) {
	c := validCLI(t, "x.png")
	c.Grow = true
	canvas, _, err := renderScene(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	defer canvas.Close()
	if s := canvas.Size(); s.W <= 64 || s.H <= 48 {
		t.Errorf("canvas did not grow: %v", s)
	}
}

func TestRunWritesFormats(t *testing.T) {
	dir := t.TempDir()
	decoders := map[string]func(*os.File) (image.Image, error){
		"scene.png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"scene.bmp":  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
		"scene.tiff": func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
	}
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			c := validCLI(t, path)
			var out bytes.Buffer
			c.out = &out
			if err := c.Run(); err != nil {
				t.Fatal(err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
				t.Errorf("bounds = %v", b)
			}
			if !strings.Contains(out.String(), "64x48, 6 passes") {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestRunStatsLocalized(t *testing.T) {
	c := validCLI(t, filepath.Join(t.TempDir(), "big.png"))
	c.Width, c.Height = 1200, 10
	c.Lang = "de"
	if err := c.Validate(nil); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	c.out = &out
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1.200x10") {
		t.Errorf("German output should group thousands with '.': %q", out.String())
	}
}
