package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/pixpipe"
)

// CLI holds the command line of pixdemo.
type CLI struct {
	Width      int     `help:"Canvas width in pixels" default:"320"`
	Height     int     `help:"Canvas height in pixels" default:"240"`
	Output     string  `help:"Output file" short:"o" default:"pixdemo.png"`
	Format     string  `help:"Output format; auto picks it from the file extension" enum:"auto,png,bmp,tiff" default:"auto"`
	Background string  `help:"Background color as #RGB, #RGBA, #RRGGBB or #RRGGBBAA" default:"#1e2430"`
	Rotate     float64 `help:"Rotation of the stamped image in degrees, clockwise" default:"30"`
	Interp     string  `help:"Interpolation of the stamped image" enum:"nearest,bilinear,bicubic" default:"bilinear"`
	Grow       bool    `help:"Let the scene grow the canvas to fit everything it draws" default:"false"`
	Lang       string  `help:"Language tag used to format statistics" default:"en"`
	Verbose    bool    `help:"Log render passes" short:"v" default:"false"`

	bkg    uint32                `kong:"-"`
	interp pixpipe.Interpolation `kong:"-"`
	tag    language.Tag          `kong:"-"`
	out    io.Writer             `kong:"-"`
}

// Validate implements kong's validation hook.
func (c *CLI) Validate(kctx *kong.Context) error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	}

	bkg, err := pixpipe.ParseHex(c.Background)
	if err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}
	c.bkg = bkg

	if c.Format == "" || c.Format == "auto" {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Output)), ".")
		switch ext {
		case "png", "bmp":
			c.Format = ext
		case "tif", "tiff":
			c.Format = "tiff"
		default:
			return fmt.Errorf("cannot infer format from %q, use --format", c.Output)
		}
	}

	switch c.Interp {
	case "nearest":
		c.interp = pixpipe.Nearest
	case "bicubic":
		c.interp = pixpipe.Bicubic
	default:
		c.interp = pixpipe.Bilinear
	}

	tag, err := language.Parse(c.Lang)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", c.Lang, err)
	}
	c.tag = tag
	return nil
}

// Run renders the scene and writes the output file.
func (c *CLI) Run() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	pixpipe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	defer pixpipe.SetLogger(nil)

	canvas, totals, err := renderScene(context.Background(), c)
	if err != nil {
		return err
	}
	defer canvas.Close()

	if err := save(canvas.Buffer().ToNRGBA(), c.Format, c.Output); err != nil {
		return err
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	p := message.NewPrinter(c.tag)
	size := canvas.Size()
	p.Fprintf(out, "%s: %dx%d, %d passes\n", c.Output, size.W, size.H, totals.passes)
	p.Fprintf(out, "written %d, skipped %d, suppressed %d, dropped %d\n",
		totals.stats.Written, totals.stats.Skipped, totals.stats.Suppressed, totals.stats.Dropped)
	p.Fprintf(out, "dirty area %d pixels\n", totals.dirty.W*totals.dirty.H)
	return nil
}

func save(img image.Image, format, name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("could not close %q: %w", name, cerr)
		}
	}()

	switch format {
	case "png":
		err = png.Encode(f, img)
	case "bmp":
		err = bmp.Encode(f, img)
	case "tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("could not encode %s %q: %w", strings.ToUpper(format), name, err)
	}
	return nil
}
