package pixpipe

import (
	"fmt"
	"strings"

	"github.com/gogpu/pixpipe/internal/blend"
)

// Config selects what a render pass does. It is a value type and is copied
// per call.
type Config struct {
	// Screen presents the dirty rectangle to the canvas target.
	Screen bool
	// SkipFill skips scan runs.
	SkipFill bool
	// SkipDraw skips stroke points.
	SkipDraw bool
	// Backdrop assigns instead of blending where the destination still
	// equals the background pen.
	Backdrop bool
	// KeepBorderOnBackdrop blends backdrop pixels that touch painted
	// content, smoothing the seam.
	KeepBorderOnBackdrop bool
	// Transparent decides every pixel and tracks the boundary but writes
	// nothing.
	Transparent bool
	// InvertColor paints the inverse of the destination color.
	InvertColor bool
	// SwapRB exchanges red and blue of source colors.
	SwapRB bool
	// SizeToFit grows the buffer so the shape fits before writing.
	SizeToFit bool
	// FullView shifts the shape so its negative extents land at 0.
	FullView bool
	// NoClip hands every coordinate to the buffer's IndexPolicy instead of
	// discarding out-of-range pixels first.
	NoClip bool
	// Persistent merges the pass boundary into the canvas cumulative boundary.
	Persistent bool
	// XORFill xors fill runs into the destination.
	XORFill bool
	// Calculate only measures the shape.
	Calculate bool
	// HoverBorder draws stroke points with the destination color itself.
	HoverBorder bool
	// InvertBorder toggles InvertColor and Transparent for stroke points.
	InvertBorder bool
}

// Command is the bitmask form of Config.
type Command uint32

// Command flags, one per Config field.
const (
	CmdScreen Command = 1 << iota
	CmdSkipFill
	CmdSkipDraw
	CmdBackdrop
	CmdKeepBorderOnBackdrop
	CmdTransparent
	CmdInvertColor
	CmdSwapRB
	CmdSizeToFit
	CmdFullView
	CmdNoClip
	CmdPersistent
	CmdXORFill
	CmdCalculate
	CmdHoverBorder
	CmdInvertBorder

	cmdLast
)

var commandNames = [...]string{
	"Screen", "SkipFill", "SkipDraw", "Backdrop", "KeepBorderOnBackdrop",
	"Transparent", "InvertColor", "SwapRB", "SizeToFit", "FullView",
	"NoClip", "Persistent", "XORFill", "Calculate", "HoverBorder",
	"InvertBorder",
}

// fields lists the Config flags in Command bit order.
func (c *Config) fields() [len(commandNames)]*bool {
	return [...]*bool{
		&c.Screen, &c.SkipFill, &c.SkipDraw, &c.Backdrop, &c.KeepBorderOnBackdrop,
		&c.Transparent, &c.InvertColor, &c.SwapRB, &c.SizeToFit, &c.FullView,
		&c.NoClip, &c.Persistent, &c.XORFill, &c.Calculate, &c.HoverBorder,
		&c.InvertBorder,
	}
}

// Config expands the bitmask. Unknown bits are ignored.
func (m Command) Config() Config {
	var c Config
	for i, f := range c.fields() {
		*f = m&(1<<i) != 0
	}
	return c
}

// Command packs c into a bitmask.
func (c Config) Command() Command {
	var m Command
	for i, f := range c.fields() {
		if *f {
			m |= 1 << i
		}
	}
	return m
}

// Has reports whether every bit of flag is set.
func (m Command) Has(flag Command) bool {
	return m&flag == flag
}

// String lists the set flags joined by '|', or "0".
func (m Command) String() string {
	if m == 0 {
		return "0"
	}
	var parts []string
	for i, name := range commandNames {
		if m&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if rest := m &^ (cmdLast - 1); rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// PassPlan describes one writing pass.
type PassPlan struct {
	Enabled     bool
	Invert      bool // source is the inverse of the destination color
	Transparent bool // decide but do not write
	Hover       bool // source is the destination color
	SwapRB      bool
	Mode        blend.Mode
}

// Plan is the resolved form of a Config, computed once per pass.
type Plan struct {
	// Measure runs a boundary-only pass before writing.
	Measure bool
	// CalculateOnly stops after measuring.
	CalculateOnly bool
	// MeasureFill and MeasureDraw select what the measuring pass covers.
	MeasureFill bool
	MeasureDraw bool

	Fill PassPlan
	Draw PassPlan

	Grow     bool // SizeToFit
	FullView bool
	Clip     bool
	Persist  bool
	Screen   bool
}

// Resolve derives the secondary flags. It is pure.
//
// Calculate is implied when both SkipFill and SkipDraw are set. A
// measuring pass covers fill runs unless SkipFill is set and stroke points
// unless SkipDraw is set. With both set it covers both.
func (c Config) Resolve() Plan {
	calculate := c.Calculate || (c.SkipFill && c.SkipDraw)
	bothSkipped := c.SkipFill && c.SkipDraw

	p := Plan{
		Measure:       calculate || c.SizeToFit || c.FullView,
		CalculateOnly: calculate,
		MeasureFill:   !c.SkipFill || bothSkipped,
		MeasureDraw:   !c.SkipDraw || bothSkipped,
		Grow:          c.SizeToFit && !calculate,
		FullView:      c.FullView && !calculate,
		Clip:          !c.NoClip,
		Persist:       c.Persistent,
		Screen:        c.Screen,
	}

	mode := blend.Mode{Backdrop: c.Backdrop, KeepBorder: c.Backdrop && c.KeepBorderOnBackdrop}

	p.Fill = PassPlan{
		Enabled:     !c.SkipFill && !calculate,
		Invert:      c.InvertColor,
		Transparent: c.Transparent,
		SwapRB:      c.SwapRB,
		Mode:        mode,
	}
	p.Fill.Mode.Xor = c.XORFill

	p.Draw = PassPlan{
		Enabled:     !c.SkipDraw && !calculate,
		Invert:      c.InvertColor != c.InvertBorder,
		Transparent: c.Transparent != c.InvertBorder,
		Hover:       c.HoverBorder,
		SwapRB:      c.SwapRB,
		Mode:        mode,
	}
	return p
}
