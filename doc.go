// Package pixpipe is a software 2D rasterization and compositing core.
//
// # Overview
//
// pixpipe turns scan-converted geometry into pixel writes on an in-memory
// packed ARGB buffer. Filled shapes arrive as horizontal or vertical runs
// ([ScanRun]), stroked outlines as single points ([PointRun]), and images
// as buffers to blit. Each pixel is composited with integer alpha math and
// the touched area is reported as a dirty rectangle for incremental screen
// updates.
//
// # Quick Start
//
//	c, err := pixpipe.NewCanvas(64, 64)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	var sh pixpipe.Scan
//	sh.AddRun(pixpipe.HRun(10, 4, 20), pixpipe.HRun(11, 4, 20))
//
//	res, err := c.Render(ctx, pixpipe.Request{
//	    Shape: &sh,
//	    Fill:  pixpipe.SolidPen(pixpipe.Red),
//	})
//	// res.Dirty is (4,10 20x2)
//
// The scan sub-package builds runs from rectangles, alpha masks, polygons
// and lines. The transform sub-package rotates and scales images, and the
// surface sub-package uploads dirty rectangles to a GPU texture.
//
// # Pixel Format
//
// A pixel is A<<24 | R<<16 | G<<8 | B in a uint32, not premultiplied. The
// value 0 (None) marks "no pixel": sources equal to None are never
// written. Byte import and export use 4 little-endian bytes per pixel,
// which is B, G, R, A in memory; with swapRB it is R, G, B, A.
//
// # Render Passes
//
// [Canvas.Render] resolves a [Config] into a [Plan], optionally measures
// the shape and grows the buffer, then runs the fill, stroke and image
// passes and publishes the dirty rectangle to observers and the screen
// target.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Rotation angles in degrees, clockwise
package pixpipe
