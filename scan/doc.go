// Package scan converts simple geometry into the run contract consumed by
// pixpipe.Canvas.
//
// It is not a path engine. Callers that already have rectangles, coverage
// masks, polygons or line segments use these adapters to obtain a
// *pixpipe.Scan:
//
//	sh := scan.Polygon([]f32.Vec2{{10, 10}, {90, 20}, {50, 80}})
//	res, err := canvas.Render(ctx, pixpipe.Request{Shape: sh, Fill: pixpipe.SolidPen(pixpipe.Red)})
//
// Fill geometry becomes horizontal ScanRuns. Lines become antialiased
// PointRuns, drawn by the stroke pass.
package scan
