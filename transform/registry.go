package transform

import (
	"sort"

	"github.com/gogpu/gpucontext"
	"golang.org/x/image/draw"

	"github.com/gogpu/pixpipe"
)

// Interpolator names in the default registry.
const (
	NameNearest        = "nearest"
	NameApproxBiLinear = "approxbilinear"
	NameBiLinear       = "bilinear"
	NameCatmullRom     = "catmullrom"
)

// NewRegistry returns a registry holding the x/image/draw interpolators.
// Best prefers quality: Catmull-Rom, then bilinear.
func NewRegistry() *gpucontext.Registry[draw.Interpolator] {
	r := gpucontext.NewRegistry[draw.Interpolator](
		gpucontext.WithPriority(NameCatmullRom, NameBiLinear, NameApproxBiLinear, NameNearest),
	)
	r.Register(NameNearest, func() draw.Interpolator { return draw.NearestNeighbor })
	r.Register(NameApproxBiLinear, func() draw.Interpolator { return draw.ApproxBiLinear })
	r.Register(NameBiLinear, func() draw.Interpolator { return draw.BiLinear })
	r.Register(NameCatmullRom, func() draw.Interpolator { return draw.CatmullRom })
	return r
}

// Names returns the sorted interpolator names of r.
func Names(r *gpucontext.Registry[draw.Interpolator]) []string {
	names := r.Available()
	sort.Strings(names)
	return names
}

// nameFor maps an interpolation kind to its registry name.
func nameFor(i pixpipe.Interpolation, fast bool) string {
	switch i {
	case pixpipe.Nearest:
		return NameNearest
	case pixpipe.Bicubic:
		return NameCatmullRom
	default:
		if fast {
			return NameApproxBiLinear
		}
		return NameBiLinear
	}
}
