package pixpipe

// Region is a copy request: W x H pixels from (SrcX, SrcY) in the source
// to (DstX, DstY) in the destination.
type Region struct {
	SrcX, SrcY int
	W, H       int
	DstX, DstY int
}

// ClipRegion clamps req so that it lies inside both a srcW x srcH source
// and a dstW x dstH destination. Source overflow is removed first, then
// destination overflow; whenever one offset moves, the opposite offset
// moves by the same amount so pixels stay paired. The second result is
// false when nothing remains to copy.
func ClipRegion(req Region, srcW, srcH, dstW, dstH int) (Region, bool) {
	r := req

	if r.SrcX < 0 {
		r.W += r.SrcX
		r.DstX -= r.SrcX
		r.SrcX = 0
	}
	if r.SrcY < 0 {
		r.H += r.SrcY
		r.DstY -= r.SrcY
		r.SrcY = 0
	}
	if r.SrcX+r.W > srcW {
		r.W = srcW - r.SrcX
	}
	if r.SrcY+r.H > srcH {
		r.H = srcH - r.SrcY
	}

	if r.DstX < 0 {
		r.W += r.DstX
		r.SrcX -= r.DstX
		r.DstX = 0
	}
	if r.DstY < 0 {
		r.H += r.DstY
		r.SrcY -= r.DstY
		r.DstY = 0
	}
	if r.DstX+r.W > dstW {
		r.W = dstW - r.DstX
	}
	if r.DstY+r.H > dstH {
		r.H = dstH - r.DstY
	}

	if r.W <= 0 || r.H <= 0 {
		return Region{}, false
	}
	return r, true
}

// CorrectRegion is ClipRegion over flat buffer descriptions. The
// destination height is dstBufLen / dstBufW.
func CorrectRegion(srcX, srcY, srcW, srcH, srcBufW, srcBufH, dstX, dstY, dstBufW, dstBufLen int) (Region, bool) {
	if dstBufW <= 0 || dstBufLen <= 0 {
		return Region{}, false
	}
	req := Region{SrcX: srcX, SrcY: srcY, W: srcW, H: srcH, DstX: dstX, DstY: dstY}
	return ClipRegion(req, srcBufW, srcBufH, dstBufW, dstBufLen/dstBufW)
}

// CopyFrom copies the clipped region of src into b verbatim and returns
// the destination rectangle written. Nothing is copied when the region
// clips away.
func (b *Buffer) CopyFrom(src *Buffer, req Region) (Rect, bool) {
	if !b.Valid() || !src.Valid() {
		return Rect{}, false
	}
	r, ok := ClipRegion(req, src.width, src.height, b.width, b.height)
	if !ok {
		return Rect{}, false
	}
	for y := range r.H {
		s := src.pix[(r.SrcY+y)*src.width+r.SrcX:][:r.W]
		d := b.pix[(r.DstY+y)*b.width+r.DstX:][:r.W]
		copy(d, s)
	}
	return Rect{X: r.DstX, Y: r.DstY, W: r.W, H: r.H}, true
}
