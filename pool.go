package pixpipe

import "sync"

// pixelPool recycles pixel storage between Release and buffer creation.
//
// Storage is grouped by pixel count so a released 640x480 buffer can back
// a new 480x640 one. Recycled slices are zeroed before reuse.
//
// Thread safety: all methods are safe for concurrent use.
type pixelPool struct {
	mu      sync.Mutex
	buckets map[int][][]uint32
	maxSize int // max slices per bucket, 0 = unlimited
}

func newPixelPool(maxPerBucket int) *pixelPool {
	return &pixelPool{
		buckets: make(map[int][][]uint32),
		maxSize: maxPerBucket,
	}
}

// get returns a zeroed slice of length n.
func (p *pixelPool) get(n int) []uint32 {
	if n <= 0 {
		return nil
	}

	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		pix := bucket[len(bucket)-1]
		p.buckets[n] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		clear(pix)
		return pix
	}
	p.mu.Unlock()

	return make([]uint32, n)
}

// put hands pix back for reuse. Slices beyond the bucket limit are dropped.
func (p *pixelPool) put(pix []uint32) {
	n := len(pix)
	if n == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[n]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[n] = append(bucket, pix)
}

// size reports the number of pooled slices of length n.
func (p *pixelPool) size(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[n])
}

var defaultPool = newPixelPool(4)
