package memory

// Usage summarizes the directory. Byte counts are payload bytes; headers
// are excluded.
type Usage struct {
	Allocated  int // bytes in allocated blocks
	Free       int // bytes in free blocks
	Blocks     int // blocks in the directory
	FreeBlocks int // free blocks in the directory
	Extent     int // region size, headers and detached bytes included
}

// Total returns Allocated + Free.
func (u Usage) Total() int { return u.Allocated + u.Free }

// Fragmentation scores the directory from 0 to 100: the mean of the
// percentage of blocks that are free and the percentage of payload bytes
// that are free. An empty directory scores 0.
func (u Usage) Fragmentation() float64 {
	return Fragmentation(u.FreeBlocks, u.Blocks, u.Free, u.Total())
}

// Fragmentation computes the score from raw counts. Either term is 0 when
// its denominator is 0.
func Fragmentation(freeBlocks, blocks, freeBytes, totalBytes int) float64 {
	var byBlocks, byBytes float64
	if blocks > 0 {
		byBlocks = float64(freeBlocks) * 100 / float64(blocks)
	}
	if totalBytes > 0 {
		byBytes = float64(freeBytes) * 100 / float64(totalBytes)
	}
	return 0.5*byBlocks + 0.5*byBytes
}

// Usage walks the directory and totals allocated and free blocks.
func (h *Heap) Usage() Usage {
	u := Usage{Extent: h.region.Len()}
	h.dir.walk(func(off int) bool {
		u.Blocks++
		if h.dir.free(off) {
			u.FreeBlocks++
			u.Free += h.dir.size(off)
		} else {
			u.Allocated += h.dir.size(off)
		}
		return true
	})
	return u
}

// MemoryUsage returns allocated and free payload bytes.
func (h *Heap) MemoryUsage() (allocated, free int) {
	u := h.Usage()
	return u.Allocated, u.Free
}

// Fragmentation returns the current fragmentation score.
func (h *Heap) Fragmentation() float64 {
	return h.Usage().Fragmentation()
}
