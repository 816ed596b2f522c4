package memory

// find selects a free block of at least s bytes under p. last is the final
// block examined, which is where the directory grows when nothing fits.
func (d *directory) find(p Policy, s int) (found, last int) {
	switch p {
	case BestFit:
		return d.findBest(s)
	case WorstFit:
		return d.findWorst(s)
	default:
		return d.findFirst(s)
	}
}

func (d *directory) findFirst(s int) (int, int) {
	last := -1
	for b := d.head; b >= 0; b = d.next(b) {
		if d.free(b) && d.size(b) >= s {
			return b, last
		}
		last = b
	}
	return -1, last
}

// findBest returns an exact fit at once; otherwise the earliest block with
// the least slack.
func (d *directory) findBest(s int) (int, int) {
	best, slack, last := -1, 0, -1
	for b := d.head; b >= 0; b = d.next(b) {
		if d.free(b) {
			size := d.size(b)
			if size == s {
				return b, last
			}
			if size > s && (best < 0 || size-s < slack) {
				best, slack = b, size-s
			}
		}
		last = b
	}
	return best, last
}

// findWorst returns the earliest of the largest blocks that fit.
func (d *directory) findWorst(s int) (int, int) {
	worst, most, last := -1, 0, -1
	for b := d.head; b >= 0; b = d.next(b) {
		if d.free(b) {
			if size := d.size(b); size >= s && (worst < 0 || size > most) {
				worst, most = b, size
			}
		}
		last = b
	}
	return worst, last
}
