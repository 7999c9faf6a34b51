package pctable

// PropertyNode is a half-open range [start, end) of character positions.
//
// It carries the offset bookkeeping shared by everything addressed by
// character position, text pieces included.
type PropertyNode struct {
	start int
	end   int
}

// Start returns the first character position of the range.
func (n *PropertyNode) Start() int {
	return n.start
}

// End returns the character position after the range.
func (n *PropertyNode) End() int {
	return n.end
}

// SetStart moves the start of the range.
func (n *PropertyNode) SetStart(start int) {
	n.start = start
}

// SetEnd moves the end of the range.
func (n *PropertyNode) SetEnd(end int) {
	n.end = end
}

// AdjustForDelete updates the range for the deletion of length characters
// starting at start. Ranges after the deletion are shifted, overlapping
// ranges shrink, ranges before it are left untouched.
func (n *PropertyNode) AdjustForDelete(start, length int) {
	assert(length >= 0, "negative deletion length")
	end := start + length
	if n.end <= start {
		return
	}
	if n.start < end {
		if end >= n.end {
			n.end = start
		} else {
			n.end -= length
		}
		n.start = min(start, n.start)
		return
	}
	n.end -= length
	n.start -= length
}
