package pctable

import "sort"

// CharIndexTranslator translates between byte positions in the document
// stream and character positions of the logical text.
type CharIndexTranslator interface {
	// ByteIndex returns the byte position of character position cp.
	ByteIndex(cp int) int
	// CharIndex returns the character position of byte position bytePos.
	// An empty table maps every byte position to 0, whereas
	// LookIndexForward panics on an empty table.
	CharIndex(bytePos int) int
	// CharIndexFrom is CharIndex, but won't stop at pieces before startCP.
	CharIndexFrom(bytePos, startCP int) int
	// CharIndexRanges returns the character ranges covered by the byte
	// range [startBytePos, endBytePos).
	CharIndexRanges(startBytePos, endBytePos int) []Span
	// IsIndexInTable reports whether bytePos lies within a text piece.
	IsIndexInTable(bytePos int) bool
	// LookIndexForward moves a byte position in a gap between pieces to the
	// start of the next piece.
	LookIndexForward(bytePos int) int
	// LookIndexBackward moves a byte position in a gap between pieces to
	// the end of the previous piece.
	LookIndexBackward(bytePos int) int
}

var _ CharIndexTranslator = (*TextPieceTable)(nil)

// Span is a half-open range [Start, End) of character positions.
type Span struct {
	Start int
	End   int
}

// ByteIndex returns the byte position of character position cp.
//
// A cp at the end of a piece maps to the byte position after that piece's
// last character, even if the following piece starts elsewhere. Clients
// use this to locate insertion points at piece boundaries.
func (t *TextPieceTable) ByteIndex(cp int) int {
	byteCount := 0
	for _, tp := range t.pieces {
		fc := tp.desc.FilePosition()
		if cp >= tp.end {
			byteCount = fc + (tp.end-tp.start)*tp.desc.BytesPerChar()
			if cp == tp.end {
				break
			}
			continue
		}
		byteCount = fc + (cp-tp.start)*tp.desc.BytesPerChar()
		break
	}
	return byteCount
}

// CharIndex returns the character position of byte position bytePos.
func (t *TextPieceTable) CharIndex(bytePos int) int {
	return t.CharIndexFrom(bytePos, 0)
}

// CharIndexFrom returns the character position of byte position bytePos.
// Pieces containing bytePos are skipped as long as the character count is
// below startCP. bytePos is moved out of gaps with LookIndexForward.
// On an empty table it returns 0 without consulting LookIndexForward.
func (t *TextPieceTable) CharIndexFrom(bytePos, startCP int) int {
	if len(t.pieces) == 0 {
		return 0
	}
	charCount := 0
	bytePos = t.LookIndexForward(bytePos)
	for _, tp := range t.pieces {
		pieceStart := tp.desc.FilePosition()
		bytesLength := tp.BytesLength()
		pieceEnd := pieceStart + bytesLength
		var toAdd int
		switch {
		case bytePos < pieceStart || bytePos > pieceEnd:
			toAdd = bytesLength
		case bytePos > pieceStart && bytePos < pieceEnd:
			toAdd = bytePos - pieceStart
		default:
			toAdd = bytesLength - (pieceEnd - bytePos)
		}
		charCount += toAdd / tp.desc.BytesPerChar()
		if bytePos >= pieceStart && bytePos <= pieceEnd && charCount >= startCP {
			break
		}
	}
	return charCount
}

// CharIndexRanges returns the character ranges of all pieces intersecting
// the byte range [startBytePos, endBytePos), in file position order.
func (t *TextPieceTable) CharIndexRanges(startBytePos, endBytePos int) []Span {
	var spans []Span
	for _, tp := range t.fcOrder {
		tpStart := tp.desc.FilePosition()
		tpEnd := tpStart + tp.BytesLength()
		if startBytePos >= tpEnd {
			continue
		}
		if endBytePos <= tpStart {
			break
		}
		from := max(tpStart, startBytePos)
		to := min(tpEnd, endBytePos)
		if from >= to {
			continue
		}
		mult := tp.desc.BytesPerChar()
		cp := tp.start + (from-tpStart)/mult
		spans = append(spans, Span{Start: cp, End: cp + (to-from)/mult})
	}
	return spans
}

// IsIndexInTable reports whether bytePos lies within a piece. The end
// position of a piece counts as inside.
func (t *TextPieceTable) IsIndexInTable(bytePos int) bool {
	for _, tp := range t.fcOrder {
		pieceStart := tp.desc.FilePosition()
		if bytePos > pieceStart+tp.BytesLength() {
			continue
		}
		return pieceStart <= bytePos
	}
	return false
}

// OverlapsTable reports whether the byte range [startBytePos, endBytePos)
// intersects a piece.
func (t *TextPieceTable) OverlapsTable(startBytePos, endBytePos int) bool {
	for _, tp := range t.fcOrder {
		pieceStart := tp.desc.FilePosition()
		pieceEnd := pieceStart + tp.BytesLength()
		if startBytePos >= pieceEnd {
			continue
		}
		return max(startBytePos, pieceStart) < min(endBytePos, pieceEnd)
	}
	return false
}

// LookIndexForward returns bytePos if it lies within a piece or after the
// start of the last piece. Positions before the first piece or in a gap
// between pieces move to the start of the next piece.
//
// It panics if the table is empty.
func (t *TextPieceTable) LookIndexForward(bytePos int) int {
	assert(len(t.fcOrder) > 0, "text pieces table is empty")
	first := t.fcOrder[0].desc.FilePosition()
	if bytePos < first {
		return first
	}
	last := len(t.fcOrder) - 1
	if bytePos >= t.fcOrder[last].desc.FilePosition() {
		return bytePos
	}
	// i is the last piece starting at or before bytePos; i < last
	i := sort.Search(len(t.fcOrder), func(k int) bool {
		return t.fcOrder[k].desc.FilePosition() > bytePos
	}) - 1
	tp := t.fcOrder[i]
	if bytePos < tp.desc.FilePosition()+tp.BytesLength() {
		return bytePos
	}
	return t.fcOrder[i+1].desc.FilePosition()
}

// LookIndexBackward returns bytePos if it lies within a piece or after all
// pieces. Positions in a gap between pieces move to the end of the
// previous piece, positions before the first piece to 0.
func (t *TextPieceTable) LookIndexBackward(bytePos int) int {
	lastEnd := 0
	for _, tp := range t.fcOrder {
		pieceStart := tp.desc.FilePosition()
		if bytePos > pieceStart+tp.BytesLength() {
			lastEnd = pieceStart + tp.BytesLength()
			continue
		}
		if pieceStart > bytePos {
			bytePos = lastEnd
		}
		break
	}
	return bytePos
}
