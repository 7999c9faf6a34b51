package pctable

import (
	"cmp"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/pctable/pcd"
	"github.com/npillmayer/pctable/plex"
)

// TextPieceTable holds the text pieces of a document in two orderings:
// by character position and by file position.
//
// The empty instance is a valid, empty table.
type TextPieceTable struct {
	pieces  []*TextPiece // ordered by start CP
	fcOrder []*TextPiece // same pieces, ordered by file position
	cpMin   int
}

// NewTable creates an empty table, to be filled with Add.
func NewTable() *TextPieceTable {
	return &TextPieceTable{}
}

// New reads the piece table PLC located at [offset, offset+size) in
// tableStream and decodes all pieces from docStream. fcMin is the file
// position origin of the document text.
//
// Construction fails as a whole: malformed PLCs, pieces exceeding
// cfg.MaxRecordLength, pieces whose text does not match their range and,
// unless cfg.AllowGaps is set, gaps between pieces are reported as errors.
func New(docStream, tableStream []byte, offset, size, fcMin int, cfg Config) (*TextPieceTable, error) {
	cfg = cfg.normalized()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	plc, err := plex.Parse(tableStream, offset, size, pcd.SizeInBytes)
	if err != nil {
		return nil, errors.Wrap(err, "pctable: reading piece table")
	}
	descs := make([]pcd.Descriptor, plc.Len())
	for i := range descs {
		if descs[i], err = pcd.Decode(plc.At(i).Data, 0, cfg.Charset); err != nil {
			return nil, errors.Wrapf(err, "pctable: piece descriptor %d", i)
		}
	}
	t := &TextPieceTable{}
	for i, d := range descs {
		if rel := d.FilePosition() - fcMin; i == 0 || rel < t.cpMin {
			t.cpMin = rel
		}
	}
	t.pieces = make([]*TextPiece, 0, len(descs))
	for i, d := range descs {
		tp, err := loadPiece(docStream, plc.At(i), d, cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "pctable: piece %d", i)
		}
		t.pieces = append(t.pieces, tp)
	}
	t.sort()
	if !cfg.AllowGaps {
		if err := t.checkContiguous(); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("piece table: %d pieces, %d characters, cpMin=%d", len(t.pieces), t.TextLen(), t.cpMin)
	return t, nil
}

func loadPiece(doc []byte, node plex.Node, d pcd.Descriptor, cfg Config) (*TextPiece, error) {
	chars := node.End - node.Start
	if chars < 0 {
		return nil, errors.Wrapf(ErrLengthMismatch, "negative piece range [%d, %d)", node.Start, node.End)
	}
	n := chars * d.BytesPerChar()
	if n > cfg.MaxRecordLength {
		return nil, errors.Wrapf(ErrRecordTooLarge, "piece of %d bytes, maximum is %d", n, cfg.MaxRecordLength)
	}
	raw := cloneRegion(doc, d.FilePosition(), n)
	return NewTextPiece(node.Start, node.End, raw, d)
}

// cloneRegion copies length bytes at offset, clamped to the bounds of src.
// A truncated copy is caught by the length check of NewTextPiece.
func cloneRegion(src []byte, offset, length int) []byte {
	if offset < 0 || offset >= len(src) || length <= 0 {
		return []byte{}
	}
	end := min(offset+length, len(src))
	return append([]byte(nil), src[offset:end]...)
}

func byCP(a, b *TextPiece) int {
	return cmp.Or(cmp.Compare(a.start, b.start), cmp.Compare(a.end, b.end))
}

func byFC(a, b *TextPiece) int {
	return cmp.Compare(a.desc.FilePosition(), b.desc.FilePosition())
}

func (t *TextPieceTable) sort() {
	slices.SortStableFunc(t.pieces, byCP)
	t.fcOrder = slices.Clone(t.pieces)
	slices.SortStableFunc(t.fcOrder, byFC)
}

func (t *TextPieceTable) checkContiguous() error {
	expected := 0
	for i, tp := range t.pieces {
		if tp.start != expected {
			return errors.Wrapf(ErrNonContiguous, "piece %d starts at CP %d, expected %d", i, tp.start, expected)
		}
		expected = tp.end
	}
	return nil
}

// CPMin returns the smallest piece file position relative to fcMin, as
// found at construction.
func (t *TextPieceTable) CPMin() int {
	return t.cpMin
}

// Len returns the number of pieces.
func (t *TextPieceTable) Len() int {
	return len(t.pieces)
}

// Piece returns the piece at index i in character order.
func (t *TextPieceTable) Piece(i int) *TextPiece {
	return t.pieces[i]
}

// Pieces returns the pieces in character order.
func (t *TextPieceTable) Pieces() []*TextPiece {
	return slices.Clone(t.pieces)
}

// PiecesFCOrder returns the pieces in file position order.
func (t *TextPieceTable) PiecesFCOrder() []*TextPiece {
	return slices.Clone(t.fcOrder)
}

// TextLen returns the character position after the last piece.
func (t *TextPieceTable) TextLen() int {
	end := 0
	for _, tp := range t.pieces {
		end = max(end, tp.end)
	}
	return end
}

// Text returns the text of all pieces, concatenated in character order.
func (t *TextPieceTable) Text() string {
	var sb strings.Builder
	for _, tp := range t.pieces {
		sb.WriteString(tp.String())
	}
	return sb.String()
}

// Add inserts a piece into the table, keeping both orderings sorted.
func (t *TextPieceTable) Add(tp *TextPiece) {
	t.pieces = append(t.pieces, tp)
	t.fcOrder = append(t.fcOrder, tp)
	slices.SortStableFunc(t.pieces, byCP)
	slices.SortStableFunc(t.fcOrder, byFC)
}

// AdjustForInsert extends the piece at listIndex (character order) by length
// characters and shifts all following pieces. The piece's text must already
// have been extended, see TextPiece.InsertText.
func (t *TextPieceTable) AdjustForInsert(listIndex, length int) {
	assert(listIndex >= 0 && listIndex < len(t.pieces), "insert index out of range")
	tp := t.pieces[listIndex]
	tp.end += length
	for _, next := range t.pieces[listIndex+1:] {
		next.start += length
		next.end += length
	}
}

// AdjustForDelete applies the deletion of [start, start+length) to every
// piece in character order.
func (t *TextPieceTable) AdjustForDelete(start, length int) {
	for _, tp := range t.pieces {
		tp.AdjustForDelete(start, length)
	}
}

// Insert inserts text at character position cp. Text at a piece boundary
// goes to the start of the following piece, text at the end of the table
// extends the last piece.
//
// Runes the piece's charset cannot represent are replaced before insertion,
// so the text inserted may differ from text.
func (t *TextPieceTable) Insert(cp int, text string) error {
	if text == "" {
		return nil
	}
	i := t.pieceIndexForInsert(cp)
	if i < 0 {
		return errors.Wrapf(ErrIllegalArguments, "cannot insert at CP %d of text with length %d", cp, t.TextLen())
	}
	tp := t.pieces[i]
	text, err := tp.storable(text)
	if err != nil {
		return err
	}
	n := tp.InsertText(cp-tp.start, text)
	t.AdjustForInsert(i, n)
	tracer().Debugf("inserted %d characters at CP %d into piece %d", n, cp, i)
	return nil
}

func (t *TextPieceTable) pieceIndexForInsert(cp int) int {
	if cp < 0 || len(t.pieces) == 0 {
		return -1
	}
	for i, tp := range t.pieces {
		if tp.start <= cp && cp < tp.end {
			return i
		}
	}
	if last := len(t.pieces) - 1; cp == t.pieces[last].end {
		return last
	}
	return -1
}

// Delete removes length characters starting at character position cp.
func (t *TextPieceTable) Delete(cp, length int) error {
	if cp < 0 || length < 0 || cp+length > t.TextLen() {
		return errors.Wrapf(ErrIllegalArguments, "cannot delete [%d, %d) of text with length %d",
			cp, cp+length, t.TextLen())
	}
	if length == 0 {
		return nil
	}
	t.AdjustForDelete(cp, length)
	tracer().Debugf("deleted %d characters at CP %d", length, cp)
	return nil
}

// Equal reports whether two tables hold equal pieces in the same order.
func (t *TextPieceTable) Equal(other *TextPieceTable) bool {
	if other == nil || len(t.pieces) != len(other.pieces) {
		return false
	}
	for i, tp := range t.pieces {
		if !tp.equal(other.pieces[i]) {
			return false
		}
	}
	return true
}
