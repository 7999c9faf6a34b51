package pctable

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"encoding/binary"
	"slices"
	"unicode/utf16"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/pctable/pcd"
)

// TextPiece is a contiguous run of the logical text of a document, decoded
// from a single region of the document stream.
//
// The text is held as UTF-16 code units; the invariant
//
//	Len() == End() - Start()
//
// holds between all operations of the owning table.
type TextPiece struct {
	PropertyNode
	buf  []uint16
	desc pcd.Descriptor
}

// NewTextPiece decodes raw bytes into a piece covering the character range
// [start, end). Unicode pieces are read as UTF-16LE, all others in the
// charset of the descriptor (which may be the double-byte Big5).
//
// Returns ErrLengthMismatch if the decoded text does not cover exactly
// end-start characters.
func NewTextPiece(start, end int, raw []byte, desc pcd.Descriptor) (*TextPiece, error) {
	if end < start {
		return nil, errors.Wrapf(ErrLengthMismatch, "negative piece range [%d, %d)", start, end)
	}
	buf, err := decodeUnits(raw, desc)
	if err != nil {
		return nil, err
	}
	if len(buf) != end-start {
		return nil, errors.Wrapf(ErrLengthMismatch,
			"told we're for characters %d -> %d, but actually covers %d characters",
			start, end, len(buf))
	}
	return &TextPiece{
		PropertyNode: PropertyNode{start: start, end: end},
		buf:          buf,
		desc:         desc,
	}, nil
}

func decodeUnits(raw []byte, desc pcd.Descriptor) ([]uint16, error) {
	if desc.IsUnicode() {
		units := make([]uint16, len(raw)/2)
		for i := range units {
			units[i] = binary.LittleEndian.Uint16(raw[2*i:])
		}
		return units, nil
	}
	s, err := desc.Charset().Decode(raw)
	if err != nil {
		return nil, err
	}
	return utf16.Encode([]rune(s)), nil
}

// IsUnicode reports whether the piece is stored as UTF-16LE.
func (tp *TextPiece) IsUnicode() bool {
	return tp.desc.IsUnicode()
}

// Descriptor returns the piece descriptor the piece was read with.
func (tp *TextPiece) Descriptor() pcd.Descriptor {
	return tp.desc
}

// BytesLength returns the length of the piece in the document stream.
func (tp *TextPiece) BytesLength() int {
	return (tp.end - tp.start) * tp.desc.BytesPerChar()
}

// Len returns the number of characters (UTF-16 code units) of the piece.
func (tp *TextPiece) Len() int {
	return len(tp.buf)
}

// String returns the text of the piece.
func (tp *TextPiece) String() string {
	return string(utf16.Decode(tp.buf))
}

// Substring returns the text between the piece-local offsets [start, end).
func (tp *TextPiece) Substring(start, end int) (string, error) {
	if start < 0 || end > len(tp.buf) || start > end {
		return "", errors.Wrapf(ErrIllegalArguments,
			"substring [%d, %d) of piece with %d characters", start, end, len(tp.buf))
	}
	return string(utf16.Decode(tp.buf[start:end])), nil
}

// RawBytes encodes the text of the piece as it is stored in the document
// stream.
func (tp *TextPiece) RawBytes() ([]byte, error) {
	if tp.desc.IsUnicode() {
		b := make([]byte, 2*len(tp.buf))
		for i, u := range tp.buf {
			binary.LittleEndian.PutUint16(b[2*i:], u)
		}
		return b, nil
	}
	return tp.desc.Charset().Encode(tp.String())
}

// InsertText inserts text at the piece-local offset and returns the number
// of characters inserted. It does not touch the character range; the owning
// table extends it with AdjustForInsert.
func (tp *TextPiece) InsertText(offset int, text string) int {
	assert(offset >= 0 && offset <= len(tp.buf), "insert offset outside of piece")
	units := utf16.Encode([]rune(text))
	tp.buf = slices.Insert(tp.buf, offset, units...)
	return len(units)
}

// storable returns text as it reads after a round trip through the
// piece's charset.
func (tp *TextPiece) storable(text string) (string, error) {
	if tp.desc.IsUnicode() {
		return text, nil
	}
	raw, err := tp.desc.Charset().Encode(text)
	if err != nil {
		return "", err
	}
	return tp.desc.Charset().Decode(raw)
}

// AdjustForDelete removes the characters of the deletion range
// [start, start+length) which overlap this piece, then updates the
// piece's range. It has to be called for every piece of a table, as pieces
// after the deletion range are shifted.
func (tp *TextPiece) AdjustForDelete(start, length int) {
	assert(length >= 0, "negative deletion length")
	end := start + length
	if start <= tp.end && end >= tp.start {
		from := max(tp.start, start) - tp.start
		to := min(tp.end, end) - tp.start
		tp.buf = slices.Delete(tp.buf, from, to)
	}
	tp.PropertyNode.AdjustForDelete(start, length)
}

func (tp *TextPiece) equal(other *TextPiece) bool {
	return tp.start == other.start && tp.end == other.end &&
		tp.desc == other.desc && slices.Equal(tp.buf, other.buf)
}
