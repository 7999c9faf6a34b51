package pctable

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/npillmayer/pctable/pcd"
	"github.com/npillmayer/pctable/plex"
)

// pieceSpec places the text of a piece at a file position. Specs are given
// in character order; start is the first CP of the piece.
type pieceSpec struct {
	start   int
	fc      int
	unicode bool
	text    string
}

func encodePiece(t *testing.T, s pieceSpec) []byte {
	t.Helper()
	if !s.unicode {
		raw, err := pcd.Windows1252.Encode(s.text)
		if err != nil {
			t.Fatalf("cannot encode %q: %v", s.text, err)
		}
		return raw
	}
	units := utf16.Encode([]rune(s.text))
	raw := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(raw[2*i:], u)
	}
	return raw
}

// buildStreams creates a document stream and a table stream holding the
// piece table PLC at offset 0.
func buildStreams(t *testing.T, specs ...pieceSpec) (doc, table []byte) {
	t.Helper()
	plc := plex.New(pcd.SizeInBytes)
	for _, s := range specs {
		raw := encodePiece(t, s)
		if need := s.fc + len(raw); need > len(doc) {
			doc = append(doc, make([]byte, need-len(doc))...)
		}
		copy(doc[s.fc:], raw)
		desc := pcd.New(s.fc, s.unicode, pcd.Windows1252)
		n := len(utf16.Encode([]rune(s.text)))
		if err := plc.Add(plex.Node{Start: s.start, End: s.start + n, Data: desc.Bytes()}); err != nil {
			t.Fatalf("cannot add plex node: %v", err)
		}
	}
	return doc, plc.Bytes()
}

func buildTable(t *testing.T, specs ...pieceSpec) *TextPieceTable {
	t.Helper()
	doc, table := buildStreams(t, specs...)
	tab, err := New(doc, table, 0, len(table), 0, DefaultConfig())
	if err != nil {
		t.Fatalf("cannot build piece table: %v", err)
	}
	return tab
}

func spans(t *TextPieceTable) []Span {
	var s []Span
	for _, tp := range t.Pieces() {
		s = append(s, Span{Start: tp.Start(), End: tp.End()})
	}
	return s
}
