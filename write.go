package pctable

import (
	"io"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/pctable/pcd"
	"github.com/npillmayer/pctable/plex"
)

// DocStream is the document stream pieces are written to.
// *bytes.Buffer satisfies it.
type DocStream interface {
	io.Writer
	Len() int
}

// WritePieces appends the text of all pieces, in character order, to
// docStream and returns the serialized piece table PLC.
//
// Every piece starts at a BlockSize boundary of the stream; the gap is
// zero-filled. Piece descriptors are moved to their new file positions.
//
// Writing fails with ErrLengthMismatch if the text of a piece does not
// encode to exactly BytesLength bytes, and with pcd.ErrFilePosition if the
// stream grows beyond what a descriptor can address. Pieces written up to
// the failure keep their new file positions.
func (t *TextPieceTable) WritePieces(docStream DocStream) ([]byte, error) {
	plc := plex.New(pcd.SizeInBytes)
	defer slices.SortStableFunc(t.fcOrder, byFC)
	for i, tp := range t.pieces {
		if mod := docStream.Len() % BlockSize; mod != 0 {
			if _, err := docStream.Write(make([]byte, BlockSize-mod)); err != nil {
				return nil, errors.Wrap(err, "pctable: padding document stream")
			}
		}
		raw, err := tp.RawBytes()
		if err != nil {
			return nil, errors.Wrapf(err, "pctable: encoding piece %d", i)
		}
		if len(raw) != tp.BytesLength() {
			return nil, errors.Wrapf(ErrLengthMismatch, "pctable: piece %d encodes to %d bytes, range [%d, %d) needs %d",
				i, len(raw), tp.start, tp.end, tp.BytesLength())
		}
		desc := tp.desc.WithFilePosition(docStream.Len())
		if err := desc.Validate(); err != nil {
			return nil, errors.Wrapf(err, "pctable: piece %d", i)
		}
		tp.desc = desc
		if _, err := docStream.Write(raw); err != nil {
			return nil, errors.Wrapf(err, "pctable: writing piece %d", i)
		}
		node := plex.Node{Start: tp.start, End: tp.end, Data: tp.desc.Bytes()}
		if err := plc.Add(node); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("wrote %d pieces, document stream length %d", len(t.pieces), docStream.Len())
	return plc.Bytes(), nil
}
