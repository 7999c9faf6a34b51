package pctable

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Check validates the structural invariants of the table:
//
//   - every piece holds exactly End()-Start() characters,
//   - pieces are sorted by character position and are contiguous from 0,
//   - the file position ordering holds the same pieces, sorted.
//
// It is meant for tests and for validating tables after a series of edits.
func (t *TextPieceTable) Check() error {
	if t == nil {
		return errors.Wrap(ErrIllegalArguments, "nil table")
	}
	for i, tp := range t.pieces {
		if tp == nil {
			return errors.Wrapf(ErrIllegalArguments, "nil piece at index %d", i)
		}
		if tp.Len() != tp.end-tp.start {
			return errors.Wrapf(ErrLengthMismatch, "piece %d covers [%d, %d) with %d characters",
				i, tp.start, tp.end, tp.Len())
		}
	}
	if !slices.IsSortedFunc(t.pieces, byCP) {
		return errors.Wrap(ErrNonContiguous, "pieces not in character order")
	}
	if err := t.checkContiguous(); err != nil {
		return err
	}
	if len(t.fcOrder) != len(t.pieces) {
		return errors.Newf("pctable: orderings differ in size (%d != %d)", len(t.fcOrder), len(t.pieces))
	}
	if !slices.IsSortedFunc(t.fcOrder, byFC) {
		return errors.New("pctable: pieces not in file position order")
	}
	for _, tp := range t.fcOrder {
		if !slices.Contains(t.pieces, tp) {
			return errors.Newf("pctable: piece at FC %d missing from character order", tp.desc.FilePosition())
		}
	}
	return nil
}
