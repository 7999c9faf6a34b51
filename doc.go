/*
Package pctable reconstructs the text of legacy binary Word documents from
their piece tables.

# Piece Tables

A binary Word document does not store its text as one contiguous string.
The text is split into pieces, and each piece is stored somewhere in the
WordDocument stream, either as UTF-16LE or as "compressed" text in a
single-byte Windows code page. Pieces are not necessarily stored in reading
order; incremental saves append edited text to the end of the stream and
re-link it through the piece table.

The piece table is a PLC (see package plex) mapping character ranges of the
logical text to piece descriptors (see package pcd). A TextPieceTable reads
this PLC, decodes every piece and then translates between

  - character positions (CPs), used by paragraph and character properties,

  - byte positions (FCs) in the WordDocument stream, used by on-disk
    structures.

    CP order                  FC order (on disk)
    +--------+--------+      +--------+--------+--------+
    | [0,5)  | [5,10) | ...  |  ....  | [5,10) | [0,5)  |
    +--------+--------+      +--------+--------+--------+

Both orderings are maintained by the table. Character positions count
UTF-16 code units, as Word does.

A TextPieceTable is not safe for concurrent mutation. It is meant to be
owned by a single document model, which serializes edits.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package pctable

import (
	"github.com/cockroachdb/errors"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pctable'
func tracer() tracing.Trace {
	return tracing.Select("pctable")
}

// TableError is an error type for the pctable module
type TableError string

func (e TableError) Error() string {
	return string(e)
}

// ErrRecordTooLarge is flagged when a piece's byte length exceeds the
// configured maximum record length.
const ErrRecordTooLarge = TableError("record length exceeds configured maximum")

// ErrLengthMismatch is flagged when a piece's decoded text does not cover
// the character range declared by the piece table.
const ErrLengthMismatch = TableError("decoded text length does not match piece range")

// ErrNonContiguous is flagged when piece ranges leave gaps or overlap.
const ErrNonContiguous = TableError("piece ranges are not contiguous")

// ErrInvalidConfig is flagged for unusable configuration values.
const ErrInvalidConfig = TableError("invalid configuration")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = TableError("illegal arguments")

// assert panics with an assertion failure. It guards preconditions whose
// violation is a programming error of the caller.
func assert(condition bool, msg string) {
	if !condition {
		panic(errors.AssertionFailedf("pctable: %s", msg))
	}
}
