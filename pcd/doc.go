/*
Package pcd decodes and encodes piece descriptors of binary Word documents.

A piece descriptor (PCD) is the fixed-size record attached to every entry of
a document's piece table. It tells where the bytes of a text piece start in
the WordDocument stream and whether they are stored as UTF-16LE or as
"compressed" single-byte text in a Windows code page.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package pcd

import (
	"github.com/cockroachdb/errors"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pctable'
func tracer() tracing.Trace {
	return tracing.Select("pctable")
}

var (
	// ErrShortBuffer signals that a descriptor record is truncated.
	ErrShortBuffer = errors.New("pcd: buffer too short for piece descriptor")
	// ErrUnknownCharset signals a charset or code page without a codec.
	ErrUnknownCharset = errors.New("pcd: unknown charset")
	// ErrFilePosition signals a file position outside of the encodable range.
	ErrFilePosition = errors.New("pcd: file position cannot be encoded")
)
