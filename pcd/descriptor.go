package pcd

import (
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/errors"
)

// SizeInBytes is the size of an encoded piece descriptor.
const SizeInBytes = 8

// compressedBit is set in the stored file position of single-byte pieces.
const compressedBit = 0x40000000

// Descriptor flag bits.
const (
	FlagNoParaLast uint16 = 1 << iota
	FlagPaphNil
	FlagDirty
)

// Descriptor is a decoded piece descriptor.
//
// Descriptors are values. The file position is the only field which ever
// changes, and only when a piece table is serialized; see WithFilePosition.
type Descriptor struct {
	flags   uint16
	fc      int
	prm     uint16
	unicode bool
	charset Charset
}

// New creates a descriptor for a piece at file position fc. Single-byte
// pieces are encoded in charset cs; cs is ignored for Unicode pieces.
func New(fc int, unicode bool, cs Charset) Descriptor {
	d := Descriptor{fc: fc, unicode: unicode, charset: UTF16LE}
	if !unicode {
		d.charset = compressedCharset(cs)
	}
	return d
}

// Decode reads a descriptor record from buf at offset. Compressed pieces are
// tagged with charset cs.
//
// Layout (little endian): flags uint16, fc int32, prm uint16. A clear
// compression bit in fc marks a UTF-16LE piece; otherwise the file position
// is stored doubled with the compression bit set.
func Decode(buf []byte, offset int, cs Charset) (Descriptor, error) {
	if offset < 0 || offset+SizeInBytes > len(buf) {
		return Descriptor{}, errors.Wrapf(ErrShortBuffer, "offset %d, buffer length %d", offset, len(buf))
	}
	rec := buf[offset : offset+SizeInBytes]
	d := Descriptor{
		flags: binary.LittleEndian.Uint16(rec[0:]),
		prm:   binary.LittleEndian.Uint16(rec[6:]),
	}
	fc := int32(binary.LittleEndian.Uint32(rec[2:]))
	if fc&compressedBit == 0 {
		d.unicode = true
		d.charset = UTF16LE
		d.fc = int(fc)
	} else {
		d.charset = compressedCharset(cs)
		d.fc = int(fc&^compressedBit) / 2
	}
	return d, nil
}

func compressedCharset(cs Charset) Charset {
	if cs == UTF16LE {
		tracer().Debugf("pcd: UTF-16LE requested for compressed piece, using %s", Windows1252)
		return Windows1252
	}
	return cs
}

// MaxFilePosition returns the largest file position a descriptor of the
// given kind can encode. Compressed pieces store their position doubled.
func MaxFilePosition(unicode bool) int {
	if unicode {
		return compressedBit - 1
	}
	return compressedBit/2 - 1
}

// Validate checks that the descriptor can be encoded by Bytes.
func (d Descriptor) Validate() error {
	if d.fc < 0 || d.fc > MaxFilePosition(d.unicode) {
		return errors.Wrapf(ErrFilePosition, "file position %d of %s piece",
			d.fc, d.charset)
	}
	return nil
}

// Bytes encodes the descriptor into its 8-byte record. The file position
// is truncated if Validate fails.
func (d Descriptor) Bytes() []byte {
	fc := int32(d.fc)
	if !d.unicode {
		fc = fc*2 | compressedBit
	}
	b := make([]byte, SizeInBytes)
	binary.LittleEndian.PutUint16(b[0:], d.flags)
	binary.LittleEndian.PutUint32(b[2:], uint32(fc))
	binary.LittleEndian.PutUint16(b[6:], d.prm)
	return b
}

// FilePosition returns the byte offset of the piece in the document stream.
func (d Descriptor) FilePosition() int {
	return d.fc
}

// WithFilePosition returns a copy of d located at file position fc.
func (d Descriptor) WithFilePosition(fc int) Descriptor {
	d.fc = fc
	return d
}

// IsUnicode reports whether the piece is stored as UTF-16LE.
func (d Descriptor) IsUnicode() bool {
	return d.unicode
}

// Charset returns the encoding of the piece bytes.
func (d Descriptor) Charset() Charset {
	return d.charset
}

// BytesPerChar returns 2 for Unicode pieces and 1 otherwise.
func (d Descriptor) BytesPerChar() int {
	if d.unicode {
		return 2
	}
	return 1
}

// Flags returns the raw flag word.
func (d Descriptor) Flags() uint16 {
	return d.flags
}

// NoParaLast reports whether the piece contains no paragraph end.
func (d Descriptor) NoParaLast() bool {
	return d.flags&FlagNoParaLast != 0
}

// PaphNil reports whether paragraph heights of the piece are unknown.
func (d Descriptor) PaphNil() bool {
	return d.flags&FlagPaphNil != 0
}

// Dirty reports whether the piece has been edited by a previous save.
func (d Descriptor) Dirty() bool {
	return d.flags&FlagDirty != 0
}

// Prm returns the opaque property modifier.
func (d Descriptor) Prm() uint16 {
	return d.prm
}

func (d Descriptor) String() string {
	return fmt.Sprintf("PieceDescriptor (pos: %d; unicode: %t; charset: %s; flags: %#x; prm: %#x)",
		d.fc, d.unicode, d.charset, d.flags, d.prm)
}
