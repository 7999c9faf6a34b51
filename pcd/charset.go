package pcd

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Charset identifies the encoding of the bytes of a text piece.
//
// The zero value is Windows1252, the code page Word uses for compressed text
// unless the document says otherwise.
type Charset int

// Supported charsets.
const (
	Windows1252 Charset = iota
	UTF16LE
	Windows1250
	Windows1251
	Windows1253
	Windows1254
	Windows1255
	Windows1256
	Windows1257
	Windows1258
	Windows874
	Big5 // cp950, the only double-byte charset for compressed pieces
)

var charsetNames = map[Charset]string{
	Windows1252: "windows-1252",
	UTF16LE:     "utf-16le",
	Windows1250: "windows-1250",
	Windows1251: "windows-1251",
	Windows1253: "windows-1253",
	Windows1254: "windows-1254",
	Windows1255: "windows-1255",
	Windows1256: "windows-1256",
	Windows1257: "windows-1257",
	Windows1258: "windows-1258",
	Windows874:  "windows-874",
	Big5:        "big5",
}

var codepages = map[int]Charset{
	1252: Windows1252,
	1200: UTF16LE,
	1250: Windows1250,
	1251: Windows1251,
	1253: Windows1253,
	1254: Windows1254,
	1255: Windows1255,
	1256: Windows1256,
	1257: Windows1257,
	1258: Windows1258,
	874:  Windows874,
	950:  Big5,
}

func (cs Charset) String() string {
	if name, ok := charsetNames[cs]; ok {
		return name
	}
	return "unknown"
}

// CharsetForCodepage maps a Windows code page number to a Charset.
func CharsetForCodepage(cp int) (Charset, error) {
	if cs, ok := codepages[cp]; ok {
		return cs, nil
	}
	return Windows1252, errors.Wrapf(ErrUnknownCharset, "code page %d", cp)
}

// CharsetForName maps a charset name as returned by String to a Charset.
func CharsetForName(name string) (Charset, error) {
	for cs, n := range charsetNames {
		if n == name {
			return cs, nil
		}
	}
	return Windows1252, errors.Wrapf(ErrUnknownCharset, "charset name %q", name)
}

// BytesPerChar returns the number of bytes a piece in this charset occupies
// per character position. Big5 pieces are addressed like single-byte pieces.
func (cs Charset) BytesPerChar() int {
	if cs == UTF16LE {
		return 2
	}
	return 1
}

// Decode converts raw piece bytes to a Go string.
func (cs Charset) Decode(raw []byte) (string, error) {
	enc, err := cs.encoding()
	if err != nil {
		return "", err
	}
	b, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.Wrapf(err, "pcd: decoding %d bytes as %s", len(raw), cs)
	}
	return string(b), nil
}

// Encode converts a Go string to raw piece bytes. Runes without a
// representation in the charset are replaced.
func (cs Charset) Encode(s string) ([]byte, error) {
	enc, err := cs.encoding()
	if err != nil {
		return nil, err
	}
	b, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return nil, errors.Wrapf(err, "pcd: encoding %d bytes as %s", len(s), cs)
	}
	return b, nil
}

func (cs Charset) encoding() (encoding.Encoding, error) {
	switch cs {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case Windows1252:
		return charmap.Windows1252, nil
	case Windows1250:
		return charmap.Windows1250, nil
	case Windows1251:
		return charmap.Windows1251, nil
	case Windows1253:
		return charmap.Windows1253, nil
	case Windows1254:
		return charmap.Windows1254, nil
	case Windows1255:
		return charmap.Windows1255, nil
	case Windows1256:
		return charmap.Windows1256, nil
	case Windows1257:
		return charmap.Windows1257, nil
	case Windows1258:
		return charmap.Windows1258, nil
	case Windows874:
		return charmap.Windows874, nil
	case Big5:
		return traditionalchinese.Big5, nil
	}
	return nil, errors.Wrapf(ErrUnknownCharset, "charset %d", int(cs))
}
