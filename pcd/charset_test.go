package pcd

import (
	"errors"
	"testing"
)

func TestWindows1252RoundTrip(t *testing.T) {
	raw := []byte{'H', 0xe9, 'l', 0x80}
	s, err := Windows1252.Decode(raw)
	if err != nil {
		t.Fatalf("unexpected Decode error: %v", err)
	}
	if s != "Hél€" {
		t.Fatalf("unexpected decoded text %q", s)
	}
	back, err := Windows1252.Encode(s)
	if err != nil {
		t.Fatalf("unexpected Encode error: %v", err)
	}
	if string(back) != string(raw) {
		t.Fatalf("round trip mismatch: % x", back)
	}
}

func TestUTF16LEDecode(t *testing.T) {
	s, err := UTF16LE.Decode([]byte{'a', 0, 0xac, 0x20})
	if err != nil {
		t.Fatalf("unexpected Decode error: %v", err)
	}
	if s != "a€" {
		t.Fatalf("unexpected decoded text %q", s)
	}
}

func TestBig5Decode(t *testing.T) {
	// 中文 in Big5
	s, err := Big5.Decode([]byte{0xa4, 0xa4, 0xa4, 0xe5})
	if err != nil {
		t.Fatalf("unexpected Decode error: %v", err)
	}
	if s != "中文" {
		t.Fatalf("unexpected decoded text %q", s)
	}
}

func TestEncodeReplacesUnsupportedRunes(t *testing.T) {
	b, err := Windows1252.Encode("a中b")
	if err != nil {
		t.Fatalf("unexpected Encode error: %v", err)
	}
	if len(b) != 3 || b[0] != 'a' || b[2] != 'b' {
		t.Fatalf("expected one replacement byte, got % x", b)
	}
}

func TestCharsetLookup(t *testing.T) {
	cs, err := CharsetForCodepage(1251)
	if err != nil || cs != Windows1251 {
		t.Fatalf("expected windows-1251, got %s (%v)", cs, err)
	}
	if _, err = CharsetForCodepage(37); !errors.Is(err, ErrUnknownCharset) {
		t.Fatalf("expected ErrUnknownCharset, got %v", err)
	}
	cs, err = CharsetForName("big5")
	if err != nil || cs != Big5 {
		t.Fatalf("expected big5, got %s (%v)", cs, err)
	}
	if Charset(99).String() != "unknown" {
		t.Fatalf("unexpected name for undefined charset")
	}
	if _, err = Charset(99).Decode([]byte("x")); !errors.Is(err, ErrUnknownCharset) {
		t.Fatalf("expected ErrUnknownCharset, got %v", err)
	}
}
