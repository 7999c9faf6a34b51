package pcd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDecodeUnicodeDescriptor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pctable")
	defer teardown()
	//
	rec := []byte{0x01, 0x00, 0x00, 0x04, 0x00, 0x00, 0x22, 0x11}
	d, err := Decode(rec, 0, Windows1252)
	if err != nil {
		t.Fatalf("unexpected Decode error: %v", err)
	}
	if !d.IsUnicode() || d.Charset() != UTF16LE {
		t.Fatalf("expected unicode descriptor, got %s", d)
	}
	if d.FilePosition() != 0x400 {
		t.Fatalf("unexpected file position: %d", d.FilePosition())
	}
	if !d.NoParaLast() || d.PaphNil() || d.Dirty() {
		t.Fatalf("unexpected flags: %#x", d.Flags())
	}
	if d.Prm() != 0x1122 {
		t.Fatalf("unexpected prm: %#x", d.Prm())
	}
	if d.BytesPerChar() != 2 {
		t.Fatalf("unicode pieces use 2 bytes per char")
	}
	if !bytes.Equal(d.Bytes(), rec) {
		t.Fatalf("re-encoding changed record: % x", d.Bytes())
	}
}

func TestDecodeCompressedDescriptor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pctable")
	defer teardown()
	//
	// fc 0x400 stored as 0x800 | compression bit
	rec := []byte{0x00, 0x00, 0x00, 0x08, 0x00, 0x40, 0x00, 0x00}
	d, err := Decode(rec, 0, Windows1251)
	if err != nil {
		t.Fatalf("unexpected Decode error: %v", err)
	}
	if d.IsUnicode() {
		t.Fatalf("expected compressed descriptor")
	}
	if d.FilePosition() != 0x400 {
		t.Fatalf("unexpected file position: %d", d.FilePosition())
	}
	if d.Charset() != Windows1251 {
		t.Fatalf("expected charset windows-1251, got %s", d.Charset())
	}
	if !bytes.Equal(d.Bytes(), rec) {
		t.Fatalf("re-encoding changed record: % x", d.Bytes())
	}
}

func TestDecodeAtOffset(t *testing.T) {
	buf := make([]byte, 3+SizeInBytes)
	copy(buf[3:], New(77, false, Windows1252).Bytes())
	d, err := Decode(buf, 3, Windows1252)
	if err != nil {
		t.Fatalf("unexpected Decode error: %v", err)
	}
	if d.FilePosition() != 77 || d.IsUnicode() {
		t.Fatalf("unexpected descriptor %s", d)
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	_, err := Decode(make([]byte, 7), 0, Windows1252)
	if !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}
	_, err = Decode(make([]byte, 16), 9, Windows1252)
	if !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer for offset 9, got %v", err)
	}
}

func TestWithFilePositionKeepsEncoding(t *testing.T) {
	d := New(10, false, Big5)
	moved := d.WithFilePosition(512)
	if d.FilePosition() != 10 {
		t.Fatalf("WithFilePosition must not modify the receiver")
	}
	if moved.FilePosition() != 512 || moved.IsUnicode() || moved.Charset() != Big5 {
		t.Fatalf("unexpected moved descriptor %s", moved)
	}
	back, err := Decode(moved.Bytes(), 0, Big5)
	if err != nil {
		t.Fatalf("unexpected Decode error: %v", err)
	}
	if back != moved {
		t.Fatalf("round trip mismatch: %s != %s", back, moved)
	}
}

func TestNewCompressedRejectsUTF16Charset(t *testing.T) {
	d := New(0, false, UTF16LE)
	if d.Charset() != Windows1252 {
		t.Fatalf("compressed pieces cannot be UTF-16LE, got %s", d.Charset())
	}
}

func TestValidateFilePosition(t *testing.T) {
	tests := []struct {
		fc      int
		unicode bool
		ok      bool
	}{
		{0, false, true},
		{1<<29 - 1, false, true},
		{1 << 29, false, false},
		{1 << 29, true, true},
		{1<<30 - 1, true, true},
		{1 << 30, true, false},
		{-1, true, false},
	}
	for _, tt := range tests {
		d := New(tt.fc, tt.unicode, Windows1252)
		err := d.Validate()
		if tt.ok && err != nil {
			t.Errorf("fc=%d unicode=%t: unexpected error %v", tt.fc, tt.unicode, err)
		}
		if !tt.ok && !errors.Is(err, ErrFilePosition) {
			t.Errorf("fc=%d unicode=%t: expected ErrFilePosition, got %v", tt.fc, tt.unicode, err)
		}
		if tt.ok {
			back, _ := Decode(d.Bytes(), 0, Windows1252)
			if back.FilePosition() != tt.fc {
				t.Errorf("fc=%d unicode=%t: decoded as %d", tt.fc, tt.unicode, back.FilePosition())
			}
		}
	}
}
