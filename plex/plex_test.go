package plex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func plc(cps []int32, records ...[]byte) []byte {
	var b []byte
	for _, cp := range cps {
		b = append(b, byte(cp), byte(cp>>8), byte(cp>>16), byte(cp>>24))
	}
	for _, r := range records {
		b = append(b, r...)
	}
	return b
}

func TestParse(t *testing.T) {
	buf := append([]byte{0xff, 0xff}, plc([]int32{0, 5, 12}, []byte{1, 2}, []byte{3, 4})...)
	p, err := Parse(buf, 2, len(buf)-2, 2)
	require.NoError(t, err)
	require.Equal(t, 2, p.Len())
	require.Equal(t, 2, p.StructSize())
	require.Equal(t, Node{Start: 0, End: 5, Data: []byte{1, 2}}, p.At(0))
	require.Equal(t, Node{Start: 5, End: 12, Data: []byte{3, 4}}, p.At(1))
}

func TestParseCopiesData(t *testing.T) {
	buf := plc([]int32{0, 1}, []byte{9})
	p, err := Parse(buf, 0, len(buf), 1)
	require.NoError(t, err)
	buf[8] = 0
	require.Equal(t, []byte{9}, p.At(0).Data)
}

func TestParseSizeMismatch(t *testing.T) {
	buf := plc([]int32{0, 5}, []byte{1, 2, 3})
	_, err := Parse(buf, 0, len(buf), 2)
	require.ErrorIs(t, err, ErrSizeMismatch)
	_, err = Parse(buf, 0, 3, 2)
	require.ErrorIs(t, err, ErrSizeMismatch)
}

func TestParseOutOfBounds(t *testing.T) {
	buf := plc([]int32{0, 5}, []byte{1, 2})
	_, err := Parse(buf, 2, len(buf), 2)
	require.ErrorIs(t, err, ErrOutOfBounds)
	_, err = Parse(buf, -1, len(buf), 2)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestParseEmptyPlex(t *testing.T) {
	p, err := Parse([]byte{0, 0, 0, 0}, 0, 4, 8)
	require.NoError(t, err)
	require.Equal(t, 0, p.Len())
	require.Empty(t, p.Nodes())
}

func TestBytesRoundTrip(t *testing.T) {
	p := New(2)
	require.NoError(t, p.Add(Node{Start: 0, End: 3, Data: []byte{1, 2}}))
	require.NoError(t, p.Add(Node{Start: 3, End: 10, Data: []byte{3, 4}}))
	b := p.Bytes()
	require.Equal(t, plc([]int32{0, 3, 10}, []byte{1, 2}, []byte{3, 4}), b)
	q, err := Parse(b, 0, len(b), 2)
	require.NoError(t, err)
	require.Equal(t, p.Nodes(), q.Nodes())
}

func TestAddRejectsWrongRecordSize(t *testing.T) {
	p := New(8)
	err := p.Add(Node{Start: 0, End: 1, Data: []byte{1}})
	require.ErrorIs(t, err, ErrRecordSize)
	require.Equal(t, 0, p.Len())
}

func TestEmptyPlexBytes(t *testing.T) {
	require.Equal(t, []byte{0, 0, 0, 0}, New(8).Bytes())
}
