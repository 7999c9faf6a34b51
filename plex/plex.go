/*
Package plex reads and writes PLCs ("plexes"), the property location caches
of binary Word documents.

A PLC with N entries is stored as N+1 little-endian int32 character
positions followed by N fixed-size data records. Entry i covers the
half-open character range [cp[i], cp[i+1]).

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package plex

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

var (
	// ErrSizeMismatch signals a PLC size which does not fit the record size.
	ErrSizeMismatch = errors.New("plex: size does not match record layout")
	// ErrOutOfBounds signals a PLC extending beyond its buffer.
	ErrOutOfBounds = errors.New("plex: region out of bounds")
	// ErrRecordSize signals a node whose data does not match the record size.
	ErrRecordSize = errors.New("plex: node data does not match record size")
)

// Node is a single PLC entry: a character range and its opaque data record.
type Node struct {
	Start int
	End   int
	Data  []byte
}

// Plex is an ordered collection of nodes sharing a data record size.
type Plex struct {
	structSize int
	nodes      []Node
}

// New creates an empty plex for records of structSize bytes.
func New(structSize int) *Plex {
	return &Plex{structSize: structSize}
}

// Parse reads a PLC of size bytes, starting at offset in buf.
func Parse(buf []byte, offset, size, structSize int) (*Plex, error) {
	if size < 4 || structSize < 0 || (size-4)%(4+structSize) != 0 {
		return nil, errors.Wrapf(ErrSizeMismatch, "size %d, record size %d", size, structSize)
	}
	if offset < 0 || offset+size > len(buf) {
		return nil, errors.Wrapf(ErrOutOfBounds, "[%d, %d) in buffer of length %d",
			offset, offset+size, len(buf))
	}
	n := (size - 4) / (4 + structSize)
	p := &Plex{structSize: structSize, nodes: make([]Node, n)}
	data := offset + 4*(n+1)
	for i := range p.nodes {
		d := make([]byte, structSize)
		copy(d, buf[data+i*structSize:])
		p.nodes[i] = Node{
			Start: cpAt(buf, offset, i),
			End:   cpAt(buf, offset, i+1),
			Data:  d,
		}
	}
	return p, nil
}

func cpAt(buf []byte, offset, i int) int {
	return int(int32(binary.LittleEndian.Uint32(buf[offset+4*i:])))
}

// StructSize returns the size of the data records.
func (p *Plex) StructSize() int {
	return p.structSize
}

// Len returns the number of nodes.
func (p *Plex) Len() int {
	if p == nil {
		return 0
	}
	return len(p.nodes)
}

// At returns node i.
func (p *Plex) At(i int) Node {
	return p.nodes[i]
}

// Nodes returns all nodes in order.
func (p *Plex) Nodes() []Node {
	return append([]Node(nil), p.nodes...)
}

// Add appends a node. Its data must have the plex's record size.
func (p *Plex) Add(n Node) error {
	if len(n.Data) != p.structSize {
		return errors.Wrapf(ErrRecordSize, "got %d bytes, want %d", len(n.Data), p.structSize)
	}
	p.nodes = append(p.nodes, n)
	return nil
}

// Bytes serializes the plex. The final character position is the end of the
// last node; an empty plex serializes to a single zero position.
func (p *Plex) Bytes() []byte {
	n := len(p.nodes)
	b := make([]byte, 4*(n+1)+n*p.structSize)
	last := 0
	for i, node := range p.nodes {
		binary.LittleEndian.PutUint32(b[4*i:], uint32(int32(node.Start)))
		last = node.End
	}
	binary.LittleEndian.PutUint32(b[4*n:], uint32(int32(last)))
	data := 4 * (n + 1)
	for i, node := range p.nodes {
		copy(b[data+i*p.structSize:], node.Data)
	}
	return b
}
