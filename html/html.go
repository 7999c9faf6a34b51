/*
Package html bridges piece tables and HTML.

Render writes the pieces of a table as an HTML fragment, one <span> per
piece, which is handy to inspect the piece structure of a document in a
browser. PieceFromHTML goes the other way and creates a synthetic text
piece from the textual content of an HTML fragment.
*/
package html

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/pctable"
	"github.com/npillmayer/pctable/pcd"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InnerText returns the textual content of an HTML element and all
// its descendents. It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript (except that html.InnerText cannot respect CSS styling suppressing
// the visibility of the node's descendents).
func InnerText(n *html.Node) (string, error) {
	if n == nil {
		return "", pctable.ErrIllegalArguments
	}
	var sb strings.Builder
	collectText(n, &sb)
	return sb.String(), nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	} else if n.Type == html.ElementNode && n.DataAtom == atom.Br {
		sb.WriteByte('\r')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// TextFromHTML extracts the textual content of an HTML fragment.
// It does not interpret layout and styling, but extracts the pure text.
// Line breaks become paragraph marks ('\r').
func TextFromHTML(input io.Reader) (string, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return "", errors.Wrap(err, "html: parsing fragment")
	}
	var sb strings.Builder
	for _, n := range nodes {
		collectText(n, &sb)
	}
	return sb.String(), nil
}

// PieceFromHTML creates a text piece starting at character position start
// from the textual content of an HTML fragment. The piece is encoded as
// described by desc; runes the descriptor's charset cannot represent are
// replaced.
func PieceFromHTML(input io.Reader, start int, desc pcd.Descriptor) (*pctable.TextPiece, error) {
	text, err := TextFromHTML(input)
	if err != nil {
		return nil, err
	}
	raw, err := desc.Charset().Encode(text)
	if err != nil {
		return nil, err
	}
	// replacements may change the length of the text
	stored, err := desc.Charset().Decode(raw)
	if err != nil {
		return nil, err
	}
	n := len(utf16.Encode([]rune(stored)))
	return pctable.NewTextPiece(start, start+n, raw, desc)
}

// Render writes the pieces of t, in character order, as an HTML fragment.
// Each piece becomes a <span> carrying its character range, file position
// and encoding as data attributes. Paragraph marks are rendered as <br>.
func Render(w io.Writer, t *pctable.TextPieceTable) error {
	if t == nil {
		return pctable.ErrIllegalArguments
	}
	root := element(atom.Div, html.Attribute{Key: "class", Val: "piece-table"})
	for _, tp := range t.Pieces() {
		enc := "8bit"
		if tp.IsUnicode() {
			enc = "utf16"
		}
		span := element(atom.Span,
			html.Attribute{Key: "class", Val: "piece"},
			html.Attribute{Key: "data-start", Val: strconv.Itoa(tp.Start())},
			html.Attribute{Key: "data-end", Val: strconv.Itoa(tp.End())},
			html.Attribute{Key: "data-fc", Val: strconv.Itoa(tp.Descriptor().FilePosition())},
			html.Attribute{Key: "data-encoding", Val: enc},
		)
		for i, para := range strings.Split(tp.String(), "\r") {
			if i > 0 {
				span.AppendChild(element(atom.Br))
			}
			if para != "" {
				span.AppendChild(&html.Node{Type: html.TextNode, Data: para})
			}
		}
		root.AppendChild(span)
	}
	return html.Render(w, root)
}

func element(a atom.Atom, attr ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attr,
	}
}
