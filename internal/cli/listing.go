package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/npillmayer/pctable"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

const defaultLineWidth = 100

// columns used by a listing line before the text preview
const prefixWidth = 44

var setupGraphemes sync.Once

// listing prints one line per text piece.
type listing struct {
	w         io.Writer
	linewidth int
	ranges    *color.Color
	unicode   *color.Color
	ansi      *color.Color
	text      *color.Color
}

func newListing(w io.Writer, mode string) *listing {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	l := &listing{
		w:         w,
		linewidth: defaultLineWidth,
		ranges:    color.New(color.FgCyan),
		unicode:   color.New(color.FgYellow),
		ansi:      color.New(color.FgGreen),
		text:      color.New(color.Faint),
	}
	isTerm := false
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		isTerm = true
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			l.linewidth = width
		}
	}
	enable := mode == "always" || (mode == "auto" && isTerm)
	for _, c := range []*color.Color{l.ranges, l.unicode, l.ansi, l.text} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return l
}

func (l *listing) print(t *pctable.TextPieceTable) error {
	width := max(l.linewidth-prefixWidth, 10)
	for i, tp := range t.Pieces() {
		enc, c := tp.Descriptor().Charset().String(), l.ansi
		if tp.IsUnicode() {
			c = l.unicode
		}
		rng := fmt.Sprintf("[%d,%d)", tp.Start(), tp.End())
		_, err := fmt.Fprintf(l.w, "%4d  %s  fc=%-9d %s  %s\n", i,
			l.ranges.Sprintf("%-15s", rng), tp.Descriptor().FilePosition(),
			c.Sprintf("%-12s", enc), l.text.Sprint(preview(tp.String(), width)))
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(l.w, "%d pieces, %d characters, cpMin=%d\n", t.Len(), t.TextLen(), t.CPMin())
	return err
}

var controlChars = strings.NewReplacer("\r", "¶", "\n", "↵", "\t", "→", "\a", "·", "\f", "·", "\v", "·")

// preview returns the text with visible control characters, truncated to
// at most width terminal columns.
func preview(s string, width int) string {
	s = controlChars.Replace(s)
	gstr := grapheme.StringFromString(s)
	if displayWidth(gstr) <= width {
		return s
	}
	var sb strings.Builder
	w := 0
	for i := 0; i < gstr.Len(); i++ {
		g := gstr.Nth(i)
		gw := graphemeWidth(g)
		if w+gw > width-1 {
			break
		}
		sb.WriteString(g)
		w += gw
	}
	sb.WriteString("…")
	return sb.String()
}

func displayWidth(gstr grapheme.String) int {
	w := 0
	for i := 0; i < gstr.Len(); i++ {
		w += graphemeWidth(gstr.Nth(i))
	}
	return w
}

// graphemeWidth returns the number of terminal columns of a grapheme.
// uax11 classifies the keycap base characters (digits, '#', '*') as emoji
// and reports them as wide; single ASCII bytes always take one column.
func graphemeWidth(g string) int {
	if len(g) == 1 && g[0] < utf8.RuneSelf {
		return 1
	}
	return uax11.Width([]byte(g), uax11.LatinContext)
}
