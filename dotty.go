package pctable

import (
	"fmt"
	"io"
	"strings"
)

type pieceids struct {
	idTable map[*TextPiece]int
	max     int
}

func newtable() pieceids {
	return pieceids{
		idTable: make(map[*TextPiece]int),
		max:     1,
	}
}

func (ids pieceids) find(tp *TextPiece) int {
	return ids.idTable[tp]
}

func (ids *pieceids) alloc(tp *TextPiece) int {
	if id := ids.find(tp); id > 0 {
		return id
	}
	ids.idTable[tp] = ids.max
	ids.max++
	return ids.max - 1
}

// Table2Dot outputs the pieces of a table in Graphviz DOT format
// (for debugging purposes). Solid edges link pieces in character order,
// dashed edges in file position order.
func Table2Dot(t *TextPieceTable, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("strict digraph {\n")
	sb.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	ids := newtable()
	nodelist, edgelist := "", ""
	for i, tp := range t.pieces {
		ID := ids.alloc(tp)
		label := fmt.Sprintf("[%d,%d) @%d\\n“%s”", tp.start, tp.end, tp.desc.FilePosition(), strstart(tp))
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", ID, label, pieceDotStyles(tp))
		if i > 0 {
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", ids.find(t.pieces[i-1]), ID)
		}
	}
	for i := 1; i < len(t.fcOrder); i++ {
		edgelist += fmt.Sprintf("\"%d\" -> \"%d\" [style=dashed];\n",
			ids.alloc(t.fcOrder[i-1]), ids.alloc(t.fcOrder[i]))
	}
	sb.WriteString(nodelist)
	sb.WriteString(edgelist)
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	if err != nil {
		tracer().Errorf("piece table DOT: %s", err.Error())
	}
	return err
}

func pieceDotStyles(tp *TextPiece) string {
	s := ",style=filled,shape=box"
	if tp.IsUnicode() {
		s += ",fillcolor=\"#a3d7e4\""
	} else {
		s += ",fillcolor=white"
	}
	return s
}

// strstart returns an escaped prefix of the piece text for labels.
func strstart(tp *TextPiece) string {
	s := []rune(tp.String())
	if len(s) > 10 {
		s = append(s[:10], '…')
	}
	r := strings.NewReplacer(`"`, `\"`, `\`, `\\`, "\n", `\n`, "\r", "¶")
	return r.Replace(string(s))
}
