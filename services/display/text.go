package display

import (
	"io"
	"strings"

	"menucode-go/types"
)

// Text renders views as plain lines on a character stream, one frame per
// view separated by a rule.
type Text struct {
	w          io.Writer
	rows, cols int
}

func NewText(w io.Writer, rows, cols int) *Text {
	return &Text{w: w, rows: rows, cols: cols}
}

func (t *Text) Render(v types.View) error {
	lines := Lines(v, t.rows, t.cols)
	var sb strings.Builder
	sb.WriteString(strings.Repeat("-", max(t.cols, 4)))
	sb.WriteByte('\n')
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(t.w, sb.String())
	return err
}
