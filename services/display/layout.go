// Package display turns published views into something a person can read:
// a character layout, an SSD1306 frame, or CBOR frames for an external
// renderer.
package display

import (
	"strconv"

	"menucode-go/types"
	"menucode-go/x/strx"
)

const (
	markSelected = "> "
	markPlain    = "  "
	markBack     = "< "
)

// Lines lays v out on a rows x cols character grid. Row 0 is the title.
// While browsing, the remaining rows are a window over the items that keeps
// the highlighted one visible; while editing they show the value, a bar and
// its range.
func Lines(v types.View, rows, cols int) []string {
	rows = max(rows, 2)
	cols = max(cols, 4)
	out := make([]string, 0, rows)

	title := v.Title
	if v.CanGoBack {
		title = markBack + title
	}
	out = append(out, strx.Truncate(title, cols))

	if v.Editing && v.Value != nil {
		return editLines(out, *v.Value, rows, cols)
	}

	body := rows - 1
	first := 0
	if hi := v.Highlighted(); hi >= body {
		first = hi - body + 1
	}
	for i := first; i < len(v.Items) && len(out) < rows; i++ {
		out = append(out, strx.Truncate(itemText(v.Items[i]), cols))
	}
	return out
}

func itemText(it types.ViewItem) string {
	mark := markPlain
	if it.Highlighted {
		mark = markSelected
	}
	switch it.Kind {
	case types.NodeSubMenu:
		return mark + it.Label + "/"
	case types.NodeValue:
		return mark + it.Label + " " + strconv.Itoa(it.Value) + it.Unit
	}
	return mark + it.Label
}

func editLines(out []string, val types.ValueView, rows, cols int) []string {
	cur := strconv.Itoa(val.Current) + val.Unit
	lines := []string{
		markSelected + val.Label,
		markPlain + cur,
		bar(val, cols),
		strconv.Itoa(val.Min) + ".." + strconv.Itoa(val.Max) + val.Unit,
	}
	for _, l := range lines {
		if len(out) == rows {
			break
		}
		out = append(out, strx.Truncate(l, cols))
	}
	return out
}

// bar draws [####    ] proportional to the value within its range.
func bar(val types.ValueView, cols int) string {
	width := cols - 2
	filled := width
	if span := val.Max - val.Min; span > 0 {
		filled = (val.Current - val.Min) * width / span
	}
	b := make([]byte, 0, cols)
	b = append(b, '[')
	for i := 0; i < width; i++ {
		if i < filled {
			b = append(b, '#')
		} else {
			b = append(b, ' ')
		}
	}
	return string(append(b, ']'))
}
