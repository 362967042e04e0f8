package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/duview/internal/core"
	"github.com/lumipallolabs/duview/internal/model"
	"github.com/mattn/go-runewidth"
)

// cell is one terminal column. A wide rune occupies its own cell and
// marks the next one as a continuation with r == 0.
type cell struct {
	r     rune
	class model.ColorClass
}

var blank = cell{r: ' '}

// Canvas is a character grid the navigator draws on. View renders it
// with lipgloss, one style per color class.
type Canvas struct {
	rows, cols int
	cells      [][]cell
	reverse    []bool
	styles     Palette
}

// NewCanvas creates a blank canvas
func NewCanvas(cols, rows int, styles Palette) *Canvas {
	c := &Canvas{styles: styles}
	c.Resize(cols, rows)
	return c
}

// Resize discards the content and sets new dimensions
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.rows, c.cols = rows, cols
	c.cells = make([][]cell, rows)
	for i := range c.cells {
		c.cells[i] = make([]cell, cols)
		c.clearRow(i)
	}
	c.reverse = make([]bool, rows)
}

// Size implements core.Surface
func (c *Canvas) Size() (int, int) {
	return c.rows, c.cols
}

// Clear blanks rows from..to
func (c *Canvas) Clear(from, to int) {
	if from < 0 {
		from = 0
	}
	for r := from; r <= to && r < c.rows; r++ {
		c.clearRow(r)
		c.reverse[r] = false
	}
}

func (c *Canvas) clearRow(r int) {
	for i := range c.cells[r] {
		c.cells[r][i] = blank
	}
}

// Print writes text at row, col. Text running past the right edge is cut.
func (c *Canvas) Print(row, col int, text string, class model.ColorClass) {
	if row < 0 || row >= c.rows || col < 0 {
		return
	}
	line := c.cells[row]
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > c.cols {
			break
		}
		// a wide rune cut in half by this write leaves a blank behind
		if line[col].r == 0 && col > 0 {
			line[col-1] = blank
		}
		line[col] = cell{r: r, class: class}
		if w == 2 {
			line[col+1] = cell{r: 0, class: class}
		}
		col += w
	}
	if col < c.cols && line[col].r == 0 {
		line[col] = blank
	}
}

// Reverse toggles reverse video for a whole row
func (c *Canvas) Reverse(row int, on bool) {
	if row >= 0 && row < c.rows {
		c.reverse[row] = on
	}
}

// Line returns the plain text of a row without trailing blanks
func (c *Canvas) Line(row int) string {
	if row < 0 || row >= c.rows {
		return ""
	}
	var b strings.Builder
	for _, cl := range c.cells[row] {
		if cl.r != 0 {
			b.WriteRune(cl.r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Reversed reports whether row is drawn in reverse video
func (c *Canvas) Reversed(row int) bool {
	return row >= 0 && row < c.rows && c.reverse[row]
}

// View renders the grid, grouping runs of cells with the same class
func (c *Canvas) View() string {
	lines := make([]string, c.rows)
	for r := 0; r < c.rows; r++ {
		lines[r] = c.renderRow(r)
	}
	return strings.Join(lines, "\n")
}

func (c *Canvas) renderRow(r int) string {
	var (
		out   strings.Builder
		run   strings.Builder
		class model.ColorClass
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		out.WriteString(c.styles.Style(class, c.reverse[r]).Render(run.String()))
		run.Reset()
	}
	for i, cl := range c.cells[r] {
		if cl.r == 0 {
			continue
		}
		if i == 0 || cl.class != class {
			flush()
			class = cl.class
		}
		run.WriteRune(cl.r)
	}
	flush()
	return out.String()
}

var _ core.Surface = (*Canvas)(nil)

// Palette maps color classes to styles
type Palette struct {
	classes map[model.ColorClass]lipgloss.Style
	plain   lipgloss.Style
}

// Style returns the style for class, reversed for the highlight
func (p Palette) Style(class model.ColorClass, reverse bool) lipgloss.Style {
	st, ok := p.classes[class]
	if !ok {
		st = p.plain
	}
	if reverse {
		st = st.Reverse(true)
	}
	return st
}
