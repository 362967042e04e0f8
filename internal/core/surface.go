package core

import "github.com/lumipallolabs/duview/internal/model"

// Surface is the character screen the navigator draws on. Rows and
// columns start at zero and Clear takes an inclusive row range.
type Surface interface {
	Size() (rows, cols int)
	Clear(from, to int)
	Print(row, col int, text string, class model.ColorClass)
	Reverse(row int, on bool)
}

// Screen layout. Row 0 is the title bar and row 1 the column labels;
// entries start at model.FirstRow. The last two rows hold the status line
// and the summary.
const (
	titleRow  = 0
	labelRow  = 1
	colSize   = 0
	colSep1   = 10
	colTime   = 12
	colSep2   = 25
	colName   = 27
	sizeWidth = 9
	timeWidth = colSep2 - colTime - 1
)
