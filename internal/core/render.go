package core

import (
	"fmt"
	"io/fs"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/lumipallolabs/duview/internal/model"
	"github.com/mattn/go-runewidth"
)

const title = "duview --- Press ? for help"

func (nv *Navigator) redraw() {
	nv.surface.Clear(0, nv.rows-1)
	nv.drawTitle()
	nv.drawLabels()
	nv.drawEntries()
	nv.drawStatus()
	nv.drawSummary()
}

func (nv *Navigator) drawTitle() {
	nv.surface.Print(titleRow, 1, title, model.ColorDefault)

	info := fmt.Sprintf("Freed: %s", humanize.Bytes(uint64(nv.freed.Bytes)))
	if nv.highlighted != nil {
		if vol, err := nv.volume(nv.Dir()); err == nil && vol.TotalBytes > 0 {
			info += fmt.Sprintf("  Free: %s (%.0f%% used)",
				humanize.Bytes(uint64(vol.FreeBytes)), vol.UsedPercent())
		}
	}
	nv.printRight(titleRow, info+" ")
	nv.surface.Reverse(titleRow, true)
}

func (nv *Navigator) drawLabels() {
	if labelRow >= nv.rows {
		return
	}
	nv.surface.Print(labelRow, colSize, fmt.Sprintf("%*s", sizeWidth, "Size"), model.ColorDefault)
	nv.surface.Print(labelRow, colSep1, "|", model.ColorDefault)
	nv.surface.Print(labelRow, colTime, "Modified", model.ColorDefault)
	nv.surface.Print(labelRow, colSep2, "|", model.ColorDefault)
	nv.surface.Print(labelRow, colName, "Name", model.ColorDefault)
}

func (nv *Navigator) drawEntries() {
	nv.surface.Clear(nv.minRow, nv.maxRow)
	if nv.highlighted == nil {
		return
	}
	for n := nv.firstVisible(); n != nil && n.Display.Row <= nv.maxRow; n = n.Next {
		nv.drawEntry(n, n == nv.highlighted)
	}
}

func (nv *Navigator) drawEntry(n *model.Node, on bool) {
	row := n.Display.Row
	if row < nv.minRow || row > nv.maxRow {
		return
	}
	nv.surface.Clear(row, row)
	nv.surface.Print(row, colSize, sizeText(n), model.ColorDefault)
	nv.surface.Print(row, colSep1, "|", model.ColorDefault)
	nv.surface.Print(row, colTime, nv.timeText(n), model.ColorDefault)
	nv.surface.Print(row, colSep2, "|", model.ColorDefault)
	nv.surface.Print(row, colName, n.Label(), n.Display.Color)
	nv.surface.Reverse(row, on)
}

func (nv *Navigator) drawStatus() {
	row := nv.rows - 2
	if row <= nv.maxRow || nv.highlighted == nil {
		return
	}
	nv.surface.Clear(row, row)
	text := nv.status
	if text == "" {
		text = nv.detail(nv.highlighted)
	}
	nv.surface.Print(row, 1, text, model.ColorDefault)
}

func (nv *Navigator) drawSummary() {
	row := nv.rows - 1
	if row <= nv.maxRow || nv.highlighted == nil {
		return
	}
	nv.surface.Clear(row, row)
	usage := fmt.Sprintf("Total Disk Usage: %s", humanize.Bytes(uint64(model.DiskUsage(nv.highlighted.Head()))))
	path := runewidth.Truncate("Path: "+nv.Dir(), nv.cols-runewidth.StringWidth(usage)-2, "…")
	nv.surface.Print(row, 0, path, model.ColorDefault)
	nv.printRight(row, usage)
}

func (nv *Navigator) printRight(row int, text string) {
	col := nv.cols - runewidth.StringWidth(text)
	if col < 0 {
		col = 0
	}
	nv.surface.Print(row, col, text, model.ColorDefault)
}

func sizeText(n *model.Node) string {
	if n.Info == nil {
		return fmt.Sprintf("%*s", sizeWidth, "?")
	}
	return fmt.Sprintf("%*s", sizeWidth, humanize.Bytes(uint64(n.ActualSize)))
}

func (nv *Navigator) timeText(n *model.Node) string {
	if n.Info == nil {
		return "?"
	}
	rel := humanize.RelTime(n.Info.ModTime, nv.now(), "ago", "from now")
	return runewidth.Truncate(rel, timeWidth, "")
}

// Describe is the default status line for an entry: its mode and what
// kind of object it is. Regular files are sniffed for a MIME type.
func Describe(n *model.Node) string {
	if n.Info == nil {
		return fmt.Sprintf("%s: permission denied", n.Name)
	}
	mode := n.Info.Mode

	var kind string
	switch {
	case mode.IsRegular():
		kind = "file"
		if mt, err := mimetype.DetectFile(n.Path); err == nil {
			kind = mt.String()
		}
	case mode.IsDir():
		switch {
		case n.Child != nil:
			kind = fmt.Sprintf("directory, %d entries", model.Len(n.Child)-2)
		case n.Pruned:
			kind = "directory, not scanned"
		case n.IsDot():
			kind = "directory"
		default:
			kind = "directory, not readable"
		}
	case mode&fs.ModeSymlink != 0:
		kind = "symbolic link"
	case mode&fs.ModeSocket != 0:
		kind = "socket"
	case mode&fs.ModeNamedPipe != 0:
		kind = "named pipe"
	case mode&fs.ModeDevice != 0:
		kind = "device"
	}
	return fmt.Sprintf("%s  %s", mode, kind)
}
