package layout

import (
	"math"

	"fyne.io/fyne/v2"
)

// Grid lays gauges out in equal cells, left to right and top to bottom.
// Zero Cols or Rows are derived from the number of objects.
type Grid struct {
	Cols, Rows int
	Padding    float32
	lastSize   fyne.Size
	lastCount  int
}

func (g *Grid) dims(n int) (cols, rows int) {
	cols, rows = g.Cols, g.Rows
	switch {
	case cols > 0 && rows > 0:
	case cols > 0:
		rows = (n + cols - 1) / cols
	case rows > 0:
		cols = (n + rows - 1) / rows
	default:
		cols = int(math.Ceil(math.Sqrt(float64(n))))
		rows = (n + cols - 1) / max(cols, 1)
	}
	return max(cols, 1), max(rows, 1)
}

func (g *Grid) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	// Skip if nothing changed
	if size == g.lastSize && len(objects) == g.lastCount {
		return
	}
	g.lastSize = size
	g.lastCount = len(objects)

	cols, rows := g.dims(len(objects))
	padding2 := g.Padding * 2
	cellWidth := (size.Width - float32(cols)*padding2) / float32(cols)
	cellHeight := (size.Height - float32(rows)*padding2) / float32(rows)

	for i, obj := range objects[:min(len(objects), rows*cols)] {
		row := i / cols
		col := i % cols

		obj.Move(fyne.NewPos(
			float32(col)*(cellWidth+padding2)+g.Padding,
			float32(row)*(cellHeight+padding2)+g.Padding,
		))
		obj.Resize(fyne.Size{Width: cellWidth, Height: cellHeight})
	}
}

func (g *Grid) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) == 0 {
		return fyne.Size{}
	}
	cols, rows := g.dims(len(objects))
	w := objects[0].MinSize().Width + (2 * g.Padding)
	h := objects[0].MinSize().Height + (2 * g.Padding)
	return fyne.Size{Width: w * float32(cols), Height: h * float32(rows)}
}

// NewGrid creates a new Grid layout with the specified number of columns and rows
func NewGrid(cols, rows int, padding float32) *Grid {
	return &Grid{
		Cols:    max(cols, 0),
		Rows:    max(rows, 0),
		Padding: padding,
	}
}
