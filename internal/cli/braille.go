package cli

// brailleGrid accumulates micro-pixels into braille cells. Each terminal
// cell holds a 2x4 dot matrix, so a w x h cell grid addresses 2w x 4h
// micro-pixels.
type brailleGrid struct {
	w, h  int       // in cells
	cells [][]uint8 // per-cell 8-bit dot mask
}

func newBrailleGrid(w, h int) *brailleGrid {
	cells := make([][]uint8, h)
	for i := range cells {
		cells[i] = make([]uint8, w)
	}
	return &brailleGrid{w: w, h: h, cells: cells}
}

// pixelSize returns the micro-pixel dimensions of the grid.
func (g *brailleGrid) pixelSize() (int, int) {
	return g.w * 2, g.h * 4
}

// brailleDots maps (column, row) within a cell to its dot bit in the
// U+2800 block encoding.
var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// set marks the micro-pixel at (px, py). Out-of-bounds coordinates are
// ignored.
func (g *brailleGrid) set(px, py int) {
	if px < 0 || py < 0 {
		return
	}
	cx, cy := px/2, py/4
	if cx >= g.w || cy >= g.h {
		return
	}
	g.cells[cy][cx] |= brailleDots[px%2][py%4]
}

// lines renders the grid as one string per cell row.
func (g *brailleGrid) lines() []string {
	out := make([]string, g.h)
	for y := 0; y < g.h; y++ {
		row := make([]rune, g.w)
		for x := 0; x < g.w; x++ {
			mask := g.cells[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}
