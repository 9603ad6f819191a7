package geometry

import (
	"sort"
	"strings"
)

// Glyphs used by Rasterize.
const (
	CurveGlyph = '█'
	FillGlyph  = '░'
	BlankGlyph = ' '
)

// flattenSegments is the number of straight pieces per quadratic segment.
const flattenSegments = 8

// Rasterize draws the smoothed curve of points onto a cols x rows grid and
// returns the rows top to bottom. The cell holding the curve in each column
// is CurveGlyph and the cells beneath it are FillGlyph. Fewer than two
// samples give a blank grid.
func Rasterize(points []float64, cols, rows int) []string {
	if cols < 1 || rows < 1 {
		return nil
	}

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(BlankGlyph), cols))
	}

	poly := Smooth(points, float64(cols), float64(rows)).Flatten(flattenSegments)
	if len(poly) >= 2 {
		for c := 0; c < cols; c++ {
			y := yAt(poly, float64(c)+0.5)
			curveRow := min(max(int(y), 0), rows-1)
			grid[curveRow][c] = CurveGlyph
			for r := curveRow + 1; r < rows; r++ {
				grid[r][c] = FillGlyph
			}
		}
	}

	out := make([]string, rows)
	for r, line := range grid {
		out[r] = string(line)
	}
	return out
}

// yAt linearly interpolates an x-monotonic polyline at x.
func yAt(poly []Point, x float64) float64 {
	i := sort.Search(len(poly), func(i int) bool { return poly[i].X >= x })
	switch {
	case i == 0:
		return poly[0].Y
	case i >= len(poly):
		return poly[len(poly)-1].Y
	}
	a, b := poly[i-1], poly[i]
	if b.X == a.X {
		return b.Y
	}
	t := (x - a.X) / (b.X - a.X)
	return a.Y + t*(b.Y-a.Y)
}
