// Package geometry turns a window of samples into curve geometry: an
// abstract command sequence that can be rendered as SVG path data or
// rasterised onto a terminal grid.
package geometry

import (
	"strconv"
	"strings"
)

// Op is a path command.
type Op byte

// Path commands, named after their SVG letters.
const (
	MoveTo    Op = 'M'
	LineTo    Op = 'L'
	QuadTo    Op = 'Q'
	ClosePath Op = 'Z'
)

// Point is a position in path space, y growing downwards.
type Point struct {
	X, Y float64
}

// Command is one path step. Ctrl is used by QuadTo only.
type Command struct {
	Op   Op
	Ctrl Point
	To   Point
}

// Path is an ordered command sequence. The zero value is the empty path.
type Path []Command

// Empty reports whether the path draws nothing.
func (p Path) Empty() bool { return len(p) == 0 }

// End returns the last drawn point. ok is false for an empty path or one
// that ends in ClosePath.
func (p Path) End() (pt Point, ok bool) {
	if len(p) == 0 {
		return Point{}, false
	}
	last := p[len(p)-1]
	if last.Op == ClosePath {
		return Point{}, false
	}
	return last.To, true
}

// SVG renders the path in SVG path syntax, e.g. "M 0 60 L 1.25 58 Q ...".
// Numbers use the shortest representation that round-trips.
func (p Path) SVG() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(c.Op))
		switch c.Op {
		case MoveTo, LineTo:
			b.WriteByte(' ')
			writePoint(&b, c.To)
		case QuadTo:
			b.WriteByte(' ')
			writePoint(&b, c.Ctrl)
			b.WriteString(", ")
			writePoint(&b, c.To)
		}
	}
	return b.String()
}

// String implements fmt.Stringer.
func (p Path) String() string { return p.SVG() }

// Flatten approximates the path with straight segments, splitting each
// quadratic curve into segments pieces. ClosePath is dropped.
func (p Path) Flatten(segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	out := make([]Point, 0, len(p)*segments)
	var cur Point
	for _, c := range p {
		switch c.Op {
		case MoveTo, LineTo:
			cur = c.To
			out = append(out, cur)
		case QuadTo:
			for s := 1; s <= segments; s++ {
				t := float64(s) / float64(segments)
				out = append(out, quadAt(cur, c.Ctrl, c.To, t))
			}
			cur = c.To
		}
	}
	return out
}

func quadAt(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

func writePoint(b *strings.Builder, pt Point) {
	b.WriteString(formatNum(pt.X))
	b.WriteByte(' ')
	b.WriteString(formatNum(pt.Y))
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
