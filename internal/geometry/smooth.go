package geometry

// Smooth maps samples in [0, 100] onto a width x height box and returns a
// curve through the midpoints of consecutive samples. Each interior sample
// is the control point of a quadratic segment, so the curve bends toward
// it without passing through it. The path starts at x=0 and ends exactly
// on the newest sample at x=width. Fewer than two samples give an empty
// path.
func Smooth(points []float64, width, height float64) Path {
	n := len(points)
	if n < 2 {
		return nil
	}

	stepX := width / float64(n-1)
	toY := func(v float64) float64 { return height - v/100*height }

	path := make(Path, 0, n+1)
	path = append(path, Command{Op: MoveTo, To: Point{0, toY(points[0])}})

	for i := 0; i < n-1; i++ {
		x0, y0 := float64(i)*stepX, toY(points[i])
		x1, y1 := float64(i+1)*stepX, toY(points[i+1])
		mid := Point{(x0 + x1) / 2, (y0 + y1) / 2}

		if i == 0 {
			path = append(path, Command{Op: LineTo, To: mid})
			continue
		}
		path = append(path, Command{Op: QuadTo, Ctrl: Point{x0, y0}, To: mid})
	}

	// Pin the end to width rather than (n-1)*stepX to avoid rounding drift.
	path = append(path, Command{Op: LineTo, To: Point{width, toY(points[n-1])}})
	return path
}

// Area closes Smooth's curve down to the baseline and back to x=0, giving
// a fillable region. Fewer than two samples give an empty path.
func Area(points []float64, width, height float64) Path {
	curve := Smooth(points, width, height)
	if curve.Empty() {
		return nil
	}
	return append(curve,
		Command{Op: LineTo, To: Point{width, height}},
		Command{Op: LineTo, To: Point{0, height}},
		Command{Op: ClosePath},
	)
}
