package strength

// fixedSource always returns the same offset from the top or bottom of the range.
type fixedSource struct{ top bool }

func (f fixedSource) Intn(n int) int {
	if f.top {
		return n - 1
	}
	return 0
}

// countingSource records every bound it was asked for.
type countingSource struct{ bounds []int }

func (c *countingSource) Intn(n int) int {
	c.bounds = append(c.bounds, n)
	return 0
}
