package universe

//NextState applies the classic Life rule to a cell with n live neighbours
func NextState(alive bool, n int) bool {
	if alive {
		return n == 2 || n == 3
	}
	return n == 3
}

//Evaluate stages the flips of the next generation.
//Every neighbour count is taken from the unmodified grid: only PendingFlip is written,
//Alive and Linger are left untouched. The staged points are returned in row-major order.
func Evaluate(g *Grid) []Point {
	var flips []Point
	g.walk(func(x int, y int, c *Cell) {
		c.PendingFlip = NextState(c.Alive, g.NeighborCount(x, y)) != c.Alive
		if c.PendingFlip {
			flips = append(flips, Point{X: x, Y: y})
		}
	})
	return flips
}
