package universe

//Generation reports what one Advance call did to the grid
type Generation struct {
	Flips         int
	Born          int
	Died          int
	Alive         int
	LingerChanged int
}

//Stable reports whether the generation left the grid exactly as it was
func (gen Generation) Stable() bool {
	return gen.Flips == 0 && gen.LingerChanged == 0
}

//Advance does one generation: stage the flips, apply them, then update linger.
//Linger runs after the apply phase so it follows the new alive state in the same tick.
func Advance(g *Grid) (gen Generation) {
	flips := Evaluate(g)
	gen.Flips = len(flips)

	for _, p := range flips {
		c := &g.cells[p.Y][p.X]
		c.Alive = !c.Alive
		c.PendingFlip = false
		if c.Alive {
			gen.Born++
		} else {
			gen.Died++
		}
	}

	g.walk(func(x int, y int, c *Cell) {
		if c.Alive {
			gen.Alive++
			if c.Linger < MaxLinger {
				c.Linger++
				gen.LingerChanged++
			}
		} else if c.Linger > 0 {
			c.Linger--
			gen.LingerChanged++
		}
	})
	return
}
