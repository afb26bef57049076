package universe

import (
	"errors"
	"fmt"
)

//MaxLinger is the upper bound of the Cell.Linger counter
const MaxLinger = 9

//ErrOutOfBounds is returned by the grid accessors for coordinates outside the grid
var ErrOutOfBounds = errors.New("coordinates out of bounds")

//Cell is the single grid element
type Cell struct {
	Alive       bool
	Linger      uint8 //fade intensity in [0, MaxLinger], presentation only
	PendingFlip bool  //staged by Evaluate, cleared by Advance
}

//Point is a grid coordinate
type Point struct {
	X int
	Y int
}

//Grid is the fixed-size field where cells are living
//rows share a single backing slice, dimensions never change after NewGrid
type Grid struct {
	width  int
	height int
	cells  [][]Cell
}

//NewGrid allocates the zeroed grid
//non-positive dimensions are a programming error and panic
func NewGrid(width int, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("universe: invalid grid size %dx%d", width, height))
	}
	g := &Grid{width: width, height: height, cells: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range g.cells {
		start := width * i
		g.cells[i] = b[start : start+width : start+width]
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

//InBounds reports whether x, y addresses a cell of the grid
func (g *Grid) InBounds(x int, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

func (g *Grid) check(x int, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return nil
}

//Get returns a copy of the cell at x, y
func (g *Grid) Get(x int, y int) (Cell, error) {
	if err := g.check(x, y); err != nil {
		return Cell{}, err
	}
	return g.cells[y][x], nil
}

//SetAlive assigns the alive state directly, used by seeding and manual edits only
//setting an already alive cell alive is a no-op
func (g *Grid) SetAlive(x int, y int, alive bool) error {
	if err := g.check(x, y); err != nil {
		return err
	}
	g.cells[y][x].Alive = alive
	return nil
}

//Toggle inverses the alive state of the cell at x, y
func (g *Grid) Toggle(x int, y int) error {
	if err := g.check(x, y); err != nil {
		return err
	}
	g.cells[y][x].Alive = !g.cells[y][x].Alive
	return nil
}

//NeighborCount counts the live cells of the 3x3 block around x, y, excluding x, y itself.
//The block is clamped to the grid: low = max(0, c-1), high = min(dim-1, c+1).
//Edges never wrap.
func (g *Grid) NeighborCount(x int, y int) int {
	lx, hx := clampRange(x, g.width)
	ly, hy := clampRange(y, g.height)
	count := 0
	for j := ly; j <= hy; j++ {
		row := g.cells[j]
		for i := lx; i <= hx; i++ {
			if i == x && j == y {
				continue
			}
			if row[i].Alive {
				count++
			}
		}
	}
	return count
}

func clampRange(c int, dim int) (low int, high int) {
	low, high = c-1, c+1
	if low < 0 {
		low = 0
	}
	if high > dim-1 {
		high = dim - 1
	}
	return
}

//CountAlive calculates the count of live cells
func (g *Grid) CountAlive() int {
	alive := 0
	g.walk(func(x int, y int, c *Cell) {
		if c.Alive {
			alive++
		}
	})
	return alive
}

//Clear kills all cells and resets the linger counters
func (g *Grid) Clear() {
	g.walk(func(x int, y int, c *Cell) {
		*c = Cell{}
	})
}

//walk calls cb for each cell in row-major order
func (g *Grid) walk(cb func(x int, y int, c *Cell)) {
	for y := range g.cells {
		row := g.cells[y]
		for x := range row {
			cb(x, y, &row[x])
		}
	}
}

//copyRect copies the cells of the rectangle into a freshly allocated block
func (g *Grid) copyRect(x0 int, y0 int, width int, height int) [][]Cell {
	out := make([][]Cell, height)
	b := make([]Cell, width*height)
	for j := range out {
		start := width * j
		out[j] = b[start : start+width : start+width]
		copy(out[j], g.cells[y0+j][x0:x0+width])
	}
	return out
}
