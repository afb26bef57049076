package universe

import (
	"errors"
	"math/rand"
	"testing"
)

//gridFrom builds a grid from rows of '#' (alive) and '.' (dead)
func gridFrom(rows ...string) *Grid {
	g := NewGrid(len(rows[0]), len(rows))
	for y, r := range rows {
		for x, ch := range r {
			if ch == '#' {
				g.cells[y][x].Alive = true
			}
		}
	}
	return g
}

func aliveSet(g *Grid) map[Point]bool {
	set := map[Point]bool{}
	g.walk(func(x int, y int, c *Cell) {
		if c.Alive {
			set[Point{x, y}] = true
		}
	})
	return set
}

func TestNewGridIsZeroed(t *testing.T) {
	g := NewGrid(7, 3)
	if g.Width() != 7 || g.Height() != 3 {
		t.Fatalf("size %dx%d, expected 7x3", g.Width(), g.Height())
	}
	g.walk(func(x int, y int, c *Cell) {
		if *c != (Cell{}) {
			t.Fatalf("cell (%d,%d) = %+v, expected zero cell", x, y, *c)
		}
	})
}

func TestNewGridPanicsOnInvalidSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for 0x5 grid")
		}
	}()
	NewGrid(0, 5)
}

func TestAccessorsRejectOutOfBounds(t *testing.T) {
	g := NewGrid(4, 3)
	for _, p := range []Point{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {10, 10}} {
		if _, err := g.Get(p.X, p.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Get(%d,%d) err=%v, expected ErrOutOfBounds", p.X, p.Y, err)
		}
		if err := g.SetAlive(p.X, p.Y, true); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("SetAlive(%d,%d) err=%v, expected ErrOutOfBounds", p.X, p.Y, err)
		}
		if err := g.Toggle(p.X, p.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Toggle(%d,%d) err=%v, expected ErrOutOfBounds", p.X, p.Y, err)
		}
	}
	if g.CountAlive() != 0 {
		t.Fatalf("rejected writes changed the grid")
	}
}

func TestSetAliveIsIdempotent(t *testing.T) {
	g := NewGrid(3, 3)
	for i := 0; i < 3; i++ {
		if err := g.SetAlive(1, 2, true); err != nil {
			t.Fatalf("SetAlive: %v", err)
		}
	}
	c, err := g.Get(1, 2)
	if err != nil || !c.Alive {
		t.Fatalf("cell (1,2) = %+v, %v, expected alive", c, err)
	}
	if g.CountAlive() != 1 {
		t.Fatalf("CountAlive=%d, expected 1", g.CountAlive())
	}
	if err := g.Toggle(1, 2); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if g.CountAlive() != 0 {
		t.Fatalf("toggle did not kill the cell")
	}
}

func TestNeighborCountCorner(t *testing.T) {
	g := gridFrom(
		"#...",
		"....",
		"....",
	)
	if n := g.NeighborCount(0, 0); n != 0 {
		t.Fatalf("lonely corner counted %d neighbours, expected 0", n)
	}
	if n := g.NeighborCount(1, 1); n != 1 {
		t.Fatalf("(1,1) counted %d neighbours, expected 1", n)
	}

	g = gridFrom(
		"##..",
		"##..",
		"...#",
	)
	//clamped block is (0,0),(1,0),(0,1),(1,1) minus self
	if n := g.NeighborCount(0, 0); n != 3 {
		t.Fatalf("corner counted %d neighbours, expected 3", n)
	}
	//the far corner must not leak in through wrapping
	if n := g.NeighborCount(3, 2); n != 0 {
		t.Fatalf("(3,2) counted %d neighbours, expected 0", n)
	}
}

func TestNeighborCountDoesNotWrap(t *testing.T) {
	g := gridFrom(
		".....",
		"#...#",
		".....",
	)
	if n := g.NeighborCount(0, 1); n != 0 {
		t.Fatalf("left edge counted %d neighbours, expected 0", n)
	}
	if n := g.NeighborCount(4, 1); n != 0 {
		t.Fatalf("right edge counted %d neighbours, expected 0", n)
	}
}

func TestNeighborCountInterior(t *testing.T) {
	g := gridFrom(
		"###",
		"###",
		"###",
	)
	if n := g.NeighborCount(1, 1); n != 8 {
		t.Fatalf("centre counted %d neighbours, expected 8", n)
	}
	if n := g.NeighborCount(0, 1); n != 5 {
		t.Fatalf("edge counted %d neighbours, expected 5", n)
	}
}

//paddedCount counts neighbours skipping coordinates outside the grid
func paddedCount(g *Grid, x int, y int) int {
	n := 0
	for j := -1; j <= 1; j++ {
		for i := -1; i <= 1; i++ {
			if i == 0 && j == 0 {
				continue
			}
			nx, ny := x+i, y+j
			if nx < 0 || ny < 0 || nx >= g.width || ny >= g.height {
				continue
			}
			if g.cells[ny][nx].Alive {
				n++
			}
		}
	}
	return n
}

func TestNeighborCountMatchesDeadPadding(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, size := range []Point{{1, 1}, {1, 5}, {5, 1}, {2, 2}, {9, 6}} {
		g := NewGrid(size.X, size.Y)
		g.walk(func(x int, y int, c *Cell) { c.Alive = rng.Intn(2) == 1 })
		g.walk(func(x int, y int, c *Cell) {
			if got, want := g.NeighborCount(x, y), paddedCount(g, x, y); got != want {
				t.Fatalf("%dx%d (%d,%d): clamp=%d padded=%d", size.X, size.Y, x, y, got, want)
			}
		})
	}
}

func TestCountAliveAndClear(t *testing.T) {
	g := gridFrom(
		"#.#",
		".#.",
	)
	g.cells[0][1].Linger = 5
	if n := g.CountAlive(); n != 3 {
		t.Fatalf("CountAlive=%d, expected 3", n)
	}
	g.Clear()
	g.walk(func(x int, y int, c *Cell) {
		if *c != (Cell{}) {
			t.Fatalf("cell (%d,%d) = %+v after Clear", x, y, *c)
		}
	})
}
