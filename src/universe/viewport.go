package universe

//Viewport is the rendered sub-rectangle of the grid, it never affects the simulation
type Viewport struct {
	X      int
	Y      int
	Width  int
	Height int
}

//CenteredViewport returns the w x h rectangle centered on the grid,
//the size is clamped to the grid size
func CenteredViewport(gridW int, gridH int, w int, h int) Viewport {
	w = clampInt(w, 1, gridW)
	h = clampInt(h, 1, gridH)
	return Viewport{X: (gridW - w) / 2, Y: (gridH - h) / 2, Width: w, Height: h}
}

//Pan moves the viewport by dx, dy keeping it inside the grid
func (vp Viewport) Pan(dx int, dy int, gridW int, gridH int) Viewport {
	vp.X = clampInt(vp.X+dx, 0, gridW-vp.Width)
	vp.Y = clampInt(vp.Y+dy, 0, gridH-vp.Height)
	return vp
}

//ToGrid maps view-relative coordinates to grid coordinates
//ok is false when vx, vy is outside the viewport
func (vp Viewport) ToGrid(vx int, vy int) (x int, y int, ok bool) {
	if vx < 0 || vy < 0 || vx >= vp.Width || vy >= vp.Height {
		return 0, 0, false
	}
	return vp.X + vx, vp.Y + vy, true
}

//fit clamps the viewport to the grid
func (vp Viewport) fit(gridW int, gridH int) Viewport {
	vp.Width = clampInt(vp.Width, 1, gridW)
	vp.Height = clampInt(vp.Height, 1, gridH)
	vp.X = clampInt(vp.X, 0, gridW-vp.Width)
	vp.Y = clampInt(vp.Y, 0, gridH-vp.Height)
	return vp
}

func clampInt(v int, lo int, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
