package universe

import "testing"

func TestCenteredViewport(t *testing.T) {
	cases := []struct {
		gw, gh, w, h int
		expects      Viewport
	}{
		{300, 80, 80, 39, Viewport{110, 20, 80, 39}},
		{10, 10, 80, 40, Viewport{0, 0, 10, 10}},
		{10, 10, 0, 0, Viewport{4, 4, 1, 1}},
	}
	for _, c := range cases {
		if got := CenteredViewport(c.gw, c.gh, c.w, c.h); got != c.expects {
			t.Fatalf("CenteredViewport(%d,%d,%d,%d)=%+v, expected %+v", c.gw, c.gh, c.w, c.h, got, c.expects)
		}
	}
}

func TestViewportPanStaysInside(t *testing.T) {
	vp := CenteredViewport(100, 50, 20, 10)
	vp = vp.Pan(-1000, 3, 100, 50)
	if vp.X != 0 || vp.Y != 23 {
		t.Fatalf("pan left: %+v", vp)
	}
	vp = vp.Pan(1000, 1000, 100, 50)
	if vp.X != 80 || vp.Y != 40 {
		t.Fatalf("pan right/down: %+v", vp)
	}
}

func TestViewportToGrid(t *testing.T) {
	vp := Viewport{X: 10, Y: 5, Width: 4, Height: 3}
	if x, y, ok := vp.ToGrid(3, 2); !ok || x != 13 || y != 7 {
		t.Fatalf("ToGrid(3,2)=%d,%d,%v", x, y, ok)
	}
	for _, p := range []Point{{4, 0}, {0, 3}, {-1, 0}} {
		if _, _, ok := vp.ToGrid(p.X, p.Y); ok {
			t.Fatalf("ToGrid(%d,%d) accepted a point outside the viewport", p.X, p.Y)
		}
	}
}

func TestViewportFit(t *testing.T) {
	vp := Viewport{X: 95, Y: -3, Width: 20, Height: 100}.fit(100, 50)
	if vp != (Viewport{80, 0, 20, 50}) {
		t.Fatalf("fit=%+v", vp)
	}
}
