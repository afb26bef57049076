package universe

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  `yaml:"name"`        //template name
	Descr       string  `yaml:"descr"`       //template descr
	Coordinates [][]int `yaml:"coordinates"` //array of [x,y] coordinates
}

//Offset returns a copy of the template moved by dx, dy
func (t Template) Offset(dx int, dy int) Template {
	vc := make([][]int, 0, len(t.Coordinates))
	for _, v := range t.Coordinates {
		if len(v) < 2 {
			continue
		}
		vc = append(vc, []int{v[0] + dx, v[1] + dy})
	}
	t.Coordinates = vc
	return t
}

//BuiltinTemplates are always available to the universe
var BuiltinTemplates = []Template{
	{"block", "2x2 still life", [][]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
	{"blinker", "period 2 oscillator", [][]int{{0, 1}, {1, 1}, {2, 1}}},
	{"glider", "the smallest spaceship", [][]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}},
	{"beehive", "6 cell still life", [][]int{{1, 0}, {2, 0}, {0, 1}, {3, 1}, {1, 2}, {2, 2}}},
	{"toad", "period 2 oscillator", [][]int{{1, 0}, {2, 0}, {3, 0}, {0, 1}, {1, 1}, {2, 1}}},
}

//settle places alive cells at the template coordinates, points outside the grid are skipped
func settle(g *Grid, vc [][]int) (placed int) {
	for _, v := range vc {
		if len(v) < 2 {
			continue
		}
		if g.SetAlive(v[0], v[1], true) == nil {
			placed++
		}
	}
	return
}
