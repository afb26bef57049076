package universe

import "github.com/ojrac/opensimplex-go"

//default noise frequencies, the field is stretched horizontally to give wide landscape blobs
const (
	DefNoiseHorizontal = 40.0
	DefNoiseVertical   = 12.0
)

//NoiseParams configures the seeding noise field
type NoiseParams struct {
	Seed       int64   `yaml:"seed"`
	Horizontal float64 `yaml:"horizontal"` //features across the grid width
	Vertical   float64 `yaml:"vertical"`   //features across the grid height
}

//DefaultNoiseParams returns the parameters used when nothing is configured
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{Horizontal: DefNoiseHorizontal, Vertical: DefNoiseVertical}
}

//NoiseField is any deterministic zero-mean 2D scalar field
type NoiseField interface {
	Eval2(x, y float64) float64
}

//Seed populates the grid from an OpenSimplex field seeded with p.Seed
func Seed(g *Grid, p NoiseParams) {
	SeedField(g, opensimplex.New(p.Seed), p)
}

//SeedField samples the field once per cell at (x*H/width, y*V/height).
//A cell is alive iff the sample is >= 0, dead otherwise, so the result does not depend
//on the previous alive state. Linger is left untouched.
func SeedField(g *Grid, field NoiseField, p NoiseParams) {
	w, h := float64(g.width), float64(g.height)
	g.walk(func(x int, y int, c *Cell) {
		v := field.Eval2(float64(x)*p.Horizontal/w, float64(y)*p.Vertical/h)
		c.Alive = v >= 0
		c.PendingFlip = false
	})
}
