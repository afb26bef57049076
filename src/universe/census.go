package universe

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

//Census is the per-generation diagnostic summary of the grid
type Census struct {
	Generation   int     `csv:"generation"`
	Alive        int     `csv:"alive"`
	Born         int     `csv:"born"`
	Died         int     `csv:"died"`
	Glowing      int     `csv:"glowing"` //cells with linger > 0
	LingerMean   float64 `csv:"linger_mean"`
	LingerStdDev float64 `csv:"linger_std"`
}

//TakeCensus summarises the grid after generation n
func TakeCensus(g *Grid, gen Generation, n int) Census {
	c := Census{Generation: n, Born: gen.Born, Died: gen.Died}
	lingers := make([]float64, 0, g.width*g.height)
	g.walk(func(x int, y int, cell *Cell) {
		if cell.Alive {
			c.Alive++
		}
		if cell.Linger > 0 {
			c.Glowing++
		}
		lingers = append(lingers, float64(cell.Linger))
	})
	if len(lingers) > 1 {
		c.LingerMean, c.LingerStdDev = stat.MeanStdDev(lingers, nil)
	} else if len(lingers) == 1 {
		c.LingerMean = lingers[0]
	}
	return c
}

// LogValue implements slog.LogValuer for structured logging.
func (c Census) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", c.Generation),
		slog.Int("alive", c.Alive),
		slog.Int("born", c.Born),
		slog.Int("died", c.Died),
		slog.Int("glowing", c.Glowing),
		slog.Float64("linger_mean", c.LingerMean),
		slog.Float64("linger_std", c.LingerStdDev),
	)
}
