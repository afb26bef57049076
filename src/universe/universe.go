package universe

//Universe is the host driver around the Grid: it owns the grid, paces the generations
//and lets viewers and input handlers reach the cells without racing the stepper
type Universe interface {
	Status() Status
	Options() Options
	StateCh() chan Status
	AddTemplate(tmpl Template)
	Templates() []Template
	SettleTemplate(name string, dx int, dy int) error
	Seed(p NoiseParams)
	Settle(vc [][]int)
	InverseCell(x int, y int) error
	Snapshot(vp Viewport) Frame
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

//Frame is a copy of the viewport cells taken under the universe lock
type Frame struct {
	Viewport
	Cells [][]Cell //Cells[y][x], viewport relative
}
