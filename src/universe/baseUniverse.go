package universe

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

//Options represents the Universe's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int //0 means unlimited
	MaxSkippedTicks int
	StopWhenStable  bool //finish once a generation changes neither cells nor linger
	Noise           NoiseParams
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	Generation    Generation //report of the last generation
	Census        Census     //census of the last generation
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Second / 30
	DefMaxSteps           = 0
	DefWidth              = 300
	DefHeight             = 80
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

func (rs RunningState) String() string {
	switch rs {
	case RunningStateManual:
		return "manual"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "run"
	case RunningStateFinished:
		return "finished"
	}
	return fmt.Sprintf("RunningState(%d)", int(rs))
}

//DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Width:           DefWidth,
		Height:          DefHeight,
		Interval:        DefSimulationInterval,
		MaxSteps:        DefMaxSteps,
		MaxSkippedTicks: DefMaxSkippedTicks,
		Noise:           DefaultNoiseParams(),
	}
}

//BaseUniverse implements Universe interface
//all commands are executed one by one by the main loop goroutine,
//the grid is only touched with the area lock held so a generation is never observed half applied
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		*Grid
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
	log       *slog.Logger
}

//NewBaseUniverse creates the BaseUniverse instance and starts its main loop
//stateCh is optional, when set every running state switch is written to it
func NewBaseUniverse(o *Options, stateCh chan Status) *BaseUniverse {
	if o == nil {
		def := DefaultOptions()
		o = &def
	}

	u := BaseUniverse{
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
		log:       slog.Default().With("component", "universe"),
	}
	for _, tmpl := range BuiltinTemplates {
		u.templates[tmpl.Name] = tmpl
	}

	u.area.Grid = NewGrid(o.Width, o.Height)
	go u.mainLoop()
	return &u
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.area.Lock()
	u.templates[tmpl.Name] = tmpl
	u.area.Unlock()
}

//Templates returns the known templates sorted by name
func (u *BaseUniverse) Templates() []Template {
	u.area.Lock()
	defer u.area.Unlock()
	tt := make([]Template, 0, len(u.templates))
	for _, t := range u.templates {
		tt = append(tt, t)
	}
	sort.Slice(tt, func(i, j int) bool { return tt[i].Name < tt[j].Name })
	return tt
}

//Settle settles the universe with data
//vc - array of x,y coordinates, points outside the grid are skipped
func (u *BaseUniverse) Settle(vc [][]int) {
	u.area.Lock()
	settle(u.area.Grid, vc)
	alive := u.area.CountAlive()
	u.area.Unlock()
	u.setLiveCells(alive)
	u.refreshView()
}

//SettleTemplate populates the universe with the seeding template moved by dx, dy
func (u *BaseUniverse) SettleTemplate(name string, dx int, dy int) error {
	u.area.Lock()
	tmpl, ok := u.templates[name]
	u.area.Unlock()
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	u.Settle(tmpl.Offset(dx, dy).Coordinates)
	return nil
}

//Seed clears the universe and populates it from the noise field, returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Seed(p NoiseParams) {
	u.exec(func() { u.seed(p) })
}

//InverseCell inverses the cell state at point x, y
func (u *BaseUniverse) InverseCell(x int, y int) error {
	u.area.Lock()
	err := u.area.Toggle(x, y)
	alive := u.area.CountAlive()
	u.area.Unlock()
	if err != nil {
		return err
	}
	u.setLiveCells(alive)
	u.refreshView()
	return nil
}

//Snapshot copies the cells under the viewport, the viewport is fitted into the grid first
func (u *BaseUniverse) Snapshot(vp Viewport) Frame {
	u.area.Lock()
	defer u.area.Unlock()
	vp = vp.fit(u.area.Width(), u.area.Height())
	return Frame{Viewport: vp, Cells: u.area.copyRect(vp.X, vp.Y, vp.Width, vp.Height)}
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	u.state.Lock()
	defer u.state.Unlock()
	return u.options
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.exec(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.exec(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.exec(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.exec(u.clear)
}

//Close stops the main loop and the running cycle, returns immediately
func (u *BaseUniverse) Close() {
	u.closeOnce.Do(func() { close(u.closeCh) })
}

//exec hands the command to the main loop, commands sent after Close are dropped
func (u *BaseUniverse) exec(cmd func()) {
	select {
	case u.controlCh <- cmd:
	case <-u.closeCh:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			return
		}
	}
}

func (u *BaseUniverse) mode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

func (u *BaseUniverse) setLiveCells(n int) {
	u.state.Lock()
	u.state.LiveCells = n
	u.state.Unlock()
}

//switchRunningState switch the state of the universe to RunningState
//the views are refreshed (except for the transient step state) before the new state
//is written to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	from := u.state.RunningMode
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if from != to && to != RunningStateStep && from != RunningStateStep {
		u.log.Debug("running state", "from", from, "to", to, "iteration", st.IterationNum)
	}
	if to != RunningStateStep {
		u.refreshView()
	}
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.closeCh:
		}
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *BaseUniverse) run() {
	if mode := u.mode(); mode == RunningStateRun || mode == RunningStateStep {
		return
	}
	u.switchRunningState(RunningStateRun)
	u.log.Info("simulation started", "iteration", u.Status().IterationNum)
	go func() {
		skipped := 0
		done := make(chan struct{}, 1)
		for {
			mode := u.mode()
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > u.options.MaxSkippedTicks {
				u.log.Warn("too many skipped ticks, finishing", "skipped", skipped)
				u.switchRunningState(RunningStateFinished)
				break
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				select {
				case u.controlCh <- func() {
					u.step()
					done <- struct{}{}
				}:
				case <-u.closeCh:
					return
				}
				select {
				case <-done:
				case <-u.closeCh:
					return
				}
			} else {
				skipped++
			}
			if u.options.Interval > 0 {
				select {
				case <-time.After(u.options.Interval):
				case <-u.closeCh:
					return
				}
			}
		}
	}()
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	if u.mode() == RunningStateRun {
		u.switchRunningState(RunningStateManual)
		u.log.Info("simulation stopped", "iteration", u.Status().IterationNum)
	}
}

//step does the new one generation for entire universe
func (u *BaseUniverse) step() {
	rm := u.mode()
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	u.switchRunningState(RunningStateStep)
	gen, n := u.nextIteration()

	finished := (u.options.MaxSteps != 0 && n >= u.options.MaxSteps) ||
		(u.options.StopWhenStable && gen.Stable())
	if finished {
		st := u.Status()
		u.log.Info("simulation finished", "iteration", n, "census", st.Census)
		u.switchRunningState(RunningStateFinished)
	} else {
		u.switchRunningState(rm)
	}
}

//nextIteration advances the grid by one generation and updates the status counters
func (u *BaseUniverse) nextIteration() (Generation, int) {
	u.area.Lock()
	start := time.Now()
	gen := Advance(u.area.Grid)
	elapsed := time.Since(start)

	u.state.Lock()
	u.state.IterationNum++
	n := u.state.IterationNum
	u.state.Generation = gen
	u.state.LiveCells = gen.Alive
	u.state.IterationTime = elapsed
	u.state.Census = TakeCensus(u.area.Grid, gen, n)
	u.state.Unlock()
	u.area.Unlock()
	return gen, n
}

//seed replaces the grid content with the noise pattern and resets all counters
func (u *BaseUniverse) seed(p NoiseParams) {
	u.state.Lock()
	u.area.Lock()
	u.area.Clear()
	Seed(u.area.Grid, p)
	u.options.Noise = p
	u.state.IterationNum = 0
	u.state.Generation = Generation{}
	u.state.Census = Census{}
	u.state.LiveCells = u.area.CountAlive()
	u.area.Unlock()
	u.state.Unlock()
	u.log.Info("seeded", "seed", p.Seed, "horizontal", p.Horizontal, "vertical", p.Vertical)
	u.switchRunningState(RunningStateManual)
}

//clear clears the universe data, reset all counters
func (u *BaseUniverse) clear() {
	u.state.Lock()
	u.area.Lock()

	u.state.IterationNum = 0
	u.state.LiveCells = 0
	u.state.Generation = Generation{}
	u.state.Census = Census{}
	u.area.Clear()
	u.area.Unlock()
	u.state.Unlock()
	u.switchRunningState(RunningStateManual)
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
