package view

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"emberlife/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal viewer: it renders the viewport with the linger
//color ramp and turns key and mouse events into universe commands
type ConsoleUI struct {
	u universe.Universe
	g *gocui.Gui
	k []keyBindings

	mu       sync.Mutex
	vp       universe.Viewport //requested viewport
	rendered universe.Viewport //viewport of the last rendered frame
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateStep:     "do the step",
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
	setupDescr = aurora.Colorize("setup", aurora.YellowFg).String()
)

//NewViewTerminal creates the terminal UI showing vp
func NewViewTerminal(vp universe.Viewport) (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{vp: vp}

	t.g, err = gocui.NewGui(gocui.Output256)
	if err != nil {
		return nil, fmt.Errorf("creating terminal ui: %w", err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{gocui.KeyEsc, "ESC", "Exit", t.cmdQuit, ""},
		{gocui.KeySpace, "SPACE", "Start/Pause", t.cmdToggleRun, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Reseed", t.cmdReseed, ""},
		{gocui.KeyArrowLeft, "←", "", t.pan(-1, 0), ""},
		{gocui.KeyArrowRight, "→", "", t.pan(1, 0), ""},
		{gocui.KeyArrowUp, "↑", "", t.pan(0, -1), ""},
		{gocui.KeyArrowDown, "↓", "Pan", t.pan(0, 1), ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}

	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return fmt.Errorf("binding %s: %w", kb.name, err)
		}
	}
	return nil
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		slog.Error("terminal ui stopped", "err", err)
	}
}

func (t *ConsoleUI) Refresh() {
	t.renderField()
	t.renderConfiguration()
	t.renderStatus()
}

func (t *ConsoleUI) viewport() universe.Viewport {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.vp
}

func (t *ConsoleUI) renderField() {
	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("battlefield")
		if e != nil {
			return nil
		}
		v.Clear()

		//render no more than the view can show
		vp := t.viewport()
		maxW, maxH := v.Size()
		if vp.Width > maxW {
			vp.Width = maxW
		}
		if vp.Height > maxH {
			vp.Height = maxH
		}
		f := t.u.Snapshot(vp)

		t.mu.Lock()
		t.rendered = f.Viewport
		t.mu.Unlock()

		var b bytes.Buffer
		for i, row := range f.Cells {
			if i != 0 {
				b.WriteByte('\n')
			}
			for _, c := range row {
				b.WriteString(CellGlyph(c))
			}
		}
		_, _ = fmt.Fprint(v, b.String())
		return nil
	})
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("status"); e == nil {
			v.Clear()
			mode := runningStateDescr[s.RunningMode]
			if s.RunningMode == universe.RunningStateManual && s.IterationNum == 0 {
				mode = setupDescr
			}
			_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Born/Died", "%v/%v", s.Generation.Born, s.Generation.Died))
			_, _ = fmt.Fprintln(v, t.renderProp("Glowing", "%v", s.Census.Glowing))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", mode))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.u.Options()
		t.mu.Lock()
		vp := t.rendered
		t.mu.Unlock()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
			_, _ = fmt.Fprintln(v, t.renderProp("Viewport", "%v,%v %vx%v", vp.X, vp.Y, vp.Width, vp.Height))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
			_, _ = fmt.Fprintln(v, t.renderProp("Noise", "seed %v, %vx%v", c.Noise.Seed, c.Noise.Horizontal, c.Noise.Vertical))
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 32
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil

	} else {
		if _, err := t.headerLayout(g, 3, "Conway's Game of Life"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Grid"
		v.Frame = true
		t.renderField()
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		first := true
		for _, k := range t.k {
			if !first {
				b.WriteString(" ")
			}
			first = false
			b.WriteString(aurora.Green(k.name).String())
			if k.descr != "" {
				b.WriteString(": ")
				b.WriteString(k.descr)
				b.WriteString(",")
			}
		}
		_, _ = fmt.Fprintln(v, strings.TrimSuffix(b.String(), ","))
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorRed
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdToggleRun(_ *gocui.View) error {
	if t.u.Status().RunningMode == universe.RunningStateRun {
		t.u.Stop()
	} else {
		t.u.Run()
	}
	return nil
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.u.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.u.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.Clear()
	return nil
}

//cmdReseed seeds a fresh landscape with the next noise seed
func (t *ConsoleUI) cmdReseed(_ *gocui.View) error {
	if t.u.Status().RunningMode == universe.RunningStateRun {
		return nil
	}
	p := t.u.Options().Noise
	p.Seed++
	t.u.Seed(p)
	return nil
}

func (t *ConsoleUI) pan(dx int, dy int) func(v *gocui.View) error {
	return func(_ *gocui.View) error {
		o := t.u.Options()
		t.mu.Lock()
		t.vp = t.vp.Pan(dx, dy, o.Width, o.Height)
		t.mu.Unlock()
		t.Refresh()
		return nil
	}
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.mu.Lock()
	vp := t.rendered
	t.mu.Unlock()
	x, y, ok := vp.ToGrid(cx, cy)
	if !ok {
		return nil
	}
	if err := t.u.InverseCell(x, y); err != nil {
		slog.Warn("toggle cell", "x", x, "y", y, "err", err)
	}
	return nil
}
