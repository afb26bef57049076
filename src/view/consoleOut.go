package view

import (
	"fmt"
	"io"
	"sync"
	"time"

	"emberlife/src/universe"
)

//ConsoleOut is the headless viewer, it prints the configuration and the progress
type ConsoleOut struct {
	u         universe.Universe
	out       io.Writer
	every     int //report every n iterations
	startTime time.Time

	mu       sync.Mutex
	reported int
	finished bool
}

func NewConsoleOut(out io.Writer) *ConsoleOut {
	return &ConsoleOut{out: out, every: 10}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	c.mu.Lock()
	defer c.mu.Unlock()
	switch st.RunningMode {
	case universe.RunningStateFinished:
		if c.finished {
			return
		}
		c.finished = true
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		fmt.Fprintln(c.out, "\nFinished:")
		fmt.Fprintf(c.out, "  Last iteration: %v\n", st.IterationNum)
		fmt.Fprintf(c.out, "  Live cells: %v\n", st.LiveCells)
		fmt.Fprintf(c.out, "  Glowing cells: %v\n", st.Census.Glowing)
		fmt.Fprintf(c.out, "  Total time: %v\n", totalTime)
	case universe.RunningStateRun:
		c.finished = false
		if st.IterationNum != c.reported && st.IterationNum%c.every == 0 {
			c.reported = st.IterationNum
			fmt.Fprintf(c.out, "  Iterations done: %v, live cells: %v\n", st.IterationNum, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.out, "Running configuration:")
	fmt.Fprintf(c.out, "  Dimension: %v x %v\n", o.Width, o.Height)
	fmt.Fprintf(c.out, "  Interval: %v\n", o.Interval)
	if o.MaxSteps > 0 {
		fmt.Fprintf(c.out, "  Max iterations: %v steps\n", o.MaxSteps)
	} else {
		fmt.Fprintln(c.out, "  Max iterations: unlimited")
	}
	fmt.Fprintf(c.out, "  Noise: seed %v, %v x %v\n", o.Noise.Seed, o.Noise.Horizontal, o.Noise.Vertical)
}

func (c *ConsoleOut) Start() {
	c.mu.Lock()
	c.startTime = time.Now()
	c.mu.Unlock()
	fmt.Fprintln(c.out, "\nSimulation started...")
}
