package view

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"emberlife/src/universe"
)

//syncBuffer is written from the universe goroutine and read by the test
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestConsoleOut(t *testing.T) {
	o := universe.DefaultOptions()
	o.Width, o.Height = 30, 30
	o.Interval = 0
	o.MaxSteps = 20
	stateCh := make(chan universe.Status, 10)
	u := universe.NewBaseUniverse(&o, stateCh)
	defer u.Close()

	var out syncBuffer
	c := NewConsoleOut(&out)
	u.RegisterViewer(c)
	c.Start()
	if err := u.SettleTemplate("glider", 2, 2); err != nil {
		t.Fatalf("SettleTemplate: %v", err)
	}
	u.Run()

	timeout := time.After(5 * time.Second)
	for finished := false; !finished; {
		select {
		case st := <-stateCh:
			finished = st.RunningMode == universe.RunningStateFinished
		case <-timeout:
			t.Fatalf("timed out waiting for the run to finish")
		}
	}

	s := out.String()
	for _, part := range []string{
		"Dimension: 30 x 30",
		"Max iterations: 20 steps",
		"Iterations done: 10, live cells: 5",
		"Last iteration: 20",
		"Live cells: 5",
	} {
		if !strings.Contains(s, part) {
			t.Fatalf("output does not contain %q:\n%s", part, s)
		}
	}
	if strings.Count(s, "Finished:") != 1 {
		t.Fatalf("finish reported more than once:\n%s", s)
	}
}
