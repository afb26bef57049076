// Package telemetry writes the per-generation census of a running universe to CSV.
package telemetry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"emberlife/src/universe"

	"github.com/gocarina/gocsv"
)

// CensusWriter is a universe.Viewer appending one CSV row per generation.
// A nil *CensusWriter is a valid no-op viewer target for Close.
type CensusWriter struct {
	mu            sync.Mutex
	u             universe.Universe
	file          *os.File
	headerWritten bool
	last          int // last generation written
	rows          int
}

// NewCensusWriter creates the CSV file at path.
// Returns nil if path is empty (output disabled).
func NewCensusWriter(path string) (*CensusWriter, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating census directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating census file: %w", err)
	}
	return &CensusWriter{file: f}, nil
}

// Register implements universe.Viewer.
func (w *CensusWriter) Register(u universe.Universe) {
	w.u = u
}

// Start implements universe.Viewer.
func (w *CensusWriter) Start() {}

// Refresh writes the census of the latest generation if it was not written yet.
func (w *CensusWriter) Refresh() {
	st := w.u.Status()
	if err := w.Write(st.Census); err != nil {
		slog.Warn("census write failed", "generation", st.Census.Generation, "err", err)
	}
}

// Write appends the census record, records for generations already written are skipped.
// A lower generation number than the last one means the universe was reset.
func (w *CensusWriter) Write(c universe.Census) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if c.Generation == 0 || c.Generation == w.last {
		return nil
	}
	records := []universe.Census{c}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("writing census: %w", err)
		}
		w.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
			return fmt.Errorf("writing census: %w", err)
		}
	}
	w.last = c.Generation
	w.rows++
	return nil
}

// Rows returns the number of records written so far.
func (w *CensusWriter) Rows() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}

// Close closes the underlying file.
func (w *CensusWriter) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
