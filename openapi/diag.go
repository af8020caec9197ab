package openapi

import (
	"fmt"
	"sync"
)

// Diag carries non-fatal warnings produced while loading or compiling.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

// Collector is a Diag that can be written to from several goroutines.
type Collector struct {
	mu sync.Mutex
	ws []string
}

func (d *Collector) HasWarnings() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.ws) > 0
}

func (d *Collector) Warnings() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.ws...)
}

// Warnf records a warning.
func (d *Collector) Warnf(f string, a ...any) {
	d.mu.Lock()
	d.ws = append(d.ws, fmt.Sprintf(f, a...))
	d.mu.Unlock()
}
