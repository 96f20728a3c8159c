// Package watcher reports changes to catalog and metadata files.
package watcher

import (
	"cmp"
	"slices"
	"sync"
	"time"
	"unique"

	"go.trai.ch/classmeta/internal/core/ports"
)

// Debouncer coalesces rapid file system events into batches.
// Within a batch each path appears once with its latest operation.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]ports.WatchOp
	timer    *time.Timer
	window   time.Duration
	callback func(events []ports.WatchEvent)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(events []ports.WatchEvent)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]ports.WatchOp),
		window:   window,
		callback: callback,
	}
}

// Add records an event and restarts the window.
func (d *Debouncer) Add(event ports.WatchEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(event.Path)] = event.Operation

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	events := d.drainLocked()
	d.mu.Unlock()

	if len(events) > 0 && d.callback != nil {
		d.callback(events)
	}
}

// Flush delivers pending events immediately and waits for the callback.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Already fired.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	events := d.drainLocked()
	d.mu.Unlock()

	if len(events) > 0 && d.callback != nil {
		d.callback(events)
	}
}

// drainLocked returns the pending events sorted by path and resets the set.
func (d *Debouncer) drainLocked() []ports.WatchEvent {
	if len(d.pending) == 0 {
		return nil
	}
	events := make([]ports.WatchEvent, 0, len(d.pending))
	for h, op := range d.pending {
		events = append(events, ports.WatchEvent{Path: h.Value(), Operation: op})
	}
	clear(d.pending)
	slices.SortFunc(events, func(a, b ports.WatchEvent) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return events
}
