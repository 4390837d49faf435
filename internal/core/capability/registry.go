// Package capability decides, once per process, which optional
// inference backends are usable, and dispatches work through an
// ordered list of tiers with deterministic degradation.
package capability

import (
	"log"
	"sort"
	"sync"
)

// Probe attempts to load or initialize one backend. A nil return marks
// the backend usable. Probes must contain any initialization that can
// fail; nothing may escape the probe boundary.
type Probe func() error

// Status is the cached outcome of one probe.
type Status struct {
	Name   string
	Usable bool
	Err    error
}

// Registry caches probe outcomes for the process lifetime. A backend
// that becomes available after its probe ran is not picked up; that is
// a documented limitation of the one-shot model.
type Registry struct {
	mu      sync.Mutex
	results map[string]error
	probed  map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		results: make(map[string]error),
		probed:  make(map[string]bool),
	}
}

// Usable runs the probe on first call and returns the cached outcome
// afterwards. Panics inside the probe are contained and recorded as
// probe failure.
func (r *Registry) Usable(name string, probe Probe) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.probed[name] {
		return r.results[name] == nil
	}

	err := runProbe(probe)
	r.probed[name] = true
	r.results[name] = err
	if err != nil {
		log.Printf("capability %q unavailable: %v", name, err)
	} else {
		log.Printf("capability %q available", name)
	}
	return err == nil
}

func runProbe(probe Probe) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &ProbePanicError{Value: rec}
		}
	}()
	if probe == nil {
		return nil
	}
	return probe()
}

// Snapshot returns all cached probe outcomes sorted by name.
func (r *Registry) Snapshot() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Status, 0, len(r.results))
	for name, err := range r.results {
		out = append(out, Status{Name: name, Usable: err == nil, Err: err})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
