package capability

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"
)

// Tier is one ranked implementation strategy for a pipeline. Tiers are
// declared highest quality first. A nil Probe means always usable; the
// last tier of every pipeline must have a nil Probe and a Run that
// cannot fail.
type Tier[I, O any] struct {
	Name  string
	Probe Probe
	Run   func(ctx context.Context, in I) (O, error)
}

// ErrTerminalTier reports that the terminal tier returned an error,
// which the tier contract forbids. No further fallback exists.
var ErrTerminalTier = errors.New("terminal tier failed")

// ProbePanicError wraps a panic recovered inside a probe.
type ProbePanicError struct {
	Value any
}

func (e *ProbePanicError) Error() string {
	return fmt.Sprintf("probe panicked: %v", e.Value)
}

// Executor dispatches work through a pipeline's tiers in rank order:
// first usable tier that succeeds wins, failures demote to the next
// tier, single attempt per tier. Usability comes from the shared
// registry, evaluated once per process.
type Executor[I, O any] struct {
	pipeline string
	tiers    []Tier[I, O]
	registry *Registry
	timeout  time.Duration

	served atomic.Value // string: tier that served the most recent request
}

func NewExecutor[I, O any](pipeline string, registry *Registry, timeout time.Duration, tiers ...Tier[I, O]) *Executor[I, O] {
	return &Executor[I, O]{
		pipeline: pipeline,
		tiers:    tiers,
		registry: registry,
		timeout:  timeout,
	}
}

// Execute attempts tiers in order and returns the first success. The
// only possible error is ErrTerminalTier, which indicates a
// programming defect in the terminal tier, not a runtime condition.
func (e *Executor[I, O]) Execute(ctx context.Context, in I) (O, error) {
	var zero O
	for i, tier := range e.tiers {
		terminal := i == len(e.tiers)-1
		if !terminal && !e.registry.Usable(e.key(tier.Name), tier.Probe) {
			continue
		}

		out, err := e.runTier(ctx, tier, terminal, in)
		if err == nil {
			e.served.Store(tier.Name)
			if i > 0 {
				log.Printf("%s: served by tier %q after demotion", e.pipeline, tier.Name)
			}
			return out, nil
		}

		if terminal {
			log.Printf("%s: terminal tier %q failed: %v", e.pipeline, tier.Name, err)
			return zero, fmt.Errorf("%w: %s: %v", ErrTerminalTier, tier.Name, err)
		}
		log.Printf("%s: tier %q failed, demoting: %v", e.pipeline, tier.Name, err)
	}
	return zero, fmt.Errorf("%w: %s has no tiers", ErrTerminalTier, e.pipeline)
}

// runTier invokes one unit of work under the configured deadline. The
// terminal tier performs no I/O, so it runs inline with no timeout.
func (e *Executor[I, O]) runTier(ctx context.Context, tier Tier[I, O], terminal bool, in I) (out O, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("tier %q panicked: %v", tier.Name, rec)
		}
	}()

	if terminal || e.timeout <= 0 {
		return tier.Run(ctx, in)
	}

	tctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type result struct {
		out O
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- result{err: fmt.Errorf("tier %q panicked: %v", tier.Name, rec)}
			}
		}()
		o, e := tier.Run(tctx, in)
		done <- result{out: o, err: e}
	}()

	select {
	case r := <-done:
		return r.out, r.err
	case <-tctx.Done():
		return out, fmt.Errorf("tier %q timed out after %s", tier.Name, e.timeout)
	}
}

// ServedBy returns the tier that served the most recent request, for
// observability. Empty until the first request completes.
func (e *Executor[I, O]) ServedBy() string {
	if v, ok := e.served.Load().(string); ok {
		return v
	}
	return ""
}

func (e *Executor[I, O]) key(tier string) string {
	return e.pipeline + "/" + tier
}
