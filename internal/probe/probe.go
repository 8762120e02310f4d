// Package probe exercises semaphores and sections end to end. It is what the
// semprobe command runs at startup, and what a deployment can run to check a
// primitive on the host it is about to use.
package probe

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/notorious-go/sync/internal/config"
	"github.com/notorious-go/sync/section"
	"github.com/notorious-go/sync/semaphore"
)

var (
	ErrSectionSkipped    = errors.New("section body did not run")
	ErrPermitLeaked      = errors.New("section did not return its permit")
	ErrExclusionViolated = errors.New("more sections ran concurrently than the semaphore permits")
	ErrLostUpdate        = errors.New("guarded counter lost updates")
)

// Report summarises a Contention run.
type Report struct {
	Sections      int
	TimedOut      int
	MaxConcurrent int64
	Counter       int64
	Elapsed       time.Duration
}

// Factory maps a configured primitive name to its semaphore.Factory.
func Factory(cfg *config.Config) (semaphore.Factory, error) {
	switch cfg.Primitive {
	case config.PrimitiveCounter:
		return semaphore.NewCounter, nil
	case config.PrimitiveWeighted:
		return semaphore.NewWeighted, nil
	case config.PrimitiveChannel:
		return semaphore.Channel(cfg.ChannelLimit), nil
	default:
		return nil, fmt.Errorf("unknown primitive %q", cfg.Primitive)
	}
}

// StartupCheck creates a semaphore with no permits, releases one into it,
// runs a single section and checks that the permit came back. A primitive
// that fails this check is unusable.
func StartupCheck(f semaphore.Factory, timeout time.Duration, log zerolog.Logger) error {
	sem, err := semaphore.New(0,
		semaphore.WithPrimitive(f),
		semaphore.WithLogger(log),
		semaphore.WithName("startup"),
	)
	if err != nil {
		return err
	}
	defer sem.Close()

	sem.Signal()
	ran := false
	for range section.Section(sem, section.WithTimeout(timeout), section.WithLogger(log)) {
		ran = true
	}
	if !ran {
		return ErrSectionSkipped
	}
	if sem.TryWait() != semaphore.Acquired {
		return ErrPermitLeaked
	}
	return nil
}

// Contention runs cfg.Workers goroutines, each entering cfg.Iterations
// sections on one semaphore with cfg.InitialCount permits. It fails if more
// sections ever overlap than there are permits, or, for a binary semaphore, if
// the unsynchronised counter incremented inside the sections lost an update.
//
// Sections that time out are counted but are not failures. Cancelling ctx
// stops workers before their next section.
func Contention(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Report, error) {
	f, err := Factory(cfg)
	if err != nil {
		return Report{}, err
	}
	sem, err := semaphore.New(cfg.InitialCount,
		semaphore.WithPrimitive(f),
		semaphore.WithLogger(log),
		semaphore.WithName("contention"),
	)
	if err != nil {
		return Report{}, err
	}
	defer sem.Close()

	var (
		wg        sync.WaitGroup
		inside    atomic.Int64
		maxInside atomic.Int64
		sections  atomic.Int64
		timedOut  atomic.Int64
		shared    atomic.Int64
		counter   int64 // guarded by sem when cfg.InitialCount is 1
	)
	binary := cfg.InitialCount == 1
	body := func() error {
		n := inside.Add(1)
		for {
			m := maxInside.Load()
			if n <= m || maxInside.CompareAndSwap(m, n) {
				break
			}
		}
		if binary {
			v := counter
			runtime.Gosched()
			counter = v + 1
		} else {
			shared.Add(1)
		}
		inside.Add(-1)
		return nil
	}

	start := time.Now()
	for range cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range cfg.Iterations {
				if ctx.Err() != nil {
					return
				}
				res, _ := section.Do(sem, body, section.WithTimeout(cfg.Timeout), section.WithLogger(log))
				if res == semaphore.TimedOut {
					timedOut.Add(1)
					continue
				}
				sections.Add(1)
			}
		}()
	}
	wg.Wait()

	r := Report{
		Sections:      int(sections.Load()),
		TimedOut:      int(timedOut.Load()),
		MaxConcurrent: maxInside.Load(),
		Counter:       shared.Load(),
		Elapsed:       time.Since(start),
	}
	if binary {
		r.Counter = counter
	}

	if r.MaxConcurrent > cfg.InitialCount {
		return r, fmt.Errorf("%w: %d > %d", ErrExclusionViolated, r.MaxConcurrent, cfg.InitialCount)
	}
	if r.Counter != int64(r.Sections) {
		return r, fmt.Errorf("%w: counter %d after %d sections", ErrLostUpdate, r.Counter, r.Sections)
	}
	if err := ctx.Err(); err != nil {
		return r, err
	}
	return r, nil
}

// Run performs StartupCheck followed by Contention and logs the outcome.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	f, err := Factory(cfg)
	if err != nil {
		return err
	}
	if err := StartupCheck(f, cfg.Timeout, log); err != nil {
		return fmt.Errorf("startup check with %s primitive: %w", cfg.Primitive, err)
	}
	log.Info().Str("primitive", cfg.Primitive).Msg("startup check passed")

	r, err := Contention(ctx, cfg, log)
	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Str("primitive", cfg.Primitive).
		Int64("permits", cfg.InitialCount).
		Int("workers", cfg.Workers).
		Int("sections", r.Sections).
		Int("timed_out", r.TimedOut).
		Int64("max_concurrent", r.MaxConcurrent).
		Int64("counter", r.Counter).
		Dur("elapsed", r.Elapsed).
		Msg("contention probe finished")
	if err != nil {
		return fmt.Errorf("contention probe: %w", err)
	}
	return nil
}
