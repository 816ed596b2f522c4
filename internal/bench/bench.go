// Package bench drives synthetic allocation workloads against each
// placement policy and reports elapsed time and fragmentation.
//
// One run of a policy:
//  1. allocate Allocations blocks of 1..MaxSize bytes
//  2. free Allocations/2 randomly chosen slots (a slot hit twice stays free)
//  3. refill every empty slot with a new random size
//  4. record elapsed time and the fragmentation score
//  5. free everything
package bench

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sourcegraph/conc/pool"

	"github.com/Jorgear27/Ya-lo-borro/memory"
)

const (
	NumAllocations    = 500
	MaxAllocationSize = 1024
	DefaultInterval   = time.Second
)

// Result is one policy's measurement.
type Result struct {
	Time          float64 `json:"time"` // seconds
	Fragmentation float64 `json:"fragmentation"`
}

// Report maps policy names (FIRST_FIT, ...) to their results.
type Report map[string]Result

// Config describes the workload.
type Config struct {
	Allocations int   // blocks per run
	MaxSize     int   // largest request in bytes
	Seed        int64 // request sizes and victims are drawn from this seed
	Capacity    int   // region capacity of each heap
	Cycles      int   // Loop stops after this many cycles; 0 runs until canceled

	// Parallel runs the policies concurrently, each on its own heap.
	Parallel bool

	// Logger receives heap operations. It is only attached in sequential
	// mode since OpLogger implementations are not safe for concurrent use.
	Logger memory.OpLogger
}

// DefaultConfig returns the standard 500 x 1..1024 byte workload.
func DefaultConfig() Config {
	return Config{
		Allocations: NumAllocations,
		MaxSize:     MaxAllocationSize,
		Seed:        1,
		Capacity:    memory.DefaultOptions.Capacity,
	}
}

func (c Config) validate() error {
	if c.Allocations <= 0 {
		return fmt.Errorf("bench: allocations must be positive, got %d", c.Allocations)
	}
	if c.MaxSize <= 0 {
		return fmt.Errorf("bench: max size must be positive, got %d", c.MaxSize)
	}
	return nil
}

// RunPolicy runs the workload once on h under p. h is left as it was found
// apart from the policy.
func RunPolicy(h *memory.Heap, p memory.Policy, faker *gofakeit.Faker, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if err := h.SetPolicy(p); err != nil {
		return Result{}, err
	}

	refs := make([]memory.Ref, cfg.Allocations)
	fill := func(i int) error {
		ref, _, err := h.Alloc(faker.IntRange(1, cfg.MaxSize))
		if err != nil {
			return fmt.Errorf("bench: %s slot %d: %w", p, i, err)
		}
		refs[i] = ref
		return nil
	}

	start := time.Now()
	for i := range refs {
		if err := fill(i); err != nil {
			release(h, refs)
			return Result{}, err
		}
	}
	for k := 0; k < len(refs)/2; k++ {
		i := faker.IntRange(0, len(refs)-1)
		if refs[i] == memory.NilRef {
			continue
		}
		if err := h.Free(refs[i]); err != nil {
			release(h, refs)
			return Result{}, err
		}
		refs[i] = memory.NilRef
	}
	for i := range refs {
		if refs[i] != memory.NilRef {
			continue
		}
		if err := fill(i); err != nil {
			release(h, refs)
			return Result{}, err
		}
	}
	elapsed := time.Since(start)
	frag := h.Fragmentation()

	if err := release(h, refs); err != nil {
		return Result{}, err
	}
	return Result{Time: elapsed.Seconds(), Fragmentation: frag}, nil
}

func release(h *memory.Heap, refs []memory.Ref) error {
	for i, ref := range refs {
		if ref == memory.NilRef {
			continue
		}
		if err := h.Free(ref); err != nil {
			return fmt.Errorf("bench: release slot %d: %w", i, err)
		}
		refs[i] = memory.NilRef
	}
	return nil
}

// RunCycle runs the workload for every policy. Each policy draws from its
// own generator seeded with cfg.Seed, so all policies see the same requests.
func RunCycle(ctx context.Context, cfg Config) (Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Parallel {
		return runParallel(ctx, cfg)
	}

	h, err := memory.New(memory.Options{Capacity: cfg.Capacity, Logger: cfg.Logger})
	if err != nil {
		return nil, err
	}
	defer h.Close()

	report := make(Report, len(memory.Policies))
	for _, p := range memory.Policies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := RunPolicy(h, p, gofakeit.New(cfg.Seed), cfg)
		if err != nil {
			return nil, err
		}
		report[p.String()] = r
	}
	return report, nil
}

func runParallel(ctx context.Context, cfg Config) (Report, error) {
	var mu sync.Mutex
	report := make(Report, len(memory.Policies))

	p := pool.New().WithErrors().WithContext(ctx)
	for _, policy := range memory.Policies {
		policy := policy
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := memory.New(memory.Options{Capacity: cfg.Capacity, Policy: policy})
			if err != nil {
				return err
			}
			defer h.Close()

			r, err := RunPolicy(h, policy, gofakeit.New(cfg.Seed), cfg)
			if err != nil {
				return err
			}
			mu.Lock()
			report[policy.String()] = r
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
