package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"

	"github.com/Jorgear27/Ya-lo-borro/internal/logger"
	"github.com/Jorgear27/Ya-lo-borro/memory"
)

var (
	simPolicy   string
	simOps      int
	simSeed     int64
	simMaxSize  int
	simCapacity int
	simDump     bool
)

func init() {
	cmd := newSimulateCmd()
	cmd.Flags().StringVarP(&simPolicy, "policy", "p", "first-fit", "Placement policy: first-fit, best-fit or worst-fit")
	cmd.Flags().IntVar(&simOps, "ops", 1000, "Number of random operations")
	cmd.Flags().Int64Var(&simSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&simMaxSize, "max-size", 1024, "Largest request in bytes")
	cmd.Flags().IntVar(&simCapacity, "capacity", 64<<20, "Region capacity in bytes")
	cmd.Flags().BoolVar(&simDump, "dump", false, "Print every block after the run")
	rootCmd.AddCommand(cmd)
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a random workload and show the resulting heap",
		Long: `The simulate command replays a seeded random mix of malloc, calloc,
realloc and free calls on a fresh heap, audits the block layout and prints
usage, fragmentation and allocator counters.

Example:
  memctl simulate --policy best-fit --ops 5000
  memctl simulate --policy worst --seed 7 --dump
  memctl simulate --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate()
		},
	}
	return cmd
}

// SimulationResult is the JSON form of a simulate run.
type SimulationResult struct {
	Policy        string       `json:"policy"`
	Ops           int          `json:"ops"`
	Seed          int64        `json:"seed"`
	Live          int          `json:"live"`
	Usage         memory.Usage `json:"usage"`
	Fragmentation float64      `json:"fragmentation"`
	Stats         memory.Stats `json:"stats"`
	Digest        string       `json:"digest"`
}

func runSimulate() error {
	policy, err := memory.ParsePolicy(simPolicy)
	if err != nil {
		return err
	}
	if simOps < 0 || simMaxSize <= 0 {
		return fmt.Errorf("--ops must be >= 0 and --max-size > 0")
	}

	h, err := memory.New(memory.Options{Capacity: simCapacity, Policy: policy})
	if err != nil {
		return err
	}
	defer h.Close()

	printVerbose("Simulating %d operations under %s (seed %d)\n", simOps, policy, simSeed)
	live, err := simulate(h, gofakeit.New(simSeed), simOps, simMaxSize)
	if err != nil {
		return err
	}
	if err := h.Check(); err != nil {
		logger.Error("heap audit failed", "error", err)
		return fmt.Errorf("heap audit failed: %w", err)
	}

	res := SimulationResult{
		Policy:        policy.String(),
		Ops:           simOps,
		Seed:          simSeed,
		Live:          live,
		Usage:         h.Usage(),
		Fragmentation: h.Fragmentation(),
		Stats:         h.Stats(),
		Digest:        fmt.Sprintf("%016x", h.Digest()),
	}
	if jsonOut {
		return printJSON(res)
	}

	u := res.Usage
	printInfo("\nSimulation: %s\n", res.Policy)
	printInfo("%s\n\n", strings.Repeat("=", 40))
	printInfo("Operations: %s (seed %d)\n", formatNumber(int64(res.Ops)), res.Seed)
	printInfo("Live allocations: %s\n\n", formatNumber(int64(res.Live)))

	printInfo("Usage:\n")
	printInfo("  Extent: %s (%s bytes)\n", formatBytes(int64(u.Extent)), formatNumber(int64(u.Extent)))
	printInfo("  Allocated: %s bytes in %s blocks\n", formatNumber(int64(u.Allocated)), formatNumber(int64(u.Blocks-u.FreeBlocks)))
	printInfo("  Free: %s bytes in %s blocks\n", formatNumber(int64(u.Free)), formatNumber(int64(u.FreeBlocks)))
	printInfo("  Fragmentation: %.2f%%\n\n", res.Fragmentation)

	s := res.Stats
	printInfo("Allocator:\n")
	printInfo("  Calls: malloc=%d calloc=%d realloc=%d free=%d\n", s.AllocCalls, s.CallocCalls, s.ReallocCalls, s.FreeCalls)
	printInfo("  Region: grows=%d (%s) shrinks=%d\n", s.GrowCalls, formatBytes(s.GrowBytes), s.ShrinkCalls)
	printInfo("  Blocks: splits=%d coalesced=%d in-place=%d relocated=%d\n",
		s.SplitCount, s.CoalesceForward, s.InPlaceResizes, s.Relocations)
	printInfo("  Digest: %s\n", res.Digest)

	if simDump && !quiet {
		printInfo("\n")
		return h.Dump(os.Stdout)
	}
	return nil
}

// simulate runs n random operations and returns how many blocks are live.
func simulate(h *memory.Heap, faker *gofakeit.Faker, n, maxSize int) (int, error) {
	var live []memory.Ref
	for i := 0; i < n; i++ {
		var err error
		switch op := faker.IntRange(0, 9); {
		case op < 4 || len(live) == 0:
			var ref memory.Ref
			ref, _, err = h.Alloc(faker.IntRange(1, maxSize))
			live = append(live, ref)
		case op < 5:
			var ref memory.Ref
			ref, _, err = h.Calloc(faker.IntRange(1, 16), faker.IntRange(1, maxSize/16+1))
			live = append(live, ref)
		case op < 7:
			j := faker.IntRange(0, len(live)-1)
			live[j], _, err = h.Realloc(live[j], faker.IntRange(1, maxSize))
		default:
			j := faker.IntRange(0, len(live)-1)
			err = h.Free(live[j])
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
		}
		if err != nil {
			return len(live), fmt.Errorf("operation %d: %w", i, err)
		}
	}
	return len(live), nil
}
