package main

import (
	"github.com/spf13/cobra"

	"github.com/pavanmanishd/heapalloc"
)

var (
	stressIters uint64
	stressMax   uint64
	stressHold  int
	stressSeed  uint64
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Run a randomized alloc/free workload and report heap metrics",
	Long: `stress churns the arena with a deterministic pseudo-random mix of
alloc, free, and realloc calls while holding a bounded working set of
live blocks, then reports occupancy and fragmentation metrics.`,
	RunE: runStress,
}

func init() {
	stressCmd.Flags().Uint64Var(&stressIters, "iters", 10000, "Number of workload iterations")
	stressCmd.Flags().Uint64Var(&stressMax, "max", 512, "Largest request size in bytes")
	stressCmd.Flags().IntVar(&stressHold, "hold", 32, "Maximum number of live blocks to hold")
	stressCmd.Flags().Uint64Var(&stressSeed, "seed", 1, "Seed for the workload generator")
	rootCmd.AddCommand(stressCmd)
}

func runStress(cmd *cobra.Command, args []string) error {
	h, err := newHeap()
	if err != nil {
		return err
	}
	defer h.Close()

	rng := stressSeed
	next := func() uint64 {
		rng ^= rng << 13
		rng ^= rng >> 7
		rng ^= rng << 17
		return rng
	}

	var (
		live      []heapalloc.Ref
		allocs    uint64
		rejects   uint64
		frees     uint64
		reallocs  uint64
		relocated uint64
	)
	for i := uint64(0); i < stressIters; i++ {
		switch {
		case len(live) >= stressHold || (len(live) > 0 && next()%3 == 0):
			idx := int(next() % uint64(len(live)))
			if next()%4 == 0 {
				old := live[idx]
				moved := h.Realloc(old, 1+next()%stressMax)
				reallocs++
				if moved == 0 {
					live[idx] = live[len(live)-1]
					live = live[:len(live)-1]
				} else {
					if moved != old {
						relocated++
					}
					live[idx] = moved
				}
			} else {
				h.Free(live[idx])
				frees++
				live[idx] = live[len(live)-1]
				live = live[:len(live)-1]
			}
		default:
			ref := h.Alloc(1 + next()%stressMax)
			if ref == 0 {
				rejects++
			} else {
				allocs++
				live = append(live, ref)
			}
		}
		if verbose && (i+1)%1000 == 0 {
			printVerbose("iter %d: live=%d blocks=%d largest_free=%d\n",
				i+1, len(live), h.NumBlocks(), h.LargestFree())
		}
	}

	m := h.Metrics()
	printInfo("workload: %d allocs, %d frees, %d reallocs (%d relocated), %d rejected\n",
		allocs, frees, reallocs, relocated, rejects)
	printInfo("arena:    %d bytes total, %d used, %d free, %d in headers\n",
		m.TotalSize, m.UsedBytes, m.FreeBytes, m.HeaderBytes)
	printInfo("chain:    %d blocks (%d free), largest free %d, utilization %.1f%%\n",
		m.NumBlocks, m.NumFree, m.LargestFree, 100*m.Utilization)

	for _, ref := range live {
		h.Free(ref)
	}
	printVerbose("after release: %d blocks\n", h.NumBlocks())
	return nil
}
