package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/itemstore/internal/record"
)

// StressOptions holds flags for the stress command.
type StressOptions struct {
	*RootOptions
	Workers   int
	PerWorker int
	Category  string
}

// StressResult summarizes a stress run.
type StressResult struct {
	Workers     int   `json:"workers"`
	PerWorker   int   `json:"per_worker"`
	Seeded      int   `json:"seeded"`
	Created     int   `json:"created"`
	Total       int   `json:"total"`
	DistinctIDs int   `json:"distinct_ids"`
	InOrder     bool  `json:"in_order"`
	ElapsedMS   int64 `json:"elapsed_ms"`
}

// String renders the text form of the summary.
func (r StressResult) String() string {
	return fmt.Sprintf("workers=%d per_worker=%d seeded=%d created=%d total=%d distinct_ids=%d in_order=%t elapsed=%dms",
		r.Workers, r.PerWorker, r.Seeded, r.Created, r.Total, r.DistinctIDs, r.InOrder, r.ElapsedMS)
}

// NewStressCommand creates the stress command.
func NewStressCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StressOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Create records concurrently and verify the store",
		Long: `Launch concurrent creates against one store, then check that every
create is visible exactly once: the record count equals seeded + created,
all ids are distinct and listing returns records in seq order.

Exit codes:
  0 - Store consistent
  1 - A create failed or verification failed
  2 - Command error

Example:
  itemstore stress --workers 100 --per-worker 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Workers, "workers", 100, "number of concurrent workers")
	cmd.Flags().IntVar(&opts.PerWorker, "per-worker", 1, "creates per worker")
	cmd.Flags().StringVar(&opts.Category, "category", "stress", "category of created records")

	return cmd
}

func runStress(opts *StressOptions, cmd *cobra.Command) error {
	if opts.Workers < 1 || opts.PerWorker < 1 {
		return NewExitError(ExitCommandError, ErrCodeStress, "--workers and --per-worker must be at least 1")
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	seeded, err := st.Len(ctx)
	if err != nil {
		return storeError("stress", err)
	}

	opts.formatter(cmd).VerboseLog("stress: %d worker(s) x %d create(s) on a store with %d seeded record(s)",
		opts.Workers, opts.PerWorker, seeded)

	start := time.Now()
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < opts.PerWorker; i++ {
				_, err := st.Create(ctx, record.CreateRequest{
					Name:     fmt.Sprintf("worker-%d-%d", w, i),
					Category: opts.Category,
				})
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	if firstErr != nil {
		return storeError("stress create", firstErr)
	}

	all, err := st.List(ctx, record.AnyCategory())
	if err != nil {
		return storeError("stress", err)
	}

	result := StressResult{
		Workers:   opts.Workers,
		PerWorker: opts.PerWorker,
		Seeded:    seeded,
		Created:   opts.Workers * opts.PerWorker,
		Total:     len(all),
		InOrder:   true,
		ElapsedMS: elapsed.Milliseconds(),
	}
	ids := make(map[string]struct{}, len(all))
	for i, rec := range all {
		ids[rec.ID] = struct{}{}
		if i > 0 && all[i-1].Seq >= rec.Seq {
			result.InOrder = false
		}
	}
	result.DistinctIDs = len(ids)

	opts.logger().Info("stress finished",
		"workers", result.Workers,
		"total", result.Total,
		"elapsed", elapsed,
	)

	if err := opts.formatter(cmd).Success(result); err != nil {
		return err
	}

	want := result.Seeded + result.Created
	if result.Total != want || result.DistinctIDs != want || !result.InOrder {
		return NewExitError(ExitFailure, ErrCodeStress,
			fmt.Sprintf("store inconsistent: want %d records with distinct ids in order, got %d records, %d distinct ids, in_order=%t",
				want, result.Total, result.DistinctIDs, result.InOrder))
	}
	return nil
}
