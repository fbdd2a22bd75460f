package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/rhagen/cdnl/internal/boundary"
	"github.com/rhagen/cdnl/internal/core"
)

// newBenchCmd runs every .cnf instance under a directory with its own fresh
// Solver, bounded to jobs concurrent instances. Each instance stays
// single-threaded; concurrency here is only across independent instances.
func newBenchCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "bench <dir>",
		Short: "solve every .cnf instance under a directory with bounded concurrency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var instances []string
			err := filepath.WalkDir(args[0], func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && strings.HasSuffix(path, ".cnf") {
					instances = append(instances, path)
				}
				return nil
			})
			if err != nil {
				return err
			}

			sem := semaphore.NewWeighted(int64(jobs))
			g, ctx := errgroup.WithContext(cmd.Context())
			results := make([]string, len(instances))

			for i, instance := range instances {
				i, instance := i, instance
				g.Go(func() error {
					if err := sem.Acquire(ctx, 1); err != nil {
						return err
					}
					defer sem.Release(1)

					s := core.NewSolver(core.DefaultSearchConfig)
					if err := boundary.LoadDIMACS(instance, false, s); err != nil {
						results[i] = fmt.Sprintf("%s: error: %s", instance, err)
						return nil
					}

					start := time.Now()
					result := s.Solve(nil)
					elapsed := time.Since(start)
					stats := s.Stats()
					results[i] = fmt.Sprintf("%s: %s (%.3fs, %d conflicts)", instance, result, elapsed.Seconds(), stats.Conflicts)
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}
			for _, r := range results {
				fmt.Println(r)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&jobs, "jobs", 4, "maximum number of instances to solve concurrently")
	return cmd
}
