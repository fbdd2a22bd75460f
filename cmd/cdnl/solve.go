package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rhagen/cdnl/internal/boundary"
	"github.com/rhagen/cdnl/internal/core"
)

func newSolveCmd() *cobra.Command {
	var (
		configFile string
		gzipped    bool
		cpuProfile string
		memProfile string
		enumerate  int
	)

	cmd := &cobra.Command{
		Use:   "solve <instance.cnf>",
		Short: "solve a DIMACS CNF instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := core.DefaultSearchConfig
			if configFile != "" {
				var err error
				cfg, err = boundary.LoadSearchConfig(configFile)
				if err != nil {
					return err
				}
			}

			s := core.NewSolver(cfg)
			s.SetLogger(newLogrusLogger(logrus.StandardLogger()))

			if err := boundary.LoadDIMACS(args[0], gzipped, s); err != nil {
				return fmt.Errorf("could not load instance: %w", err)
			}

			if cpuProfile != "" {
				f, err := os.Create(cpuProfile)
				if err != nil {
					return err
				}
				pprof.StartCPUProfile(f)
				defer pprof.StopCPUProfile()
			}

			fmt.Printf("c variables: %d\n", s.NumVars())

			start := time.Now()
			var result core.SolveResult
			var models [][]core.LBool
			if enumerate > 0 {
				models, result = s.EnumerateModels(nil, enumerate)
			} else {
				result = s.Solve(nil)
			}
			elapsed := time.Since(start)

			stats := s.Stats()
			fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
			fmt.Printf("c conflicts:  %d (%.2f/sec)\n", stats.Conflicts, float64(stats.Conflicts)/elapsed.Seconds())
			fmt.Printf("c restarts:   %d\n", stats.Restarts)
			fmt.Printf("c decisions:  %d\n", stats.Decisions)
			fmt.Printf("c status:     %s\n", result)
			if enumerate > 0 {
				fmt.Printf("c models:     %d\n", len(models))
			}

			if memProfile != "" {
				f, err := os.Create(memProfile)
				if err != nil {
					return err
				}
				defer f.Close()
				pprof.WriteHeapProfile(f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "YAML search configuration file")
	cmd.Flags().BoolVar(&gzipped, "gzip", false, "instance file is gzip-compressed")
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile to this file")
	cmd.Flags().StringVar(&memProfile, "memprofile", "", "write a heap profile to this file")
	cmd.Flags().IntVar(&enumerate, "enumerate", 0, "enumerate up to this many models instead of stopping at the first (0 disables)")
	return cmd
}
