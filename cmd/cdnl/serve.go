package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rhagen/cdnl/internal/boundary"
	"github.com/rhagen/cdnl/internal/core"
	"github.com/rhagen/cdnl/internal/metrics"
)

// newServeCmd runs a long-running incremental-solving session: the instance
// is loaded once, and each stdin line is a whitespace-separated list of
// DIMACS assumption literals solved against the live solver, so repeated
// calls reuse all clauses learnt so far. /metrics exposes cumulative search
// statistics, and the search configuration file (if given) is hot-reloaded
// on every write instead of requiring a restart.
func newServeCmd() *cobra.Command {
	var (
		configFile string
		gzipped    bool
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve <instance.cnf>",
		Short: "serve an incremental solving session over stdin, with a /metrics endpoint",
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

			if configFile != "" {
				watcher, err := boundary.NewConfigWatcher(configFile, func(next core.SearchConfig) {
					logrus.Info("reloaded search configuration")
					s.SetSearchConfig(next)
				})
				if err != nil {
					return fmt.Errorf("could not watch config file: %w", err)
				}
				defer watcher.Close()
			}

			if addr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				go func() {
					if err := http.ListenAndServe(addr, mux); err != nil {
						logrus.WithError(err).Error("metrics server stopped")
					}
				}()
			}

			collector := metrics.NewCollector()
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				assumps, err := parseAssumptions(line)
				if err != nil {
					fmt.Printf("c error: %s\n", err)
					continue
				}

				result := s.Solve(assumps)
				collector.Observe(s.Stats())
				metrics.SetLearnts(s.NumLearnts())

				fmt.Println(result)
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "YAML search configuration file, hot-reloaded on change")
	cmd.Flags().BoolVar(&gzipped, "gzip", false, "instance file is gzip-compressed")
	cmd.Flags().StringVar(&addr, "addr", ":9090", "address to serve /metrics on, empty to disable")
	return cmd
}

func parseAssumptions(line string) ([]core.Literal, error) {
	if line == "" {
		return nil, nil
	}
	fields := strings.Fields(line)
	lits := make([]core.Literal, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid literal %q: %w", f, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("literal 0 is not a valid assumption")
		}
		if n < 0 {
			lits = append(lits, core.NegLit(core.Var(-n)))
		} else {
			lits = append(lits, core.PosLit(core.Var(n)))
		}
	}
	return lits, nil
}
