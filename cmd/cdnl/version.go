package main

import (
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags "-X main.version=...";
// it defaults to a zero semver so a dev build still parses.
var version = "0.0.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the build version",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := semver.Parse(version)
			if err != nil {
				return fmt.Errorf("invalid build version %q: %w", version, err)
			}
			fmt.Println(v.String())
			return nil
		},
	}
}
