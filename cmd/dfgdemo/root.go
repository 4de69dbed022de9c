package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dfgdemo",
	Short: "Run built-in discrete factor graph inference and learning scenarios",
	Long: `dfgdemo exercises the dfgraph inference core against scenarios
constructed in Go:
  - infer runs sum-product and max-product over a small binary chain
    (s1, s2) or a single four-state variable (s3).
  - learn runs EM until convergence, re-estimating a RowNorm transition factor.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
