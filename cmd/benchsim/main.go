// Command benchsim is the CLI demo driver (spec.md §1, SPEC_FULL.md §1):
// a thin host that assembles a fixed demonstration bench, runs one or
// more of the three solvers against it, and prints/writes the results.
// It is explicitly "external-collaborator territory" — no scene file
// format, no persistence, just enough of a harness to exercise the
// library end to end the way the teacher's main.go exercises its own
// renderer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/optobench/opticore/pkg/core"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var ringCount int
	var maxDepth int

	root := &cobra.Command{
		Use:   "benchsim",
		Short: "Optical bench simulation demo driver",
		Long: "benchsim assembles a fixed demonstration optical bench (laser, " +
			"ideal lens, fluorescent sample, camera, PMT) and runs the " +
			"geometric ray tracer, Gaussian beam propagator, and/or backward " +
			"Monte Carlo imager against it.",
	}
	root.PersistentFlags().IntVar(&ringCount, "rings", 24, "requested source ray count per emitter ring")
	root.PersistentFlags().IntVar(&maxDepth, "max-depth", core.MaxDepth, "maximum ray tree / backward trace depth")

	root.AddCommand(newTraceCmd(&ringCount, &maxDepth))
	root.AddCommand(newPropagateCmd())
	root.AddCommand(newRenderCmd(&maxDepth))
	return root
}

// newLogger builds the shared zap-backed Logger every subcommand uses
// for its own progress/result reporting, per SPEC_FULL.md §1's ambient
// logging stack.
func newLogger() (*core.ZapLogger, func(), error) {
	z, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, err
	}
	logger := core.NewZapLoggerFrom(z)
	return logger, func() { _ = logger.Sync() }, nil
}
