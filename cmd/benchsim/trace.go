package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optobench/opticore/pkg/solver1"
	"github.com/optobench/opticore/pkg/sourcerays"
)

// newTraceCmd wires Solver 1 alone: generate the demo bench's source
// rays and report how the resulting ray tree branched.
func newTraceCmd(ringCount, maxDepth *int) *cobra.Command {
	return &cobra.Command{
		Use:   "trace",
		Short: "Run the geometric ray tracer (Solver 1) and report path counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLogger, err := newLogger()
			if err != nil {
				return err
			}
			defer closeLogger()

			bench := buildDemoScene()
			rays := sourcerays.Generate(bench.Scene, *ringCount, sourcerays.Full)
			logger.Printf("generated %d source rays from the bench's emitters", len(rays))

			cfg := solver1.DefaultConfig()
			cfg.MaxDepth = *maxDepth

			segments, err := solver1.TraceAll(context.Background(), bench.Scene, rays, cfg)
			if err != nil {
				return fmt.Errorf("trace: %w", err)
			}

			totalNodes, totalLeaves, escaped := 0, 0, 0
			for _, seg := range segments {
				totalNodes += seg.CountNodes()
				leaves := seg.Leaves()
				totalLeaves += len(leaves)
				for _, leaf := range leaves {
					if leaf.Hit == nil {
						escaped++
					}
				}
			}

			fmt.Printf("traced %d source rays: %d segments, %d leaf rays (%d escaped the bench)\n",
				len(rays), totalNodes, totalLeaves, escaped)
			return nil
		},
	}
}
