package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stratum/pkg/graph"
	"github.com/matzehuels/stratum/pkg/pipeline"
	"github.com/matzehuels/stratum/pkg/planar"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	json     bool   // dump the model as JSON instead of the level table
	output   string // JSON output file (stdout if empty)
	validate bool   // re-check relation reciprocity and order after building
}

// analyzeCommand creates the analyze command, which runs the full
// decomposition and reports its levels.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze [NODE EDGE]",
		Short: "Decompose a triangulation into levels, cycles, and paths",
		Long: `Decompose a triangulation into levels, cycles, and paths.

NODE and EDGE are the .node and .edge files written by the triangulation
engine (for example mesh.1.node and mesh.1.edge). They can be omitted when
[input] is set in the config file.

With --json the complete model is written as JSON, including every node's
relations, level memberships, and betweener annotations.`,
		Args: cobra.MatchAll(cobra.MaximumNArgs(2), func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return fmt.Errorf("expected both NODE and EDGE files, got one")
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, edge, _, err := c.inputFiles(args)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runAnalyze(ctx, pipeline.Options{
				NodeFile: node,
				EdgeFile: edge,
				Validate: opts.validate,
			}, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "write the model as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "JSON output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "re-check adjacency after building")

	return cmd
}

// runAnalyze executes the pipeline and prints either the level table or the
// JSON model.
func (c *CLI) runAnalyze(ctx context.Context, popts pipeline.Options, opts analyzeOpts, out io.Writer) error {
	runner := c.newRunner()

	spinner := newSpinner(ctx, "Decomposing levels...")
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Decomposition failed")
		return err
	}
	spinner.Stop()

	if opts.json {
		return writeModel(ctx, result.Graph, opts.output, out)
	}

	s := result.Stats
	printSuccess("Decomposed %s into %s levels",
		StyleHighlight.Render(popts.NodeFile), StyleNumber.Render(fmt.Sprint(s.LevelCount)))
	printStats(s.NodeCount, s.EdgeCount,
		fmt.Sprintf("%d cycles", s.CycleCount),
		fmt.Sprintf("%d paths", s.PathCount),
		fmt.Sprintf("%d betweeners", s.BetweenerCount))
	printDetail("input %s · %s", pipeline.ShortHash(result.InputHash), s.Total().Round(time.Millisecond))
	fmt.Fprintln(out, renderLevelTable(result.Graph.Levels()))
	printNewline()
	printNextStep("Extract a slice", fmt.Sprintf("%s slice %s %s --pick", appName, popts.NodeFile, popts.EdgeFile))

	return nil
}

// writeModel writes the model JSON to path, or to out when path is empty.
func writeModel(ctx context.Context, g *planar.Graph, path string, out io.Writer) error {
	if path == "" {
		return graph.WriteGraph(g, out)
	}
	prog := newProgress(loggerFromContext(ctx))
	if err := graph.WriteGraphFile(g, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	prog.done("Wrote model")
	printFile(path)
	return nil
}
