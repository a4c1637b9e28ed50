package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/triangle"
)

// pointsOpts holds the command-line flags for the points command.
type pointsOpts struct {
	seed   string // sampling seed (random if empty)
	count  int    // number of points including the three hull points
	output string // .node output file (stdout if empty)
}

// pointsCommand creates the points command, which writes input for the
// triangulation engine.
func (c *CLI) pointsCommand() *cobra.Command {
	opts := pointsOpts{count: triangle.DefaultPointCount}

	cmd := &cobra.Command{
		Use:   "points",
		Short: "Generate a seeded point set for the triangulation engine",
		Long: `Generate a seeded point set for the triangulation engine.

The same seed always yields the same points. Triangulate the output with
Triangle's -e switch to obtain the .node and .edge files 'analyze' reads:

  stratum points --seed demo -o mesh.node
  triangle -e mesh.node
  stratum analyze mesh.1.node mesh.1.edge`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" {
				if err := errors.ValidatePath(opts.output); err != nil {
					return err
				}
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return runPoints(ctx, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.seed, "seed", "", "sampling seed (random if empty)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", opts.count,
		fmt.Sprintf("number of points, 3 to %d", triangle.MaxPointCount))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output .node file (stdout if empty)")

	return cmd
}

// runPoints generates the points and writes them as a .node file.
func runPoints(ctx context.Context, opts pointsOpts, out io.Writer) error {
	logger := loggerFromContext(ctx)

	seed := opts.seed
	if seed == "" {
		seed = uuid.NewString()
		logger.Debug("generated seed", "seed", seed)
	}

	points, err := triangle.GeneratePoints(seed, opts.count)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return triangle.WriteNodeFile(out, points)
	}

	prog := newProgress(logger)
	f, err := os.Create(opts.output)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", opts.output)
	}
	if err := triangle.WriteNodeFile(f, points); err != nil {
		f.Close()
		return fmt.Errorf("write output %s: %w", opts.output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write output %s: %w", opts.output, err)
	}
	prog.done("Wrote points")

	printSuccess("Generated %s points", StyleNumber.Render(strconv.Itoa(len(points))))
	printKeyValue("Seed", seed)
	printFile(opts.output)
	printNewline()
	printNextStep("Triangulate", "triangle -e "+opts.output)
	return nil
}
