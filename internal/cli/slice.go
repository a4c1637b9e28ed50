package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/graph"
	"github.com/matzehuels/stratum/pkg/pipeline"
	"github.com/matzehuels/stratum/pkg/planar"
)

// sliceOpts holds the command-line flags for the slice command.
type sliceOpts struct {
	element bool   // root a forward slice at the origin's whole level element
	reverse bool   // walk outward instead of toward the boundary
	pick    bool   // choose the origin interactively
	json    bool   // write the slice as JSON
	model   string // read a model exported by analyze --json instead of NODE/EDGE
}

// sliceCommand creates the slice command.
func (c *CLI) sliceCommand() *cobra.Command {
	opts := sliceOpts{element: true}

	cmd := &cobra.Command{
		Use:   "slice [NODE EDGE] [ORIGIN]",
		Short: "Extract a slice of the decomposed graph from an origin node",
		Long: `Extract a slice of the decomposed graph from an origin node.

A forward slice follows every edge toward a smaller distance until it reaches
the boundary. With --element (the default) a forward slice starts from every
node of the origin's level cycle or path. A reverse slice follows edges toward
greater distances until no neighbor lies further inside.

The triangulation is read from NODE and EDGE, from [input] in the config file,
or from a JSON model written by 'analyze --json' (--model).

Examples:
  stratum slice mesh.1.node mesh.1.edge 42
  stratum slice mesh.1.node mesh.1.edge 42 --reverse --json
  stratum slice --model model.json --pick`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applySliceConfig(cmd, &opts)
			ctx := withLogger(cmd.Context(), c.Logger)

			g, rest, err := c.loadModel(ctx, args, opts.model)
			if err != nil {
				return err
			}

			origin, err := c.resolveOrigin(g, rest, opts.pick)
			if err != nil {
				return err
			}
			if origin == nil {
				printDetail("No selection made")
				return nil
			}
			return c.runSlice(g, *origin, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.element, "element", opts.element, "start a forward slice from the origin's whole level element")
	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "slice outward, away from the boundary")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose the origin interactively")
	cmd.Flags().BoolVar(&opts.json, "json", false, "write the slice as JSON")
	cmd.Flags().StringVar(&opts.model, "model", "", "model JSON written by 'analyze --json'")

	return cmd
}

// applySliceConfig fills flags the user did not set from the [slice] section.
func (c *CLI) applySliceConfig(cmd *cobra.Command, opts *sliceOpts) {
	if v := c.config.Slice.OriginElement; v != nil && !cmd.Flags().Changed("element") {
		opts.element = *v
	}
	if v := c.config.Slice.Reverse; v != nil && !cmd.Flags().Changed("reverse") {
		opts.reverse = *v
	}
}

// loadModel builds the decomposed model from a JSON export or from the
// triangulation files, returning the positional arguments not consumed.
func (c *CLI) loadModel(ctx context.Context, args []string, modelPath string) (*planar.Graph, []string, error) {
	runner := c.newRunner()

	if modelPath != "" {
		if err := errors.ValidateInputPath(modelPath); err != nil {
			return nil, nil, err
		}
		exported, err := graph.ReadGraphFile(modelPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load model %s: %w", modelPath, err)
		}
		vertices, edges := exported.Input()
		result, err := runner.Analyze(ctx, vertices, edges)
		if err != nil {
			return nil, nil, err
		}
		return result.Graph, args, nil
	}

	node, edge, rest, err := c.inputFiles(args)
	if err != nil {
		return nil, nil, err
	}
	result, err := runner.Execute(ctx, pipeline.Options{NodeFile: node, EdgeFile: edge})
	if err != nil {
		return nil, nil, err
	}
	return result.Graph, rest, nil
}

// resolveOrigin returns the origin from the remaining argument or the
// interactive picker. A nil origin means the picker was closed without a
// selection.
func (c *CLI) resolveOrigin(g *planar.Graph, rest []string, pick bool) (*int, error) {
	switch {
	case len(rest) > 1:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unexpected arguments: %v", rest[1:])
	case len(rest) == 1 && pick:
		return nil, errors.New(errors.ErrCodeInvalidInput, "ORIGIN and --pick cannot be combined")
	case len(rest) == 1:
		id, err := strconv.Atoi(rest[0])
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "origin must be a node id, got %q", rest[0])
		}
		return &id, nil
	case pick:
		return pickOrigin(g)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "missing ORIGIN: pass a node id or use --pick")
}

// pickOrigin runs the interactive node picker.
func pickOrigin(g *planar.Graph) (*int, error) {
	p := tea.NewProgram(NewNodeListModel(g))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := finalModel.(NodeListModel)
	if !ok || fm.Selected == nil {
		return nil, nil
	}
	printInfo("Origin %s (level %d)", StyleHighlight.Render(strconv.Itoa(fm.Selected.ID)), fm.Selected.Distance)
	return &fm.Selected.ID, nil
}

// runSlice extracts the slice and prints it as a table or JSON.
func (c *CLI) runSlice(g *planar.Graph, origin int, opts sliceOpts, out io.Writer) error {
	s, err := c.newRunner().Slice(g, origin, opts.element, opts.reverse)
	if err != nil {
		if !errors.Fatal(err) {
			printWarning("%s", errors.UserMessage(err))
			printNextStep("Choose an existing node", appName+" slice --pick")
		}
		return err
	}

	if opts.json {
		return graph.WriteSlice(graph.FromSlice(s, origin, opts.element, opts.reverse), out)
	}

	direction := "Forward"
	if opts.reverse {
		direction = "Reverse"
	}
	printSuccess("%s slice from node %s", direction, StyleHighlight.Render(strconv.Itoa(origin)))
	printStats(len(s), s.EdgeCount())
	fmt.Fprintln(out, renderSliceTable(g, s))
	return nil
}
