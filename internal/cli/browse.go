package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coursegrid/pkg/graph"
	"github.com/matzehuels/coursegrid/pkg/pipeline"
)

// browseCommand creates the browse command, an interactive semester view.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		noCache bool
		flags   pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "browse [curriculum.csv | layout.json]",
		Short: "Browse a curriculum semester by semester",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			l, err := c.loadLayout(ctx, runner, args[0], flags.options(cmd, cfg))
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewCurriculumModel(l), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.registerLoad(cmd.Flags())

	return cmd
}

// loadLayout reads a layout file, or lays out a curriculum CSV.
func (c *CLI) loadLayout(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (graph.Layout, error) {
	if isLayoutFile(input) {
		return graph.ReadLayoutFile(input)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("read %s: %w", input, err)
	}
	opts.Logger = c.Logger
	g, err := runner.Load(ctx, input, data, opts)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("load %s: %w", input, err)
	}
	return runner.Layout(ctx, g, opts)
}
