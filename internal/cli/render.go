package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/plotkit/plotkit/pkg/plot"
)

// watchDebounce coalesces editor write bursts into one re-render.
const watchDebounce = 300 * time.Millisecond

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output       string  // output PNG path
	width        int     // image width in pixels
	height       int     // image height in pixels
	markerRadius float64 // marker radius in pixels
	xMin, xMax   float64 // explicit X range (disables auto-range when set)
	yMin, yMax   float64 // explicit Y range
	watch        bool    // re-render on input file change
}

// renderCommand creates the render command for generating scatter plot PNGs.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <points.csv>",
		Short: "Render a CSV point file to a scatter plot PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			plotOpts, err := c.buildOptions(cmd, &opts)
			if err != nil {
				return err
			}
			input := args[0]
			output := opts.output
			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
			}
			if opts.watch {
				return c.watchAndRender(ctx, input, output, plotOpts)
			}
			return c.renderOnce(ctx, input, output, plotOpts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path (default: input name with .png)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "image height in pixels")
	cmd.Flags().Float64Var(&opts.markerRadius, "radius", 0, "marker radius in pixels")
	cmd.Flags().Float64Var(&opts.xMin, "x-min", 0, "lower X bound (disables auto-range)")
	cmd.Flags().Float64Var(&opts.xMax, "x-max", 0, "upper X bound (disables auto-range)")
	cmd.Flags().Float64Var(&opts.yMin, "y-min", 0, "lower Y bound (disables auto-range)")
	cmd.Flags().Float64Var(&opts.yMax, "y-max", 0, "upper Y bound (disables auto-range)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the input file changes")

	return cmd
}

// buildOptions layers config file defaults and flags onto the render defaults.
// Any explicit range flag switches auto-ranging off.
func (c *CLI) buildOptions(cmd *cobra.Command, opts *renderOpts) (plot.Options, error) {
	plotOpts := plot.DefaultOptions()

	path, err := configPath()
	if err == nil {
		cfg, cfgErr := loadConfig(path)
		if cfgErr != nil {
			return plotOpts, fmt.Errorf("load config %s: %w", path, cfgErr)
		}
		applyRenderConfig(cfg.Render, &plotOpts)
	}

	if cmd.Flags().Changed("width") {
		plotOpts.Width = opts.width
	}
	if cmd.Flags().Changed("height") {
		plotOpts.Height = opts.height
	}
	if cmd.Flags().Changed("radius") {
		plotOpts.MarkerRadius = opts.markerRadius
	}

	explicit := false
	for _, name := range []string{"x-min", "x-max", "y-min", "y-max"} {
		if cmd.Flags().Changed(name) {
			explicit = true
		}
	}
	if explicit {
		plotOpts.AutoRange = false
		plotOpts.XMin, plotOpts.XMax = opts.xMin, opts.xMax
		plotOpts.YMin, plotOpts.YMax = opts.yMin, opts.yMax
	}
	return plotOpts, nil
}

// renderOnce reads the points file and renders it to output.
func (c *CLI) renderOnce(ctx context.Context, input, output string, opts plot.Options) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Rendering %s", input)

	xs, ys, err := readPoints(input)
	if err != nil {
		return err
	}

	spin := newSpinner(ctx, fmt.Sprintf("Rendering %d points", len(xs)))
	start := time.Now()
	err = plot.RenderFile(output, xs, ys, opts)
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("Rendered %d points (%s)",
		len(xs), time.Since(start).Round(time.Millisecond)))
	printFile(output)
	printDetail("%dx%d px", opts.Width, opts.Height)
	return nil
}

// watchAndRender renders once, then re-renders on every change to the input
// file until ctx is cancelled.
func (c *CLI) watchAndRender(ctx context.Context, input, output string, opts plot.Options) error {
	if err := c.renderOnce(ctx, input, output, opts); err != nil {
		// Keep watching: a broken intermediate save should not kill the loop.
		printWarning("initial render failed: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file, so editors that replace the file
	// by rename are still observed.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return err
	}
	printInfo("Watching %s (ctrl-c to stop)", input)

	target := filepath.Clean(input)
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printWarning("watch error: %v", err)
		case <-pending:
			if err := c.renderOnce(ctx, input, output, opts); err != nil {
				printWarning("render failed: %v", err)
			}
		}
	}
}
