package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/plotkit/plotkit/pkg/plot"
)

// previewCommand creates the preview command, an in-terminal scatter view.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <points.csv>",
		Short: "Preview a CSV point file in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, ys, err := readPoints(args[0])
			if err != nil {
				return err
			}
			rng, err := plot.ResolveRange(xs, ys, plot.DefaultOptions())
			if err != nil {
				return err
			}
			m := previewModel{
				title: args[0],
				xs:    xs,
				ys:    ys,
				rng:   rng,
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// previewModel is the bubbletea model for the terminal scatter view.
type previewModel struct {
	title         string
	xs, ys        []float64
	rng           plot.Range
	width, height int
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	// Reserve rows for the title and the footer.
	plotH := m.height - 3
	plotW := m.width
	if plotW < 10 || plotH < 4 {
		return "terminal too small"
	}

	grid := newBrailleGrid(plotW, plotH)
	pw, ph := grid.pixelSize()
	spanX := m.rng.XMax - m.rng.XMin
	spanY := m.rng.YMax - m.rng.YMin
	for i := range m.xs {
		px := int((m.xs[i] - m.rng.XMin) / spanX * float64(pw-1))
		// Terminal rows grow downward; data Y grows upward.
		py := ph - 1 - int((m.ys[i]-m.rng.YMin)/spanY*float64(ph-1))
		grid.set(px, py)
	}

	out := StyleTitle.Render(m.title) + "\n"
	for _, line := range grid.lines() {
		out += styleMarker.Render(line) + "\n"
	}
	out += styleAxis.Render(fmt.Sprintf("x: [%.4g, %.4g]  y: [%.4g, %.4g]  %d points  (q to quit)",
		m.rng.XMin, m.rng.XMax, m.rng.YMin, m.rng.YMax, len(m.xs)))
	return out
}
