// Package report renders the end-of-run summary of a simulation.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/bjsim/internal/game"
	"github.com/lox/bjsim/internal/simulator"
)

// Option configures report rendering
type Option func(*writer)

// WithColorProfile forces a colour profile instead of detecting one from the
// output. termenv.Ascii disables styling entirely.
func WithColorProfile(p termenv.Profile) Option {
	return func(w *writer) {
		w.renderer.SetColorProfile(p)
	}
}

// WithTitle sets the heading printed above the summary
func WithTitle(title string) Option {
	return func(w *writer) {
		w.title = title
	}
}

type writer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	title    string

	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	win    lipgloss.Style
	loss   lipgloss.Style
}

func newWriter(out io.Writer, opts []Option) *writer {
	w := &writer{
		out:      out,
		renderer: lipgloss.NewRenderer(out),
		title:    "Blackjack simulation",
	}
	for _, opt := range opts {
		opt(w)
	}

	w.header = w.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	w.label = w.renderer.NewStyle().Foreground(lipgloss.Color("12"))
	w.value = w.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	w.win = w.renderer.NewStyle().Foreground(lipgloss.Color("10"))
	w.loss = w.renderer.NewStyle().Foreground(lipgloss.Color("9"))
	return w
}

// Write renders the summary of result to out
func Write(out io.Writer, result *simulator.Result, opts ...Option) error {
	if result == nil || result.Stats == nil {
		return fmt.Errorf("no simulation result to report")
	}
	w := newWriter(out, opts)
	stats := result.Stats

	w.printf("%s\n", w.header.Render(fmt.Sprintf("=== %s ===", w.title)))
	w.printf("%s %s\n", w.label.Render("Run:"), result.RunID)
	w.printf("%s %d rounds, %d worker(s) in %v\n",
		w.label.Render("Played:"), stats.Rounds, result.Workers, result.Elapsed.Truncate(time.Millisecond))

	w.printf("\n%s hands overall, %s hands per game on average\n",
		w.value.Render(fmt.Sprintf("%d", stats.Hands)),
		w.value.Render(fmt.Sprintf("%0.2f", stats.HandsPerRound())))
	w.printf("%s total bet\n", w.value.Render(fmt.Sprintf("%0.2f", stats.TotalBet)))
	w.printf("Overall winnings: %s (edge = %s %%)\n",
		w.money(stats.TotalWon, "%0.2f"),
		w.money(stats.Edge(), "%0.3f"))

	low, high := stats.ConfidenceInterval95()
	w.printf("\n%s\n", w.header.Render("=== PER ROUND ==="))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Mean", fmt.Sprintf("%.2f", stats.Mean())},
		{"Median", fmt.Sprintf("%.2f", stats.Median())},
		{"Std Dev", fmt.Sprintf("%.2f", stats.StdDev())},
		{"Std Error", fmt.Sprintf("%.2f", stats.StdError())},
		{"95% CI", fmt.Sprintf("[%.2f, %.2f]", low, high)},
		{"Percentiles", fmt.Sprintf("P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f",
			stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))},
		{"Best round", fmt.Sprintf("%.2f", stats.BestRound)},
		{"Worst round", fmt.Sprintf("%.2f", stats.WorstRound)},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", w.label.Render(row[0]), row[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(stats.Outcomes) > 0 {
		w.printf("\n%s\n", w.header.Render("=== OUTCOMES ==="))
		tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, outcome := range game.Outcomes {
			n := stats.Outcomes[string(outcome)]
			share := 100 * float64(n) / float64(max(stats.Hands, 1))
			fmt.Fprintf(tw, "%s\t%d\t%.2f%%\n", w.label.Render(string(outcome)), n, share)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) printf(format string, args ...any) {
	fmt.Fprintf(w.out, format, args...)
}

func (w *writer) money(v float64, format string) string {
	s := fmt.Sprintf(format, v)
	if v < 0 {
		return w.loss.Render(s)
	}
	return w.win.Render(s)
}
