// Package report renders layoutopt results as terminal tables, grounded on
// the teacher's internal/tui package: the same go-pretty/v6/table style
// (rounded box, no side padding) and column-transformer idioms, retargeted
// at this engine's LayoutStats, TrigramStats and ranked layouts instead of
// the teacher's corpus-metric analyser.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rbscholtus/klayopt/internal/kblayout"
	"github.com/rbscholtus/klayopt/internal/layoutopt"
)

// roundedTable returns a table.Writer configured the way the reference CLI
// configures every table it prints: rounded borders, no side padding,
// left-aligned title.
func roundedTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Box.PaddingLeft = ""
	tw.Style().Box.PaddingRight = ""
	tw.Style().Title.Align = text.AlignLeft
	return tw
}

// percent formats a 0..1 fraction as a percentage with two decimals.
func percent(val any) string {
	if f, ok := val.(float64); ok {
		return fmt.Sprintf("%.2f%%", 100*f)
	}
	return fmt.Sprintf("%v", val)
}

// RenderView writes a single layout's board plus its LayoutStats and
// TrigramStats as one table to w.
func RenderView(w io.Writer, l *kblayout.Layout, stats layoutopt.LayoutStats) {
	tw := roundedTable()
	tw.SetTitle(l.Name)
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Value", Align: text.AlignRight},
	})

	tw.AppendRow(table.Row{"Board", l.String()})
	tw.AppendRow(table.Row{"Score", fmt.Sprintf("%+.3f", l.Score)})
	tw.AppendRow(table.Row{"Sfb", percent(stats.Sfb)})
	tw.AppendRow(table.Row{"Dsfb", percent(stats.Dsfb)})
	tw.AppendRow(table.Row{"Dsfb2", percent(stats.Dsfb2)})
	tw.AppendRow(table.Row{"Dsfb3", percent(stats.Dsfb3)})
	tw.AppendRow(table.Row{"Scissors", percent(stats.Scissors)})
	tw.AppendRow(table.Row{"Fspeed", fmt.Sprintf("%.3f", stats.Fspeed*10)})

	ts := stats.TrigramStats
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"Inrolls", percent(ts.Inrolls)})
	tw.AppendRow(table.Row{"Outrolls", percent(ts.Outrolls)})
	tw.AppendRow(table.Row{"Onehands", percent(ts.Onehands)})
	tw.AppendRow(table.Row{"Alternates", percent(ts.Alternates)})
	tw.AppendRow(table.Row{"Alternates (sfs)", percent(ts.AlternatesSfs)})
	tw.AppendRow(table.Row{"Redirects", percent(ts.Redirects)})
	tw.AppendRow(table.Row{"Bad Redirects", percent(ts.BadRedirects)})
	tw.AppendRow(table.Row{"Sfts", percent(ts.Sfts)})
	tw.AppendRow(table.Row{"Other", percent(ts.Other)})

	fmt.Fprintln(w, tw.Render())
}

// RenderFingerSpeed writes a layout's per-finger speed breakdown to w, one
// column per finger in the LP..RP order used throughout the engine.
func RenderFingerSpeed(w io.Writer, l *kblayout.Layout, stats layoutopt.LayoutStats) {
	tw := roundedTable()
	tw.SetTitle(fmt.Sprintf("Finger Speed - %s", l.Name))
	tw.AppendHeader(table.Row{"LP", "LR", "LM", "LI", "RI", "RM", "RR", "RP"})
	row := make(table.Row, 8)
	for i, v := range stats.FingerSpeed {
		row[i] = fmt.Sprintf("%.3f", v*10)
	}
	tw.AppendRow(row)
	fmt.Fprintln(w, tw.Render())
}

// RankedLayout pairs a layout with the stats it was ranked on.
type RankedLayout struct {
	Layout *kblayout.Layout
	Stats  layoutopt.LayoutStats
}

// RenderRanking writes a ranking table over layouts in the order given; it
// does not sort them (the CLI callers pass them sorted ascending by score).
func RenderRanking(w io.Writer, layouts []RankedLayout, title string) {
	tw := roundedTable()
	if title != "" {
		tw.SetTitle(title)
	} else {
		tw.SetTitle("Layout Ranking")
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Score", Align: text.AlignRight},
		{Name: "Sfb", Align: text.AlignRight},
		{Name: "Dsfb", Align: text.AlignRight},
		{Name: "Fspeed", Align: text.AlignRight},
		{Name: "Scissors", Align: text.AlignRight},
	})
	tw.AppendHeader(table.Row{"#", "Name", "Score", "Sfb", "Dsfb", "Fspeed", "Scissors"})

	for i, rl := range layouts {
		tw.AppendRow(table.Row{
			i + 1,
			rl.Layout.Name,
			fmt.Sprintf("%+.3f", rl.Layout.Score),
			percent(rl.Stats.Sfb),
			percent(rl.Stats.Dsfb),
			fmt.Sprintf("%.3f", rl.Stats.Fspeed*10),
			percent(rl.Stats.Scissors),
		})
	}

	fmt.Fprintln(w, tw.Render())
}
