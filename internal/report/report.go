// Package report renders rule traces as tables.
package report

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"riskaction/internal/risk"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// Traces renders one row per rule trace.
func Traces(traces []risk.Trace, m Mode) string {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	w.AppendHeader(table.Row{"Rule", "Severity", "Probability", "Product", "Target", "Outcome"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})

	for _, tr := range traces {
		product := "-"
		if tr.Severity.Selected && tr.Probability.Selected {
			product = strconv.FormatInt(tr.Product, 10)
		}
		w.AppendRow(table.Row{
			tr.Rule.Name,
			input(tr.Severity),
			input(tr.Probability),
			product,
			tr.Rule.Risk,
			outcome(tr),
		})
	}

	if m == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

func input(in risk.Input) string {
	switch {
	case !in.Found:
		return in.Label + " (absent)"
	case !in.Selected:
		return in.Label + " (none)"
	default:
		return fmt.Sprintf("%s = %d", in.Label, in.Ordinal)
	}
}

func outcome(tr risk.Trace) string {
	switch tr.Outcome {
	case risk.OutcomeApplied:
		return fmt.Sprintf("bound field %d -> option %v", tr.Binding.FieldID, tr.Binding.BindValueIDs)
	case risk.OutcomeSkipped:
		return "skipped: " + tr.Reason
	case risk.OutcomeFailed:
		return "error: " + tr.Err.Error()
	default:
		return string(tr.Outcome)
	}
}
