// Package postaction runs the risk rules as a tracker post action: one
// artifact document in, one response document out.
package postaction

import (
	"io"
	"log/slog"

	"riskaction/internal/artifact"
	"riskaction/internal/logging"
	"riskaction/internal/risk"
)

// Pipeline evaluates a fixed rule list against artifacts.
type Pipeline struct {
	Rules []risk.Rule
	log   *slog.Logger
}

// New returns a pipeline for rules with a run-scoped logger.
func New(rules []risk.Rule) *Pipeline {
	log, _ := logging.ForRun("postaction")
	return &Pipeline{Rules: rules, log: log}
}

// Evaluate applies every rule in order and stops at the first failure.
func (p *Pipeline) Evaluate(a *artifact.Artifact) ([]artifact.FieldValueBinding, error) {
	bindings := make([]artifact.FieldValueBinding, 0, len(p.Rules))
	for _, r := range p.Rules {
		tr := r.Trace(a)
		p.logTrace(a, tr)
		if tr.Err != nil {
			return nil, tr.Err
		}
		if tr.Binding != nil {
			bindings = append(bindings, *tr.Binding)
		}
	}
	return bindings, nil
}

// Run decodes one artifact from r, evaluates it and writes the response to w.
// Nothing is written to w when any step fails.
func (p *Pipeline) Run(r io.Reader, w io.Writer) error {
	a, err := artifact.Decode(r)
	if err != nil {
		p.log.Debug("decode failed", "error", err)
		return err
	}
	p.log.Debug("artifact decoded",
		"artifact_id", a.ID,
		"changeset_id", a.Current.ID,
		"tracker_id", a.Tracker.ID,
		"values", len(a.Current.Values),
		"fields", len(a.Tracker.Fields))

	bindings, err := p.Evaluate(a)
	if err != nil {
		return err
	}
	return Encode(w, bindings)
}

func (p *Pipeline) logTrace(a *artifact.Artifact, tr risk.Trace) {
	attrs := []any{
		"artifact_id", a.ID,
		"rule", tr.Rule.Name,
		"outcome", tr.Outcome,
	}
	switch tr.Outcome {
	case risk.OutcomeApplied:
		attrs = append(attrs,
			"severity", tr.Severity.Ordinal,
			"probability", tr.Probability.Ordinal,
			"product", tr.Product,
			"field_id", tr.Binding.FieldID,
			"bind_value_ids", tr.Binding.BindValueIDs)
	case risk.OutcomeSkipped:
		attrs = append(attrs, "reason", tr.Reason)
	case risk.OutcomeFailed:
		attrs = append(attrs, "error", tr.Err)
	}
	p.log.Debug("rule evaluated", attrs...)
}
