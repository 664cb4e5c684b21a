// Package risk computes risk levels from severity and probability select
// boxes and binds them to the configured risk level field.
package risk

import (
	"fmt"

	"riskaction/internal/artifact"
)

// Rule names the three fields of one severity x probability -> risk rule.
type Rule struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Severity    string `json:"severity" yaml:"severity" validate:"required"`
	Probability string `json:"probability" yaml:"probability" validate:"required"`
	Risk        string `json:"risk" yaml:"risk" validate:"required"`
}

// DefaultRules returns the primary risk rule followed by the residual risk rule.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "risk", Severity: "Severity", Probability: "Probability", Risk: "Risk"},
		{Name: "residual-risk", Severity: "Residual severity", Probability: "Residual probability", Risk: "Residual risk level"},
	}
}

// Outcome is how a rule ended for one artifact.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Input is what a rule found for one of its select boxes.
type Input struct {
	Label    string
	Found    bool
	Selected bool
	Ordinal  int64
}

// Trace records one rule evaluation step by step.
type Trace struct {
	Rule        Rule
	Severity    Input
	Probability Input
	Product     int64 // valid when both inputs are Selected
	Binding     *artifact.FieldValueBinding
	Outcome     Outcome
	Reason      string // set when skipped
	Err         error  // set when failed, a *RuleError
}

// Trace evaluates r against a and records every decision.
//
// Both select boxes must be present before either is read; a rule whose
// inputs are absent or unselected does not apply and is skipped.
func (r Rule) Trace(a *artifact.Artifact) Trace {
	tr := Trace{
		Rule:        r,
		Severity:    Input{Label: r.Severity},
		Probability: Input{Label: r.Probability},
	}

	sev, ok := a.Current.FindSelectBox(r.Severity)
	if !ok {
		return tr.skip("no %s field", r.Severity)
	}
	tr.Severity.Found = true
	prob, ok := a.Current.FindSelectBox(r.Probability)
	if !ok {
		return tr.skip("no %s field", r.Probability)
	}
	tr.Probability.Found = true

	if err := tr.Severity.read(sev); err != nil {
		return tr.fail(err)
	}
	if err := tr.Probability.read(prob); err != nil {
		return tr.fail(err)
	}
	if !tr.Severity.Selected {
		return tr.skip("nothing selected in %s", r.Severity)
	}
	if !tr.Probability.Selected {
		return tr.skip("nothing selected in %s", r.Probability)
	}

	tr.Product = tr.Severity.Ordinal * tr.Probability.Ordinal
	b, err := Resolve(a.Tracker, r.Risk, tr.Severity.Ordinal, tr.Probability.Ordinal)
	if err != nil {
		return tr.fail(err)
	}
	tr.Binding = &b
	tr.Outcome = OutcomeApplied
	return tr
}

// Apply returns the binding of r for a, or nil when r does not apply.
func (r Rule) Apply(a *artifact.Artifact) (*artifact.FieldValueBinding, error) {
	tr := r.Trace(a)
	return tr.Binding, tr.Err
}

func (in *Input) read(sb artifact.SelectBox) error {
	n, ok, err := Ordinal(sb)
	if err != nil {
		return err
	}
	in.Selected = ok
	in.Ordinal = n
	return nil
}

func (tr Trace) skip(format string, args ...any) Trace {
	tr.Outcome = OutcomeSkipped
	tr.Reason = fmt.Sprintf(format, args...)
	return tr
}

func (tr Trace) fail(err error) Trace {
	tr.Outcome = OutcomeFailed
	tr.Err = &RuleError{Rule: tr.Rule.Name, Err: err}
	return tr
}

// Explain traces every rule without stopping at failures.
func Explain(a *artifact.Artifact, rules []Rule) []Trace {
	traces := make([]Trace, 0, len(rules))
	for _, r := range rules {
		traces = append(traces, r.Trace(a))
	}
	return traces
}
