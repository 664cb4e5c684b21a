package risk

import (
	"strconv"

	"riskaction/internal/artifact"
)

// Resolve binds severity*probability to the option of the tracker field
// labelled riskLabel whose label is the product's decimal text. The match
// is textual: "06" or "6.0" never match 6.
func Resolve(t artifact.Tracker, riskLabel string, severity, probability int64) (artifact.FieldValueBinding, error) {
	field, ok := t.FindField(riskLabel)
	if !ok {
		return artifact.FieldValueBinding{}, &ResolveError{Field: riskLabel, Err: ErrFieldNotFound}
	}
	if len(field.Values) == 0 {
		return artifact.FieldValueBinding{}, &ResolveError{Field: riskLabel, Err: ErrNoConfiguredOptions}
	}

	product := severity * probability
	want := strconv.FormatInt(product, 10)
	for _, opt := range field.Values {
		if opt.Label == want {
			return artifact.FieldValueBinding{
				FieldID:      field.FieldID,
				BindValueIDs: []int64{opt.ID},
			}, nil
		}
	}
	return artifact.FieldValueBinding{}, &ResolveError{Field: riskLabel, Product: product, Err: ErrNoMatchingOption}
}
