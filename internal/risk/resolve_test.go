package risk

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"riskaction/internal/artifact"
)

func riskTracker(labels ...string) artifact.Tracker {
	values := make([]artifact.TrackerFieldValue, len(labels))
	for i, l := range labels {
		values[i] = artifact.TrackerFieldValue{ID: int64(100 + i), Label: l}
	}
	return artifact.Tracker{ID: 1, Fields: []artifact.TrackerField{
		{FieldID: 5, Label: "Summary"},
		{FieldID: 42, Label: "Risk", Values: values},
	}}
}

func TestResolve_MatchesProductLabel(t *testing.T) {
	labels := make([]string, 0, 25)
	for i := 1; i <= 25; i++ {
		labels = append(labels, strconv.Itoa(i))
	}
	tr := riskTracker(labels...)

	for s := int64(1); s <= 5; s++ {
		for p := int64(1); p <= 5; p++ {
			got, err := Resolve(tr, "Risk", s, p)
			if err != nil {
				t.Fatalf("Resolve(%d, %d): %v", s, p, err)
			}
			want := artifact.FieldValueBinding{FieldID: 42, BindValueIDs: []int64{100 + s*p - 1}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Resolve(%d, %d) mismatch (-want +got):\n%s", s, p, diff)
			}
		}
	}
}

func TestResolve_FirstMatchingOptionWins(t *testing.T) {
	got, err := Resolve(riskTracker("6", "6"), "Risk", 2, 3)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.BindValueIDs[0] != 100 {
		t.Errorf("want first option 100, got %v", got.BindValueIDs)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		tracker artifact.Tracker
		label   string
		s, p    int64
		wantErr error
		wantMsg string
	}{
		{
			name:    "field missing",
			tracker: riskTracker("6"),
			label:   "Residual risk level",
			s:       2, p: 3,
			wantErr: ErrFieldNotFound,
			wantMsg: "cannot find field Residual risk level",
		},
		{
			name:    "nil options",
			tracker: artifact.Tracker{Fields: []artifact.TrackerField{{FieldID: 42, Label: "Risk"}}},
			label:   "Risk",
			s:       2, p: 3,
			wantErr: ErrNoConfiguredOptions,
		},
		{
			name:    "empty options",
			tracker: riskTracker(),
			label:   "Risk",
			s:       2, p: 3,
			wantErr: ErrNoConfiguredOptions,
		},
		{
			name:    "zero padded label",
			tracker: riskTracker("06"),
			label:   "Risk",
			s:       2, p: 3,
			wantErr: ErrNoMatchingOption,
			wantMsg: "cannot find matching value 6 in field Risk",
		},
		{
			name:    "decimal label",
			tracker: riskTracker("6.0", "5", "7", "High"),
			label:   "Risk",
			s:       2, p: 3,
			wantErr: ErrNoMatchingOption,
		},
		{
			name:    "label case",
			tracker: riskTracker("6"),
			label:   "risk",
			s:       2, p: 3,
			wantErr: ErrFieldNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.tracker, tt.label, tt.s, tt.p)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestResolve_NegativeProduct(t *testing.T) {
	got, err := Resolve(riskTracker("6", "-6"), "Risk", -2, 3)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.BindValueIDs[0] != 101 {
		t.Errorf("want option 101, got %v", got.BindValueIDs)
	}
}

func TestResolve_LargeOrdinalsDoNotOverflow(t *testing.T) {
	const max32 = 2147483647
	want := strconv.FormatInt(int64(max32)*int64(max32), 10)
	got, err := Resolve(riskTracker(want), "Risk", max32, max32)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.BindValueIDs[0] != 100 {
		t.Errorf("got %v", got.BindValueIDs)
	}
}
