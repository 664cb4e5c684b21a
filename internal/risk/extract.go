package risk

import (
	"fmt"
	"strconv"

	"riskaction/internal/artifact"
)

// Ordinal reads the first selected option of sb as a base-10 integer.
// ok is false when nothing is selected. Later selections are ignored.
//
// Labels are limited to the 32-bit range so that the product of two
// ordinals always fits in an int64.
func Ordinal(sb artifact.SelectBox) (n int64, ok bool, err error) {
	if len(sb.Values) == 0 {
		return 0, false, nil
	}
	switch v := sb.Values[0].(type) {
	case artifact.StaticValue:
		n, err := strconv.ParseInt(v.Label, 10, 32)
		if err != nil {
			return 0, false, &ExtractError{Field: sb.Label, Label: v.Label, Err: ErrNotAnInteger}
		}
		return n, true, nil
	case artifact.UserValue:
		return 0, false, &ExtractError{Field: sb.Label, Err: ErrNotAStaticOption}
	default:
		return 0, false, &ExtractError{Field: sb.Label, Err: fmt.Errorf("%w: %T", ErrNotAStaticOption, v)}
	}
}
