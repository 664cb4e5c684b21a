package postaction

import (
	"encoding/json"
	"fmt"
	"io"

	"riskaction/internal/artifact"
)

// Response is the document a post action writes back: the field bindings
// to apply to the artifact.
type Response struct {
	Values []artifact.FieldValueBinding `json:"values"`
}

// NewResponse wraps bindings; nil slices are rendered as empty arrays.
func NewResponse(bindings []artifact.FieldValueBinding) Response {
	values := make([]artifact.FieldValueBinding, 0, len(bindings))
	for _, b := range bindings {
		if b.BindValueIDs == nil {
			b.BindValueIDs = []int64{}
		}
		values = append(values, b)
	}
	return Response{Values: values}
}

// Encode writes bindings as a single-line response document.
func Encode(w io.Writer, bindings []artifact.FieldValueBinding) error {
	data, err := json.Marshal(NewResponse(bindings))
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
