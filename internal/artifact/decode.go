package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	ErrMissingKey     = errors.New("missing required key")
	ErrUnknownKind    = errors.New("unknown field value type")
	ErrListValueShape = errors.New("unrecognized list value")
)

// DecodeError reports why an input document is not a valid artifact.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode artifact: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode consumes r to EOF and parses exactly one artifact document.
func Decode(r io.Reader) (*Artifact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("read input: %w", err)}
	}
	return Parse(data)
}

// Parse parses one artifact document. Trailing data after the document,
// unknown field value tags and missing required keys are all errors.
func Parse(data []byte) (*Artifact, error) {
	a, err := parseArtifact(data)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return a, nil
}

type object map[string]json.RawMessage

func parseObject(data []byte, path string) (object, error) {
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%s: expected object, got null", path)
	}
	return obj, nil
}

// has reports whether key is present with a non-null value.
func (o object) has(key string) bool {
	raw, ok := o[key]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (o object) require(path string, keys ...string) error {
	for _, k := range keys {
		if !o.has(k) {
			return fmt.Errorf("%s: %w %q", path, ErrMissingKey, k)
		}
	}
	return nil
}

func (o object) decode(path, key string, v any) error {
	if err := json.Unmarshal(o[key], v); err != nil {
		return fmt.Errorf("%s.%s: %w", path, key, err)
	}
	return nil
}

// decodeOptional leaves v untouched when key is absent or null.
func (o object) decodeOptional(path, key string, v any) error {
	if !o.has(key) {
		return nil
	}
	return o.decode(path, key, v)
}

func (o object) rawList(path, key string) ([]json.RawMessage, error) {
	var list []json.RawMessage
	if err := o.decode(path, key, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func parseArtifact(data []byte) (*Artifact, error) {
	const path = "artifact"
	obj, err := parseObject(data, path)
	if err != nil {
		return nil, err
	}
	if err := obj.require(path, "id", "current", "tracker"); err != nil {
		return nil, err
	}
	a := &Artifact{}
	if err := obj.decode(path, "id", &a.ID); err != nil {
		return nil, err
	}
	if a.Current, err = parseChangeset(obj["current"]); err != nil {
		return nil, err
	}
	if a.Tracker, err = parseTracker(obj["tracker"]); err != nil {
		return nil, err
	}
	return a, nil
}

func parseChangeset(data []byte) (Changeset, error) {
	const path = "current"
	var cs Changeset
	obj, err := parseObject(data, path)
	if err != nil {
		return cs, err
	}
	if err := obj.require(path, "id", "values"); err != nil {
		return cs, err
	}
	if err := obj.decode(path, "id", &cs.ID); err != nil {
		return cs, err
	}
	raws, err := obj.rawList(path, "values")
	if err != nil {
		return cs, err
	}
	cs.Values = make([]FieldValue, 0, len(raws))
	for i, raw := range raws {
		fv, err := parseFieldValue(raw, fmt.Sprintf("%s.values[%d]", path, i))
		if err != nil {
			return cs, err
		}
		cs.Values = append(cs.Values, fv)
	}
	return cs, nil
}

func parseFieldValue(data []byte, path string) (FieldValue, error) {
	obj, err := parseObject(data, path)
	if err != nil {
		return nil, err
	}
	if err := obj.require(path, "type"); err != nil {
		return nil, err
	}
	var kind Kind
	if err := obj.decode(path, "type", &kind); err != nil {
		return nil, err
	}
	switch kind {
	case KindString, KindText, KindLink, KindSelectBox, KindArtifactID, KindRadioButton:
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnknownKind, string(kind))
	}
	if err := obj.require(path, "field_id"); err != nil {
		return nil, err
	}
	var id int64
	if err := obj.decode(path, "field_id", &id); err != nil {
		return nil, err
	}

	switch kind {
	case KindString:
		return StringField{ID: id}, nil
	case KindText:
		return TextField{ID: id}, nil
	case KindLink:
		return LinkField{ID: id}, nil
	case KindSelectBox:
		return parseSelectBox(obj, path, id)
	case KindArtifactID, KindRadioButton:
		if err := obj.require(path, "label"); err != nil {
			return nil, err
		}
		var label string
		if err := obj.decode(path, "label", &label); err != nil {
			return nil, err
		}
		if kind == KindArtifactID {
			return ArtifactIDField{ID: id, Label: label}, nil
		}
		return RadioButton{ID: id, Label: label}, nil
	}
	panic("unreachable: kind checked above")
}

func parseSelectBox(obj object, path string, id int64) (SelectBox, error) {
	sb := SelectBox{ID: id}
	if err := obj.require(path, "label", "values", "bind_value_ids"); err != nil {
		return sb, err
	}
	if err := obj.decode(path, "label", &sb.Label); err != nil {
		return sb, err
	}
	if err := obj.decode(path, "bind_value_ids", &sb.BindValueIDs); err != nil {
		return sb, err
	}
	raws, err := obj.rawList(path, "values")
	if err != nil {
		return sb, err
	}
	sb.Values = make([]ListValue, 0, len(raws))
	for i, raw := range raws {
		lv, err := parseListValue(raw, fmt.Sprintf("%s.values[%d]", path, i))
		if err != nil {
			return sb, err
		}
		sb.Values = append(sb.Values, lv)
	}
	return sb, nil
}

// parseListValue picks the shape by its keys: a label means a static option,
// a real_name or bare id means a user reference.
func parseListValue(data []byte, path string) (ListValue, error) {
	obj, err := parseObject(data, path)
	if err != nil {
		return nil, err
	}
	switch {
	case obj.has("label"):
		var v StaticValue
		if err := obj.require(path, "id"); err != nil {
			return nil, err
		}
		if err := obj.decode(path, "id", &v.ID); err != nil {
			return nil, err
		}
		if err := obj.decode(path, "label", &v.Label); err != nil {
			return nil, err
		}
		if err := obj.decodeOptional(path, "color", &v.Color); err != nil {
			return nil, err
		}
		if err := obj.decodeOptional(path, "tlp_color", &v.TLPColor); err != nil {
			return nil, err
		}
		return v, nil
	case obj.has("real_name"), obj.has("id"):
		var v UserValue
		if err := obj.decodeOptional(path, "id", &v.ID); err != nil {
			return nil, err
		}
		if err := obj.decodeOptional(path, "real_name", &v.RealName); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrListValueShape)
	}
}

func parseTracker(data []byte) (Tracker, error) {
	const path = "tracker"
	var t Tracker
	obj, err := parseObject(data, path)
	if err != nil {
		return t, err
	}
	if err := obj.require(path, "id", "fields"); err != nil {
		return t, err
	}
	if err := obj.decode(path, "id", &t.ID); err != nil {
		return t, err
	}
	raws, err := obj.rawList(path, "fields")
	if err != nil {
		return t, err
	}
	t.Fields = make([]TrackerField, 0, len(raws))
	for i, raw := range raws {
		f, err := parseTrackerField(raw, fmt.Sprintf("%s.fields[%d]", path, i))
		if err != nil {
			return t, err
		}
		t.Fields = append(t.Fields, f)
	}
	return t, nil
}

func parseTrackerField(data []byte, path string) (TrackerField, error) {
	var f TrackerField
	obj, err := parseObject(data, path)
	if err != nil {
		return f, err
	}
	if err := obj.require(path, "field_id", "label"); err != nil {
		return f, err
	}
	if err := obj.decode(path, "field_id", &f.FieldID); err != nil {
		return f, err
	}
	if err := obj.decode(path, "label", &f.Label); err != nil {
		return f, err
	}
	if !obj.has("values") {
		return f, nil
	}
	raws, err := obj.rawList(path, "values")
	if err != nil {
		return f, err
	}
	f.Values = make([]TrackerFieldValue, 0, len(raws))
	for i, raw := range raws {
		vpath := fmt.Sprintf("%s.values[%d]", path, i)
		vobj, err := parseObject(raw, vpath)
		if err != nil {
			return f, err
		}
		if err := vobj.require(vpath, "id", "label"); err != nil {
			return f, err
		}
		var v TrackerFieldValue
		if err := vobj.decode(vpath, "id", &v.ID); err != nil {
			return f, err
		}
		if err := vobj.decode(vpath, "label", &v.Label); err != nil {
			return f, err
		}
		f.Values = append(f.Values, v)
	}
	return f, nil
}
