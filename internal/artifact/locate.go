package artifact

// FindSelectBox returns the first select box value whose label equals label
// exactly. Other field kinds with the same label are skipped.
func (c Changeset) FindSelectBox(label string) (SelectBox, bool) {
	for _, v := range c.Values {
		if sb, ok := v.(SelectBox); ok && sb.Label == label {
			return sb, true
		}
	}
	return SelectBox{}, false
}

// FindField returns the first field definition whose label equals label exactly.
func (t Tracker) FindField(label string) (TrackerField, bool) {
	for _, f := range t.Fields {
		if f.Label == label {
			return f, true
		}
	}
	return TrackerField{}, false
}
