package usgpp

// Mapped readers re-express a state section under the US-National schema so
// account logic can be written once against a single field layout. Fields a
// state does not define stay absent; list fields are realigned positionally.

// US-National sensitive data category positions realigned from each state's
// native ordering; 0 means the state defines no equivalent category.
var (
	caSensitiveDataIdx = []int{4, 4, 8, 9, 0, 6, 7, 3, 1, 2, 4, 5}
	vaSensitiveDataIdx = []int{1, 2, 3, 4, 5, 6, 7, 8, 0, 0, 0, 0}
	coSensitiveDataIdx = []int{1, 2, 3, 4, 5, 6, 7, 0, 0, 0, 0, 0}
	utSensitiveDataIdx = []int{1, 2, 3, 4, 5, 6, 7, 8, 0, 0, 0, 0}
	ctSensitiveDataIdx = []int{1, 2, 3, 4, 5, 6, 7, 8, 0, 0, 0, 0}
)

func mapped(raw Reader, sensitiveDataIdx []int) Reader {
	if raw.fields == nil {
		return raw
	}

	fields := make(map[Field]func() any, len(raw.fields))
	for field, accessor := range raw.fields {
		fields[field] = accessor
	}

	fields[FieldSensitiveDataProcessing] = intListField(
		realignSensitiveData(raw.Ints(FieldSensitiveDataProcessing), sensitiveDataIdx))
	fields[FieldKnownChildSensitiveDataConsents] = intListField(
		normalizeChildConsents(childConsents(raw)))

	return Reader{fields: fields}
}

func realignSensitiveData(values []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, pos := range idx {
		if pos >= 1 && pos <= len(values) {
			out[i] = values[pos-1]
		}
	}
	return out
}

func childConsents(raw Reader) []int {
	switch v := raw.Value(FieldKnownChildSensitiveDataConsents).(type) {
	case []int:
		return v
	case int:
		return []int{v}
	}
	return nil
}

// normalizeChildConsents produces the national two entry layout: consents for
// teens first, for children second. A state's single aggregate signal applies
// to both; the three range split collapses its teen entries.
func normalizeChildConsents(values []int) []int {
	switch len(values) {
	case 0:
		return []int{0, 0}
	case 1:
		if values[0] == 0 {
			return []int{0, 0}
		}
		return []int{1, 1}
	case 2:
		return []int{values[0], values[1]}
	default:
		teen := values[1]
		if values[2] > teen {
			teen = values[2]
		}
		return []int{teen, values[0]}
	}
}
