package filtering

type digitsOnlyFilter struct{}

// NewDigitsOnly creates a filter that keeps fields whose value is a non-empty run of ASCII digits.
func NewDigitsOnly() Filter {
	return &digitsOnlyFilter{}
}

func (f *digitsOnlyFilter) Name() string { return "digits_only" }

func (f *digitsOnlyFilter) Apply(fields map[string]string) (map[string]string, Step) {
	kept := make(map[string]string, len(fields))
	for key, value := range fields {
		if isDigits(value) {
			kept[key] = value
		}
	}

	return kept, Step{Initial: len(fields), Dropped: len(fields) - len(kept), Left: len(kept)}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
