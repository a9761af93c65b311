package filtering

import "strings"

type keyPrefixFilter struct {
	prefix string
}

// NewKeyPrefix creates a filter that keeps fields whose key starts with prefix.
func NewKeyPrefix(prefix string) Filter {
	return &keyPrefixFilter{prefix: prefix}
}

func (f *keyPrefixFilter) Name() string { return "key_prefix" }

func (f *keyPrefixFilter) Apply(fields map[string]string) (map[string]string, Step) {
	kept := make(map[string]string, len(fields))
	for key, value := range fields {
		if strings.HasPrefix(key, f.prefix) {
			kept[key] = value
		}
	}

	return kept, Step{Initial: len(fields), Dropped: len(fields) - len(kept), Left: len(kept)}
}
