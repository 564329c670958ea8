package configure

import (
	"fmt"

	"github.com/faize-ai/vagrant-helpers/internal/opts"
)

func invalid(path, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", path, ErrInvalidOption, fmt.Sprintf(format, args...))
}

// stringValue returns the string under key. present is false when the key
// is missing or null.
func stringValue(m *opts.Map, key, path string) (value string, present bool, err error) {
	v, ok := m.Get(key)
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, invalid(path, "expected a string, got %T", v)
	}
	return s, true, nil
}

// intValue applies def only when key is absent; an explicit null yields nil.
func intValue(m *opts.Map, key, path string, def int) (*int, error) {
	v, ok := m.Get(key)
	if !ok {
		return &def, nil
	}
	if v == nil {
		return nil, nil
	}
	n, ok := v.(int)
	if !ok {
		return nil, invalid(path, "expected an integer, got %T", v)
	}
	return &n, nil
}

func mappingValue(v any, path string) (*opts.Map, error) {
	if v == nil {
		return opts.NewMap(), nil
	}
	m, ok := v.(*opts.Map)
	if !ok {
		return nil, invalid(path, "expected a mapping, got %T", v)
	}
	return m, nil
}

// mappings returns the sequence of mappings at the dotted path. A missing
// or null sequence is empty.
func mappings(m *opts.Map, path string) ([]*opts.Map, error) {
	v, ok := m.Lookup(path)
	if !ok || v == nil {
		return nil, nil
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, invalid(path, "expected a sequence, got %T", v)
	}

	out := make([]*opts.Map, 0, len(seq))
	for i, item := range seq {
		entry, ok := item.(*opts.Map)
		if !ok {
			return nil, invalid(fmt.Sprintf("%s[%d]", path, i), "expected a mapping, got %T", item)
		}
		out = append(out, entry)
	}
	return out, nil
}
