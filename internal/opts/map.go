package opts

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Map is a string-keyed mapping that remembers the order its keys were
// written in. Nested mappings decode to *Map, sequences to []any and
// scalars to their plain Go values (string, int, float64, bool, nil).
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: map[string]any{}}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Get returns the value stored under key. The boolean distinguishes an
// absent key from one that is present with a null value.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present, even if its value is null.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. A new key is appended to the end of the
// order; an existing key keeps its position.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = map[string]any{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key, if present.
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Each calls fn for every key/value pair in order, stopping at the first
// error.
func (m *Map) Each(fn func(key string, value any) error) error {
	if m == nil {
		return nil
	}
	for _, k := range m.keys {
		if err := fn(k, m.values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Lookup follows a dotted path ("network.public") through nested maps.
// It reports false if any segment is missing or is not a mapping.
func (m *Map) Lookup(path string) (any, bool) {
	cur := m
	parts := strings.Split(path, ".")
	for i, part := range parts {
		v, ok := cur.Get(part)
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(*Map)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// maxAliasNodes bounds how many nodes may be decoded through aliases in
// one document.
const maxAliasNodes = 10000

// UnmarshalYAML implements yaml.Unmarshaler, keeping key order.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	d := &decoder{expanding: map[*yaml.Node]bool{}}
	v, err := d.decode(node)
	if err != nil {
		return err
	}
	decoded, ok := v.(*Map)
	if !ok {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	*m = *decoded
	return nil
}

// decoder expands aliases within a node budget and rejects anchors that
// contain themselves.
type decoder struct {
	aliasNodes int
	expanding  map[*yaml.Node]bool
}

func (d *decoder) decode(node *yaml.Node) (any, error) {
	if len(d.expanding) > 0 {
		d.aliasNodes++
		if d.aliasNodes > maxAliasNodes {
			return nil, fmt.Errorf("line %d: aliases expand to more than %d nodes", node.Line, maxAliasNodes)
		}
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return NewMap(), nil
		}
		return d.decode(node.Content[0])
	case yaml.AliasNode:
		if d.expanding[node.Alias] {
			return nil, fmt.Errorf("line %d: anchor %q contains itself", node.Line, node.Value)
		}
		d.expanding[node.Alias] = true
		defer delete(d.expanding, node.Alias)
		return d.decode(node.Alias)
	case yaml.MappingNode:
		return d.decodeMapping(node)
	case yaml.SequenceNode:
		seq := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", node.Line)
	}
}

func (d *decoder) decodeMapping(node *yaml.Node) (*Map, error) {
	m := NewMap()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		// "<<: *anchor" merges the referenced mapping(s) without
		// overriding keys already written explicitly.
		if key.ShortTag() == "!!merge" {
			if err := d.mergeInto(m, value); err != nil {
				return nil, err
			}
			continue
		}

		v, err := d.decode(value)
		if err != nil {
			return nil, err
		}
		m.Set(key.Value, v)
	}
	return m, nil
}

func (d *decoder) mergeInto(m *Map, node *yaml.Node) error {
	sources := []*yaml.Node{node}
	if node.Kind == yaml.SequenceNode {
		sources = node.Content
	}
	for _, src := range sources {
		v, err := d.decode(src)
		if err != nil {
			return err
		}
		merged, ok := v.(*Map)
		if !ok {
			return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
		}
		_ = merged.Each(func(k string, v any) error {
			if !m.Has(k) {
				m.Set(k, v)
			}
			return nil
		})
	}
	return nil
}
