package discovery

// orderedMap keeps keys in first-insertion order. Re-setting an existing key
// replaces its value without moving it.
type orderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func newOrderedMap[V any]() orderedMap[V] {
	return orderedMap[V]{values: make(map[string]V)}
}

func (m *orderedMap[V]) set(key string, v V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *orderedMap[V]) get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *orderedMap[V]) ordered() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *orderedMap[V]) size() int {
	return len(m.keys)
}
