package xvalue

// Map is an XPath 3.1 map item. Keys are atomized and normalized to a
// string form for lookup (atomized equality, per spec.md §3), while the
// order slice preserves insertion order for enumeration (wildcard lookup,
// map:keys) as spec.md's Open Questions resolution mandates.
type Map struct {
	entries map[string]mapEntry
	order   []string
}

type mapEntry struct {
	key   Value
	value Value
}

func (*Map) isValue() {}

// NewMap creates an empty map.
func NewMap() *Map {
	return &Map{entries: make(map[string]mapEntry)}
}

// Put inserts or overwrites the entry for key (duplicate keys keep the last
// write, per spec.md §4.5's map constructor semantics). normalizedKey is the
// atomized string form used for lookup identity.
func (m *Map) Put(normalizedKey string, key, value Value) {
	if _, exists := m.entries[normalizedKey]; !exists {
		m.order = append(m.order, normalizedKey)
	}
	m.entries[normalizedKey] = mapEntry{key: key, value: value}
}

// Get returns the value bound to normalizedKey, or (nil, false).
func (m *Map) Get(normalizedKey string) (Value, bool) {
	e, ok := m.entries[normalizedKey]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Remove deletes the entry for normalizedKey and returns a new Map (maps are
// treated as immutable values once constructed; map:remove builds a copy).
func (m *Map) Remove(normalizedKey string) *Map {
	out := NewMap()
	for _, k := range m.order {
		if k == normalizedKey {
			continue
		}
		e := m.entries[k]
		out.Put(k, e.key, e.value)
	}
	return out
}

// Size returns the number of entries.
func (m *Map) Size() int { return len(m.order) }

// Keys returns the original (unnormalized) key values in insertion order.
func (m *Map) Keys() []Value {
	out := make([]Value, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.entries[k].key)
	}
	return out
}

// Values returns the values in insertion order.
func (m *Map) Values() []Value {
	out := make([]Value, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.entries[k].value)
	}
	return out
}

// Merge combines m and other, with other's entries winning on key
// collision, returning a new Map.
func (m *Map) Merge(other *Map) *Map {
	out := NewMap()
	for _, k := range m.order {
		e := m.entries[k]
		out.Put(k, e.key, e.value)
	}
	for _, k := range other.order {
		e := other.entries[k]
		out.Put(k, e.key, e.value)
	}
	return out
}

// Array is an XPath 3.1 array item: ordered, 1-indexed, possibly nesting
// other arrays.
type Array struct {
	items []Value
}

func (*Array) isValue() {}

// NewArray wraps items (already in order) as an array.
func NewArray(items []Value) *Array {
	cp := make([]Value, len(items))
	copy(cp, items)
	return &Array{items: cp}
}

// Len returns the array's length.
func (a *Array) Len() int { return len(a.items) }

// Get returns the 1-indexed item at idx, or (nil, false) if out of bounds.
func (a *Array) Get(idx int) (Value, bool) {
	if idx < 1 || idx > len(a.items) {
		return nil, false
	}
	return a.items[idx-1], true
}

// Items returns the array's items (1:1 with 1-based positions).
func (a *Array) Items() []Value {
	out := make([]Value, len(a.items))
	copy(out, a.items)
	return out
}

// Put returns a new Array with the item at idx (1-based) replaced.
func (a *Array) Put(idx int, v Value) (*Array, bool) {
	if idx < 1 || idx > len(a.items) {
		return nil, false
	}
	out := NewArray(a.items)
	out.items[idx-1] = v
	return out, true
}

// Append returns a new Array with v appended as a single new member.
func (a *Array) Append(v Value) *Array {
	out := make([]Value, len(a.items)+1)
	copy(out, a.items)
	out[len(a.items)] = v
	return &Array{items: out}
}

// Flatten deep-flattens nested arrays into a single Sequence of their
// members' items, per the `?*` wildcard lookup semantics in spec.md §4.5.
func (a *Array) Flatten() Sequence {
	var out Sequence
	for _, item := range a.items {
		if nested, ok := item.(*Array); ok {
			out = append(out, nested.Flatten()...)
		} else {
			out = append(out, item)
		}
	}
	return out
}
