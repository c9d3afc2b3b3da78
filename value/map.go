// Copyright (C) 2024 Ellis Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package value

// Map is a typesafe wrap around a Value known to be MapType (spec
// §4.1.2), grounded on original_source core/map_node.hpp. Keys are
// held in a slice of fields rather than a Go map so that iteration
// order is stable (though unspecified, per spec) across COW copies.
type Map struct {
	v     Value
	owner *Value
}

// AddPolicy governs how Map.Add resolves a key that already exists
// (spec §4.1.2).
type AddPolicy int

const (
	// InsertOnly fails (invokes onFail) if the key already exists.
	InsertOnly AddPolicy = iota
	// ReplaceOnly fails (invokes onFail) if the key does not exist.
	ReplaceOnly
	// InsertOrReplace always succeeds.
	InsertOrReplace
)

// OnFail is called with the rejected key and value when an Add/Merge
// violates its policy. A nil OnFail means the violation is silently
// skipped (spec §4.1.2).
type OnFail func(key string, rejected Value)

// Length returns the number of entries in m.
func (m Map) Length() int { return len(m.v.pay.flds) }

// IsEmpty reports whether m has no entries.
func (m Map) IsEmpty() bool { return m.Length() == 0 }

// HasKey reports whether key is present in m.
func (m Map) HasKey(key string) bool {
	_, ok := m.find(key)
	return ok
}

func (m Map) find(key string) (int, bool) {
	for i := range m.v.pay.flds {
		if m.v.pay.flds[i].key == key {
			return i, true
		}
	}
	return -1, false
}

// Get returns the Value at key, read-only: a missing key is reported
// via ok=false and does NOT mutate m (unlike Index below).
func (m Map) Get(key string) (Value, bool) {
	i, ok := m.find(key)
	if !ok {
		return Value{}, false
	}
	return m.v.pay.flds[i].val, true
}

// Keys returns the keys of m; order matches iteration order (stable,
// but unspecified per spec §4.1.2).
func (m Map) Keys() []string {
	out := make([]string, len(m.v.pay.flds))
	for i, f := range m.v.pay.flds {
		out[i] = f.key
	}
	return out
}

// Each invokes fn for every key/value entry in m.
func (m Map) Each(fn func(key string, v Value)) {
	for _, f := range m.v.pay.flds {
		fn(f.key, f.val)
	}
}

// Filter returns a new Map of the entries of m satisfying pred; the
// result's values share payloads with m (spec §4.1.2).
func (m Map) Filter(pred func(key string, v Value) bool) Map {
	out := NewMap()
	mm, _ := out.AsMutableMap()
	for _, f := range m.v.pay.flds {
		if pred(f.key, f.val) {
			mm.Set(f.key, f.val)
		}
	}
	return Map{v: out}
}

func (m Map) equal(x Map) bool {
	if m.Length() != x.Length() {
		return false
	}
	for _, f := range m.v.pay.flds {
		xv, ok := x.Get(f.key)
		if !ok || !f.val.Equal(xv) {
			return false
		}
	}
	return true
}

func (m *Map) sync() {
	if m.owner != nil {
		*m.owner = m.v
	}
}

// Add inserts or replaces the entry at key according to policy,
// invoking onFail (if non-nil) on a policy violation instead of
// mutating m. v is retained: a store into m always takes its own
// reference to v's payload (see Array.Append).
func (m *Map) Add(key string, v Value, policy AddPolicy, onFail OnFail) {
	i, exists := m.find(key)
	switch policy {
	case InsertOnly:
		if exists {
			if onFail != nil {
				onFail(key, v)
			}
			return
		}
	case ReplaceOnly:
		if !exists {
			if onFail != nil {
				onFail(key, v)
			}
			return
		}
	case InsertOrReplace:
		// always proceeds
	}
	v = v.retainedCopy()
	if exists {
		m.v.pay.flds[i].val = v
	} else {
		m.v.pay.flds = append(m.v.pay.flds, field{key: key, val: v})
	}
	m.sync()
}

// Insert is shorthand for Add(key, v, InsertOnly, onFail).
func (m *Map) Insert(key string, v Value, onFail OnFail) { m.Add(key, v, InsertOnly, onFail) }

// Replace is shorthand for Add(key, v, ReplaceOnly, onFail).
func (m *Map) Replace(key string, v Value, onFail OnFail) { m.Add(key, v, ReplaceOnly, onFail) }

// Set is shorthand for Add(key, v, InsertOrReplace, nil).
func (m *Map) Set(key string, v Value) { m.Add(key, v, InsertOrReplace, nil) }

// Merge applies Add to every entry of other under policy.
func (m *Map) Merge(other Map, policy AddPolicy, onFail OnFail) {
	other.Each(func(key string, v Value) {
		m.Add(key, v, policy, onFail)
	})
}

// Erase removes key from m; if key is not present, this is a no-op.
func (m *Map) Erase(key string) {
	i, ok := m.find(key)
	if !ok {
		return
	}
	m.v.pay.flds = append(m.v.pay.flds[:i], m.v.pay.flds[i+1:]...)
	m.sync()
}

// Clear removes all entries from m.
func (m *Map) Clear() {
	m.v.pay.flds = m.v.pay.flds[:0]
	m.sync()
}

// Index returns a mutable pointer to the Value at key. If key is
// absent, a Nil Value is inserted at that key first -- this is a
// design decision carried forward from the original implementation
// (spec §4.1.2): "read-only indexing by a missing key inserts a Nil
// at that key and returns a reference to it". Install's path
// traversal relies on this behavior; do not change it to return an
// error instead.
func (m *Map) Index(key string) *Value {
	i, ok := m.find(key)
	if !ok {
		m.v.pay.flds = append(m.v.pay.flds, field{key: key, val: Nil()})
		m.sync()
		i = len(m.v.pay.flds) - 1
	}
	return &m.v.pay.flds[i].val
}
