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

import "fmt"

// Array is a typesafe wrap around a Value known to be ArrayType (spec
// §4.1.1). It contains the wrapped Value plus, for mutable handles
// only, a pointer to the owning Value, mirroring
// the original's thin node-shell-class design (original_source
// core/array_node.hpp) so read-only and mutable views can be cast
// between each other without copying the backing store.
type Array struct {
	v     Value
	owner *Value // non-nil only for mutable handles; nil for read-only
}

// IndexError is returned for an out-of-range array index (spec §7
// INVALID_ARGS).
type IndexError struct {
	Index, Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("ellis: array index %d out of range [0,%d)", e.Index, e.Length)
}

// Length returns the number of elements in a.
func (a Array) Length() int { return len(a.v.pay.arr) }

// IsEmpty reports whether a has no elements.
func (a Array) IsEmpty() bool { return a.Length() == 0 }

// At returns a's element at index i, bounds-checked.
func (a Array) At(i int) (Value, error) {
	if i < 0 || i >= len(a.v.pay.arr) {
		return Value{}, &IndexError{Index: i, Length: a.Length()}
	}
	return a.v.pay.arr[i], nil
}

// Each invokes fn for every element of a in order; fn may not mutate a.
func (a Array) Each(fn func(i int, v Value)) {
	for i, v := range a.v.pay.arr {
		fn(i, v)
	}
}

// Filter returns a new Array of the elements of a satisfying pred. The
// result's elements share payloads with a (retained handles); COW
// still applies if the caller subsequently mutates an element (spec
// §4.1.1, confirmed against original_source core/array_node.hpp
// filter()).
func (a Array) Filter(pred func(i int, v Value) bool) Array {
	out := NewArray()
	m, _ := out.AsMutableArray()
	for i, e := range a.v.pay.arr {
		if pred(i, e) {
			m.Append(e)
		}
	}
	return Array{v: out}
}

func (a Array) equal(x Array) bool {
	if a.Length() != x.Length() {
		return false
	}
	for i := range a.v.pay.arr {
		if !a.v.pay.arr[i].Equal(x.v.pay.arr[i]) {
			return false
		}
	}
	return true
}

// mutable handles below require an owner (a pointer to the Value whose
// payload we are writing through); owner.own() has already been called
// by AsMutableArray, so a.v.pay is guaranteed unshared.

func (a *Array) sync() {
	if a.owner != nil {
		*a.owner = a.v
	}
}

// Append adds v to the end of a. v is retained (not merely aliased):
// a store into a container always takes its own reference, so that a
// caller who goes on to mutate their own copy of v in place cannot
// corrupt what was just stored (see payload.retain, value.go).
func (a *Array) Append(v Value) {
	a.v.pay.arr = append(a.v.pay.arr, v.retainedCopy())
	a.sync()
}

// Extend appends every element of other to a.
func (a *Array) Extend(other Array) {
	other.Each(func(_ int, v Value) {
		a.Append(v)
	})
}

// Insert places v at position pos, shifting later elements right. pos
// must be in [0, Length()]; an out-of-range pos fails with IndexError.
func (a *Array) Insert(pos int, v Value) error {
	n := a.Length()
	if pos < 0 || pos > n {
		return &IndexError{Index: pos, Length: n}
	}
	a.v.pay.arr = append(a.v.pay.arr, Value{})
	copy(a.v.pay.arr[pos+1:], a.v.pay.arr[pos:n])
	a.v.pay.arr[pos] = v.retainedCopy()
	a.sync()
	return nil
}

// Erase removes the element at pos, shifting later elements left.
func (a *Array) Erase(pos int) error {
	n := a.Length()
	if pos < 0 || pos >= n {
		return &IndexError{Index: pos, Length: n}
	}
	copy(a.v.pay.arr[pos:], a.v.pay.arr[pos+1:])
	a.v.pay.arr = a.v.pay.arr[:n-1]
	a.sync()
	return nil
}

// Reserve hints that a will grow to hold at least n elements.
func (a *Array) Reserve(n int) {
	if cap(a.v.pay.arr) < n {
		grown := make([]Value, len(a.v.pay.arr), n)
		copy(grown, a.v.pay.arr)
		a.v.pay.arr = grown
		a.sync()
	}
}

// Clear removes all elements from a.
func (a *Array) Clear() {
	a.v.pay.arr = a.v.pay.arr[:0]
	a.sync()
}

// AtMutable returns a pointer to a's element at index i so the caller
// may overwrite it in place; mutation through the returned pointer
// does not itself trigger further COW (the array's own payload has
// already been made unique by AsMutableArray).
func (a *Array) AtMutable(i int) (*Value, error) {
	if i < 0 || i >= len(a.v.pay.arr) {
		return nil, &IndexError{Index: i, Length: a.Length()}
	}
	return &a.v.pay.arr[i], nil
}
