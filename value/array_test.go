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

import "testing"

func TestArrayAppendAndAt(t *testing.T) {
	v := NewArray()
	m, err := v.AsMutableArray()
	if err != nil {
		t.Fatal(err)
	}
	m.Append(Int(1))
	m.Append(Int(2))
	m.Append(Int(3))

	if m.Length() != 3 {
		t.Fatalf("got length %d, want 3", m.Length())
	}
	for i, want := range []int64{1, 2, 3} {
		got, err := m.At(i)
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		n, err := got.AsInt64()
		if err != nil || n != want {
			t.Fatalf("At(%d): got %v, want %d", i, got, want)
		}
	}
}

func TestArrayAtOutOfRange(t *testing.T) {
	v := NewArray()
	a, _ := v.AsArray()
	if _, err := a.At(0); err == nil {
		t.Fatal("expected IndexError for empty array")
	}
}

func TestArrayInsertAndErase(t *testing.T) {
	v := NewArray()
	m, _ := v.AsMutableArray()
	m.Append(Int(1))
	m.Append(Int(3))
	if err := m.Insert(1, Int(2)); err != nil {
		t.Fatal(err)
	}
	data := []int64{1, 2, 3}
	for i, want := range data {
		got, _ := m.At(i)
		n, _ := got.AsInt64()
		if n != want {
			t.Errorf("after insert, index %d: got %d, want %d", i, n, want)
		}
	}
	if err := m.Erase(1); err != nil {
		t.Fatal(err)
	}
	if m.Length() != 2 {
		t.Fatalf("after erase, got length %d, want 2", m.Length())
	}
	got, _ := m.At(1)
	n, _ := got.AsInt64()
	if n != 3 {
		t.Fatalf("after erase, index 1: got %d, want 3", n)
	}
}

func TestArrayInsertOutOfRange(t *testing.T) {
	v := NewArray()
	m, _ := v.AsMutableArray()
	if err := m.Insert(5, Int(1)); err == nil {
		t.Fatal("expected IndexError for out-of-range Insert")
	}
}

func TestArrayExtend(t *testing.T) {
	a := NewArray()
	am, _ := a.AsMutableArray()
	am.Append(Int(1))

	b := NewArray()
	bm, _ := b.AsMutableArray()
	bm.Append(Int(2))
	bm.Append(Int(3))

	am.Extend(Array{v: b})
	if am.Length() != 3 {
		t.Fatalf("after extend, got length %d, want 3", am.Length())
	}
}

func TestArrayFilterSharesPayload(t *testing.T) {
	v := NewArray()
	m, _ := v.AsMutableArray()
	m.Append(Int(1))
	m.Append(Int(2))
	m.Append(Int(3))

	evens := m.Filter(func(_ int, e Value) bool {
		n, _ := e.AsInt64()
		return n%2 == 0
	})
	if evens.Length() != 1 {
		t.Fatalf("got %d even elements, want 1", evens.Length())
	}
	first, _ := evens.At(0)
	n, _ := first.AsInt64()
	if n != 2 {
		t.Fatalf("got %d, want 2", n)
	}
}

func TestArrayClear(t *testing.T) {
	v := NewArray()
	m, _ := v.AsMutableArray()
	m.Append(Int(1))
	m.Clear()
	if !m.IsEmpty() {
		t.Fatal("expected array to be empty after Clear")
	}
}
