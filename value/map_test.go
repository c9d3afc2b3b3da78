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

func TestMapSetAndGet(t *testing.T) {
	v := NewMap()
	m, _ := v.AsMutableMap()
	m.Set("a", Int(1))
	m.Set("b", U8Str("two"))

	got, ok := m.Get("a")
	if !ok {
		t.Fatal("expected key a to be present")
	}
	n, _ := got.AsInt64()
	if n != 1 {
		t.Fatalf("got %d, want 1", n)
	}

	if _, ok := m.Get("missing"); ok {
		t.Fatal("Get on a missing key should report ok=false")
	}
}

func TestMapAddPolicies(t *testing.T) {
	data := []struct {
		name      string
		policy    AddPolicy
		preexists bool
		wantFail  bool
	}{
		{"insert-only new key", InsertOnly, false, false},
		{"insert-only existing key", InsertOnly, true, true},
		{"replace-only existing key", ReplaceOnly, true, false},
		{"replace-only new key", ReplaceOnly, false, true},
		{"insert-or-replace new key", InsertOrReplace, false, false},
		{"insert-or-replace existing key", InsertOrReplace, true, false},
	}
	for i := range data {
		d := data[i]
		v := NewMap()
		m, _ := v.AsMutableMap()
		if d.preexists {
			m.Set("k", Int(0))
		}
		failed := false
		m.Add("k", Int(9), d.policy, func(string, Value) { failed = true })
		if failed != d.wantFail {
			t.Errorf("%s: got failed=%v, want %v", d.name, failed, d.wantFail)
		}
	}
}

func TestMapMerge(t *testing.T) {
	a := NewMap()
	am, _ := a.AsMutableMap()
	am.Set("x", Int(1))

	b := NewMap()
	bm, _ := b.AsMutableMap()
	bm.Set("x", Int(2))
	bm.Set("y", Int(3))

	am.Merge(Map{v: b}, InsertOrReplace, nil)
	if am.Length() != 2 {
		t.Fatalf("got length %d, want 2", am.Length())
	}
	got, _ := am.Get("x")
	n, _ := got.AsInt64()
	if n != 2 {
		t.Fatalf("merge with InsertOrReplace should overwrite: got %d, want 2", n)
	}
}

func TestMapErase(t *testing.T) {
	v := NewMap()
	m, _ := v.AsMutableMap()
	m.Set("a", Int(1))
	m.Erase("a")
	if m.HasKey("a") {
		t.Fatal("expected key to be erased")
	}
	m.Erase("nonexistent") // must be a no-op, not a panic
}

func TestMapIndexInsertsNilForMissingKey(t *testing.T) {
	v := NewMap()
	m, _ := v.AsMutableMap()
	slot := m.Index("fresh")
	if slot.Type() != NilType {
		t.Fatalf("got %s, want nil for a freshly-indexed missing key", slot.Type())
	}
	if !m.HasKey("fresh") {
		t.Fatal("Index on a missing key must insert it")
	}
	*slot = Int(42)
	got, _ := m.Get("fresh")
	n, _ := got.AsInt64()
	if n != 42 {
		t.Fatalf("mutating through the Index pointer should be visible via Get: got %d", n)
	}
}

func TestMapKeysOrderIsInsertionOrder(t *testing.T) {
	v := NewMap()
	m, _ := v.AsMutableMap()
	m.Set("z", Int(1))
	m.Set("a", Int(2))
	m.Set("m", Int(3))
	keys := m.Keys()
	want := []string{"z", "a", "m"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d: got %q, want %q", i, keys[i], want[i])
		}
	}
}
