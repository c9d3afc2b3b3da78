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

package registry

import "testing"

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	f := Format{Name: "test.fmt", Extensions: []string{"tf", "test"}}
	r.Register(f)

	got, ok := r.Lookup("test.fmt")
	if !ok || got.Name != "test.fmt" {
		t.Fatalf("got %v, %v", got, ok)
	}

	if _, ok := r.Lookup("nope"); ok {
		t.Fatal("expected Lookup of unregistered name to fail")
	}
}

func TestByExtension(t *testing.T) {
	r := New()
	a := Format{Name: "a", Extensions: []string{"x"}}
	b := Format{Name: "b", Extensions: []string{"x", "y"}}
	r.Register(a)
	r.Register(b)

	list := r.ByExtension("x")
	if len(list) != 2 {
		t.Fatalf("got %d formats, want 2", len(list))
	}
	if list[0].Name != "a" || list[1].Name != "b" {
		t.Fatalf("got %v", list)
	}

	list = r.ByExtension("y")
	if len(list) != 1 || list[0].Name != "b" {
		t.Fatalf("got %v", list)
	}

	if list := r.ByExtension("z"); len(list) != 0 {
		t.Fatalf("got %v, want empty", list)
	}
}

func TestDeregister(t *testing.T) {
	r := New()
	r.Register(Format{Name: "a", Extensions: []string{"x"}})
	r.Deregister("a")

	if _, ok := r.Lookup("a"); ok {
		t.Fatal("expected deregistered format to be gone")
	}
	if list := r.ByExtension("x"); len(list) != 0 {
		t.Fatalf("got %v, want empty after deregister", list)
	}
}

func TestReRegisterSameNameReplaces(t *testing.T) {
	r := New()
	r.Register(Format{Name: "a", Extensions: []string{"x"}})
	r.Register(Format{Name: "a", Extensions: []string{"y"}})

	if list := r.ByExtension("x"); len(list) != 0 {
		t.Fatalf("old extension index should be cleared, got %v", list)
	}
	if list := r.ByExtension("y"); len(list) != 1 {
		t.Fatalf("got %v, want 1 entry under new extension", list)
	}
}

func TestByExtensionReturnsACopy(t *testing.T) {
	r := New()
	r.Register(Format{Name: "a", Extensions: []string{"x"}})
	list := r.ByExtension("x")
	list[0].Name = "mutated"

	list2 := r.ByExtension("x")
	if list2[0].Name != "a" {
		t.Fatalf("ByExtension's returned slice leaked into internal state: got %q", list2[0].Name)
	}
}
