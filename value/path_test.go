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

import (
	"strconv"
	"testing"
)

func buildSample() Value {
	root := NewMap()
	rm, _ := root.AsMutableMap()

	arr := NewArray()
	am, _ := arr.AsMutableArray()
	am.Append(Int(10))
	am.Append(Int(20))

	rm.Set("list", arr)
	rm.Set("name", U8Str("ellis"))
	return root
}

func TestAt(t *testing.T) {
	root := buildSample()

	v, err := root.At("{name}")
	if err != nil {
		t.Fatal(err)
	}
	s, _ := v.AsU8Str()
	if s != "ellis" {
		t.Fatalf("got %q, want %q", s, "ellis")
	}

	v, err = root.At("{list}[1]")
	if err != nil {
		t.Fatal(err)
	}
	n, _ := v.AsInt64()
	if n != 20 {
		t.Fatalf("got %d, want 20", n)
	}
}

func TestAtErrors(t *testing.T) {
	root := buildSample()

	if _, err := root.At("{missing}"); err == nil {
		t.Fatal("expected PathError for a missing key")
	}
	if _, err := root.At("{list}[99]"); err == nil {
		t.Fatal("expected PathError for an out-of-range index")
	}
	if _, err := root.At("{name}[0]"); err == nil {
		t.Fatal("expected PathError when indexing into a non-array")
	}
	if _, err := root.At("{unterminated"); err == nil {
		t.Fatal("expected PathError for an unterminated selector")
	}
}

func TestAtMutable(t *testing.T) {
	root := buildSample()
	slot, err := root.AtMutable("{list}[0]")
	if err != nil {
		t.Fatal(err)
	}
	*slot = Int(999)

	v, _ := root.At("{list}[0]")
	n, _ := v.AsInt64()
	if n != 999 {
		t.Fatalf("got %d, want 999", n)
	}
}

func TestInstallCreatesIntermediates(t *testing.T) {
	root := Nil()
	if err := root.Install("{a}{b}[2]", Int(7)); err != nil {
		t.Fatal(err)
	}

	v, err := root.At("{a}{b}[2]")
	if err != nil {
		t.Fatal(err)
	}
	n, _ := v.AsInt64()
	if n != 7 {
		t.Fatalf("got %d, want 7", n)
	}

	// indices 0 and 1 must have been padded with Nil
	for i := 0; i < 2; i++ {
		v, err := root.At(pathIndex("{a}{b}", i))
		if err != nil {
			t.Fatalf("index %d: %v", i, err)
		}
		if v.Type() != NilType {
			t.Fatalf("index %d: got %s, want nil padding", i, v.Type())
		}
	}
}

func pathIndex(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

func TestInstallOverwritesExisting(t *testing.T) {
	root := buildSample()
	if err := root.Install("{list}[0]", Int(111)); err != nil {
		t.Fatal(err)
	}
	v, _ := root.At("{list}[0]")
	n, _ := v.AsInt64()
	if n != 111 {
		t.Fatalf("got %d, want 111", n)
	}
}

func TestInstallEmptyPathReplacesWhole(t *testing.T) {
	root := Int(1)
	if err := root.Install("", U8Str("replaced")); err != nil {
		t.Fatal(err)
	}
	s, err := root.AsU8Str()
	if err != nil || s != "replaced" {
		t.Fatalf("got %v, %v", s, err)
	}
}
