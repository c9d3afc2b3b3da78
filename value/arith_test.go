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

func TestArithInt64(t *testing.T) {
	data := []struct {
		fn   func(a, b Value) (Value, error)
		a, b int64
		want int64
	}{
		{Add, 2, 3, 5},
		{Sub, 5, 3, 2},
		{Mul, 4, 3, 12},
		{Div, 9, 3, 3},
	}
	for i := range data {
		d := data[i]
		got, err := d.fn(Int(d.a), Int(d.b))
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		n, _ := got.AsInt64()
		if n != d.want {
			t.Errorf("case %d: got %d, want %d", i, n, d.want)
		}
	}
}

func TestArithDouble(t *testing.T) {
	got, err := Add(Double(1.5), Double(2.5))
	if err != nil {
		t.Fatal(err)
	}
	f, _ := got.AsDouble()
	if f != 4.0 {
		t.Fatalf("got %v, want 4.0", f)
	}
}

func TestArithTypeMismatch(t *testing.T) {
	if _, err := Add(Int(1), Double(1)); err == nil {
		t.Fatal("expected TypeError mixing int64 and double")
	}
	if _, err := Add(Int(1), U8Str("x")); err == nil {
		t.Fatal("expected TypeError adding a string")
	}
}

func TestCompare(t *testing.T) {
	data := []struct {
		a, b Value
		want int
	}{
		{Int(1), Int(2), -1},
		{Int(2), Int(2), 0},
		{Int(3), Int(2), 1},
		{Double(1.0), Double(2.0), -1},
	}
	for i := range data {
		got, err := Compare(data[i].a, data[i].b)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if got != data[i].want {
			t.Errorf("case %d: got %d, want %d", i, got, data[i].want)
		}
	}
}
