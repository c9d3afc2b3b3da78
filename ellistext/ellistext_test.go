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

package ellistext

import (
	"testing"

	"github.com/ellisdata/ellis/codec"
	"github.com/ellisdata/ellis/registry"
	"github.com/ellisdata/ellis/value"
)

func TestDecodeSplitsOnNewline(t *testing.T) {
	d := NewDecoder()
	_, disp := d.ConsumeBuffer([]byte("alpha\nbeta\ngamma\n"))
	if !disp.IsContinue() {
		t.Fatalf("got %s", disp.State())
	}
	got := d.Chop().Value()
	a, err := got.AsArray()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", "beta", "gamma"}
	if a.Length() != len(want) {
		t.Fatalf("got length %d, want %d", a.Length(), len(want))
	}
	for i, w := range want {
		e, _ := a.At(i)
		s, _ := e.AsU8Str()
		if s != w {
			t.Errorf("index %d: got %q, want %q", i, s, w)
		}
	}
}

func TestDecodeUnterminatedTailLine(t *testing.T) {
	d := NewDecoder()
	d.ConsumeBuffer([]byte("first\nsecond")) // no trailing newline
	got := d.Chop().Value()
	a, _ := got.AsArray()
	if a.Length() != 2 {
		t.Fatalf("got length %d, want 2", a.Length())
	}
	last, _ := a.At(1)
	s, _ := last.AsU8Str()
	if s != "second" {
		t.Fatalf("got %q, want %q", s, "second")
	}
}

func TestDecodeAcrossSplitBuffers(t *testing.T) {
	d := NewDecoder()
	input := "one\ntwo\nthree\n"
	for i := 0; i < len(input); i++ {
		d.ConsumeBuffer([]byte{input[i]})
	}
	got := d.Chop().Value()
	a, _ := got.AsArray()
	if a.Length() != 3 {
		t.Fatalf("got length %d, want 3", a.Length())
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	d := NewDecoder()
	got := d.Chop().Value()
	a, _ := got.AsArray()
	if !a.IsEmpty() {
		t.Fatalf("got length %d, want 0", a.Length())
	}
}

func TestEncodeJoinsWithNewline(t *testing.T) {
	arr := value.NewArray()
	am, _ := arr.AsMutableArray()
	am.Append(value.U8Str("one"))
	am.Append(value.U8Str("two"))

	enc := NewEncoder()
	enc.Reset(arr)
	buf := make([]byte, 64)
	n, disp := enc.FillBuffer(buf)
	if !disp.IsSuccess() {
		t.Fatalf("got %s (%v)", disp.State(), disp.Err())
	}
	got := string(buf[:n])
	want := "one\ntwo\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeNonArrayFails(t *testing.T) {
	enc := NewEncoder()
	enc.Reset(value.Int(42))
	buf := make([]byte, 16)
	_, disp := enc.FillBuffer(buf)
	if !disp.IsError() {
		t.Fatal("expected encoding a non-Array to fail")
	}
}

func TestEncodeNonStringElementFails(t *testing.T) {
	arr := value.NewArray()
	am, _ := arr.AsMutableArray()
	am.Append(value.Int(1))

	enc := NewEncoder()
	enc.Reset(arr)
	buf := make([]byte, 16)
	_, disp := enc.FillBuffer(buf)
	if !disp.IsError() {
		t.Fatal("expected encoding a non-U8Str element to fail")
	}
}

func TestSelfRegistersWithDefaultRegistry(t *testing.T) {
	f, ok := registry.Default.Lookup(FormatName)
	if !ok {
		t.Fatal("expected ellistext to have self-registered at package init")
	}
	if len(f.Extensions) != 1 || f.Extensions[0] != Extension {
		t.Fatalf("got %v", f.Extensions)
	}
}

var _ codec.Decoder = (*Decoder)(nil)
var _ codec.Encoder = (*Encoder)(nil)
