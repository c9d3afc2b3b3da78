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

// BinaryHandle is a mutable handle to a Binary Value's byte sequence
// (spec §4.1.3), returned by Value.AsMutableBinary once COW has made
// the payload unique.
type BinaryHandle struct {
	owner *Value
}

// ByteIndexError is returned for an out-of-range byte/char index
// (spec §7 INVALID_ARGS).
type ByteIndexError struct {
	Index, Length int
}

func (e *ByteIndexError) Error() string {
	return fmt.Sprintf("ellis: byte index %d out of range [0,%d)", e.Index, e.Length)
}

// Length returns the number of bytes.
func (h *BinaryHandle) Length() int { return len(h.owner.pay.bytes) }

// IsEmpty reports whether there are no bytes.
func (h *BinaryHandle) IsEmpty() bool { return h.Length() == 0 }

// At returns the byte at index i, bounds-checked.
func (h *BinaryHandle) At(i int) (byte, error) {
	if i < 0 || i >= len(h.owner.pay.bytes) {
		return 0, &ByteIndexError{Index: i, Length: h.Length()}
	}
	return h.owner.pay.bytes[i], nil
}

// Append adds buf to the end of the byte sequence.
func (h *BinaryHandle) Append(buf []byte) {
	h.owner.pay.bytes = append(h.owner.pay.bytes, buf...)
}

// Resize truncates or zero-pads the byte sequence to n bytes.
func (h *BinaryHandle) Resize(n int) {
	cur := h.owner.pay.bytes
	switch {
	case n <= len(cur):
		h.owner.pay.bytes = cur[:n]
	default:
		grown := make([]byte, n)
		copy(grown, cur)
		h.owner.pay.bytes = grown
	}
}

// Data returns the backing byte slice directly; callers may write
// through it since ownership has already been made unique by
// AsMutableBinary.
func (h *BinaryHandle) Data() []byte { return h.owner.pay.bytes }

// Clear empties the byte sequence.
func (h *BinaryHandle) Clear() { h.owner.pay.bytes = h.owner.pay.bytes[:0] }

// U8StrHandle is a mutable handle to a U8Str Value's character data
// (spec §4.1.3).
type U8StrHandle struct {
	owner *Value
}

// Length returns the number of bytes in the string.
func (h *U8StrHandle) Length() int { return len(h.owner.pay.bytes) }

// IsEmpty reports whether the string is empty.
func (h *U8StrHandle) IsEmpty() bool { return h.Length() == 0 }

// Assign replaces the string's contents with s.
func (h *U8StrHandle) Assign(s string) { h.owner.pay.bytes = []byte(s) }

// Append adds buf to the end of the string's raw bytes.
func (h *U8StrHandle) Append(buf []byte) { h.owner.pay.bytes = append(h.owner.pay.bytes, buf...) }

// Resize truncates or null-pads the string to n bytes.
func (h *U8StrHandle) Resize(n int) {
	cur := h.owner.pay.bytes
	switch {
	case n <= len(cur):
		h.owner.pay.bytes = cur[:n]
	default:
		grown := make([]byte, n)
		copy(grown, cur)
		h.owner.pay.bytes = grown
	}
}

// CStr returns the string's contents as a Go string (the Go analogue
// of the original's null-terminated C-string accessor; Go strings
// already carry their own length so no terminator is added).
func (h *U8StrHandle) CStr() string { return string(h.owner.pay.bytes) }

// Clear empties the string.
func (h *U8StrHandle) Clear() { h.owner.pay.bytes = h.owner.pay.bytes[:0] }
