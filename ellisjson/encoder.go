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

package ellisjson

import (
	"strconv"

	"github.com/ellisdata/ellis/codec"
	"github.com/ellisdata/ellis/value"
)

const hexDigits = "0123456789abcdef"

// Encoder implements codec.Encoder for JSON text (spec §4.3.3): a
// single-pass recursive emitter that renders the whole Value into an
// internal buffer up front, which FillBuffer then drains in
// caller-sized chunks.
type Encoder struct {
	buf []byte
	off int
}

// NewEncoder returns a ready-to-use JSON Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Reset implements codec.Encoder.
func (e *Encoder) Reset(v value.Value) {
	e.buf = appendJSON(e.buf[:0], v)
	e.off = 0
}

// FillBuffer implements codec.Encoder.
func (e *Encoder) FillBuffer(buf []byte) (int, codec.Progress) {
	n := copy(buf, e.buf[e.off:])
	e.off += n
	if e.off < len(e.buf) {
		return n, codec.ContinueProgress()
	}
	return n, codec.SuccessProgress()
}

func appendJSON(buf []byte, v value.Value) []byte {
	switch v.Type() {
	case value.NilType:
		return append(buf, "null"...)
	case value.BoolType:
		b, _ := v.AsBool()
		if b {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case value.Int64Type:
		n, _ := v.AsInt64()
		return strconv.AppendInt(buf, n, 10)
	case value.DoubleType:
		f, _ := v.AsDouble()
		return appendDouble(buf, f)
	case value.U8StrType:
		s, _ := v.AsU8Str()
		return appendJSONString(buf, s)
	case value.BinaryType:
		b, _ := v.AsBinary()
		return appendBinaryMarker(buf, b)
	case value.ArrayType:
		return appendJSONArray(buf, v)
	case value.MapType:
		return appendJSONMap(buf, v)
	default:
		return append(buf, "null"...)
	}
}

// appendDouble always includes a fractional part, per spec §4.3.3,
// distinguishing a Double's wire form from Int64's.
func appendDouble(buf []byte, f float64) []byte {
	start := len(buf)
	buf = strconv.AppendFloat(buf, f, 'g', -1, 64)
	for _, c := range buf[start:] {
		if !(c == '-' || (c >= '0' && c <= '9')) {
			return buf // already has a '.', exponent, or is Inf/NaN
		}
	}
	return append(buf, ".0"...)
}

// appendJSONString escapes '"', '\', and control characters per RFC
// 8259 -- a deliberate deviation from the original, whose encoder
// emitted string contents unescaped.
func appendJSONString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			buf = append(buf, '\\', '"')
		case c == '\\':
			buf = append(buf, '\\', '\\')
		case c == '\n':
			buf = append(buf, '\\', 'n')
		case c == '\r':
			buf = append(buf, '\\', 'r')
		case c == '\t':
			buf = append(buf, '\\', 't')
		case c == '\b':
			buf = append(buf, '\\', 'b')
		case c == '\f':
			buf = append(buf, '\\', 'f')
		case c < 0x20:
			buf = append(buf, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
		default:
			buf = append(buf, c)
		}
	}
	return append(buf, '"')
}

// appendBinaryMarker emits the Ellis-proprietary binary marker
// "/ELLIS_BINARY/xHH xHH ..." (spec §4.3.3). The original's equivalent
// routine has a latent bug that recursively re-prints the byte
// sequence and never closes the quote; this implementation is the
// corrected, intended form.
func appendBinaryMarker(buf []byte, b []byte) []byte {
	buf = append(buf, '"', '/', 'E', 'L', 'L', 'I', 'S', '_', 'B', 'I', 'N', 'A', 'R', 'Y', '/')
	for i, by := range b {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, 'x', hexDigits[by>>4], hexDigits[by&0xF])
	}
	return append(buf, '"')
}

func appendJSONArray(buf []byte, v value.Value) []byte {
	a, _ := v.AsArray()
	buf = append(buf, '[', ' ')
	n := a.Length()
	a.Each(func(i int, e value.Value) {
		buf = appendJSON(buf, e)
		if i < n-1 {
			buf = append(buf, ',', ' ')
		}
	})
	return append(buf, ' ', ']')
}

func appendJSONMap(buf []byte, v value.Value) []byte {
	m, _ := v.AsMap()
	buf = append(buf, '{', ' ')
	n := m.Length()
	i := 0
	m.Each(func(k string, e value.Value) {
		buf = appendJSONString(buf, k)
		buf = append(buf, ':', ' ')
		buf = appendJSON(buf, e)
		if i < n-1 {
			buf = append(buf, ',', ' ')
		}
		i++
	})
	return append(buf, ' ', '}')
}
