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

package ellismsgpack

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ellisdata/ellis/codec"
	"github.com/ellisdata/ellis/value"
)

// Encoder implements codec.Encoder for MessagePack (spec §4.4.2): each
// Value is rendered into an internal buffer at Reset time using the
// narrowest valid wire family, which FillBuffer then drains in
// caller-sized chunks -- the same two-phase shape as ellisjson's
// Encoder, grounded on ion/writer.go's Uvsize/"narrowest encoding"
// approach to integer and string tags.
type Encoder struct {
	buf []byte
	off int
	err error
}

// NewEncoder returns a ready-to-use MessagePack Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Reset implements codec.Encoder.
func (e *Encoder) Reset(v value.Value) {
	e.buf = e.buf[:0]
	e.off = 0
	buf, err := appendMsgpack(e.buf, v)
	e.buf = buf
	e.err = err
}

// FillBuffer implements codec.Encoder.
func (e *Encoder) FillBuffer(buf []byte) (int, codec.Progress) {
	if e.err != nil {
		return 0, codec.ErrProgress(codec.NewError(codec.TypeMismatch, "msgpack: %s", e.err))
	}
	n := copy(buf, e.buf[e.off:])
	e.off += n
	if e.off < len(e.buf) {
		return n, codec.ContinueProgress()
	}
	return n, codec.SuccessProgress()
}

func appendMsgpack(buf []byte, v value.Value) ([]byte, error) {
	switch v.Type() {
	case value.NilType:
		return append(buf, mpNilByte), nil
	case value.BoolType:
		b, _ := v.AsBool()
		if b {
			return append(buf, mpTrue), nil
		}
		return append(buf, mpFalse), nil
	case value.Int64Type:
		n, _ := v.AsInt64()
		return appendInt(buf, n), nil
	case value.DoubleType:
		f, _ := v.AsDouble()
		return appendFloat(buf, f), nil
	case value.U8StrType:
		s, _ := v.AsU8Str()
		return appendStr(buf, s), nil
	case value.BinaryType:
		b, _ := v.AsBinary()
		return appendBin(buf, b), nil
	case value.ArrayType:
		return appendArray(buf, v)
	case value.MapType:
		return appendMap(buf, v)
	default:
		return nil, fmt.Errorf("cannot encode variant %s", v.Type())
	}
}

// appendInt chooses the narrowest family that holds n, including the
// positive/negative fixint ranges, per spec §4.4.2.
func appendInt(buf []byte, n int64) []byte {
	switch {
	case n >= 0 && n <= posFixintMax:
		return append(buf, byte(n))
	case n < 0 && n >= -32:
		return append(buf, byte(n))
	case n >= 0 && n <= 0xff:
		return append(buf, mpUint8, byte(n))
	case n < 0 && n >= -128:
		return append(buf, mpInt8, byte(int8(n)))
	case n >= 0 && n <= 0xffff:
		buf = append(buf, mpUint16)
		return appendUint16(buf, uint16(n))
	case n < 0 && n >= -32768:
		buf = append(buf, mpInt16)
		return appendUint16(buf, uint16(int16(n)))
	case n >= 0 && n <= 0xffffffff:
		buf = append(buf, mpUint32)
		return appendUint32(buf, uint32(n))
	case n < 0 && n >= -2147483648:
		buf = append(buf, mpInt32)
		return appendUint32(buf, uint32(int32(n)))
	default:
		buf = append(buf, mpInt64)
		return appendUint64(buf, uint64(n))
	}
}

// appendFloat emits float32 when f round-trips through that width
// without loss, else float64.
func appendFloat(buf []byte, f float64) []byte {
	if float64(float32(f)) == f {
		buf = append(buf, mpFloat32)
		return appendUint32(buf, math.Float32bits(float32(f)))
	}
	buf = append(buf, mpFloat64)
	return appendUint64(buf, math.Float64bits(f))
}

func appendStr(buf []byte, s string) []byte {
	n := len(s)
	switch {
	case n <= 31:
		buf = append(buf, byte(fixstrTag|n))
	case n <= 0xff:
		buf = append(buf, mpStr8, byte(n))
	case n <= 0xffff:
		buf = append(buf, mpStr16)
		buf = appendUint16(buf, uint16(n))
	default:
		buf = append(buf, mpStr32)
		buf = appendUint32(buf, uint32(n))
	}
	return append(buf, s...)
}

func appendBin(buf []byte, b []byte) []byte {
	n := len(b)
	switch {
	case n <= 0xff:
		buf = append(buf, mpBin8, byte(n))
	case n <= 0xffff:
		buf = append(buf, mpBin16)
		buf = appendUint16(buf, uint16(n))
	default:
		buf = append(buf, mpBin32)
		buf = appendUint32(buf, uint32(n))
	}
	return append(buf, b...)
}

func appendArray(buf []byte, v value.Value) ([]byte, error) {
	a, _ := v.AsArray()
	n := a.Length()
	switch {
	case n <= 0x0f:
		buf = append(buf, byte(fixarrayTag|n))
	case n <= 0xffff:
		buf = append(buf, mpArray16)
		buf = appendUint16(buf, uint16(n))
	default:
		buf = append(buf, mpArray32)
		buf = appendUint32(buf, uint32(n))
	}
	var err error
	a.Each(func(_ int, e value.Value) {
		if err != nil {
			return
		}
		buf, err = appendMsgpack(buf, e)
	})
	return buf, err
}

func appendMap(buf []byte, v value.Value) ([]byte, error) {
	m, _ := v.AsMap()
	n := m.Length()
	switch {
	case n <= 0x0f:
		buf = append(buf, byte(fixmapTag|n))
	case n <= 0xffff:
		buf = append(buf, mpMap16)
		buf = appendUint16(buf, uint16(n))
	default:
		buf = append(buf, mpMap32)
		buf = appendUint32(buf, uint32(n))
	}
	var err error
	m.Each(func(k string, e value.Value) {
		if err != nil {
			return
		}
		buf = appendStr(buf, k)
		buf, err = appendMsgpack(buf, e)
	})
	return buf, err
}

func appendUint16(buf []byte, n uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], n)
	return append(buf, tmp[:]...)
}

func appendUint32(buf []byte, n uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], n)
	return append(buf, tmp[:]...)
}

func appendUint64(buf []byte, n uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], n)
	return append(buf, tmp[:]...)
}
