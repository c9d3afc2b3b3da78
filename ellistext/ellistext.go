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

// Package ellistext implements the delimited-text codec (spec §4.5):
// a decoder that splits input into lines and collects them as a
// top-level Array of U8Str, and an encoder that writes the reverse.
package ellistext

import (
	"bytes"

	"github.com/ellisdata/ellis/codec"
	"github.com/ellisdata/ellis/registry"
	"github.com/ellisdata/ellis/value"
)

// FormatName and Extension are the identifiers this codec registers
// itself under (spec §4.5: "auto-registers ... under name
// builtin.txtfile.lines, extension txt").
const (
	FormatName = "builtin.txtfile.lines"
	Extension  = "txt"
)

func init() {
	Register(registry.Default)
}

// Register installs this codec's decoder/encoder constructors into r,
// mirroring ellisjson's and ellismsgpack's Register functions (spec
// §4 "each expose a Register(*registry.Registry) that installs
// themselves").
func Register(r *registry.Registry) {
	r.Register(registry.Format{
		Name:       FormatName,
		Extensions: []string{Extension},
		NewDecoder: func() codec.Decoder { return NewDecoder() },
		NewEncoder: func() codec.Encoder { return NewEncoder() },
	})
}

// Decoder implements codec.Decoder for the line-splitting format.
// Bytes are accumulated into a scratch buffer (grounded on
// ion/chunker.go's Chunker.Buffer accumulate-then-flush rhythm); each
// '\n' flushes the accumulated bytes as a new U8Str element of the
// top-level result Array.
type Decoder struct {
	scratch  []byte
	result   value.Value
	am       *value.Array
	complete bool
}

// NewDecoder returns a ready-to-use delimited-text Decoder.
func NewDecoder() *Decoder {
	d := &Decoder{}
	d.Reset()
	return d
}

// ConsumeBuffer implements codec.Decoder. Per spec §4.5, this decoder
// never reports SUCCESS on its own -- text input has no artifact
// terminator other than end-of-stream, so every call to ConsumeBuffer
// returns CONTINUE (splitting complete lines into the result array as
// it goes) and the caller must call Chop to retrieve the Array once
// the stream is known to be finished.
func (d *Decoder) ConsumeBuffer(buf []byte) (int, codec.Progress) {
	if d.complete {
		return 0, codec.ErrProgress(codec.NewError(codec.InvalidArgs, "ConsumeBuffer called after Chop; call Reset first"))
	}
	total := len(buf)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			d.scratch = append(d.scratch, buf...)
			return total, codec.ContinueProgress()
		}
		d.scratch = append(d.scratch, buf[:i]...)
		d.am.Append(value.U8Str(string(d.scratch)))
		d.scratch = d.scratch[:0]
		buf = buf[i+1:]
	}
}

// Chop implements codec.Decoder: returns the accumulated Array as
// SUCCESS regardless of whether the final line had a trailing '\n'
// (spec §4.5), flushing any unterminated tail line first.
func (d *Decoder) Chop() codec.Disposition[value.Value] {
	if len(d.scratch) > 0 {
		d.am.Append(value.U8Str(string(d.scratch)))
		d.scratch = d.scratch[:0]
	}
	d.complete = true
	return codec.SuccessDisposition(d.result)
}

// Reset implements codec.Decoder.
func (d *Decoder) Reset() {
	d.scratch = d.scratch[:0]
	d.result = value.NewArray()
	am, _ := d.result.AsMutableArray()
	d.am = am
	d.complete = false
}

// Encoder implements codec.Encoder for the line-joining format: given
// a top-level Array of U8Str, emits each element followed by '\n'
// (spec §4.5; other variant content is outside the contract and fails
// with TYPE_MISMATCH).
type Encoder struct {
	buf []byte
	off int
	err error
}

// NewEncoder returns a ready-to-use delimited-text Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Reset implements codec.Encoder.
func (e *Encoder) Reset(v value.Value) {
	e.buf = e.buf[:0]
	e.off = 0
	e.err = nil
	a, err := v.AsArray()
	if err != nil {
		e.err = err
		return
	}
	a.Each(func(_ int, el value.Value) {
		if e.err != nil {
			return
		}
		s, serr := el.AsU8Str()
		if serr != nil {
			e.err = serr
			return
		}
		e.buf = append(e.buf, s...)
		e.buf = append(e.buf, '\n')
	})
}

// FillBuffer implements codec.Encoder.
func (e *Encoder) FillBuffer(buf []byte) (int, codec.Progress) {
	if e.err != nil {
		return 0, codec.ErrProgress(codec.NewError(codec.TypeMismatch, "ellistext: %s", e.err))
	}
	n := copy(buf, e.buf[e.off:])
	e.off += n
	if e.off < len(e.buf) {
		return n, codec.ContinueProgress()
	}
	return n, codec.SuccessProgress()
}
