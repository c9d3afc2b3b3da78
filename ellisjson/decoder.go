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
	"github.com/ellisdata/ellis/codec"
	"github.com/ellisdata/ellis/value"
)

// Decoder implements codec.Decoder for JSON text (spec §4.3), pairing
// the byte-at-a-time lexer with the table-driven parser.
type Decoder struct {
	lx       *lexer
	ps       *parser
	complete bool
	result   value.Value
}

// NewDecoder returns a ready-to-use JSON Decoder.
func NewDecoder() *Decoder {
	d := &Decoder{lx: newLexer(), ps: newParser()}
	return d
}

// ConsumeBuffer implements codec.Decoder.
func (d *Decoder) ConsumeBuffer(buf []byte) (int, codec.Progress) {
	if d.complete {
		return 0, codec.ErrProgress(codec.NewError(codec.InvalidArgs, "ConsumeBuffer called after SUCCESS/ERROR; call Reset first"))
	}
	i := 0
	for i < len(buf) {
		b := buf[i]
		tok, have, reprocess, err := d.lx.step(b)
		if err != nil {
			d.complete = true
			return i, codec.ErrProgress(codec.NewError(codec.ParseFail, "json: %s", err))
		}
		if !have {
			i++
			continue
		}
		done, perr := d.ps.feed(tok)
		if perr != nil {
			d.complete = true
			consumed := i
			if !reprocess {
				consumed = i + 1
			}
			return consumed, codec.ErrProgress(codec.NewError(codec.ParseFail, "json: %s", perr))
		}
		if done {
			d.complete = true
			d.result = d.ps.result
			consumed := i
			if !reprocess {
				consumed = i + 1
			}
			return consumed, codec.SuccessProgress()
		}
		if !reprocess {
			i++
		}
	}
	return len(buf), codec.ContinueProgress()
}

// Chop implements codec.Decoder.
func (d *Decoder) Chop() codec.Disposition[value.Value] {
	if d.complete {
		return codec.SuccessDisposition(d.result)
	}
	tok, have, err := d.lx.atEOS()
	if err != nil {
		return codec.ErrDisposition[value.Value](codec.NewError(codec.ParseFail, "json: %s", err))
	}
	if !have {
		return codec.ErrDisposition[value.Value](codec.NewError(codec.ParseFail, "json: unexpected end of input"))
	}
	done, perr := d.ps.feed(tok)
	if perr != nil {
		return codec.ErrDisposition[value.Value](codec.NewError(codec.ParseFail, "json: %s", perr))
	}
	if !done {
		return codec.ErrDisposition[value.Value](codec.NewError(codec.ParseFail, "json: incomplete value at end of input"))
	}
	d.complete = true
	d.result = d.ps.result
	return codec.SuccessDisposition(d.result)
}

// Reset implements codec.Decoder.
func (d *Decoder) Reset() {
	d.lx.reset()
	d.ps.reset()
	d.complete = false
	d.result = value.Value{}
}
