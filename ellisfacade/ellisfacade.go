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

// Package ellisfacade drives codecs against stream.Input/stream.Output
// in the request-more-input/emit-committed-output loop described by
// spec §6.1, and derives a format from a file extension via a
// registry.Registry for its "auto" variants (spec §6.1 and §6.3).
package ellisfacade

import (
	"github.com/google/uuid"

	"github.com/ellisdata/ellis/codec"
	"github.com/ellisdata/ellis/registry"
	"github.com/ellisdata/ellis/stream"
	"github.com/ellisdata/ellis/value"
)

// Load decodes a single Value from in using dec, requesting
// successive input regions until dec reports SUCCESS or ERROR.
// Leftover bytes from the final region are put back onto in. On
// failure the returned error is wrapped with a correlation id so a
// caller's logs can tie the failure back to this specific call.
func Load(in stream.Input, dec codec.Decoder) (value.Value, error) {
	corrID := uuid.NewString()
	for {
		buf, ok := in.NextInputBuf()
		if !ok {
			if err := in.ExtractInputError(); err != nil {
				return value.Value{}, codec.Wrap(codec.IO, err, "[%s] input stream error", corrID)
			}
			disp := dec.Chop()
			if disp.IsError() {
				return value.Value{}, codec.Wrap(disp.Err().Kind, disp.Err(), "[%s] %s", corrID, disp.Err().Message)
			}
			return disp.Value(), nil
		}

		consumed, prog := dec.ConsumeBuffer(buf)
		leftover := len(buf) - consumed
		switch prog.State() {
		case codec.Success:
			if leftover > 0 {
				in.PutBack(leftover)
			}
			// ConsumeBuffer's Progress carries no payload; Chop
			// retrieves the value it already finished decoding.
			disp := dec.Chop()
			if disp.IsError() {
				return value.Value{}, codec.Wrap(disp.Err().Kind, disp.Err(), "[%s] %s", corrID, disp.Err().Message)
			}
			return disp.Value(), nil
		case codec.ErrState:
			if leftover > 0 {
				in.PutBack(leftover)
			}
			return value.Value{}, codec.Wrap(prog.Err().Kind, prog.Err(), "[%s] %s", corrID, prog.Err().Message)
		default: // Continue: decoders consume everything they're given
			// before asking for more, so leftover is ordinarily 0; put
			// back defensively in case a decoder ever leaves a remainder.
			if leftover > 0 {
				in.PutBack(leftover)
			}
		}
	}
}

// Dump encodes v to out using enc, requesting successive output
// regions until enc reports SUCCESS or ERROR. On failure the
// returned error is wrapped with a correlation id so a caller's logs
// can tie the failure back to this specific call.
func Dump(out stream.Output, enc codec.Encoder, v value.Value) error {
	corrID := uuid.NewString()
	enc.Reset(v)
	for {
		buf, ok := out.NextOutputBuf()
		if !ok {
			if err := out.ExtractOutputError(); err != nil {
				return codec.Wrap(codec.IO, err, "[%s] output stream error", corrID)
			}
			return nil
		}
		n, prog := enc.FillBuffer(buf)
		if n > 0 {
			out.Emit(n)
		}
		switch prog.State() {
		case codec.Success:
			return nil
		case codec.ErrState:
			return codec.Wrap(prog.Err().Kind, prog.Err(), "[%s] %s", corrID, prog.Err().Message)
		}
	}
}

// LoadAuto decodes a single Value from in, selecting a codec from r
// by extension. Candidate formats registered under ext are tried in
// registration order; if every candidate fails, the most recently
// observed error is returned (spec §7's propagation policy).
func LoadAuto(in stream.Input, r *registry.Registry, ext string) (value.Value, error) {
	candidates := r.ByExtension(ext)
	if len(candidates) == 0 {
		return value.Value{}, codec.NewError(codec.NoSuch, "no codec registered for extension %q", ext)
	}

	var lastErr error
	for _, f := range candidates {
		dec := f.NewDecoder()
		v, err := Load(in, dec)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return value.Value{}, lastErr
}

// DumpAuto encodes v using the codec registered under ext in r. If
// more than one format shares the extension, the first is used.
func DumpAuto(out stream.Output, r *registry.Registry, ext string, v value.Value) error {
	candidates := r.ByExtension(ext)
	if len(candidates) == 0 {
		return codec.NewError(codec.NoSuch, "no codec registered for extension %q", ext)
	}
	enc := candidates[0].NewEncoder()
	return Dump(out, enc, v)
}
