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

package codec

import "github.com/ellisdata/ellis/value"

// Decoder is the incremental, buffer-driven decoding contract every
// Ellis format implements (spec §4.2), grounded on original_source
// core/decoder.hpp. A caller feeds bytes via ConsumeBuffer repeatedly;
// once a Value is fully parsed, Chop returns it with SUCCESS.
type Decoder interface {
	// ConsumeBuffer offers buf to the decoder and returns the number of
	// leading bytes of buf it consumed; the caller is responsible for
	// returning any unconsumed suffix (len(buf)-consumed bytes) to the
	// stream for the next read. It reports CONTINUE while more input is
	// needed to complete the current value, SUCCESS once a complete
	// value boundary was reached within buf, or ERROR on malformed
	// input. A SUCCESS or ERROR disposition still reports the bytes
	// consumed up to (and including, where applicable) that boundary;
	// Chop must be called to retrieve the decoded Value before Reset.
	ConsumeBuffer(buf []byte) (consumed int, result Progress)

	// Chop signals end of input. It reports SUCCESS with the decoded
	// Value attached if the accumulated state is a complete Value, and
	// ERROR otherwise. Chop does not reset the decoder; Reset must be
	// called before it decodes another Value.
	Chop() Disposition[value.Value]

	// Reset discards any partially decoded state, returning the
	// decoder to its initial condition.
	Reset()
}

// Encoder is the incremental, buffer-driven encoding contract every
// Ellis format implements (spec §4.2).
type Encoder interface {
	// Reset begins encoding a new Value.
	Reset(v value.Value)

	// FillBuffer writes as much encoded output as fits into buf,
	// returning the number of bytes written and a disposition:
	// CONTINUE if buf was filled but encoding is not finished, SUCCESS
	// once the Value has been fully written, or ERROR if the Value
	// cannot be represented in this format.
	FillBuffer(buf []byte) (int, Progress)
}
