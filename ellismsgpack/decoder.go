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

// decState is the decoder's resumption point -- spec §4.4.1 calls the
// original's whole-node-only suspension a limitation and recommends
// lifting it with a state machine "analogous to the JSON tokenizer",
// which is exactly the shape below.
type decState int

const (
	dsLead decState = iota
	dsHeader
	dsPayload
)

// pendingAction records what to do once a multi-byte header or payload
// currently being accumulated in scratch completes.
type pendingAction int

const (
	paNone pendingAction = iota
	paInt8
	paUint8
	paInt16
	paUint16
	paInt32
	paUint32
	paInt64
	paFloat32
	paFloat64
	paStrLen1
	paStrLen2
	paStrLen4
	paBinLen1
	paBinLen2
	paBinLen4
	paArrayLen2
	paArrayLen4
	paMapLen2
	paMapLen4
)

type frameKind int

const (
	frameArray frameKind = iota
	frameMap
)

// frame is one open array/map container awaiting its remaining
// elements, mirroring ellisjson's parser builder frames.
type frame struct {
	kind      frameKind
	remaining int // elements left (array) or KV pairs left (map)
	arr       value.Value
	am        *value.Array
	mp        value.Value
	mm        *value.Map
	expectKey bool
	key       string
}

// Decoder implements codec.Decoder for MessagePack (spec §4.4.1).
type Decoder struct {
	state           decState
	pending         pendingAction
	need            int
	scratch         []byte
	payloadIsString bool
	frames          []*frame
	result          value.Value
	complete        bool
}

// NewDecoder returns a ready-to-use MessagePack Decoder.
func NewDecoder() *Decoder { return &Decoder{} }

// ConsumeBuffer implements codec.Decoder.
func (d *Decoder) ConsumeBuffer(buf []byte) (int, codec.Progress) {
	if d.complete {
		return 0, codec.ErrProgress(codec.NewError(codec.InvalidArgs, "ConsumeBuffer called after SUCCESS/ERROR; call Reset first"))
	}
	for i, b := range buf {
		done, err := d.feedByte(b)
		if err != nil {
			d.complete = true
			return i + 1, codec.ErrProgress(codec.NewError(codec.ParseFail, "msgpack: %s", err))
		}
		if done {
			d.complete = true
			return i + 1, codec.SuccessProgress()
		}
	}
	return len(buf), codec.ContinueProgress()
}

// Chop implements codec.Decoder. Unlike JSON, no MessagePack token can
// be validly completed by end-of-stream alone: every length is
// declared up front, so anything other than an already-complete
// result is an error.
func (d *Decoder) Chop() codec.Disposition[value.Value] {
	if d.complete {
		return codec.SuccessDisposition(d.result)
	}
	return codec.ErrDisposition[value.Value](codec.NewError(codec.ParseFail, "msgpack: unexpected end of input mid-value"))
}

// Reset implements codec.Decoder.
func (d *Decoder) Reset() {
	d.state = dsLead
	d.pending = paNone
	d.need = 0
	d.scratch = d.scratch[:0]
	d.frames = d.frames[:0]
	d.result = value.Value{}
	d.complete = false
}

func (d *Decoder) topFrame() *frame {
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

// feedByte advances the state machine by one byte, returning done=true
// once a complete top-level Value has been produced.
func (d *Decoder) feedByte(b byte) (done bool, err error) {
	switch d.state {
	case dsLead:
		return d.feedLead(b)
	case dsHeader:
		return d.feedHeader(b)
	case dsPayload:
		return d.feedPayload(b)
	default:
		return false, fmt.Errorf("decoder in invalid state")
	}
}

func (d *Decoder) feedLead(b byte) (bool, error) {
	switch {
	case isPosFixint(b):
		return d.pushValue(value.Int(int64(b)))
	case isNegFixint(b):
		return d.pushValue(value.Int(int64(int8(b))))
	case isFixmap(b):
		return d.startContainer(frameMap, int(b&0x0f))
	case isFixarray(b):
		return d.startContainer(frameArray, int(b&0x0f))
	case isFixstr(b):
		return d.startStringPayload(int(b & 0x1f))
	}

	switch b {
	case mpNilByte:
		return d.pushValue(value.Nil())
	case mpFalse:
		return d.pushValue(value.Bool(false))
	case mpTrue:
		return d.pushValue(value.Bool(true))
	case mpUint8:
		d.startHeader(paUint8, 1)
	case mpUint16:
		d.startHeader(paUint16, 2)
	case mpUint32:
		d.startHeader(paUint32, 4)
	case mpInt8:
		d.startHeader(paInt8, 1)
	case mpInt16:
		d.startHeader(paInt16, 2)
	case mpInt32:
		d.startHeader(paInt32, 4)
	case mpInt64:
		d.startHeader(paInt64, 8)
	case mpFloat32:
		d.startHeader(paFloat32, 4)
	case mpFloat64:
		d.startHeader(paFloat64, 8)
	case mpStr8:
		d.startHeader(paStrLen1, 1)
	case mpStr16:
		d.startHeader(paStrLen2, 2)
	case mpStr32:
		d.startHeader(paStrLen4, 4)
	case mpBin8:
		d.startHeader(paBinLen1, 1)
	case mpBin16:
		d.startHeader(paBinLen2, 2)
	case mpBin32:
		d.startHeader(paBinLen4, 4)
	case mpArray16:
		d.startHeader(paArrayLen2, 2)
	case mpArray32:
		d.startHeader(paArrayLen4, 4)
	case mpMap16:
		d.startHeader(paMapLen2, 2)
	case mpMap32:
		d.startHeader(paMapLen4, 4)
	case mpUint64:
		return false, fmt.Errorf("uint 64 is not supported")
	case mpReserved:
		return false, fmt.Errorf("byte 0xc1 is reserved and never valid")
	case mpExt8, mpExt16, mpExt32, mpFixext1, mpFixext2, mpFixext4, mpFixext8, mpFixext16:
		return false, fmt.Errorf("ext/fixext families are not supported")
	default:
		return false, fmt.Errorf("unrecognized lead byte 0x%02x", b)
	}
	return false, nil
}

func (d *Decoder) startHeader(pa pendingAction, width int) {
	d.state = dsHeader
	d.pending = pa
	d.need = width
	d.scratch = d.scratch[:0]
}

func (d *Decoder) feedHeader(b byte) (bool, error) {
	d.scratch = append(d.scratch, b)
	d.need--
	if d.need > 0 {
		return false, nil
	}
	d.state = dsLead
	switch d.pending {
	case paInt8:
		return d.pushValue(value.Int(int64(int8(d.scratch[0]))))
	case paUint8:
		return d.pushValue(value.Uint64(uint64(d.scratch[0])))
	case paInt16:
		return d.pushValue(value.Int(int64(int16(binary.BigEndian.Uint16(d.scratch)))))
	case paUint16:
		return d.pushValue(value.Uint64(uint64(binary.BigEndian.Uint16(d.scratch))))
	case paInt32:
		return d.pushValue(value.Int(int64(int32(binary.BigEndian.Uint32(d.scratch)))))
	case paUint32:
		return d.pushValue(value.Uint64(uint64(binary.BigEndian.Uint32(d.scratch))))
	case paInt64:
		return d.pushValue(value.Int(int64(binary.BigEndian.Uint64(d.scratch))))
	case paFloat32:
		bits := binary.BigEndian.Uint32(d.scratch)
		return d.pushValue(value.Double(float64(math.Float32frombits(bits))))
	case paFloat64:
		bits := binary.BigEndian.Uint64(d.scratch)
		return d.pushValue(value.Double(math.Float64frombits(bits)))
	case paStrLen1:
		return d.startStringPayload(int(d.scratch[0]))
	case paStrLen2:
		return d.startStringPayload(int(binary.BigEndian.Uint16(d.scratch)))
	case paStrLen4:
		return d.startStringPayload(int(binary.BigEndian.Uint32(d.scratch)))
	case paBinLen1:
		return d.startBinPayload(int(d.scratch[0]))
	case paBinLen2:
		return d.startBinPayload(int(binary.BigEndian.Uint16(d.scratch)))
	case paBinLen4:
		return d.startBinPayload(int(binary.BigEndian.Uint32(d.scratch)))
	case paArrayLen2:
		return d.startContainer(frameArray, int(binary.BigEndian.Uint16(d.scratch)))
	case paArrayLen4:
		return d.startContainer(frameArray, int(binary.BigEndian.Uint32(d.scratch)))
	case paMapLen2:
		return d.startContainer(frameMap, int(binary.BigEndian.Uint16(d.scratch)))
	case paMapLen4:
		return d.startContainer(frameMap, int(binary.BigEndian.Uint32(d.scratch)))
	default:
		return false, fmt.Errorf("decoder in invalid pending-header state")
	}
}

func (d *Decoder) startStringPayload(length int) (bool, error) {
	if length == 0 {
		return d.pushValue(value.U8Str(""))
	}
	d.state = dsPayload
	d.need = length
	d.scratch = d.scratch[:0]
	d.payloadIsString = true
	return false, nil
}

func (d *Decoder) startBinPayload(length int) (bool, error) {
	if length == 0 {
		return d.pushValue(value.Binary(nil))
	}
	d.state = dsPayload
	d.need = length
	d.scratch = d.scratch[:0]
	d.payloadIsString = false
	return false, nil
}

func (d *Decoder) feedPayload(b byte) (bool, error) {
	d.scratch = append(d.scratch, b)
	d.need--
	if d.need > 0 {
		return false, nil
	}
	d.state = dsLead
	if d.payloadIsString {
		return d.pushValue(value.U8Str(string(d.scratch)))
	}
	return d.pushValue(value.Binary(d.scratch))
}

// startContainer opens a fixarray/fixmap/array16/.../map32 family: an
// empty container is emitted immediately (pushValue), otherwise a
// frame is pushed and the next lead byte begins its first element.
func (d *Decoder) startContainer(kind frameKind, count int) (bool, error) {
	if count == 0 {
		if kind == frameArray {
			return d.pushValue(value.NewArray())
		}
		return d.pushValue(value.NewMap())
	}
	f := &frame{kind: kind, remaining: count}
	switch kind {
	case frameArray:
		f.arr = value.NewArray()
		am, _ := f.arr.AsMutableArray()
		f.am = am
	case frameMap:
		f.mp = value.NewMap()
		mm, _ := f.mp.AsMutableMap()
		f.mm = mm
		f.expectKey = true
	}
	d.frames = append(d.frames, f)
	return false, nil
}

// pushValue attaches v to the innermost open frame, or -- if none is
// open -- records it as the decoded result (spec §4.4.1's recursive
// element/pair reading), exactly mirroring ellisjson's single
// attachment point.
func (d *Decoder) pushValue(v value.Value) (bool, error) {
	top := d.topFrame()
	if top == nil {
		d.result = v
		return true, nil
	}
	switch top.kind {
	case frameArray:
		top.am.Append(v)
		top.remaining--
		if top.remaining == 0 {
			d.frames = d.frames[:len(d.frames)-1]
			return d.pushValue(top.arr)
		}
		return false, nil
	case frameMap:
		if top.expectKey {
			s, err := v.AsU8Str()
			if err != nil {
				return false, fmt.Errorf("map key must be a string, got %s", v.Type())
			}
			top.key = s
			top.expectKey = false
			return false, nil
		}
		top.mm.Set(top.key, v)
		top.expectKey = true
		top.remaining--
		if top.remaining == 0 {
			d.frames = d.frames[:len(d.frames)-1]
			return d.pushValue(top.mp)
		}
		return false, nil
	default:
		return false, fmt.Errorf("decoder in invalid frame state")
	}
}
