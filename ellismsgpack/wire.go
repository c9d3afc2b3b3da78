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

// Package ellismsgpack implements the MessagePack codec (spec §4.4): a
// lead-byte type-family dispatch over the supported wire subset, with
// an explicit resumable state machine on the decoder side (lifting the
// original's whole-node-only suspension) and narrowest-encoding choice
// on the encoder side.
package ellismsgpack

// Lead byte family markers for the MessagePack wire format. Named
// after the public MessagePack spec's own family names.
const (
	mpNilByte   = 0xc0
	mpReserved  = 0xc1 // never used; decoding it is an error
	mpFalse     = 0xc2
	mpTrue      = 0xc3
	mpBin8      = 0xc4
	mpBin16     = 0xc5
	mpBin32     = 0xc6
	mpExt8      = 0xc7
	mpExt16     = 0xc8
	mpExt32     = 0xc9
	mpFloat32   = 0xca
	mpFloat64   = 0xcb
	mpUint8     = 0xcc
	mpUint16    = 0xcd
	mpUint32    = 0xce
	mpUint64    = 0xcf
	mpInt8      = 0xd0
	mpInt16     = 0xd1
	mpInt32     = 0xd2
	mpInt64     = 0xd3
	mpFixext1   = 0xd4
	mpFixext2   = 0xd5
	mpFixext4   = 0xd6
	mpFixext8   = 0xd7
	mpFixext16  = 0xd8
	mpStr8      = 0xd9
	mpStr16     = 0xda
	mpStr32     = 0xdb
	mpArray16   = 0xdc
	mpArray32   = 0xdd
	mpMap16     = 0xde
	mpMap32     = 0xdf
)

// Fixed-family ranges, tested with masks against the lead byte.
const (
	fixmapMask    = 0xf0
	fixmapTag     = 0x80
	fixarrayMask  = 0xf0
	fixarrayTag   = 0x90
	fixstrMask    = 0xe0
	fixstrTag     = 0xa0
	posFixintMax  = 0x7f
	negFixintMask = 0xe0
	negFixintTag  = 0xe0
)

func isPosFixint(b byte) bool { return b <= posFixintMax }
func isNegFixint(b byte) bool { return b&negFixintMask == negFixintTag }
func isFixmap(b byte) bool    { return b&fixmapMask == fixmapTag }
func isFixarray(b byte) bool  { return b&fixarrayMask == fixarrayTag }
func isFixstr(b byte) bool    { return b&fixstrMask == fixstrTag }
