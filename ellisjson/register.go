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
	"github.com/ellisdata/ellis/registry"
)

// FormatName and Extension identify this codec in a registry.Registry
// (spec §4 "each expose a Register(*registry.Registry)").
const (
	FormatName = "builtin.json"
	Extension  = "json"
)

// Register installs this codec's decoder/encoder constructors into r.
// Unlike ellistext, JSON does not self-register at package init --
// spec §4.5 mandates auto-registration only for the delimited-text
// decoder; callers wire JSON in explicitly (cmd/ellis does this for
// registry.Default).
func Register(r *registry.Registry) {
	r.Register(registry.Format{
		Name:       FormatName,
		Extensions: []string{Extension},
		NewDecoder: func() codec.Decoder { return NewDecoder() },
		NewEncoder: func() codec.Encoder { return NewEncoder() },
	})
}
