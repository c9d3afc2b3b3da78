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

// Package registry implements the format registry described in spec
// §6.3: a process-wide directory mapping a unique format name, and any
// number of file extensions, to the constructors that build its
// Decoder/Encoder pair.
package registry

import (
	"sync"

	"github.com/ellisdata/ellis/codec"
)

// Format describes one registered codec: its unique name, the file
// extensions it claims, and constructors for fresh Decoder/Encoder
// instances (spec §6.3 -- one Format per registration, never shared
// mutable decoder/encoder state across callers).
type Format struct {
	Name       string
	Extensions []string
	NewDecoder func() codec.Decoder
	NewEncoder func() codec.Encoder
}

// Registry is a process-wide unique_name → Format and
// extension → []Format directory (spec §6.3), guarded by a
// sync.RWMutex per spec §5's "if this assumption is relaxed, registry
// access must be serialized" (read-mostly, write-rarely at startup).
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Format
	byExt  map[string][]Format
}

// New returns an empty Registry. The package-level Default is the one
// ellistext self-registers into; ellisjson and ellismsgpack are added
// to it only by an explicit Register call.
func New() *Registry {
	return &Registry{
		byName: make(map[string]Format),
		byExt:  make(map[string][]Format),
	}
}

// Default is the global registry instance spec §6.3 describes:
// ellistext registers itself here via init(), and cmd/ellis registers
// ellisjson and ellismsgpack here and passes it to ellisfacade's *Auto
// functions, which always take the *Registry to consult as an argument.
var Default = New()

// Register installs f under its unique name, and indexes it under
// each of its extensions. Registering a name that already exists
// replaces the prior registration (spec leaves last-registration-wins
// unspecified but requires no panic/error return).
func (r *Registry) Register(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byName[f.Name]; ok {
		r.removeFromExtIndexLocked(old)
	}
	r.byName[f.Name] = f
	for _, ext := range f.Extensions {
		r.byExt[ext] = append(r.byExt[ext], f)
	}
}

// Deregister removes the format registered under name, if any.
func (r *Registry) Deregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byName[name]
	if !ok {
		return
	}
	delete(r.byName, name)
	r.removeFromExtIndexLocked(f)
}

func (r *Registry) removeFromExtIndexLocked(f Format) {
	for _, ext := range f.Extensions {
		list := r.byExt[ext]
		for i, c := range list {
			if c.Name == f.Name {
				r.byExt[ext] = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(r.byExt[ext]) == 0 {
			delete(r.byExt, ext)
		}
	}
}

// Lookup returns the Format registered under name.
func (r *Registry) Lookup(name string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byName[name]
	return f, ok
}

// ByExtension returns every Format that claims ext, in registration
// order. A caller (ellisfacade's LoadAuto) tries each in turn.
func (r *Registry) ByExtension(ext string) []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.byExt[ext]
	out := make([]Format, len(list))
	copy(out, list)
	return out
}
