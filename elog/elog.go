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

// Package elog is the ambient logging substrate for this module: a
// minimal leveled Logger interface plus a standard-library-backed
// default implementation.
package elog

import (
	"log"
	"os"
)

// Logger is the leveled logging interface used throughout this
// module. Callers format with printf-style verbs; implementations
// decide what to do with each level.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Std is a Logger backed by the standard library's log package, which
// prefixes each message with its level. The embedded *log.Logger must
// be non-nil (the zero value has none); NewStd returns one that writes
// to os.Stderr.
type Std struct {
	*log.Logger
	// Debug suppresses Debugf output when false (debug logging is
	// noisy enough that it should be opt-in).
	Debug bool
}

// NewStd returns a Std that writes to os.Stderr.
func NewStd() *Std {
	return &Std{Logger: log.New(os.Stderr, "", log.LstdFlags)}
}

func (s *Std) Debugf(format string, args ...any) {
	if !s.Debug {
		return
	}
	s.Printf("DEBUG "+format, args...)
}

func (s *Std) Infof(format string, args ...any) {
	s.Printf("INFO "+format, args...)
}

func (s *Std) Warnf(format string, args ...any) {
	s.Printf("WARN "+format, args...)
}

func (s *Std) Errorf(format string, args ...any) {
	s.Printf("ERROR "+format, args...)
}

var _ Logger = (*Std)(nil)
