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

// Package codec defines the uniform streaming contract shared by every
// Ellis encoder and decoder (spec §4.2): the Disposition result type,
// the Decoder/Encoder interfaces, and the closed Error taxonomy (spec
// §7) every codec raises errors against.
package codec

import (
	"fmt"
	"runtime"
)

// Kind is the closed set of error kinds a codec (or the façade driving
// it) may raise (spec §7).
type Kind int

const (
	// TypeMismatch: wrong variant for the operation.
	TypeMismatch Kind = iota
	// InvalidArgs: out-of-range index, null pathname, malformed extension.
	InvalidArgs
	// PathFail: path parse error or traversal mismatch.
	PathFail
	// ParseFail: malformed wire input.
	ParseFail
	// IO: upstream stream reported inability to deliver/accept bytes.
	IO
	// TranslateFail: no registered format could decode/encode a file.
	TranslateFail
	// NoSuch: no format registered for a requested extension.
	NoSuch
)

func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "TYPE_MISMATCH"
	case InvalidArgs:
		return "INVALID_ARGS"
	case PathFail:
		return "PATH_FAIL"
	case ParseFail:
		return "PARSE_FAIL"
	case IO:
		return "IO"
	case TranslateFail:
		return "TRANSLATE_FAIL"
	case NoSuch:
		return "NO_SUCH"
	default:
		return "UNKNOWN"
	}
}

// Error is Ellis's structured error record (spec §3.4): a kind, a
// free-form message, and the source-site file/line where it was
// raised, plus an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	File    string
	Line    int
	Cause   error
}

// NewError constructs an Error, capturing the file/line of its caller
// (the raising site), analogous to the original's MAKE_ELLIS_ERR
// macro expanding __FILE__/__LINE__ at the point of the throw.
func NewError(kind Kind, format string, args ...any) *Error {
	_, file, line, _ := runtime.Caller(1)
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		File:    file,
		Line:    line,
	}
}

// Wrap constructs an Error with an underlying cause, preserving both
// the new structured context and the original error via Unwrap.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	_, file, line, _ := runtime.Caller(1)
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		File:    file,
		Line:    line,
		Cause:   cause,
	}
}

// Error implements the error interface, returning the human-readable
// summary spec §7 requires: message plus source file and line.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s:%d)", e.Kind, e.Message, e.File, e.Line)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }
