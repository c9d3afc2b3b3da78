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

// Package ellisjson implements the JSON codec: a character-driven
// tokenizer, an LL(1) table-driven parser over those tokens, and a
// single-pass pretty-printing encoder.
package ellisjson

import (
	"fmt"
)

type tokKind int

const (
	tokNone tokKind = iota
	tokLeftCurly
	tokRightCurly
	tokLeftSquare
	tokRightSquare
	tokColon
	tokComma
	tokString
	tokInteger
	tokReal
	tokTrue
	tokFalse
	tokNil
	tokEOS
)

func (k tokKind) String() string {
	switch k {
	case tokLeftCurly:
		return "{"
	case tokRightCurly:
		return "}"
	case tokLeftSquare:
		return "["
	case tokRightSquare:
		return "]"
	case tokColon:
		return ":"
	case tokComma:
		return ","
	case tokString:
		return "STRING"
	case tokInteger:
		return "INTEGER"
	case tokReal:
		return "REAL"
	case tokTrue:
		return "TRUE"
	case tokFalse:
		return "FALSE"
	case tokNil:
		return "NIL"
	case tokEOS:
		return "EOS"
	default:
		return "NONE"
	}
}

// token is a recognized lexical unit. text carries the decoded string
// content (tokString) or the raw literal text (tokInteger, tokReal),
// and is otherwise empty.
type token struct {
	kind tokKind
	text []byte
}

type lexState int

const (
	lexInit lexState = iota
	lexString
	lexEsc
	lexEscU1
	lexEscU2
	lexEscU3
	lexEscU4
	lexNegSign
	lexZero
	lexInt
	lexFrac
	lexFracMore
	lexExp
	lexExpSign
	lexExpMore
	lexCommentSlash2
	lexComment
	lexBareword
	lexEnd
	lexError
)

// lexer is the resumable, byte-at-a-time JSON tokenizer (spec §4.3.1).
// It is fed one byte at a time via step; a terminal state, reached by
// a lookahead byte that does not belong to the token in progress, both
// emits the completed token and reports that the triggering byte must
// be replayed as the start of the next token.
type lexer struct {
	state    lexState
	scratch  []byte
	uEsc     rune
	uEscLeft int
}

func newLexer() *lexer { return &lexer{} }

func (lx *lexer) reset() {
	lx.state = lexInit
	lx.scratch = lx.scratch[:0]
	lx.uEsc = 0
	lx.uEscLeft = 0
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isAlnum(b byte) bool { return isAlpha(b) || isDigit(b) }

func isWS(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isNumContinuation(s lexState) bool {
	switch s {
	case lexZero, lexInt, lexFracMore, lexExpMore:
		return true
	default:
		return false
	}
}

// step feeds one byte to the lexer. If a complete token was recognized,
// tok.kind is non-zero (tokNone otherwise) and have is true. If
// reprocess is true, the same byte b must be fed to step again (it
// belongs to whatever comes next) once the caller has dealt with tok.
func (lx *lexer) step(b byte) (tok token, have bool, reprocess bool, err error) {
	switch lx.state {
	case lexInit:
		switch {
		case isWS(b):
			return token{}, false, false, nil
		case b == '{':
			return token{kind: tokLeftCurly}, true, false, nil
		case b == '}':
			return token{kind: tokRightCurly}, true, false, nil
		case b == '[':
			return token{kind: tokLeftSquare}, true, false, nil
		case b == ']':
			return token{kind: tokRightSquare}, true, false, nil
		case b == ':':
			return token{kind: tokColon}, true, false, nil
		case b == ',':
			return token{kind: tokComma}, true, false, nil
		case b == '"':
			lx.scratch = lx.scratch[:0]
			lx.state = lexString
			return token{}, false, false, nil
		case b == '-':
			lx.scratch = append(lx.scratch[:0], b)
			lx.state = lexNegSign
			return token{}, false, false, nil
		case b == '0':
			lx.scratch = append(lx.scratch[:0], b)
			lx.state = lexZero
			return token{}, false, false, nil
		case b >= '1' && b <= '9':
			lx.scratch = append(lx.scratch[:0], b)
			lx.state = lexInt
			return token{}, false, false, nil
		case b == '/':
			lx.state = lexCommentSlash2
			return token{}, false, false, nil
		case isAlpha(b):
			lx.scratch = append(lx.scratch[:0], b)
			lx.state = lexBareword
			return token{}, false, false, nil
		default:
			return token{}, false, false, fmt.Errorf("ellisjson: unexpected character %q", b)
		}

	case lexString:
		switch b {
		case '"':
			tok = token{kind: tokString, text: append([]byte(nil), lx.scratch...)}
			lx.state = lexInit
			return tok, true, false, nil
		case '\\':
			lx.state = lexEsc
			return token{}, false, false, nil
		default:
			lx.scratch = append(lx.scratch, b)
			return token{}, false, false, nil
		}

	case lexEsc:
		switch b {
		case 'b':
			lx.scratch = append(lx.scratch, '\b')
			lx.state = lexString
		case 'f':
			lx.scratch = append(lx.scratch, '\f')
			lx.state = lexString
		case 'n':
			lx.scratch = append(lx.scratch, '\n')
			lx.state = lexString
		case 'r':
			lx.scratch = append(lx.scratch, '\r')
			lx.state = lexString
		case 't':
			lx.scratch = append(lx.scratch, '\t')
			lx.state = lexString
		case '"':
			lx.scratch = append(lx.scratch, '"')
			lx.state = lexString
		case '\\':
			lx.scratch = append(lx.scratch, '\\')
			lx.state = lexString
		case '/':
			lx.scratch = append(lx.scratch, '/')
			lx.state = lexString
		case 'u':
			lx.uEsc = 0
			lx.uEscLeft = 4
			lx.state = lexEscU1
		default:
			return token{}, false, false, fmt.Errorf("ellisjson: invalid escape %q", b)
		}
		return token{}, false, false, nil

	case lexEscU1, lexEscU2, lexEscU3, lexEscU4:
		d, ok := hexDigit(b)
		if !ok {
			return token{}, false, false, fmt.Errorf("ellisjson: invalid \\u hex digit %q", b)
		}
		lx.uEsc = lx.uEsc<<4 | rune(d)
		lx.uEscLeft--
		if lx.uEscLeft == 0 {
			lx.scratch = appendUTF8FromCodepoint(lx.scratch, lx.uEsc)
			lx.state = lexString
			return token{}, false, false, nil
		}
		lx.state++ // lexEscU1 -> lexEscU2 -> lexEscU3 -> lexEscU4
		return token{}, false, false, nil

	case lexNegSign:
		switch {
		case b == '0':
			lx.scratch = append(lx.scratch, b)
			lx.state = lexZero
			return token{}, false, false, nil
		case isDigit(b):
			lx.scratch = append(lx.scratch, b)
			lx.state = lexInt
			return token{}, false, false, nil
		default:
			return token{}, false, false, fmt.Errorf("ellisjson: expected digit after '-', got %q", b)
		}

	case lexZero, lexInt:
		switch {
		case isDigit(b):
			if lx.state == lexZero {
				return token{}, false, false, fmt.Errorf("ellisjson: leading zero may not be followed by a digit")
			}
			lx.scratch = append(lx.scratch, b)
			return token{}, false, false, nil
		case b == '.':
			lx.scratch = append(lx.scratch, b)
			lx.state = lexFrac
			return token{}, false, false, nil
		case b == 'e' || b == 'E':
			lx.scratch = append(lx.scratch, b)
			lx.state = lexExp
			return token{}, false, false, nil
		default:
			tok = token{kind: tokInteger, text: append([]byte(nil), lx.scratch...)}
			lx.state = lexInit
			return tok, true, true, nil
		}

	case lexFrac:
		if !isDigit(b) {
			return token{}, false, false, fmt.Errorf("ellisjson: expected digit after '.', got %q", b)
		}
		lx.scratch = append(lx.scratch, b)
		lx.state = lexFracMore
		return token{}, false, false, nil

	case lexFracMore:
		switch {
		case isDigit(b):
			lx.scratch = append(lx.scratch, b)
			return token{}, false, false, nil
		case b == 'e' || b == 'E':
			lx.scratch = append(lx.scratch, b)
			lx.state = lexExp
			return token{}, false, false, nil
		default:
			tok = token{kind: tokReal, text: append([]byte(nil), lx.scratch...)}
			lx.state = lexInit
			return tok, true, true, nil
		}

	case lexExp:
		switch {
		case b == '+' || b == '-':
			lx.scratch = append(lx.scratch, b)
			lx.state = lexExpSign
			return token{}, false, false, nil
		case isDigit(b):
			lx.scratch = append(lx.scratch, b)
			lx.state = lexExpMore
			return token{}, false, false, nil
		default:
			return token{}, false, false, fmt.Errorf("ellisjson: expected digit or sign after exponent marker, got %q", b)
		}

	case lexExpSign:
		if !isDigit(b) {
			return token{}, false, false, fmt.Errorf("ellisjson: expected digit in exponent, got %q", b)
		}
		lx.scratch = append(lx.scratch, b)
		lx.state = lexExpMore
		return token{}, false, false, nil

	case lexExpMore:
		if isDigit(b) {
			lx.scratch = append(lx.scratch, b)
			return token{}, false, false, nil
		}
		tok = token{kind: tokReal, text: append([]byte(nil), lx.scratch...)}
		lx.state = lexInit
		return tok, true, true, nil

	case lexCommentSlash2:
		if b != '/' {
			return token{}, false, false, fmt.Errorf("ellisjson: expected '//' to begin a comment, got '/%c'", b)
		}
		lx.state = lexComment
		return token{}, false, false, nil

	case lexComment:
		if b == '\n' {
			lx.state = lexInit
		}
		return token{}, false, false, nil

	case lexBareword:
		if isAlnum(b) {
			lx.scratch = append(lx.scratch, b)
			return token{}, false, false, nil
		}
		tok, err = resolveBareword(lx.scratch)
		lx.state = lexInit
		return tok, err == nil, err == nil, err

	default:
		return token{}, false, false, fmt.Errorf("ellisjson: lexer in error state")
	}
}

// atEOS reports whether the lexer's current in-progress token, if any,
// is a valid completion at end-of-stream (numeric and bareword states
// may terminate at EOS; strings, escapes, and exponents may not).
func (lx *lexer) atEOS() (tok token, have bool, err error) {
	switch lx.state {
	case lexInit:
		return token{kind: tokEOS}, true, nil
	case lexZero, lexInt:
		return token{kind: tokInteger, text: append([]byte(nil), lx.scratch...)}, true, nil
	case lexFracMore, lexExpMore:
		return token{kind: tokReal, text: append([]byte(nil), lx.scratch...)}, true, nil
	case lexBareword:
		tok, err = resolveBareword(lx.scratch)
		return tok, err == nil, err
	case lexComment:
		return token{kind: tokEOS}, true, nil
	default:
		return token{}, false, fmt.Errorf("ellisjson: unexpected end of input mid-token")
	}
}

func resolveBareword(b []byte) (token, error) {
	switch string(b) {
	case "true":
		return token{kind: tokTrue}, nil
	case "false":
		return token{kind: tokFalse}, nil
	case "null":
		return token{kind: tokNil}, nil
	default:
		return token{}, fmt.Errorf("ellisjson: unrecognized bareword %q", b)
	}
}

func hexDigit(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

// appendUTF8FromCodepoint encodes cp as UTF-8 and appends it to buf.
// Code points in the UTF-16 surrogate range D800-DFFF are dropped
// silently rather than raising an error, matching the original's
// behavior (spec §4.3.1).
func appendUTF8FromCodepoint(buf []byte, cp rune) []byte {
	if cp >= 0xD800 && cp <= 0xDFFF {
		return buf
	}
	switch {
	case cp < 0x80:
		return append(buf, byte(cp))
	case cp < 0x800:
		return append(buf,
			byte(0xC0|(cp>>6)),
			byte(0x80|(cp&0x3F)),
		)
	case cp < 0x10000:
		return append(buf,
			byte(0xE0|(cp>>12)),
			byte(0x80|((cp>>6)&0x3F)),
			byte(0x80|(cp&0x3F)),
		)
	default:
		return append(buf,
			byte(0xF0|(cp>>18)),
			byte(0x80|((cp>>12)&0x3F)),
			byte(0x80|((cp>>6)&0x3F)),
			byte(0x80|(cp&0x3F)),
		)
	}
}
