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
	"fmt"
	"strconv"

	"github.com/ellisdata/ellis/value"
)

type builderKind int

const (
	buildArray builderKind = iota
	buildMap
)

// builder is one in-progress container frame (spec §4.3.2 "container
// rules collect children via side effects").
type builder struct {
	kind builderKind
	arr  value.Value
	am   *value.Array
	mp   value.Value
	mm   *value.Map
	key  string
	hasK bool
}

// parser drives the LL(1) table over a token stream with an explicit
// stack of grammar symbols, so it can suspend between tokens without
// relying on the Go call stack (needed for byte-level resumability:
// recursive descent would have to unwind/resume an arbitrary call
// chain across buffer boundaries, which Go cannot do).
type parser struct {
	stack    []sym
	builders []*builder
	result   value.Value
	done     bool
}

func newParser() *parser {
	p := &parser{}
	p.reset()
	return p
}

func (p *parser) reset() {
	p.stack = append(p.stack[:0], nt(ntVAL))
	p.builders = p.builders[:0]
	p.result = value.Value{}
	p.done = false
}

// feed advances the parser by one token (spec §4.3.2 "Parse stack").
// done reports whether this token completed the artifact (stack now
// empty); err is non-nil on a syntax error.
func (p *parser) feed(tok token) (done bool, err error) {
	if p.done {
		return false, fmt.Errorf("ellisjson: parser fed a token after completion; call reset")
	}
	for {
		if len(p.stack) == 0 {
			return false, fmt.Errorf("ellisjson: parser stack empty before token consumed")
		}
		top := p.stack[len(p.stack)-1]
		if top.isTerm {
			if top.term != tok.kind {
				return false, fmt.Errorf("ellisjson: unexpected token %s, wanted %s", tok.kind, top.term)
			}
			p.stack = p.stack[:len(p.stack)-1]
			if err := p.apply(top, tok); err != nil {
				return false, err
			}
			if len(p.stack) == 0 {
				p.done = true
				return true, nil
			}
			return false, nil
		}
		ruleIdx := parseTable[top.nt][tok.kind]
		if ruleIdx == noRule {
			return false, fmt.Errorf("ellisjson: unexpected token %s while expecting %s", tok.kind, top.nt)
		}
		r := grammar[ruleIdx]
		p.stack = p.stack[:len(p.stack)-1]
		for i := len(r.rhs) - 1; i >= 0; i-- {
			p.stack = append(p.stack, r.rhs[i])
		}
		// loop again: re-examine the new stack top against the same token
	}
}

// apply runs the semantic action tied to matching terminal sy against
// tok (spec §4.3.2's "semantic actions"): pushing leaf values,
// starting/finishing containers, and pairing map keys with values.
func (p *parser) apply(sy sym, tok token) error {
	switch sy.term {
	case tokLeftSquare:
		b := &builder{kind: buildArray, arr: value.NewArray()}
		am, _ := b.arr.AsMutableArray() // owner aliases b.arr itself, not a copy
		b.am = am
		p.builders = append(p.builders, b)
		return nil

	case tokRightSquare:
		return p.finishContainer()

	case tokLeftCurly:
		b := &builder{kind: buildMap, mp: value.NewMap()}
		mm, _ := b.mp.AsMutableMap() // owner aliases b.mp itself, not a copy
		b.mm = mm
		p.builders = append(p.builders, b)
		return nil

	case tokRightCurly:
		return p.finishContainer()

	case tokColon, tokComma:
		return nil

	case tokString:
		if sy.role == roleKey {
			top := p.topBuilder()
			if top == nil || top.kind != buildMap {
				return fmt.Errorf("ellisjson: map key encountered outside a map")
			}
			top.key = string(tok.text)
			top.hasK = true
			return nil
		}
		return p.pushValue(value.U8Str(string(tok.text)))

	case tokInteger:
		n, err := strconv.ParseInt(string(tok.text), 10, 64)
		if err != nil {
			return fmt.Errorf("ellisjson: invalid integer literal %q: %w", tok.text, err)
		}
		return p.pushValue(value.Int(n))

	case tokReal:
		f, err := strconv.ParseFloat(string(tok.text), 64)
		if err != nil {
			return fmt.Errorf("ellisjson: invalid real literal %q: %w", tok.text, err)
		}
		return p.pushValue(value.Double(f))

	case tokTrue:
		return p.pushValue(value.Bool(true))

	case tokFalse:
		return p.pushValue(value.Bool(false))

	case tokNil:
		return p.pushValue(value.Nil())

	default:
		return fmt.Errorf("ellisjson: no semantic action for token %s", sy.term)
	}
}

func (p *parser) topBuilder() *builder {
	if len(p.builders) == 0 {
		return nil
	}
	return p.builders[len(p.builders)-1]
}

// finishContainer pops the innermost builder and attaches the
// container it produced to whatever is outside it (the parent
// container, or the top-level result if none).
func (p *parser) finishContainer() error {
	n := len(p.builders)
	if n == 0 {
		return fmt.Errorf("ellisjson: unmatched closing bracket")
	}
	top := p.builders[n-1]
	p.builders = p.builders[:n-1]
	switch top.kind {
	case buildArray:
		return p.pushValue(top.arr)
	case buildMap:
		return p.pushValue(top.mp)
	default:
		panic("unreachable")
	}
}

// pushValue attaches a fully-formed VAL to its parent (the current
// builder) or, if there is no enclosing builder, records it as the
// final decoded result.
func (p *parser) pushValue(v value.Value) error {
	top := p.topBuilder()
	if top == nil {
		p.result = v
		return nil
	}
	switch top.kind {
	case buildArray:
		top.am.Append(v)
	case buildMap:
		if !top.hasK {
			return fmt.Errorf("ellisjson: map value without a preceding key")
		}
		top.mm.Set(top.key, v)
		top.hasK = false
	}
	return nil
}
