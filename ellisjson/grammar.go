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

import "fmt"

// nonterminal enumerates the grammar's nonterminals (spec §4.3.2).
type nonterminal int

const (
	ntVAL nonterminal = iota
	ntARR
	ntARRCONT
	ntARRETC
	ntMAP
	ntMAPCONT
	ntMAPPAIR
	ntMAPETC
	numNonterminals
)

func (nt nonterminal) String() string {
	switch nt {
	case ntVAL:
		return "VAL"
	case ntARR:
		return "ARR"
	case ntARRCONT:
		return "ARR_CONT"
	case ntARRETC:
		return "ARR_ETC"
	case ntMAP:
		return "MAP"
	case ntMAPCONT:
		return "MAP_CONT"
	case ntMAPPAIR:
		return "MAP_PAIR"
	case ntMAPETC:
		return "MAP_ETC"
	default:
		return "?"
	}
}

// symRole distinguishes the two ways a STRING terminal appears in the
// grammar: as a VAL (an ordinary string value) or as a MAP_PAIR key.
// Every other terminal is structural or is unambiguously a value.
type symRole int

const (
	roleStructural symRole = iota
	roleValue
	roleKey
)

// sym is one symbol of a rule's right-hand side: either a terminal
// token kind (with its semantic role) or a nonterminal to expand.
type sym struct {
	isTerm bool
	term   tokKind
	role   symRole
	nt     nonterminal
}

func t(k tokKind) sym       { return sym{isTerm: true, term: k, role: roleValue} }
func tStruct(k tokKind) sym { return sym{isTerm: true, term: k, role: roleStructural} }
func tKey(k tokKind) sym    { return sym{isTerm: true, term: k, role: roleKey} }
func nt(n nonterminal) sym  { return sym{isTerm: false, nt: n} }

// rule is one production. The numbering here is arbitrary but fixed;
// it only needs to be stable within a process.
type rule struct {
	lhs nonterminal
	rhs []sym
}

// grammar is the full production set for spec §4.3.2's LL(1) grammar,
// completed to include the MAP production (the original's g_rules
// table left this commented out; this implementation needs it live).
var grammar = []rule{
	// VAL → ARR | MAP | STRING | INTEGER | REAL | TRUE | FALSE | NIL
	{ntVAL, []sym{nt(ntARR)}},
	{ntVAL, []sym{nt(ntMAP)}},
	{ntVAL, []sym{t(tokString)}},
	{ntVAL, []sym{t(tokInteger)}},
	{ntVAL, []sym{t(tokReal)}},
	{ntVAL, []sym{t(tokTrue)}},
	{ntVAL, []sym{t(tokFalse)}},
	{ntVAL, []sym{t(tokNil)}},

	// ARR → '[' ARR_CONT
	{ntARR, []sym{tStruct(tokLeftSquare), nt(ntARRCONT)}},

	// ARR_CONT → ']' | VAL ARR_ETC
	{ntARRCONT, []sym{tStruct(tokRightSquare)}},
	{ntARRCONT, []sym{nt(ntVAL), nt(ntARRETC)}},

	// ARR_ETC → ']' | ',' VAL ARR_ETC
	{ntARRETC, []sym{tStruct(tokRightSquare)}},
	{ntARRETC, []sym{tStruct(tokComma), nt(ntVAL), nt(ntARRETC)}},

	// MAP → '{' MAP_CONT
	{ntMAP, []sym{tStruct(tokLeftCurly), nt(ntMAPCONT)}},

	// MAP_CONT → '}' | MAP_PAIR MAP_ETC
	{ntMAPCONT, []sym{tStruct(tokRightCurly)}},
	{ntMAPCONT, []sym{nt(ntMAPPAIR), nt(ntMAPETC)}},

	// MAP_PAIR → STRING ':' VAL
	{ntMAPPAIR, []sym{tKey(tokString), tStruct(tokColon), nt(ntVAL)}},

	// MAP_ETC → '}' | ',' MAP_PAIR MAP_ETC
	{ntMAPETC, []sym{tStruct(tokRightCurly)}},
	{ntMAPETC, []sym{tStruct(tokComma), nt(ntMAPPAIR), nt(ntMAPETC)}},
}

// parseTable[nt][token] = index into grammar, built once at package
// init by buildTable (spec §4.3.2 "Table construction").
var parseTable [numNonterminals][tokEOS + 1]int

const noRule = -1

func init() {
	for nti := range parseTable {
		for ti := range parseTable[nti] {
			parseTable[nti][ti] = noRule
		}
	}
	if err := buildTable(); err != nil {
		panic(err)
	}
}

// buildTable implements spec §4.3.2's table construction: direct
// productions (RHS begins with a token) are recorded first, then the
// table is grown to closure by following productions whose RHS begins
// with another nonterminal, iterating until a pass writes no new
// cell. Two rules inducing the same cell with different rule indices
// is a construction-time error.
func buildTable() error {
	set := func(n nonterminal, tk tokKind, rIdx int) error {
		cur := parseTable[n][tk]
		if cur != noRule && cur != rIdx {
			return fmt.Errorf("ellisjson: grammar ambiguous at (%s, %s): rules %d and %d", n, tk, cur, rIdx)
		}
		parseTable[n][tk] = rIdx
		return nil
	}

	// direct productions
	for i, r := range grammar {
		if len(r.rhs) == 0 {
			continue
		}
		first := r.rhs[0]
		if first.isTerm {
			if err := set(r.lhs, first.term, i); err != nil {
				return err
			}
		}
	}

	// closure: propagate through nonterminal-led productions until a
	// pass makes no change.
	for {
		changed := false
		for i, r := range grammar {
			first := r.rhs[0]
			if first.isTerm {
				continue
			}
			for tk := tokKind(0); tk <= tokEOS; tk++ {
				src := parseTable[first.nt][tk]
				if src == noRule {
					continue
				}
				if parseTable[r.lhs][tk] != i {
					if err := set(r.lhs, tk, i); err != nil {
						return err
					}
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return nil
}
