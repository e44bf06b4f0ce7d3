// Copyright SCIP Optimization Suite Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package certificate

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/scipopt/vipr-go/pkg/constraint"
	"github.com/scipopt/vipr-go/pkg/rational"
	"github.com/scipopt/vipr-go/pkg/scope"
	"github.com/scipopt/vipr-go/pkg/vector"
)

// reader wraps the lexer with the bookkeeping the section parsers share:
// the variable table (needed to size vectors and check integrality) and the
// running count of base constraints (needed to tell base from derived
// indices when reading DER).
type reader struct {
	lex       *lexer
	p         *Problem
	pushedTok *string
}

// Read parses a complete certificate from r in fixed section order
// (VER/VAR/INT/OBJ/CON/RTP/SOL/DER), returning the materialised Problem or a
// *SyntaxError naming the offending section and token.
func Read(r io.Reader) (*Problem, error) {
	rd := &reader{lex: newLexer(r), p: &Problem{Scope: scope.Empty()}}

	if err := rd.readVER(); err != nil {
		return nil, err
	}
	if err := rd.readVAR(); err != nil {
		return nil, err
	}
	if err := rd.readINT(); err != nil {
		return nil, err
	}
	if err := rd.readOBJ(); err != nil {
		return nil, err
	}
	if err := rd.readCON(); err != nil {
		return nil, err
	}
	if err := rd.readRTP(); err != nil {
		return nil, err
	}
	if err := rd.readSOL(); err != nil {
		return nil, err
	}
	if err := rd.readDER(); err != nil {
		return nil, err
	}

	return rd.p, nil
}

func (rd *reader) token(section string) (string, error) {
	if rd.pushedTok != nil {
		tok := *rd.pushedTok
		rd.pushedTok = nil
		return tok, nil
	}
	tok, ok := rd.lex.next()
	if !ok {
		return "", NewSyntaxError(section, "", "unexpected end of file")
	}
	return tok, nil
}

// peekToken returns the next token without consuming it.
func (rd *reader) peekToken(section string) (string, error) {
	if rd.pushedTok != nil {
		return *rd.pushedTok, nil
	}
	tok, err := rd.token(section)
	if err != nil {
		return "", err
	}
	rd.pushedTok = &tok
	return tok, nil
}

func (rd *reader) expect(section, want string) error {
	tok, err := rd.token(section)
	if err != nil {
		return err
	}
	if tok != want {
		return NewSyntaxError(section, tok, fmt.Sprintf("expected %q", want))
	}
	return nil
}

func (rd *reader) int(section string) (int, error) {
	tok, err := rd.token(section)
	if err != nil {
		return 0, err
	}
	n, perr := strconv.Atoi(tok)
	if perr != nil {
		return 0, NewSyntaxError(section, tok, "expected an integer")
	}
	return n, nil
}

func (rd *reader) rat(section string) (rational.Rat, error) {
	tok, err := rd.token(section)
	if err != nil {
		return rational.Rat{}, err
	}
	v, perr := rational.Parse(tok)
	if perr != nil {
		return rational.Rat{}, NewSyntaxError(section, tok, "expected a rational number")
	}
	return v, nil
}

func (rd *reader) readVER() error {
	const section = "VER"
	if err := rd.expect(section, section); err != nil {
		return err
	}
	tok, err := rd.token(section)
	if err != nil {
		return err
	}
	major, minor, ok := parseVersion(tok)
	if !ok {
		return NewSyntaxError(section, tok, "malformed version, expected MAJOR.MINOR")
	}
	if major != SupportedMajor || minor > MaxSupportedMinor {
		return NewSyntaxError(section, tok, "unsupported certificate version")
	}
	return nil
}

func parseVersion(tok string) (major, minor int, ok bool) {
	parts := strings.SplitN(tok, ".", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	maj, err1 := strconv.Atoi(parts[0])
	min, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return maj, min, true
}

func (rd *reader) readVAR() error {
	const section = "VAR"
	if err := rd.expect(section, section); err != nil {
		return err
	}
	n, err := rd.int(section)
	if err != nil {
		return err
	}
	if n < 0 {
		return NewSyntaxError(section, strconv.Itoa(n), "variable count must be nonnegative")
	}
	vars := make([]Variable, n)
	for i := 0; i < n; i++ {
		name, terr := rd.token(section)
		if terr != nil {
			return terr
		}
		vars[i] = Variable{Name: name}
	}
	rd.p.Variables = vars
	return nil
}

func (rd *reader) readINT() error {
	const section = "INT"
	if err := rd.expect(section, section); err != nil {
		return err
	}
	k, err := rd.int(section)
	if err != nil {
		return err
	}
	for i := 0; i < k; i++ {
		idx, ierr := rd.int(section)
		if ierr != nil {
			return ierr
		}
		if idx < 0 || idx >= len(rd.p.Variables) {
			return NewSyntaxError(section, strconv.Itoa(idx), "variable index out of range")
		}
		rd.p.Variables[idx].Integer = true
	}
	return nil
}

// readSparseVec reads either the literal OBJ token, or `k i_1 v_1 ... i_k
// v_k`. coefEqualsObj reports whether the literal OBJ form was used.
func (rd *reader) readSparseVec(section string) (vec *vector.Vector, coefEqualsObj bool, err error) {
	tok, err := rd.token(section)
	if err != nil {
		return nil, false, err
	}
	if tok == "OBJ" {
		if constraint.Objective() == nil {
			return nil, false, NewSyntaxError(section, tok, "OBJ referenced before the objective was parsed")
		}
		return constraint.Objective(), true, nil
	}

	k, perr := strconv.Atoi(tok)
	if perr != nil {
		return nil, false, NewSyntaxError(section, tok, "expected a sparse-vector length or OBJ")
	}
	v := vector.New()
	for i := 0; i < k; i++ {
		idx, ierr := rd.int(section)
		if ierr != nil {
			return nil, false, ierr
		}
		if idx < 0 || idx >= len(rd.p.Variables) {
			return nil, false, NewSyntaxError(section, strconv.Itoa(idx), "variable index out of range")
		}
		val, verr := rd.rat(section)
		if verr != nil {
			return nil, false, verr
		}
		v.Set(idx, val)
	}
	return v, false, nil
}

func (rd *reader) readOBJ() error {
	const section = "OBJ"
	if err := rd.expect(section, section); err != nil {
		return err
	}
	tok, err := rd.token(section)
	if err != nil {
		return err
	}
	switch tok {
	case "min":
		rd.p.ObjSense = Minimize
	case "max":
		rd.p.ObjSense = Maximize
	default:
		return NewSyntaxError(section, tok, "expected min or max")
	}

	// The objective vector is read as a plain sparse vector (never OBJ
	// itself) and becomes the shared object every later OBJ reference
	// borrows a handle to.
	k, perr := rd.int(section)
	if perr != nil {
		return perr
	}
	obj := vector.New()
	for i := 0; i < k; i++ {
		idx, ierr := rd.int(section)
		if ierr != nil {
			return ierr
		}
		if idx < 0 || idx >= len(rd.p.Variables) {
			return NewSyntaxError(section, strconv.Itoa(idx), "variable index out of range")
		}
		val, verr := rd.rat(section)
		if verr != nil {
			return verr
		}
		obj.Set(idx, val)
	}
	obj.Compactify()
	constraint.SetObjective(obj)
	rd.p.Objective = obj
	return nil
}

func parseSense(tok string) (constraint.Sense, bool) {
	switch tok {
	case "L":
		return constraint.LE, true
	case "E":
		return constraint.EQ, true
	case "G":
		return constraint.GE, true
	default:
		return 0, false
	}
}

func (rd *reader) readCON() error {
	const section = "CON"
	if err := rd.expect(section, section); err != nil {
		return err
	}
	m, err := rd.int(section)
	if err != nil {
		return err
	}
	// b = number of bounds, informational only.
	if _, err := rd.int(section); err != nil {
		return err
	}

	cons := make([]*constraint.Constraint, 0, m)
	for i := 0; i < m; i++ {
		label, lerr := rd.token(section)
		if lerr != nil {
			return lerr
		}
		senseTok, serr := rd.token(section)
		if serr != nil {
			return serr
		}
		sense, ok := parseSense(senseTok)
		if !ok {
			return NewSyntaxError(section, senseTok, "expected L, E, or G")
		}
		rhs, rerr := rd.rat(section)
		if rerr != nil {
			return rerr
		}
		coef, coefEqualsObj, verr := rd.readSparseVec(section)
		if verr != nil {
			return verr
		}
		if coefEqualsObj {
			coef = coef.Clone()
		}
		c := constraint.New(label, sense, rhs, coef, scope.Empty(), false, false)
		cons = append(cons, c)
	}
	rd.p.BaseConstraints = cons
	rd.p.NumberOfConstraints = m
	return nil
}

func (rd *reader) readRTP() error {
	const section = "RTP"
	if err := rd.expect(section, section); err != nil {
		return err
	}
	tok, err := rd.token(section)
	if err != nil {
		return err
	}
	switch tok {
	case "infeas":
		rd.p.RTP = RTP{Kind: RTPInfeasible}
		return nil
	case "range":
		lowTok, lerr := rd.token(section)
		if lerr != nil {
			return lerr
		}
		highTok, herr := rd.token(section)
		if herr != nil {
			return herr
		}
		rtp := RTP{Kind: RTPRange}
		if lowTok != "-inf" {
			v, perr := rational.Parse(lowTok)
			if perr != nil {
				return NewSyntaxError(section, lowTok, "expected a rational lower bound or -inf")
			}
			rtp.Lb = &v
		}
		if highTok != "inf" {
			v, perr := rational.Parse(highTok)
			if perr != nil {
				return NewSyntaxError(section, highTok, "expected a rational upper bound or inf")
			}
			rtp.Ub = &v
		}
		if rtp.Lb != nil && rtp.Ub != nil && rational.Cmp(*rtp.Lb, *rtp.Ub) > 0 {
			return NewSyntaxError(section, highTok, "lower bound exceeds upper bound")
		}
		rd.p.RTP = rtp
		return nil
	default:
		return NewSyntaxError(section, tok, "expected infeas or range")
	}
}

func (rd *reader) readSOL() error {
	const section = "SOL"
	if err := rd.expect(section, section); err != nil {
		return err
	}
	s, err := rd.int(section)
	if err != nil {
		return err
	}
	sols := make([]Solution, 0, s)
	for i := 0; i < s; i++ {
		label, lerr := rd.token(section)
		if lerr != nil {
			return lerr
		}
		vals, _, verr := rd.readSparseVec(section)
		if verr != nil {
			return verr
		}
		sols = append(sols, Solution{Label: label, Values: vals})
	}
	rd.p.Solutions = sols
	return nil
}

func (rd *reader) readDER() error {
	const section = "DER"
	if err := rd.expect(section, section); err != nil {
		return err
	}
	d, err := rd.int(section)
	if err != nil {
		return err
	}
	steps := make([]DerivationStep, 0, d)
	for i := 0; i < d; i++ {
		step, serr := rd.readDerivationStep(section)
		if serr != nil {
			return serr
		}
		steps = append(steps, step)
	}
	rd.p.Derivations = steps
	return nil
}

func (rd *reader) readDerivationStep(section string) (DerivationStep, error) {
	label, err := rd.token(section)
	if err != nil {
		return DerivationStep{}, err
	}
	senseTok, err := rd.token(section)
	if err != nil {
		return DerivationStep{}, err
	}
	sense, ok := parseSense(senseTok)
	if !ok {
		return DerivationStep{}, NewSyntaxError(section, senseTok, "expected L, E, or G")
	}
	rhs, err := rd.rat(section)
	if err != nil {
		return DerivationStep{}, err
	}
	coef, coefEqualsObj, err := rd.readSparseVec(section)
	if err != nil {
		return DerivationStep{}, err
	}
	if err := rd.expect(section, "{"); err != nil {
		return DerivationStep{}, err
	}
	reason, err := rd.readReason(section)
	if err != nil {
		return DerivationStep{}, err
	}
	if err := rd.expect(section, "}"); err != nil {
		return DerivationStep{}, err
	}
	maxRefIdx, err := rd.int(section)
	if err != nil {
		return DerivationStep{}, err
	}
	return DerivationStep{
		Label:         label,
		Sense:         sense,
		Rhs:           rhs,
		Coef:          coef,
		CoefEqualsObj: coefEqualsObj,
		Reason:        reason,
		MaxRefIdx:     maxRefIdx,
	}, nil
}

func (rd *reader) readReason(section string) (Reason, error) {
	kindTok, err := rd.token(section)
	if err != nil {
		return Reason{}, err
	}
	switch kindTok {
	case "asm":
		return Reason{Kind: ReasonAsm}, nil
	case "sol":
		return Reason{Kind: ReasonSol}, nil
	case "lin", "rnd":
		kind := ReasonLin
		if kindTok == "rnd" {
			kind = ReasonRnd
		}
		return rd.readLinOrRndReason(section, kind)
	case "uns":
		c1, err := rd.int(section)
		if err != nil {
			return Reason{}, err
		}
		a1, err := rd.int(section)
		if err != nil {
			return Reason{}, err
		}
		c2, err := rd.int(section)
		if err != nil {
			return Reason{}, err
		}
		a2, err := rd.int(section)
		if err != nil {
			return Reason{}, err
		}
		return Reason{Kind: ReasonUns, Con1: c1, Asm1: a1, Con2: c2, Asm2: a2}, nil
	default:
		return Reason{}, NewSyntaxError(section, kindTok, "unknown derivation reason")
	}
}

// readLinOrRndReason reads a lin/rnd payload, which is either a normal
// multiplier list, an "incomplete <idx>* }" awaiting completion, or a
// "weak { <bound-override>* } <multiplier list>" awaiting completion.
func (rd *reader) readLinOrRndReason(section string, kind ReasonKind) (Reason, error) {
	peek, err := rd.peekToken(section)
	if err != nil {
		return Reason{}, err
	}

	switch peek {
	case "incomplete":
		rd.token(section) // consume "incomplete"
		var active []int
		for {
			tok, terr := rd.peekToken(section)
			if terr != nil {
				return Reason{}, terr
			}
			if tok == "}" {
				break
			}
			rd.token(section)
			n, nerr := strconv.Atoi(tok)
			if nerr != nil {
				return Reason{}, NewSyntaxError(section, tok, "expected a derivation index or }")
			}
			active = append(active, n)
		}
		return Reason{Kind: kind, Incomplete: true, ActiveDerivations: active}, nil

	case "weak":
		rd.token(section) // consume "weak"
		bounds, berr := rd.readWeakBounds(section)
		if berr != nil {
			return Reason{}, berr
		}
		idx, mult, merr := rd.readMultiplierList(section)
		if merr != nil {
			return Reason{}, merr
		}
		return Reason{Kind: kind, Weak: true, WeakBounds: bounds, Indices: idx, Multipliers: mult}, nil

	default:
		idx, mult, merr := rd.readMultiplierList(section)
		if merr != nil {
			return Reason{}, merr
		}
		return Reason{Kind: kind, Indices: idx, Multipliers: mult}, nil
	}
}

func (rd *reader) readWeakBounds(section string) ([]WeakBoundOverride, error) {
	if err := rd.expect(section, "{"); err != nil {
		return nil, err
	}
	n, err := rd.int(section)
	if err != nil {
		return nil, err
	}
	bounds := make([]WeakBoundOverride, 0, n)
	for i := 0; i < n; i++ {
		typeTok, terr := rd.token(section)
		if terr != nil {
			return nil, terr
		}
		var isUpper bool
		switch typeTok {
		case "L":
			isUpper = false
		case "U":
			isUpper = true
		default:
			return nil, NewSyntaxError(section, typeTok, "expected L or U")
		}
		varIdx, verr := rd.int(section)
		if verr != nil {
			return nil, verr
		}
		boundIdx, berr := rd.int(section)
		if berr != nil {
			return nil, berr
		}
		val, rerr := rd.rat(section)
		if rerr != nil {
			return nil, rerr
		}
		bounds = append(bounds, WeakBoundOverride{IsUpper: isUpper, VarIdx: varIdx, BoundCertIdx: boundIdx, Value: val})
	}
	if err := rd.expect(section, "}"); err != nil {
		return nil, err
	}
	return bounds, nil
}

func (rd *reader) readMultiplierList(section string) ([]int, []rational.Rat, error) {
	k, err := rd.int(section)
	if err != nil {
		return nil, nil, err
	}
	idx := make([]int, 0, k)
	mult := make([]rational.Rat, 0, k)
	for i := 0; i < k; i++ {
		ix, ierr := rd.int(section)
		if ierr != nil {
			return nil, nil, ierr
		}
		if ix < 0 {
			return nil, nil, NewSyntaxError(section, strconv.Itoa(ix), "multiplier index out of range")
		}
		a, aerr := rd.rat(section)
		if aerr != nil {
			return nil, nil, aerr
		}
		idx = append(idx, ix)
		mult = append(mult, a)
	}
	return idx, mult, nil
}
