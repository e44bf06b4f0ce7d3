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

// Package certificate implements the VIPR on-wire format: a lexer, a
// section-ordered reader that materialises variables, integrality,
// objective, base constraints, the relation-to-prove target, and primal
// solutions, plus a structural model of the DER section handed to the
// derivation engine.
package certificate

import (
	"github.com/scipopt/vipr-go/pkg/constraint"
	"github.com/scipopt/vipr-go/pkg/rational"
	"github.com/scipopt/vipr-go/pkg/scope"
	"github.com/scipopt/vipr-go/pkg/vector"
)

// SupportedMajor and MaxSupportedMinor gate version acceptance: a
// certificate is accepted iff VER major equals SupportedMajor and minor is
// at most MaxSupportedMinor.
const (
	SupportedMajor   = 1
	MaxSupportedMinor = 0
)

// Variable is one entry of VAR, with its INT-derived integrality flag.
type Variable struct {
	Name    string
	Integer bool
}

// ReasonKind names which inference rule justifies a DER step.
type ReasonKind int

const (
	ReasonAsm ReasonKind = iota
	ReasonLin
	ReasonRnd
	ReasonUns
	ReasonSol
)

func (k ReasonKind) String() string {
	switch k {
	case ReasonAsm:
		return "asm"
	case ReasonLin:
		return "lin"
	case ReasonRnd:
		return "rnd"
	case ReasonUns:
		return "uns"
	case ReasonSol:
		return "sol"
	default:
		return "?"
	}
}

// WeakBoundOverride is one entry of a weak-completion reason's local bound
// list: a caller-supplied bound to use in place of the completer's tracked
// global bound for that variable and direction, on this derivation only.
type WeakBoundOverride struct {
	IsUpper      bool
	VarIdx       int
	BoundCertIdx int
	Value        rational.Rat
}

// Reason is the payload of a DER step's { ... } reason clause. A ReasonLin
// step awaiting completion carries Incomplete or Weak instead of a resolved
// multiplier list.
type Reason struct {
	Kind ReasonKind

	// lin / rnd, once resolved; also populated on a weak reason once the
	// completer has filled in its wire-supplied multipliers.
	Indices     []int
	Multipliers []rational.Rat

	// lin awaiting completion: the active base/derived constraint set is
	// known but the multipliers are not.
	Incomplete        bool
	ActiveDerivations []int

	// lin awaiting completion: multipliers are supplied but only weakly
	// dominate the claimed constraint; WeakBounds are local overrides of the
	// completer's tracked bounds, used to close the gap.
	Weak       bool
	WeakBounds []WeakBoundOverride

	// uns
	Con1, Asm1, Con2, Asm2 int
}

// DerivationStep is one parsed DER line, not yet replayed by the engine.
type DerivationStep struct {
	Label         string
	Sense         constraint.Sense
	Rhs           rational.Rat
	Coef          *vector.Vector
	CoefEqualsObj bool
	Reason        Reason
	MaxRefIdx     int
}

// RTPKind distinguishes the two relation-to-prove forms.
type RTPKind int

const (
	RTPInfeasible RTPKind = iota
	RTPRange
)

// RTP is the relation to prove: either infeasibility, or a range on the
// optimum with possibly-infinite bounds (nil means unbounded on that side).
type RTP struct {
	Kind RTPKind
	Lb   *rational.Rat
	Ub   *rational.Rat
}

// Solution is one entry of SOL: a labeled assignment used to seed the
// running best objective value.
type Solution struct {
	Label  string
	Values *vector.Vector
}

// ObjSense is the optimization direction declared in OBJ.
type ObjSense int

const (
	Minimize ObjSense = iota
	Maximize
)

// Problem is the fully materialised, pre-DER-replay state of a certificate:
// everything the reader can build without interpreting derivation steps.
type Problem struct {
	Variables          []Variable
	Objective          *vector.Vector
	ObjSense           ObjSense
	BaseConstraints    []*constraint.Constraint
	NumberOfConstraints int
	RTP                RTP
	Solutions          []Solution
	Derivations        []DerivationStep
	Scope              scope.Scope // unused placeholder kept for symmetry; base constraints always have empty scope
}

// ObjIntegral reports whether every variable with a nonzero objective
// coefficient is integer and every such coefficient is itself integer —
// the "obj-integral" predicate used by the sol cutoff rule.
func (p *Problem) ObjIntegral() bool {
	for _, idx := range p.Objective.Indices() {
		v := p.Objective.Get(idx)
		if !rational.IsInteger(v) {
			return false
		}
		if idx < 0 || idx >= len(p.Variables) || !p.Variables[idx].Integer {
			return false
		}
	}
	return true
}
