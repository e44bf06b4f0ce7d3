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

// Package constraint implements the Constraint object: a sense, right-hand
// side, coefficient vector, assumption scope and a handful of derived marks,
// together with the dominance and Chvátal-Gomory rounding operations the
// derivation engine replays.
package constraint

import (
	"fmt"

	"github.com/scipopt/vipr-go/pkg/rational"
	"github.com/scipopt/vipr-go/pkg/scope"
	"github.com/scipopt/vipr-go/pkg/vector"
)

// Sense is the relational operator of a constraint's left-hand side against
// its right-hand side.
type Sense int

const (
	// LE is coef·x <= rhs.
	LE Sense = -1
	// EQ is coef·x == rhs.
	EQ Sense = 0
	// GE is coef·x >= rhs.
	GE Sense = 1
)

func (s Sense) String() string {
	switch s {
	case LE:
		return "L"
	case EQ:
		return "E"
	case GE:
		return "G"
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Constraint is a single row of the problem or a derived consequence of
// earlier rows.
type Constraint struct {
	Label string
	Sense Sense
	Rhs   rational.Rat
	Coef  *vector.Vector
	Scope scope.Scope

	isAssumption      bool
	isTrashed         bool
	coefEqualsObj     bool
	isFalsehood       bool
	maxRefIdx         int
}

// objective is the single owned coefficient vector every "use OBJ" row
// across the certificate borrows a handle to. Constraints built from it set
// coefEqualsObj so that identity (not value) equality can later be tested,
// per the cutoff-from-solution rule.
var objective *vector.Vector

// SetObjective installs the shared objective vector. Must be called once,
// after OBJ is parsed and before any constraint referencing it by the
// literal OBJ token is constructed.
func SetObjective(v *vector.Vector) { objective = v }

// Objective returns the shared objective vector installed by SetObjective.
func Objective() *vector.Vector { return objective }

// New constructs a constraint, compactifying its coefficient vector and
// deriving is-falsehood. coefEqualsObj must be passed true only when coef is
// exactly the shared objective vector (by reference), never a copy with
// equal values.
func New(label string, sense Sense, rhs rational.Rat, coef *vector.Vector, sc scope.Scope, isAssumption, coefEqualsObj bool) *Constraint {
	coef.Compactify()

	c := &Constraint{
		Label:         label,
		Sense:         sense,
		Rhs:           rhs,
		Coef:          coef,
		Scope:         sc,
		isAssumption:  isAssumption,
		coefEqualsObj: coefEqualsObj,
		maxRefIdx:     -1,
	}
	c.isFalsehood = coef.IsEmpty() && !feasibleEmptySide(sense, rhs)
	return c
}

// feasibleEmptySide reports whether rhs admits a feasible empty-coefficient
// row under sense, i.e. 0 `sense` rhs holds.
func feasibleEmptySide(sense Sense, rhs rational.Rat) bool {
	switch sense {
	case LE:
		return rational.Sign(rhs) >= 0
	case GE:
		return rational.Sign(rhs) <= 0
	default:
		return rational.IsZero(rhs)
	}
}

// IsAssumption reports whether this constraint was introduced by an asm step.
func (c *Constraint) IsAssumption() bool { return c.isAssumption }

// IsTrashed reports whether Trash has been called on this constraint.
func (c *Constraint) IsTrashed() bool { return c.isTrashed }

// IsFalsehood reports whether the constraint has empty coefficients and an
// infeasible right-hand side (e.g. 0 <= -1).
func (c *Constraint) IsFalsehood() bool { return c.isFalsehood }

// IsTautology reports whether the constraint has empty coefficients and a
// feasible right-hand side (e.g. 0 <= 1).
func (c *Constraint) IsTautology() bool {
	return c.Coef.IsEmpty() && !c.isFalsehood
}

// CoefEqualsObjective reports whether Coef is the shared objective vector,
// loaded from the literal OBJ token rather than an explicit sparse vector.
func (c *Constraint) CoefEqualsObjective() bool { return c.coefEqualsObj }

// MaxRefIdx returns the latest derivation index that still references this
// constraint, or -1 if unknown/never referenced.
func (c *Constraint) MaxRefIdx() int { return c.maxRefIdx }

// SetMaxRefIdx records the latest derivation index that cites this
// constraint.
func (c *Constraint) SetMaxRefIdx(idx int) { c.maxRefIdx = idx }

// Trash releases the coefficient vector, marking the constraint as no longer
// readable. Trashing a constraint still referenced by a later derivation is
// a caller bug, not something this method can detect locally.
func (c *Constraint) Trash() {
	c.isTrashed = true
	c.Coef = nil
}

// IdentityEqualCoef reports whether c and other share the exact same
// coefficient vector object (not merely an equal one). Used by the
// cutoff-from-solution rule, which requires identity rather than value
// equality.
func (c *Constraint) IdentityEqualCoef(other *Constraint) bool {
	return c.Coef == other.Coef
}

// Rounded applies Chvátal-Gomory rounding: for every nonzero coefficient on
// a variable that isIntegerVar reports as integer, that coefficient must
// itself be integer (variables that are not integer are unconstrained).
// The right-hand side is then replaced by its floor (sense <= 0) or ceil
// (sense >= 0).
func (c *Constraint) Rounded(isIntegerVar func(varIdx int) bool) (*Constraint, error) {
	for _, idx := range c.Coef.Indices() {
		if !isIntegerVar(idx) {
			continue
		}
		v := c.Coef.Get(idx)
		if !rational.IsInteger(v) {
			return nil, fmt.Errorf("rounding precondition violated: coefficient of integer variable %d is not integer", idx)
		}
	}

	var newRhs rational.Rat
	switch {
	case c.Sense <= EQ:
		newRhs = rational.Floor(c.Rhs)
	default:
		newRhs = rational.Ceil(c.Rhs)
	}

	return &Constraint{
		Label:         c.Label,
		Sense:         c.Sense,
		Rhs:           newRhs,
		Coef:          c.Coef,
		Scope:         c.Scope,
		coefEqualsObj: c.coefEqualsObj,
		maxRefIdx:     -1,
		isFalsehood:   c.Coef.IsEmpty() && !feasibleEmptySide(c.Sense, newRhs),
	}, nil
}

// Dominates reports whether self implies other: any point satisfying self
// also satisfies other. A falsehood dominates everything. Otherwise the two
// coefficient vectors must compare equal (literal comparison; callers
// wanting canonicalized comparison should canonicalize before calling and
// retry on mismatch) and the senses/right-hand-sides must line up:
//   - both equalities: rhs must match exactly;
//   - both >=-oriented (or self is >= and other is =, etc. handled via the
//     sense>=0 check below): self.Rhs >= other.Rhs;
//   - both <=-oriented: self.Rhs <= other.Rhs.
func (c *Constraint) Dominates(other *Constraint) bool {
	if c.isFalsehood {
		return true
	}
	if !vector.Equal(c.Coef, other.Coef) {
		return false
	}

	switch {
	case c.Sense == EQ && other.Sense == EQ:
		return rational.Equal(c.Rhs, other.Rhs)
	case c.Sense >= EQ && other.Sense >= EQ:
		return rational.Cmp(c.Rhs, other.Rhs) >= 0
	case c.Sense <= EQ && other.Sense <= EQ:
		return rational.Cmp(c.Rhs, other.Rhs) <= 0
	default:
		return false
	}
}

// DominatesWithRetry is Dominates, but on a literal-comparison mismatch it
// canonicalizes both coefficient vectors and retries once, per the
// specification's "canonicalize on mismatch and retry once" rule.
func (c *Constraint) DominatesWithRetry(other *Constraint) bool {
	if c.Dominates(other) {
		return true
	}
	c.Coef.Canonicalize()
	other.Coef.Canonicalize()
	return c.Dominates(other)
}
