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

package complete

import (
	"fmt"

	"github.com/scipopt/vipr-go/pkg/certificate"
	"github.com/scipopt/vipr-go/pkg/constraint"
	"github.com/scipopt/vipr-go/pkg/rational"
	"github.com/scipopt/vipr-go/pkg/vector"
)

// WeakInput bundles the arguments of a weak-completion step.
type WeakInput struct {
	SenseC constraint.Sense
	RhsC   rational.Rat
	CoefC  *vector.Vector

	// Combined multipliers resolved so far (the step's "lin" payload, after
	// any active-set resolution).
	Indices     []int
	Multipliers []rational.Rat

	// The constraint those multipliers actually derive, before bound terms
	// are added to close the gap against CoefC/RhsC.
	CoefD *vector.Vector
	RhsD  rational.Rat

	Local []certificate.WeakBoundOverride
}

// WeakComplete closes the gap between a claimed constraint and what its
// supplied multipliers actually derive, per the variable-bound-lookup rule:
// every coefficient where claimed and derived disagree is closed by adding a
// multiple of the relevant bound row to the combination. Returns the
// extended multiplier list; the caller's engine replay recomputes the final
// coefficient/rhs from it, so WeakComplete itself only needs to validate
// that closing is possible and that the result will dominate (or, for an
// empty claimed vector, will still be infeasible).
func WeakComplete(bt *BoundTracker, in WeakInput) ([]int, []rational.Rat, error) {
	if in.SenseC == constraint.EQ {
		return nil, nil, fmt.Errorf("complete: equality-sense claims cannot be weak-completed")
	}

	localLower := make(map[int]certificate.WeakBoundOverride)
	localUpper := make(map[int]certificate.WeakBoundOverride)
	for _, ov := range in.Local {
		if ov.IsUpper {
			localUpper[ov.VarIdx] = ov
		} else {
			localLower[ov.VarIdx] = ov
		}
	}

	idx := append([]int(nil), in.Indices...)
	mult := append([]rational.Rat(nil), in.Multipliers...)
	pos := make(map[int]int, len(idx))
	for i, ix := range idx {
		pos[ix] = i
	}
	addMultiplier := func(certIdx int, a rational.Rat) {
		if p, ok := pos[certIdx]; ok {
			mult[p] = rational.Add(mult[p], a)
			return
		}
		pos[certIdx] = len(idx)
		idx = append(idx, certIdx)
		mult = append(mult, a)
	}

	gap := vector.Sub(in.CoefC, in.CoefD)
	gap.Compactify()

	correctedRhs := in.RhsD

	for _, varIdx := range gap.Indices() {
		g := gap.Get(varIdx)

		wantLower := (in.SenseC == constraint.LE && rational.Sign(g) <= 0) ||
			(in.SenseC == constraint.GE && rational.Sign(g) >= 0)

		var bound Bound
		var have bool
		if wantLower {
			if ov, ok := localLower[varIdx]; ok {
				bound, have = Bound{Value: ov.Value, Factor: rational.One(), CertIdx: ov.BoundCertIdx}, true
			} else {
				bound, have = bt.Lower(varIdx)
			}
		} else {
			if ov, ok := localUpper[varIdx]; ok {
				bound, have = Bound{Value: ov.Value, Factor: rational.One(), CertIdx: ov.BoundCertIdx}, true
			} else {
				bound, have = bt.Upper(varIdx)
			}
		}
		if !have {
			return nil, nil, fmt.Errorf("complete: no tracked bound to close gap on variable %d", varIdx)
		}

		addMultiplier(bound.CertIdx, rational.Quo(g, bound.Factor))
		correctedRhs = rational.Add(correctedRhs, rational.Mul(g, bound.Value))
	}

	if in.CoefC.IsEmpty() {
		if feasibleEmptySide(in.SenseC, correctedRhs) {
			return nil, nil, fmt.Errorf("complete: weak completion did not reproduce an infeasible empty-coefficient claim")
		}
		return idx, mult, nil
	}

	switch in.SenseC {
	case constraint.LE:
		if rational.Cmp(correctedRhs, in.RhsC) > 0 {
			return nil, nil, fmt.Errorf("complete: weak completion gap not closed (corrected rhs %s exceeds claimed %s)", correctedRhs.String(), in.RhsC.String())
		}
	case constraint.GE:
		if rational.Cmp(correctedRhs, in.RhsC) < 0 {
			return nil, nil, fmt.Errorf("complete: weak completion gap not closed (corrected rhs %s below claimed %s)", correctedRhs.String(), in.RhsC.String())
		}
	}

	return idx, mult, nil
}

// feasibleEmptySide mirrors constraint.feasibleEmptySide, unexported there;
// it decides whether 0 `sense` rhs holds, i.e. whether an empty-coefficient
// row with this sense/rhs is a tautology rather than a falsehood.
func feasibleEmptySide(sense constraint.Sense, rhs rational.Rat) bool {
	switch sense {
	case constraint.LE:
		return rational.Sign(rhs) >= 0
	case constraint.GE:
		return rational.Sign(rhs) <= 0
	default:
		return rational.IsZero(rhs)
	}
}
