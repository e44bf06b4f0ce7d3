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

// Package complete implements the certificate completer: it rewrites a
// certificate so every lin derivation carries an explicit multiplier list,
// resolving "incomplete" steps with an LP solve and "weak" steps with a
// variable-bound lookup.
package complete

import (
	"github.com/scipopt/vipr-go/pkg/constraint"
	"github.com/scipopt/vipr-go/pkg/rational"
)

// Bound is one tracked single-variable bound: the normalised value, the
// original coefficient the source row carried on the variable (needed to
// turn a gap back into a multiplier of that row), and the row's certificate
// index.
type Bound struct {
	Value   rational.Rat
	Factor  rational.Rat
	CertIdx int
}

// BoundTracker records, per variable, the tightest lower and upper bound
// implied by the single-variable rows scanned so far.
type BoundTracker struct {
	lower map[int]Bound
	upper map[int]Bound
}

// NewBoundTracker constructs an empty tracker.
func NewBoundTracker() *BoundTracker {
	return &BoundTracker{lower: make(map[int]Bound), upper: make(map[int]Bound)}
}

// ScanBase observes every base constraint, in certificate-index order
// (certIdx equal to position in cons), updating tracked bounds from every
// single-variable row. Rows with more than one nonzero coefficient are
// ignored.
func (bt *BoundTracker) ScanBase(cons []*constraint.Constraint) {
	for certIdx, c := range cons {
		bt.observe(certIdx, c)
	}
}

// Observe updates tracked bounds from a single constraint at the given
// certificate index. Complete tracks base rows only, through ScanBase, and
// does not call Observe.
func (bt *BoundTracker) Observe(certIdx int, c *constraint.Constraint) {
	bt.observe(certIdx, c)
}

func (bt *BoundTracker) observe(certIdx int, c *constraint.Constraint) {
	idx := c.Coef.Indices()
	if len(idx) != 1 {
		return
	}
	varIdx := idx[0]
	a := c.Coef.Get(varIdx)
	if rational.IsZero(a) {
		return
	}

	value := rational.Quo(c.Rhs, a)
	sense := c.Sense
	if rational.Sign(a) < 0 {
		sense = flipSense(sense)
	}

	switch sense {
	case constraint.GE:
		bt.tightenLower(varIdx, Bound{Value: value, Factor: a, CertIdx: certIdx})
	case constraint.LE:
		bt.tightenUpper(varIdx, Bound{Value: value, Factor: a, CertIdx: certIdx})
	case constraint.EQ:
		bt.tightenLower(varIdx, Bound{Value: value, Factor: a, CertIdx: certIdx})
		bt.tightenUpper(varIdx, Bound{Value: value, Factor: a, CertIdx: certIdx})
	}
}

func flipSense(s constraint.Sense) constraint.Sense {
	switch s {
	case constraint.LE:
		return constraint.GE
	case constraint.GE:
		return constraint.LE
	default:
		return constraint.EQ
	}
}

func (bt *BoundTracker) tightenLower(varIdx int, b Bound) {
	cur, ok := bt.lower[varIdx]
	if !ok || rational.Cmp(b.Value, cur.Value) > 0 {
		bt.lower[varIdx] = b
	}
}

func (bt *BoundTracker) tightenUpper(varIdx int, b Bound) {
	cur, ok := bt.upper[varIdx]
	if !ok || rational.Cmp(b.Value, cur.Value) < 0 {
		bt.upper[varIdx] = b
	}
}

// Lower returns the tightest known lower bound on varIdx, if any.
func (bt *BoundTracker) Lower(varIdx int) (Bound, bool) {
	b, ok := bt.lower[varIdx]
	return b, ok
}

// Upper returns the tightest known upper bound on varIdx, if any.
func (bt *BoundTracker) Upper(varIdx int) (Bound, bool) {
	b, ok := bt.upper[varIdx]
	return b, ok
}
