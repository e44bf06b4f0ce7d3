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

// Package engine replays the DER section of a parsed certificate: for each
// derivation it picks a rule, computes the justified constraint, checks it
// dominates the claimed one, updates assumption scopes, trashes
// no-longer-needed constraints, and detects when the relation to prove has
// been globally established.
package engine

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/scipopt/vipr-go/pkg/certificate"
	"github.com/scipopt/vipr-go/pkg/constraint"
	"github.com/scipopt/vipr-go/pkg/rational"
	"github.com/scipopt/vipr-go/pkg/scope"
	"github.com/scipopt/vipr-go/pkg/vector"
)

// Engine holds the append-only constraint list and the running state the
// verifier needs across derivation steps.
type Engine struct {
	problem     *certificate.Problem
	constraints []*constraint.Constraint
	bestObj     rational.Rat
	haveBestObj bool
	objIntegral bool
	rtpTarget   *constraint.Constraint
	degenerate  bool
}

// New builds an engine from a parsed problem, seeding the running best
// objective value from SOL and synthesizing the RTP target constraint when
// the range side is non-degenerate.
func New(p *certificate.Problem) *Engine {
	e := &Engine{
		problem:     p,
		constraints: append([]*constraint.Constraint(nil), p.BaseConstraints...),
		objIntegral: p.ObjIntegral(),
	}

	for _, sol := range p.Solutions {
		v := rational.Zero()
		for _, idx := range p.Objective.Indices() {
			v = rational.Add(v, rational.Mul(p.Objective.Get(idx), sol.Values.Get(idx)))
		}
		if !e.haveBestObj {
			e.bestObj = v
			e.haveBestObj = true
			continue
		}
		if p.ObjSense == certificate.Minimize {
			if rational.Cmp(v, e.bestObj) < 0 {
				e.bestObj = v
			}
		} else if rational.Cmp(v, e.bestObj) > 0 {
			e.bestObj = v
		}
	}

	if p.RTP.Kind == certificate.RTPRange {
		switch {
		case p.ObjSense == certificate.Minimize && p.RTP.Lb != nil:
			e.rtpTarget = constraint.New("rtp", constraint.GE, *p.RTP.Lb, p.Objective, scope.Empty(), false, true)
		case p.ObjSense == certificate.Maximize && p.RTP.Ub != nil:
			e.rtpTarget = constraint.New("rtp", constraint.LE, *p.RTP.Ub, p.Objective, scope.Empty(), false, true)
		default:
			e.degenerate = true
		}
	}

	return e
}

// Verify replays every DER step in order, returning nil on acceptance or a
// descriptive error on the first unsound step, or a "logical failure" error
// if every step replays soundly but the RTP is never globally established.
func (e *Engine) Verify() error {
	if e.problem.RTP.Kind == certificate.RTPRange && e.degenerate {
		log.Debugf("dual bound of RTP is a tautology, accepting after SOL")
		return nil
	}

	n := len(e.problem.Derivations)
	for i, step := range e.problem.Derivations {
		currentIdx := len(e.constraints)
		log.Debugf("deriving %s (%d/%d)", step.Label, i+1, n)

		derived, sc, err := e.replay(step, currentIdx)
		if err != nil {
			return fmt.Errorf("derivation %q: %w", step.Label, err)
		}

		isAsm := step.Reason.Kind == certificate.ReasonAsm
		c := constraint.New(step.Label, step.Sense, step.Rhs, step.Coef, sc, isAsm, step.CoefEqualsObj)
		if !derived.DominatesWithRetry(c) {
			return fmt.Errorf("derivation %q: claimed constraint is not dominated by the derived one (claimed rhs=%s, derived rhs=%s)",
				step.Label, c.Rhs.String(), derived.Rhs.String())
		}
		c.SetMaxRefIdx(step.MaxRefIdx)
		e.constraints = append(e.constraints, c)

		if sc.IsEmpty() {
			if e.problem.RTP.Kind == certificate.RTPInfeasible && c.IsFalsehood() {
				log.Debugf("accepted: infeasibility proved at step %q", step.Label)
				return nil
			}
			if e.problem.RTP.Kind == certificate.RTPRange && c.CoefEqualsObjective() && c.Dominates(e.rtpTarget) {
				log.Debugf("accepted: RTP range proved at step %q", step.Label)
				return nil
			}
		}

		if i < n-1 && step.MaxRefIdx >= 0 && step.MaxRefIdx <= currentIdx {
			c.Trash()
		}
	}

	last := e.constraints[len(e.constraints)-1]
	return fmt.Errorf("logical failure: all derivations processed but the relation to prove was never established; final constraint %q has undischarged assumption scope of size %d",
		last.Label, last.Scope.Count())
}

// use fetches constraint idx for citation within a step being built at
// currentIdx, erroring on an out-of-range or trashed reference. If its
// recorded max-ref-idx says this is its last use, the stored constraint is
// trashed and the caller receives a copy that still holds the coefficients.
func (e *Engine) use(idx, currentIdx int) (*constraint.Constraint, error) {
	if idx < 0 || idx >= len(e.constraints) {
		return nil, fmt.Errorf("index %d out of range (have %d constraints)", idx, len(e.constraints))
	}
	c := e.constraints[idx]
	if c.IsTrashed() {
		return nil, fmt.Errorf("reference to trashed constraint %q (index %d)", c.Label, idx)
	}
	if c.MaxRefIdx() >= 0 && c.MaxRefIdx() <= currentIdx {
		cited := *c
		c.Trash()
		return &cited, nil
	}
	return c, nil
}

// replay computes the justified constraint D and its assumption scope for a
// single DER step, per the reason-specific rule table.
func (e *Engine) replay(step certificate.DerivationStep, currentIdx int) (*constraint.Constraint, scope.Scope, error) {
	switch step.Reason.Kind {
	case certificate.ReasonAsm:
		return constraint.New(step.Label, step.Sense, step.Rhs, step.Coef, scope.Single(uint(currentIdx)), true, step.CoefEqualsObj),
			scope.Single(uint(currentIdx)), nil

	case certificate.ReasonLin, certificate.ReasonRnd:
		return e.replayLinOrRnd(step, currentIdx)

	case certificate.ReasonUns:
		return e.replayUns(step, currentIdx)

	case certificate.ReasonSol:
		return e.replaySol(step)

	default:
		return nil, scope.Scope{}, fmt.Errorf("unknown derivation reason")
	}
}

func (e *Engine) replayLinOrRnd(step certificate.DerivationStep, currentIdx int) (*constraint.Constraint, scope.Scope, error) {
	coef := vector.New()
	rhs := rational.Zero()
	sc := scope.Empty()
	sense := 0
	haveSense := false

	for k, idx := range step.Reason.Indices {
		a := step.Reason.Multipliers[k]
		if rational.IsZero(a) {
			continue
		}
		con, err := e.use(idx, currentIdx)
		if err != nil {
			return nil, scope.Scope{}, err
		}

		termSense := int(con.Sense) * rational.Sign(a)
		if termSense != 0 {
			if !haveSense {
				sense = termSense
				haveSense = true
			} else if sense != termSense {
				return nil, scope.Scope{}, fmt.Errorf("sign conflict combining constraint index %d", idx)
			}
		}

		for _, vIdx := range con.Coef.Indices() {
			coef.Add(vIdx, rational.Mul(a, con.Coef.Get(vIdx)))
		}
		rhs = rational.Add(rhs, rational.Mul(a, con.Rhs))
		sc = scope.Union(sc, con.Scope)
	}

	derived := constraint.New("", constraint.Sense(sense), rhs, coef, sc, false, false)

	if step.Reason.Kind == certificate.ReasonRnd {
		rounded, err := derived.Rounded(func(varIdx int) bool {
			return varIdx >= 0 && varIdx < len(e.problem.Variables) && e.problem.Variables[varIdx].Integer
		})
		if err != nil {
			return nil, scope.Scope{}, err
		}
		derived = rounded
	}

	return derived, sc, nil
}

func (e *Engine) replayUns(step certificate.DerivationStep, currentIdx int) (*constraint.Constraint, scope.Scope, error) {
	r := step.Reason
	if r.Con1 < 0 || r.Con1 >= currentIdx || r.Con2 < 0 || r.Con2 >= currentIdx {
		return nil, scope.Scope{}, fmt.Errorf("uns branch index out of range")
	}
	con1, err := e.use(r.Con1, currentIdx)
	if err != nil {
		return nil, scope.Scope{}, err
	}
	con2, err := e.use(r.Con2, currentIdx)
	if err != nil {
		return nil, scope.Scope{}, err
	}
	asm1, err := e.use(r.Asm1, currentIdx)
	if err != nil {
		return nil, scope.Scope{}, err
	}
	asm2, err := e.use(r.Asm2, currentIdx)
	if err != nil {
		return nil, scope.Scope{}, err
	}

	claimed := constraint.New(step.Label, step.Sense, step.Rhs, step.Coef, scope.Empty(), false, step.CoefEqualsObj)
	if !con1.DominatesWithRetry(claimed) || !con2.DominatesWithRetry(claimed) {
		return nil, scope.Scope{}, fmt.Errorf("branches do not both dominate the claimed constraint")
	}

	if asm1.Sense == constraint.EQ || asm2.Sense == constraint.EQ || int(asm1.Sense)*int(asm2.Sense) >= 0 {
		return nil, scope.Scope{}, fmt.Errorf("assumption pair must have opposite senses")
	}
	if !vector.Equal(asm1.Coef, asm2.Coef) {
		return nil, scope.Scope{}, fmt.Errorf("assumption pair coefficient vectors differ")
	}
	for _, vIdx := range asm1.Coef.Indices() {
		v := asm1.Coef.Get(vIdx)
		if !rational.IsInteger(v) {
			return nil, scope.Scope{}, fmt.Errorf("assumption pair has non-integer coefficient on variable %d", vIdx)
		}
		if vIdx < 0 || vIdx >= len(e.problem.Variables) || !e.problem.Variables[vIdx].Integer {
			return nil, scope.Scope{}, fmt.Errorf("assumption pair references non-integer variable %d", vIdx)
		}
	}

	var tiles bool
	if asm1.Sense < constraint.EQ {
		tiles = rational.Equal(rational.Add(asm1.Rhs, rational.One()), asm2.Rhs)
	} else {
		tiles = rational.Equal(asm1.Rhs, rational.Add(asm2.Rhs, rational.One()))
	}
	if !tiles {
		return nil, scope.Scope{}, fmt.Errorf("assumption pair right-hand sides do not tile the integer line")
	}

	sc := scope.Union(
		deleteFrom(con1.Scope, uint(r.Asm1)),
		deleteFrom(con2.Scope, uint(r.Asm2)),
	)

	derived := constraint.New(step.Label, step.Sense, step.Rhs, step.Coef, sc, false, step.CoefEqualsObj)
	return derived, sc, nil
}

func deleteFrom(s scope.Scope, idx uint) scope.Scope {
	clone := s.Clone()
	clone.Remove(idx)
	return clone
}

func (e *Engine) replaySol(step certificate.DerivationStep) (*constraint.Constraint, scope.Scope, error) {
	if !step.CoefEqualsObj {
		return nil, scope.Scope{}, fmt.Errorf("cutoff bound can only be applied to the objective value")
	}
	if step.Sense != constraint.LE {
		return nil, scope.Scope{}, fmt.Errorf("cutoff bound must have sense L")
	}
	if !e.haveBestObj {
		return nil, scope.Scope{}, fmt.Errorf("no primal solution known for a cutoff bound")
	}
	cut := e.bestObj
	if e.objIntegral {
		cut = rational.Sub(cut, rational.One())
	}
	if rational.Cmp(step.Rhs, cut) < 0 {
		return nil, scope.Scope{}, fmt.Errorf("no solution known with objective at most %s, best known is %s", step.Rhs.String(), e.bestObj.String())
	}
	derived := constraint.New(step.Label, constraint.LE, step.Rhs, step.Coef, scope.Empty(), false, true)
	return derived, scope.Empty(), nil
}
