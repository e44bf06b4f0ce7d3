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
	"context"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/scipopt/vipr-go/pkg/certificate"
	"github.com/scipopt/vipr-go/pkg/constraint"
	"github.com/scipopt/vipr-go/pkg/rational"
	"github.com/scipopt/vipr-go/pkg/scope"
	"github.com/scipopt/vipr-go/pkg/vector"
)

// Options configures a completion run.
type Options struct {
	// Threads is the worker count T; the LP-context pool is sized 2*T.
	Threads int
	// Soplex enables incomplete-step resolution via the LP solver. With it
	// false, only weak completions are attempted and incomplete steps are
	// copied through unchanged, per the --soplex=off CLI mode.
	Soplex bool
}

// Complete rewrites every lin/rnd derivation in p that carries an Incomplete
// or Weak reason marker into one with a resolved multiplier list, streaming
// the result to w in the certificate wire format. Steps needing no
// completion keep their reason unchanged; every step, completed or not, is
// written with max-ref-idx -1. Derivations are processed with
// bounded parallelism (Options.Threads workers over a pool of reusable LP
// contexts) but always written out in original input order.
func Complete(p *certificate.Problem, opts Options, w io.Writer) error {
	bt := NewBoundTracker()
	bt.ScanBase(p.BaseConstraints)

	numBase := len(p.BaseConstraints)

	// Stage 1 (serial, in order): append every derivation's claimed
	// constraint before any worker runs, so stage-2 workers can safely read
	// the full constraint list without synchronisation.
	allCons := make([]*constraint.Constraint, numBase, numBase+len(p.Derivations))
	copy(allCons, p.BaseConstraints)
	for _, step := range p.Derivations {
		isAsm := step.Reason.Kind == certificate.ReasonAsm
		allCons = append(allCons, constraint.New(step.Label, step.Sense, step.Rhs, step.Coef, scope.Empty(), isAsm, step.CoefEqualsObj))
	}
	lookup := func(certIdx int) *constraint.Constraint { return allCons[certIdx] }

	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}
	pl := NewPipeline(threads, len(p.Variables))

	worker := func(ctx context.Context, step certificate.DerivationStep, lpr *LPResolver) (certificate.DerivationStep, error) {
		return completeStep(step, opts, bt, lpr, lookup)
	}

	results := make([]certificate.DerivationStep, len(p.Derivations))
	commit := func(i int, step certificate.DerivationStep) error {
		step.MaxRefIdx = -1
		results[i] = step
		return nil
	}

	if err := Run(context.Background(), pl, p.Derivations, worker, commit); err != nil {
		return err
	}

	out := &certificate.Problem{
		Variables:           p.Variables,
		Objective:           p.Objective,
		ObjSense:            p.ObjSense,
		BaseConstraints:     p.BaseConstraints,
		NumberOfConstraints: p.NumberOfConstraints,
		RTP:                 p.RTP,
		Solutions:           p.Solutions,
		Derivations:         results,
	}

	wtr := certificate.NewWriter(w, out)
	if err := wtr.WriteHeader(); err != nil {
		return err
	}
	for _, step := range results {
		if err := wtr.WriteDerivationStep(step); err != nil {
			return err
		}
	}
	return wtr.Flush()
}

// completeStep resolves a single derivation step's reason, leaving anything
// that isn't an Incomplete/Weak lin or rnd step untouched.
func completeStep(step certificate.DerivationStep, opts Options, bt *BoundTracker, lpr *LPResolver, lookup func(int) *constraint.Constraint) (certificate.DerivationStep, error) {
	r := step.Reason
	if r.Kind != certificate.ReasonLin && r.Kind != certificate.ReasonRnd {
		return step, nil
	}

	switch {
	case r.Incomplete:
		if !opts.Soplex {
			return step, nil
		}
		lpr.Sync(r.ActiveDerivations, lookup)
		idx, mult, status, err := lpr.Resolve(step.Sense, step.Coef, bt)
		if err != nil {
			return step, err
		}
		if status != ResolvedDominating {
			log.Warnf("derivation %q: LP returned a non-optimal, non-infeasible status; leaving it incomplete", step.Label)
			return step, nil
		}
		step.Reason = certificate.Reason{Kind: r.Kind, Indices: idx, Multipliers: mult}
		return step, nil

	case r.Weak:
		coefD, rhsD := combine(r.Indices, r.Multipliers, lookup)
		idx, mult, err := WeakComplete(bt, WeakInput{
			SenseC:      step.Sense,
			RhsC:        step.Rhs,
			CoefC:       step.Coef,
			Indices:     r.Indices,
			Multipliers: r.Multipliers,
			CoefD:       coefD,
			RhsD:        rhsD,
			Local:       r.WeakBounds,
		})
		if err != nil {
			return step, err
		}
		step.Reason = certificate.Reason{Kind: r.Kind, Indices: idx, Multipliers: mult}
		return step, nil

	default:
		return step, nil
	}
}

// combine computes the linear combination a plain multiplier list derives,
// the same arithmetic the verifier's engine replays.
func combine(idx []int, mult []rational.Rat, lookup func(int) *constraint.Constraint) (*vector.Vector, rational.Rat) {
	coef := vector.New()
	rhs := rational.Zero()
	for k, i := range idx {
		a := mult[k]
		con := lookup(i)
		for _, vi := range con.Coef.Indices() {
			coef.Add(vi, rational.Mul(a, con.Coef.Get(vi)))
		}
		rhs = rational.Add(rhs, rational.Mul(a, con.Rhs))
	}
	return coef, rhs
}
