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

// Package incompletify implements the incompletifier: a textual rewriter
// that copies a certificate through unchanged except that, for a
// configurable fraction of lin steps, it erases the cited multipliers
// down to either an "incomplete" reference list or a "weak { 0 }" wrapper
// around the original list. The output exercises the completer's two
// resolution paths in reverse.
package incompletify

import (
	"io"
	"math/rand"
	"time"

	"github.com/scipopt/vipr-go/pkg/certificate"
)

// Mode selects which abbreviated form a gated lin step is rewritten to.
type Mode int

const (
	// Incomplete erases the multiplier list entirely, keeping only the
	// subset of cited indices that reference other derivations (i ≥
	// numberOfConstraints); base-constraint references are dropped too,
	// since the completer's LP round re-derives them from scratch.
	Incomplete Mode = iota
	// Weak keeps the original multiplier list but wraps it in an empty
	// local-bound-override list, routing it through the completer's weak
	// path instead of leaving it untouched.
	Weak
)

// Scope controls whether lin steps whose coefficient vector is the
// objective are eligible for rewriting.
type Scope int

const (
	// All makes every lin step eligible, objective-coefficient ones
	// included.
	All Scope = iota
	// NoObj excludes objective-coefficient lin steps from rewriting.
	NoObj
)

// Options configures an incompletification run.
type Options struct {
	// Percent is the gating probability, 0..100: a lin step is rewritten
	// iff a uniform draw in [0,100) falls below Percent, so 0 never and 100
	// always rewrites.
	Percent int
	Mode    Mode
	Scope   Scope
	// Rand supplies the percent draw; when nil, a generator seeded from the
	// current time is used, so the draws vary between runs.
	Rand *rand.Rand
}

// Run copies p to w, rewriting eligible lin steps per opts. rnd, asm, uns
// and sol steps are always passed through unchanged, and so is any lin step
// the gate or the scope rule excludes.
func Run(p *certificate.Problem, opts Options, w io.Writer) error {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	wtr := certificate.NewWriter(w, p)
	if err := wtr.WriteHeader(); err != nil {
		return err
	}
	for _, step := range p.Derivations {
		step = rewriteStep(step, p.NumberOfConstraints, opts, rng)
		if err := wtr.WriteDerivationStep(step); err != nil {
			return err
		}
	}
	return wtr.Flush()
}

func rewriteStep(step certificate.DerivationStep, numberOfConstraints int, opts Options, rng *rand.Rand) certificate.DerivationStep {
	if step.Reason.Kind != certificate.ReasonLin {
		return step
	}
	if step.CoefEqualsObj && opts.Scope == NoObj {
		return step
	}
	if rng.Intn(100) >= opts.Percent {
		return step
	}

	r := step.Reason
	switch opts.Mode {
	case Incomplete:
		var active []int
		for _, idx := range r.Indices {
			if idx >= numberOfConstraints {
				active = append(active, idx)
			}
		}
		step.Reason = certificate.Reason{Kind: certificate.ReasonLin, Incomplete: true, ActiveDerivations: active}
	case Weak:
		step.Reason = certificate.Reason{
			Kind:        certificate.ReasonLin,
			Weak:        true,
			WeakBounds:  nil,
			Indices:     r.Indices,
			Multipliers: r.Multipliers,
		}
	}
	return step
}
