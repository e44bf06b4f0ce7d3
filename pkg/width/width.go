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

// Package width reports per-section shape statistics for a parsed
// certificate without running the derivation engine: variable/constraint
// counts, nonzero density, and the derivation list's cutwidth — the
// largest number of derivations simultaneously "live" (cited by some later
// step but not yet superseded) at any point in the DER section.
package width

import "github.com/scipopt/vipr-go/pkg/certificate"

// Report holds the statistics computed over a parsed problem.
type Report struct {
	NumVariables      int
	NumIntegerVars    int
	NumBaseConstraints int
	NumDerivations    int
	BaseNonzeros      int
	DerNonzeros       int
	// PerDerivationWidth[i] is the cutwidth contribution at derivation i:
	// the number of citation spans from earlier derivations that cross it.
	PerDerivationWidth []int
	// Cutwidth is max(PerDerivationWidth), the certificate's widest point.
	Cutwidth int
}

// Compute derives a Report from a parsed problem.
func Compute(p *certificate.Problem) Report {
	var r Report
	r.NumVariables = len(p.Variables)
	for _, v := range p.Variables {
		if v.Integer {
			r.NumIntegerVars++
		}
	}
	r.NumBaseConstraints = len(p.BaseConstraints)
	r.NumDerivations = len(p.Derivations)

	for _, c := range p.BaseConstraints {
		r.BaseNonzeros += c.Coef.Len()
	}

	width := make([]int, len(p.Derivations))
	updateWidth := func(begin, end int) {
		if begin < 0 {
			begin = 0
		}
		for k := begin; k < end && k < len(width); k++ {
			width[k]++
		}
	}
	citeDerived := func(idx, i int) {
		if idx >= r.NumBaseConstraints {
			updateWidth(idx-r.NumBaseConstraints, i)
		}
	}

	for i, step := range p.Derivations {
		if step.Coef != nil {
			r.DerNonzeros += step.Coef.Len()
		}
		switch step.Reason.Kind {
		case certificate.ReasonLin, certificate.ReasonRnd:
			for _, idx := range step.Reason.Indices {
				citeDerived(idx, i)
			}
			for _, idx := range step.Reason.ActiveDerivations {
				citeDerived(idx, i)
			}
		case certificate.ReasonUns:
			citeDerived(step.Reason.Con1, i)
			citeDerived(step.Reason.Con2, i)
			citeDerived(step.Reason.Asm1, i)
			citeDerived(step.Reason.Asm2, i)
		}
	}

	r.PerDerivationWidth = width
	for _, w := range width {
		if w > r.Cutwidth {
			r.Cutwidth = w
		}
	}
	return r
}
