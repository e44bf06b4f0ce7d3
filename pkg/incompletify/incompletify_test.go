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

package incompletify

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/scipopt/vipr-go/pkg/certificate"
)

const twoLinCertificate = `
VER 1.0
VAR 1 x
INT 0
OBJ min 0
CON 2 0
c0 L -1 1 0 1
c1 G 1 1 0 1
RTP infeas
SOL 0
DER 2
d1 L 0 1 0 1 { lin 2 0 1 1 1 } -1
d2 L 0 OBJ { lin 2 0 1 1 1 } -1
`

func TestRunAlwaysGatedIncomplete(t *testing.T) {
	p, err := certificate.Read(strings.NewReader(twoLinCertificate))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	var buf strings.Builder
	opts := Options{Percent: 100, Mode: Incomplete, Scope: All, Rand: rand.New(rand.NewSource(42))}
	if err := Run(p, opts, &buf); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out, err := certificate.Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-Read() error = %v\noutput:\n%s", err, buf.String())
	}
	for i, step := range out.Derivations {
		if !step.Reason.Incomplete {
			t.Fatalf("derivation %d: want Incomplete=true", i)
		}
		if len(step.Reason.ActiveDerivations) != 0 {
			t.Fatalf("derivation %d: ActiveDerivations = %v, want empty (only base constraints cited)", i, step.Reason.ActiveDerivations)
		}
	}
}

func TestRunNoObjScopeSkipsObjectiveStep(t *testing.T) {
	p, err := certificate.Read(strings.NewReader(twoLinCertificate))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	var buf strings.Builder
	opts := Options{Percent: 100, Mode: Weak, Scope: NoObj, Rand: rand.New(rand.NewSource(7))}
	if err := Run(p, opts, &buf); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out, err := certificate.Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-Read() error = %v\noutput:\n%s", err, buf.String())
	}
	if !out.Derivations[0].Reason.Weak {
		t.Fatal("derivation 0: want Weak=true (non-objective lin step)")
	}
	if out.Derivations[1].Reason.Weak {
		t.Fatal("derivation 1: want Weak=false (objective step excluded by NoObj scope)")
	}
}

func TestRunZeroPercentLeavesEverythingUnchanged(t *testing.T) {
	p, err := certificate.Read(strings.NewReader(twoLinCertificate))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	var buf strings.Builder
	opts := Options{Percent: 0, Mode: Incomplete, Scope: All, Rand: rand.New(rand.NewSource(1))}
	if err := Run(p, opts, &buf); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out, err := certificate.Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-Read() error = %v\noutput:\n%s", err, buf.String())
	}
	for i, step := range out.Derivations {
		if step.Reason.Incomplete || step.Reason.Weak {
			t.Fatalf("derivation %d: want unchanged lin reason", i)
		}
		if len(step.Reason.Indices) != 2 {
			t.Fatalf("derivation %d: Indices = %v, want length 2", i, step.Reason.Indices)
		}
	}
}
