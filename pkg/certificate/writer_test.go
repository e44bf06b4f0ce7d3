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
	"strings"
	"testing"
)

func TestWriterRoundTrip(t *testing.T) {
	p, err := Read(strings.NewReader(trivialInfeasibility))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	var buf strings.Builder
	w := NewWriter(&buf, p)
	if err := w.WriteHeader(); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	for _, step := range p.Derivations {
		if err := w.WriteDerivationStep(step); err != nil {
			t.Fatalf("WriteDerivationStep() error = %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	p2, err := Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-Read() error = %v\noutput:\n%s", err, buf.String())
	}
	if len(p2.Variables) != len(p.Variables) {
		t.Fatalf("Variables length changed: %d vs %d", len(p2.Variables), len(p.Variables))
	}
	if len(p2.BaseConstraints) != len(p.BaseConstraints) {
		t.Fatalf("BaseConstraints length changed")
	}
	if len(p2.Derivations) != len(p.Derivations) {
		t.Fatalf("Derivations length changed")
	}
	if p2.Derivations[0].Reason.Kind != ReasonLin {
		t.Fatalf("round-tripped reason kind = %v, want lin", p2.Derivations[0].Reason.Kind)
	}
}

func TestWriterRoundTripIncompleteAndWeak(t *testing.T) {
	for _, src := range []string{incompleteLinCertificate, weakLinCertificate} {
		p, err := Read(strings.NewReader(src))
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		var buf strings.Builder
		w := NewWriter(&buf, p)
		if err := w.WriteHeader(); err != nil {
			t.Fatalf("WriteHeader() error = %v", err)
		}
		for _, step := range p.Derivations {
			if err := w.WriteDerivationStep(step); err != nil {
				t.Fatalf("WriteDerivationStep() error = %v", err)
			}
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("Flush() error = %v", err)
		}
		if _, err := Read(strings.NewReader(buf.String())); err != nil {
			t.Fatalf("re-Read() error = %v\noutput:\n%s", err, buf.String())
		}
	}
}
