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
	"strings"
	"testing"

	"github.com/scipopt/vipr-go/pkg/certificate"
	"github.com/scipopt/vipr-go/pkg/rational"
)

const weakCompletionCertificate = `
VER 1.0
VAR 1 x
INT 0
OBJ min 0
CON 1 0
c0 L 5 1 0 1
RTP infeas
SOL 0
DER 1
d1 L 10 1 0 2 { lin weak { 0 } 1 0 1 } -1
`

func TestCompleteWeak(t *testing.T) {
	p, err := certificate.Read(strings.NewReader(weakCompletionCertificate))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	var buf strings.Builder
	if err := Complete(p, Options{Threads: 2, Soplex: true}, &buf); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	out, err := certificate.Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-Read() error = %v\noutput:\n%s", err, buf.String())
	}
	reason := out.Derivations[0].Reason
	if reason.Weak {
		t.Fatal("completed step should no longer be marked Weak")
	}
	if len(reason.Indices) != 1 || reason.Indices[0] != 0 {
		t.Fatalf("Indices = %v, want [0]", reason.Indices)
	}
	if !rational.Equal(reason.Multipliers[0], rational.FromInt64(2)) {
		t.Fatalf("Multipliers[0] = %v, want 2", reason.Multipliers[0])
	}
}

const incompleteCompletionCertificate = `
VER 1.0
VAR 1 x
INT 0
OBJ min 0
CON 1 0
c0 L 4 1 0 1
RTP infeas
SOL 0
DER 1
d1 L 4 1 0 1 { lin incomplete 0 } -1
`

func TestCompleteIncomplete(t *testing.T) {
	p, err := certificate.Read(strings.NewReader(incompleteCompletionCertificate))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	var buf strings.Builder
	if err := Complete(p, Options{Threads: 2, Soplex: true}, &buf); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	out, err := certificate.Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-Read() error = %v\noutput:\n%s", err, buf.String())
	}
	reason := out.Derivations[0].Reason
	if reason.Incomplete {
		t.Fatal("completed step should no longer be marked Incomplete")
	}
	if len(reason.Indices) != 1 || reason.Indices[0] != 0 {
		t.Fatalf("Indices = %v, want [0]", reason.Indices)
	}
	if !rational.Equal(reason.Multipliers[0], rational.One()) {
		t.Fatalf("Multipliers[0] = %v, want 1", reason.Multipliers[0])
	}
}

func TestCompleteSoplexOffLeavesIncompleteUntouched(t *testing.T) {
	p, err := certificate.Read(strings.NewReader(incompleteCompletionCertificate))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	var buf strings.Builder
	if err := Complete(p, Options{Threads: 1, Soplex: false}, &buf); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	out, err := certificate.Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-Read() error = %v\noutput:\n%s", err, buf.String())
	}
	if !out.Derivations[0].Reason.Incomplete {
		t.Fatal("with Soplex disabled, incomplete step should pass through unchanged")
	}
}
