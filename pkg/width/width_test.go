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

package width

import (
	"strings"
	"testing"

	"github.com/scipopt/vipr-go/pkg/certificate"
)

// chainCertificate has 3 derivations: d1 cites only c0 (base); d2 cites d1
// (index 1, the first derivation, since numberOfConstraints=1); d3 cites d2
// (index 2). No citation spans more than one step, so cutwidth is 1.
const chainCertificate = `
VER 1.0
VAR 1 x
INT 0
OBJ min 0
CON 1 0
c0 L 5 1 0 1
RTP infeas
SOL 0
DER 3
d1 L 5 1 0 1 { lin 1 0 1 } -1
d2 L 5 1 0 1 { lin 1 1 1 } -1
d3 L 5 1 0 1 { lin 1 2 1 } -1
`

func TestComputeChainCutwidth(t *testing.T) {
	p, err := certificate.Read(strings.NewReader(chainCertificate))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	r := Compute(p)
	if r.NumDerivations != 3 {
		t.Fatalf("NumDerivations = %d, want 3", r.NumDerivations)
	}
	if r.Cutwidth != 1 {
		t.Fatalf("Cutwidth = %d, want 1 (each reference spans exactly one step)", r.Cutwidth)
	}
	if len(r.PerDerivationWidth) != 3 {
		t.Fatalf("PerDerivationWidth length = %d, want 3", len(r.PerDerivationWidth))
	}
}
