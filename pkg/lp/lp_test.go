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

package lp

import (
	"testing"

	"github.com/scipopt/vipr-go/pkg/constraint"
	"github.com/scipopt/vipr-go/pkg/rational"
	"github.com/scipopt/vipr-go/pkg/vector"
)

func rat(s string) rational.Rat {
	r, err := rational.Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

func vec(pairs map[int]string) *vector.Vector {
	v := vector.New()
	for idx, s := range pairs {
		v.Set(idx, rat(s))
	}
	return v
}

// minimize x0 subject to x0 >= 1, x0 <= 5: optimum is x0 = 1.
func TestSolveSingleVariableBound(t *testing.T) {
	ctx := NewContext(1)
	ctx.SetRow(1, constraint.GE, rat("1"), vec(map[int]string{0: "1"}))
	ctx.SetRow(2, constraint.LE, rat("5"), vec(map[int]string{0: "1"}))

	res, err := ctx.Solve(vec(map[int]string{0: "1"}), true)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if res.Status != Optimal {
		t.Fatalf("Status = %v, want Optimal", res.Status)
	}
	if got := res.Values[0]; !rational.Equal(got, rat("1")) {
		t.Fatalf("x0 = %v, want 1", got)
	}
}

// 2x0 >= 1 and 2x0 <= 0 cannot both hold: infeasible.
func TestSolveDetectsInfeasible(t *testing.T) {
	ctx := NewContext(1)
	ctx.SetRow(1, constraint.GE, rat("1"), vec(map[int]string{0: "2"}))
	ctx.SetRow(2, constraint.LE, rat("0"), vec(map[int]string{0: "2"}))

	res, err := ctx.Solve(vec(map[int]string{0: "1"}), true)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if res.Status != Infeasible {
		t.Fatalf("Status = %v, want Infeasible", res.Status)
	}
}

// minimize x0+x1 subject to x0+x1 >= 2, x0 <= 3, x1 <= 3: optimum is 2 on the
// edge x0+x1=2, and the dual on the >= row should be 1 (binding, cost 1:1).
func TestSolveTwoVariableDual(t *testing.T) {
	ctx := NewContext(2)
	ctx.SetRow(1, constraint.GE, rat("2"), vec(map[int]string{0: "1", 1: "1"}))
	ctx.SetRow(2, constraint.LE, rat("3"), vec(map[int]string{0: "1"}))
	ctx.SetRow(3, constraint.LE, rat("3"), vec(map[int]string{1: "1"}))

	res, err := ctx.Solve(vec(map[int]string{0: "1", 1: "1"}), true)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if res.Status != Optimal {
		t.Fatalf("Status = %v, want Optimal", res.Status)
	}
	sum := rational.Add(res.Values[0], res.Values[1])
	if !rational.Equal(sum, rat("2")) {
		t.Fatalf("x0+x1 = %v, want 2", sum)
	}
	if got := res.Duals[1]; !rational.Equal(got, rat("1")) {
		t.Fatalf("dual on row 1 = %v, want 1", got)
	}
}

// maximize x0 subject to x0 <= 4: optimum is 4.
func TestSolveMaximize(t *testing.T) {
	ctx := NewContext(1)
	ctx.SetRow(1, constraint.LE, rat("4"), vec(map[int]string{0: "1"}))

	res, err := ctx.Solve(vec(map[int]string{0: "1"}), false)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if res.Status != Optimal {
		t.Fatalf("Status = %v, want Optimal", res.Status)
	}
	if got := res.Values[0]; !rational.Equal(got, rat("4")) {
		t.Fatalf("x0 = %v, want 4", got)
	}
}

func TestContextSetRowReplacesAndRemoves(t *testing.T) {
	ctx := NewContext(1)
	ctx.SetRow(1, constraint.LE, rat("5"), vec(map[int]string{0: "1"}))
	if !ctx.HasRow(1) {
		t.Fatal("HasRow(1) = false after SetRow")
	}
	ctx.SetRow(1, constraint.LE, rat("9"), vec(map[int]string{0: "1"}))
	if len(ctx.ActiveCertIndices()) != 1 {
		t.Fatalf("ActiveCertIndices() = %v, want single entry", ctx.ActiveCertIndices())
	}
	ctx.RemoveRow(1)
	if ctx.HasRow(1) {
		t.Fatal("HasRow(1) = true after RemoveRow")
	}
}
