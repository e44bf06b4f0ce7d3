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

// Package lp defines the exact-rational LP solver boundary the completer
// drives, and a reference dense-tableau two-phase simplex implementation so
// the completer has something to run against in tests. An exact-rational LP
// solver is explicitly out of scope to build as a production artifact; this
// reference implementation exists only to exercise pkg/complete and is not
// meant to scale to large models. Production deployments supply their own
// Context satisfying the same interface (e.g. wrapping SoPlex or HiGHS).
package lp

import (
	"github.com/scipopt/vipr-go/pkg/constraint"
	"github.com/scipopt/vipr-go/pkg/rational"
	"github.com/scipopt/vipr-go/pkg/vector"
)

// Status is the outcome of a Solve call.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Other
)

// Row is one constraint row of an LP context, keyed by the certificate
// index of the constraint it mirrors.
type Row struct {
	CertIndex int
	Sense     constraint.Sense
	Rhs       rational.Rat
	Coef      *vector.Vector
}

// Result is what a solve produces: on Optimal, dual values per row
// certificate index and reduced costs per variable; on Infeasible, a dual
// Farkas certificate in the same shape.
type Result struct {
	Status       Status
	Values       map[int]rational.Rat // variable index -> value, set when Optimal
	Duals        map[int]rational.Rat // row certificate index -> dual value
	ReducedCosts map[int]rational.Rat // variable index -> reduced cost, set when Optimal
}

// Context is an exact-rational LP over a fixed variable set whose rows are
// the currently active constraints, addressable by certificate index so the
// completer can add/remove rows as the active set changes between steps.
type Context struct {
	numVars int
	rows    []Row
	byIdx   map[int]int // certIndex -> position in rows
}

// NewContext allocates an LP context over numVars variables with no rows.
func NewContext(numVars int) *Context {
	return &Context{numVars: numVars, byIdx: make(map[int]int)}
}

// SetRow inserts or replaces the row mirroring constraint certIndex.
func (c *Context) SetRow(certIndex int, sense constraint.Sense, rhs rational.Rat, coef *vector.Vector) {
	if pos, ok := c.byIdx[certIndex]; ok {
		c.rows[pos] = Row{CertIndex: certIndex, Sense: sense, Rhs: rhs, Coef: coef}
		return
	}
	c.byIdx[certIndex] = len(c.rows)
	c.rows = append(c.rows, Row{CertIndex: certIndex, Sense: sense, Rhs: rhs, Coef: coef})
}

// RemoveRow deletes the row mirroring constraint certIndex, if present.
func (c *Context) RemoveRow(certIndex int) {
	pos, ok := c.byIdx[certIndex]
	if !ok {
		return
	}
	last := len(c.rows) - 1
	if pos != last {
		c.rows[pos] = c.rows[last]
		c.byIdx[c.rows[pos].CertIndex] = pos
	}
	c.rows = c.rows[:last]
	delete(c.byIdx, certIndex)
}

// HasRow reports whether certIndex currently has a row.
func (c *Context) HasRow(certIndex int) bool {
	_, ok := c.byIdx[certIndex]
	return ok
}

// ActiveCertIndices returns the certificate indices currently loaded as rows.
func (c *Context) ActiveCertIndices() []int {
	out := make([]int, len(c.rows))
	for i, r := range c.rows {
		out[i] = r.CertIndex
	}
	return out
}

// Solve sets the objective to obj (minimizing if minimize, else maximizing)
// and solves the current rows, assuming free (unrestricted-sign) variables,
// via a two-phase dense-tableau simplex in exact rational arithmetic.
func (c *Context) Solve(obj *vector.Vector, minimize bool) (*Result, error) {
	tab, err := newTableau(c, obj, minimize)
	if err != nil {
		return nil, err
	}
	return tab.solve()
}
