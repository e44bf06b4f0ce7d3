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

// Package vector implements the sparse coefficient vectors (variable index ->
// rational coefficient) that make up constraint left-hand sides.
package vector

import (
	"sort"

	"github.com/scipopt/vipr-go/pkg/rational"
)

// Vector is a finite mapping from variable index to a (possibly zero, until
// compactified) rational coefficient.
type Vector struct {
	entries map[int]rational.Rat
}

// New constructs an empty vector.
func New() *Vector {
	return &Vector{entries: make(map[int]rational.Rat)}
}

// FromPairs constructs a vector from index/value pairs, as read directly off
// the wire format.
func FromPairs(indices []int, values []rational.Rat) *Vector {
	v := New()
	for i, idx := range indices {
		v.Set(idx, values[i])
	}
	return v
}

// Set assigns the coefficient of variable i. A zero value is retained until
// Compactify is called, matching the reference implementation's lazy
// compaction.
func (v *Vector) Set(i int, val rational.Rat) {
	v.entries[i] = val
}

// Add accumulates val into the existing coefficient of variable i (used when
// folding a linear combination term by term).
func (v *Vector) Add(i int, val rational.Rat) {
	v.entries[i] = rational.Add(v.entries[i], val)
}

// Get returns the coefficient of variable i, or zero if absent.
func (v *Vector) Get(i int) rational.Rat {
	if val, ok := v.entries[i]; ok {
		return val
	}
	return rational.Zero()
}

// Len returns the number of stored (possibly zero) entries.
func (v *Vector) Len() int { return len(v.entries) }

// Compactify removes every entry whose value is exactly zero.
func (v *Vector) Compactify() {
	for i, val := range v.entries {
		if rational.IsZero(val) {
			delete(v.entries, i)
		}
	}
}

// Canonicalize puts every stored value into canonical form. math/big.Rat
// values are already canonical by construction, so this is a no-op pass
// provided for symmetry with the specification's explicit canonicalize step
// (and as a hook should a future rational backend require it).
func (v *Vector) Canonicalize() {
	for i, val := range v.entries {
		v.entries[i] = rational.Canonicalize(val)
	}
}

// Indices returns the stored variable indices in ascending order. Iteration
// order over the underlying map is unspecified per the specification; this
// helper exists purely so callers that need a deterministic order (printing,
// encoding) don't each reinvent the sort.
func (v *Vector) Indices() []int {
	out := make([]int, 0, len(v.entries))
	for i := range v.entries {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Equal reports whether a and b have identical (index, value) sets
// after compactification. Comparison is performed on copies so neither
// vector is mutated as a side effect of equality-testing.
func Equal(a, b *Vector) bool {
	ac, bc := a.Clone(), b.Clone()
	ac.Compactify()
	bc.Compactify()

	if ac.Len() != bc.Len() {
		return false
	}
	for i, av := range ac.entries {
		bv, ok := bc.entries[i]
		if !ok || !rational.Equal(av, bv) {
			return false
		}
	}
	return true
}

// Clone returns a deep (entry-wise) copy.
func (v *Vector) Clone() *Vector {
	nv := New()
	for i, val := range v.entries {
		nv.entries[i] = val
	}
	return nv
}

// Sub returns a new vector holding a-b, elementwise.
func Sub(a, b *Vector) *Vector {
	out := a.Clone()
	for i, bv := range b.entries {
		out.Add(i, rational.Neg(bv))
	}
	return out
}

// ScalarProduct returns the dot product of a and b, summed over the
// intersection of their supports.
func ScalarProduct(a, b *Vector) rational.Rat {
	small, large := a, b
	if len(a.entries) > len(b.entries) {
		small, large = b, a
	}

	sum := rational.Zero()
	for i, av := range small.entries {
		if bv, ok := large.entries[i]; ok {
			sum = rational.Add(sum, rational.Mul(av, bv))
		}
	}
	return sum
}

// IsEmpty reports whether the vector has no (compactified) nonzero entries.
// Callers that need this to reflect compactification should Compactify
// first; IsEmpty itself does not mutate the receiver.
func (v *Vector) IsEmpty() bool {
	for _, val := range v.entries {
		if !rational.IsZero(val) {
			return false
		}
	}
	return true
}
