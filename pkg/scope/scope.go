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

// Package scope implements assumption scopes: the set of assumption
// constraint indices a derived constraint depends on. Scopes are small,
// dense subsets of a known finite constraint-index universe, so they are
// backed by a bitset rather than a hash set.
package scope

import "github.com/bits-and-blooms/bitset"

// Scope is a set of assumption constraint indices.
type Scope struct {
	bits *bitset.BitSet
}

// Empty returns a scope with no assumptions.
func Empty() Scope {
	return Scope{bits: bitset.New(0)}
}

// Single returns a scope containing exactly one assumption index.
func Single(idx uint) Scope {
	s := Empty()
	s.Insert(idx)
	return s
}

// Insert adds idx to the scope.
func (s *Scope) Insert(idx uint) {
	s.bits.Set(idx)
}

// Remove deletes idx from the scope, if present.
func (s *Scope) Remove(idx uint) {
	s.bits.Clear(idx)
}

// Contains reports whether idx is a member of the scope.
func (s Scope) Contains(idx uint) bool {
	return s.bits.Test(idx)
}

// IsEmpty reports whether the scope has no assumptions.
func (s Scope) IsEmpty() bool {
	return s.bits.None()
}

// Count returns the number of assumption indices in the scope.
func (s Scope) Count() uint {
	return s.bits.Count()
}

// Clone returns an independent copy.
func (s Scope) Clone() Scope {
	return Scope{bits: s.bits.Clone()}
}

// Union returns the union of a and b, a new scope aliasing neither input.
func Union(a, b Scope) Scope {
	return Scope{bits: a.bits.Union(b.bits)}
}

// Equal reports whether a and b contain exactly the same assumption indices.
func Equal(a, b Scope) bool {
	return a.bits.Equal(b.bits)
}

// Subset reports whether every assumption in a is also in b.
func Subset(a, b Scope) bool {
	return b.bits.IsSuperSet(a.bits)
}

// Indices returns the scope's assumption indices in ascending order.
func (s Scope) Indices() []uint {
	out := make([]uint, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		out = append(out, i)
	}
	return out
}
