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

// Package rational provides the arbitrary-precision rational arithmetic used
// throughout the certificate toolkit. It is a thin adapter over math/big's
// Rat, which plays the role of the "external big-rational library" the
// specification treats as an out-of-scope collaborator: construction,
// arithmetic, comparison, and rounding are delegated to it directly rather
// than reimplemented.
package rational

import (
	"fmt"
	"math/big"
)

// Rat is an arbitrary-precision rational value. The zero value is zero.
type Rat struct {
	v big.Rat
}

// Zero is the rational constant 0.
func Zero() Rat { return Rat{} }

// One is the rational constant 1.
func One() Rat {
	var r Rat
	r.v.SetInt64(1)
	return r
}

// FromInt64 constructs a rational from an integer numerator.
func FromInt64(n int64) Rat {
	var r Rat
	r.v.SetInt64(n)
	return r
}

// Parse constructs a Rat from a decimal string understood by big.Rat:
// either a plain/decimal number ("3", "1.25") or a fraction ("p/q"). Returns
// an error if the string is malformed.
func Parse(s string) (Rat, error) {
	var r Rat
	if _, ok := r.v.SetString(s); !ok {
		return Rat{}, fmt.Errorf("invalid rational literal %q", s)
	}
	return r, nil
}

// Add returns a+b.
func Add(a, b Rat) Rat {
	var r Rat
	r.v.Add(&a.v, &b.v)
	return r
}

// Sub returns a-b.
func Sub(a, b Rat) Rat {
	var r Rat
	r.v.Sub(&a.v, &b.v)
	return r
}

// Mul returns a*b.
func Mul(a, b Rat) Rat {
	var r Rat
	r.v.Mul(&a.v, &b.v)
	return r
}

// Quo returns a/b. Panics if b is zero, matching big.Rat's contract.
func Quo(a, b Rat) Rat {
	var r Rat
	r.v.Quo(&a.v, &b.v)
	return r
}

// Neg returns -a.
func Neg(a Rat) Rat {
	var r Rat
	r.v.Neg(&a.v)
	return r
}

// Abs returns |a|.
func Abs(a Rat) Rat {
	var r Rat
	r.v.Abs(&a.v)
	return r
}

// Cmp returns -1, 0, or +1 as a is less than, equal to, or greater than b.
func Cmp(a, b Rat) int { return a.v.Cmp(&b.v) }

// Sign returns -1, 0, or +1 according to the sign of a.
func Sign(a Rat) int { return a.v.Sign() }

// IsZero reports whether a is exactly zero.
func IsZero(a Rat) bool { return a.v.Sign() == 0 }

// Equal reports whether a and b denote the same rational number.
func Equal(a, b Rat) bool { return a.v.Cmp(&b.v) == 0 }

// Floor returns the greatest integer rational <= a.
func Floor(a Rat) Rat {
	var (
		q, m big.Int
		r    Rat
	)
	q.DivMod(a.v.Num(), a.v.Denom(), &m)
	r.v.SetInt(&q)
	return r
}

// Ceil returns the least integer rational >= a.
func Ceil(a Rat) Rat {
	f := Floor(a)
	if Equal(f, a) {
		return f
	}
	return Add(f, One())
}

// IsInteger reports whether a has denominator 1.
func IsInteger(a Rat) bool {
	return a.v.IsInt()
}

// Canonicalize returns a in lowest terms. math/big.Rat is always kept in
// canonical (reduced, denominator > 0) form by construction, so this exists
// to make call sites that mirror the specification's explicit canonicalize
// step self-documenting; it is the identity function.
func Canonicalize(a Rat) Rat { return a }

// String renders a in "p/q" form (or "p" when the denominator is 1).
func (r Rat) String() string { return r.v.RatString() }

// MarshalJSON renders r as its wire-format "p/q" string, so debug dumps of a
// parsed certificate stay exact rather than rounding through a float.
func (r Rat) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.v.RatString() + `"`), nil
}

// Float64 returns the nearest float64 approximation, for diagnostics only.
func (r Rat) Float64() float64 {
	f, _ := r.v.Float64()
	return f
}

// BigRat exposes the underlying math/big.Rat for callers (e.g. an external
// LP solver adapter) that need to interoperate with other math/big-based
// code.
func (r Rat) BigRat() *big.Rat {
	var cp big.Rat
	cp.Set(&r.v)
	return &cp
}

// FromBigRat wraps an existing math/big.Rat.
func FromBigRat(v *big.Rat) Rat {
	var r Rat
	r.v.Set(v)
	return r
}
