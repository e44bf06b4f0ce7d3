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
	"bufio"
	"fmt"
	"io"

	"github.com/scipopt/vipr-go/pkg/rational"
	"github.com/scipopt/vipr-go/pkg/vector"
)

// Writer serialises a Problem back to the VIPR wire format. It writes the
// VER/VAR/INT/OBJ/CON/RTP/SOL sections verbatim and hands DER steps to the
// caller one at a time via WriteDerivationStep, so a completer or
// incompletifier can stream rewritten steps without materialising the whole
// output in memory.
type Writer struct {
	w   *bufio.Writer
	p   *Problem
	err error
}

// NewWriter constructs a Writer over w. Call WriteHeader once, then
// WriteDerivationStep once per step in DER section order, then Flush.
func NewWriter(w io.Writer, p *Problem) *Writer {
	return &Writer{w: bufio.NewWriter(w), p: p}
}

func (wr *Writer) printf(format string, args ...any) {
	if wr.err != nil {
		return
	}
	if _, err := fmt.Fprintf(wr.w, format, args...); err != nil {
		wr.err = err
	}
}

// WriteHeader writes VER through SOL unchanged from the parsed problem.
func (wr *Writer) WriteHeader() error {
	wr.printf("VER %d.%d\n", SupportedMajor, MaxSupportedMinor)

	wr.printf("VAR %d", len(wr.p.Variables))
	for _, v := range wr.p.Variables {
		wr.printf(" %s", v.Name)
	}
	wr.printf("\n")

	var intIdx []int
	for i, v := range wr.p.Variables {
		if v.Integer {
			intIdx = append(intIdx, i)
		}
	}
	wr.printf("INT %d", len(intIdx))
	for _, idx := range intIdx {
		wr.printf(" %d", idx)
	}
	wr.printf("\n")

	sense := "min"
	if wr.p.ObjSense == Maximize {
		sense = "max"
	}
	wr.printf("OBJ %s ", sense)
	wr.writeVec(wr.p.Objective, false)
	wr.printf("\n")

	wr.printf("CON %d 0\n", len(wr.p.BaseConstraints))
	for _, c := range wr.p.BaseConstraints {
		wr.printf("%s %s ", c.Label, c.Sense.String())
		wr.writeRat(c.Rhs)
		wr.printf(" ")
		wr.writeVec(c.Coef, c.CoefEqualsObjective())
		wr.printf("\n")
	}

	switch wr.p.RTP.Kind {
	case RTPInfeasible:
		wr.printf("RTP infeas\n")
	case RTPRange:
		wr.printf("RTP range ")
		wr.writeBound(wr.p.RTP.Lb, "-inf")
		wr.printf(" ")
		wr.writeBound(wr.p.RTP.Ub, "inf")
		wr.printf("\n")
	}

	wr.printf("SOL %d\n", len(wr.p.Solutions))
	for _, s := range wr.p.Solutions {
		wr.printf("%s ", s.Label)
		wr.writeVec(s.Values, false)
		wr.printf("\n")
	}

	wr.printf("DER %d\n", len(wr.p.Derivations))
	return wr.err
}

func (wr *Writer) writeBound(b *rational.Rat, inf string) {
	if b == nil {
		wr.printf("%s", inf)
		return
	}
	wr.writeRat(*b)
}

func (wr *Writer) writeRat(v rational.Rat) {
	wr.printf("%s", v.String())
}

func (wr *Writer) writeVec(v *vector.Vector, asObj bool) {
	if asObj {
		wr.printf("OBJ")
		return
	}
	idx := v.Indices()
	wr.printf("%d", len(idx))
	for _, i := range idx {
		wr.printf(" %d ", i)
		wr.writeRat(v.Get(i))
	}
}

// WriteDerivationStep writes one DER line. A lin/rnd step's Reason may carry
// Incomplete or Weak, in which case its wire form is the abbreviated
// "incomplete <idx>*" or "weak { <override>* } <multipliers>" payload rather
// than a plain multiplier list.
func (wr *Writer) WriteDerivationStep(step DerivationStep) error {
	if wr.err != nil {
		return wr.err
	}
	wr.printf("%s %s ", step.Label, step.Sense.String())
	wr.writeRat(step.Rhs)
	wr.printf(" ")
	wr.writeVec(step.Coef, step.CoefEqualsObj)
	wr.printf(" { ")
	wr.writeReason(step.Reason)
	wr.printf(" } %d\n", step.MaxRefIdx)
	return wr.err
}

func (wr *Writer) writeReason(r Reason) {
	switch r.Kind {
	case ReasonAsm:
		wr.printf("asm")
	case ReasonSol:
		wr.printf("sol")
	case ReasonLin, ReasonRnd:
		if r.Kind == ReasonLin {
			wr.printf("lin ")
		} else {
			wr.printf("rnd ")
		}
		if r.Incomplete {
			wr.printf("incomplete")
			for _, idx := range r.ActiveDerivations {
				wr.printf(" %d", idx)
			}
			return
		}
		if r.Weak {
			wr.printf("weak { %d", len(r.WeakBounds))
			for _, b := range r.WeakBounds {
				dir := "L"
				if b.IsUpper {
					dir = "U"
				}
				wr.printf(" %s %d %d ", dir, b.VarIdx, b.BoundCertIdx)
				wr.writeRat(b.Value)
			}
			wr.printf(" } ")
		}
		wr.writeMultiplierList(r.Indices, r.Multipliers)
	case ReasonUns:
		wr.printf("uns %d %d %d %d", r.Con1, r.Asm1, r.Con2, r.Asm2)
	}
}

func (wr *Writer) writeMultiplierList(idx []int, mult []rational.Rat) {
	wr.printf("%d", len(idx))
	for k, i := range idx {
		wr.printf(" %d ", i)
		wr.writeRat(mult[k])
	}
}

// Flush flushes any buffered output.
func (wr *Writer) Flush() error {
	if wr.err != nil {
		return wr.err
	}
	return wr.w.Flush()
}
