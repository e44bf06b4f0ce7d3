package engine

import (
	"strings"
	"testing"

	"github.com/scipopt/vipr-go/pkg/certificate"
)

func mustRead(t *testing.T, src string) *certificate.Problem {
	t.Helper()
	p, err := certificate.Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return p
}

// scenario 1 from the worked examples: x<=-1 and x>=1 combine to 0<=-2, a
// falsehood, proving infeasibility.
func TestVerifyTrivialInfeasibility(t *testing.T) {
	src := `
VER 1.0
VAR 1 x
INT 0
OBJ min 0
CON 2 0
c1 L -1 1 0 1
c2 G 1 1 0 1
RTP infeas
SOL 0
DER 1
d1 L -2 0 { lin 2 0 1 1 -1 } -1
`
	p := mustRead(t, src)
	if err := New(p).Verify(); err != nil {
		t.Fatalf("Verify() error = %v, want accept", err)
	}
}

// scenario 2: a range lower bound claimed on the OBJ vector, derived from the
// base bound x >= 0.
func TestVerifyRangeBound(t *testing.T) {
	src := `
VER 1.0
VAR 1 x
INT 1 0
OBJ min 1 0 1
CON 2 0
b1 L 10 1 0 1
b2 G 0 1 0 1
RTP range 0 10
SOL 1
s1 1 0 0
DER 1
r1 G 0 OBJ { lin 1 1 1 } -1
`
	p := mustRead(t, src)
	if err := New(p).Verify(); err != nil {
		t.Fatalf("Verify() error = %v, want accept", err)
	}
}

// a Chvátal-Gomory cut: 2x>=1 over an integer x, multiplied by 1/2 gives
// x>=1/2 which rounds up to x>=1, establishing the RTP's lower bound.
func TestVerifyChvatalGomoryCut(t *testing.T) {
	src := `
VER 1.0
VAR 1 x
INT 1 0
OBJ min 1 0 1
CON 1 0
c1 G 1 1 0 2
RTP range 0 10
SOL 1
s1 1 0 1
DER 1
d1 G 1 OBJ { rnd 1 0 1/2 } -1
`
	p := mustRead(t, src)
	if err := New(p).Verify(); err != nil {
		t.Fatalf("Verify() error = %v, want accept", err)
	}
}

// scenario 5: with best known value 7 and an integral objective, the sol
// cutoff obj <= 6 is accepted (the base bound x >= 7 then proves the RTP's
// lower bound); a cutoff of obj <= 5 is rejected.
func TestVerifyPrimalCutoffAccepted(t *testing.T) {
	src := `
VER 1.0
VAR 1 x
INT 1 0
OBJ min 1 0 1
CON 1 0
b1 G 7 1 0 1
RTP range 7 inf
SOL 1
s1 1 0 7
DER 2
d1 L 6 OBJ { sol } -1
d2 G 7 OBJ { lin 1 0 1 } -1
`
	p := mustRead(t, src)
	if err := New(p).Verify(); err != nil {
		t.Fatalf("Verify() error = %v, want accept", err)
	}
}

func TestVerifyPrimalCutoffRejected(t *testing.T) {
	src := `
VER 1.0
VAR 1 x
INT 1 0
OBJ min 1 0 1
CON 0 0
RTP range 7 inf
SOL 1
s1 1 0 7
DER 1
d1 L 5 OBJ { sol } -1
`
	p := mustRead(t, src)
	if err := New(p).Verify(); err == nil {
		t.Fatal("Verify() accepted a cutoff below the best-minus-one bound, want rejection")
	}
}

func TestVerifyMultiStepAsmThenLin(t *testing.T) {
	src := `
VER 1.0
VAR 1 x
INT 0
OBJ min 0
CON 2 0
c1 L -1 1 0 1
c2 G 1 1 0 1
RTP infeas
SOL 0
DER 2
d1 L -1 1 0 1 { asm } -1
d2 L -2 0 { lin 2 0 1 1 -1 } -1
`
	p := mustRead(t, src)
	if err := New(p).Verify(); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
}
