package constraint

import (
	"testing"

	"github.com/scipopt/vipr-go/pkg/rational"
	"github.com/scipopt/vipr-go/pkg/scope"
	"github.com/scipopt/vipr-go/pkg/vector"
)

func r(s string) rational.Rat {
	v, err := rational.Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestNewFalsehood(t *testing.T) {
	// 0 <= -1 is a falsehood.
	c := New("c", LE, r("-1"), vector.New(), scope.Empty(), false, false)
	if !c.IsFalsehood() {
		t.Fatal("0 <= -1 should be a falsehood")
	}
	if c.IsTautology() {
		t.Fatal("a falsehood is not a tautology")
	}
}

func TestNewTautology(t *testing.T) {
	// 0 <= 1 is a tautology.
	c := New("c", LE, r("1"), vector.New(), scope.Empty(), false, false)
	if c.IsFalsehood() {
		t.Fatal("0 <= 1 is not a falsehood")
	}
	if !c.IsTautology() {
		t.Fatal("0 <= 1 should be a tautology")
	}
}

func TestDominatesFalsehoodDominatesEverything(t *testing.T) {
	falsehood := New("f", LE, r("-1"), vector.New(), scope.Empty(), false, false)
	other := New("o", GE, r("100"), vector.FromPairs([]int{0}, []rational.Rat{r("1")}), scope.Empty(), false, false)
	if !falsehood.Dominates(other) {
		t.Fatal("a falsehood should dominate any constraint")
	}
}

func TestDominatesLE(t *testing.T) {
	coef := vector.FromPairs([]int{0, 1}, []rational.Rat{r("1"), r("2")})
	tight := New("t", LE, r("3"), coef.Clone(), scope.Empty(), false, false)
	loose := New("l", LE, r("5"), coef.Clone(), scope.Empty(), false, false)
	if !tight.Dominates(loose) {
		t.Fatal("x+2y<=3 should dominate x+2y<=5")
	}
	if loose.Dominates(tight) {
		t.Fatal("x+2y<=5 should not dominate x+2y<=3")
	}
}

func TestDominatesEqualityRequiresExactRhs(t *testing.T) {
	coef := vector.FromPairs([]int{0}, []rational.Rat{r("1")})
	a := New("a", EQ, r("3"), coef.Clone(), scope.Empty(), false, false)
	b := New("b", EQ, r("3"), coef.Clone(), scope.Empty(), false, false)
	c := New("c", EQ, r("4"), coef.Clone(), scope.Empty(), false, false)
	if !a.Dominates(b) {
		t.Fatal("equal equalities should dominate each other")
	}
	if a.Dominates(c) {
		t.Fatal("x=3 should not dominate x=4")
	}
}

func TestRoundedChvatalGomory(t *testing.T) {
	// 2x + 3y <= 7/3 over integer x, y: for an LE sense the rounded rhs is
	// floor(7/3) = 2.
	coef := vector.FromPairs([]int{0, 1}, []rational.Rat{r("2"), r("3")})
	c := New("c", LE, r("7/3"), coef, scope.Empty(), false, false)
	rounded, err := c.Rounded(func(int) bool { return true })
	if err != nil {
		t.Fatalf("Rounded() error = %v", err)
	}
	if got := rounded.Rhs.String(); got != "2" {
		t.Fatalf("Rounded().Rhs = %s, want 2", got)
	}
}

func TestRoundedRejectsNonIntegerCoefficient(t *testing.T) {
	coef := vector.FromPairs([]int{0}, []rational.Rat{r("1/2")})
	c := New("c", LE, r("1"), coef, scope.Empty(), false, false)
	if _, err := c.Rounded(func(int) bool { return true }); err == nil {
		t.Fatal("expected an error rounding a non-integer coefficient")
	}
}

func TestIdentityEqualCoefRequiresSameObject(t *testing.T) {
	obj := vector.FromPairs([]int{0}, []rational.Rat{r("1")})
	SetObjective(obj)

	a := New("a", LE, r("1"), Objective(), scope.Empty(), false, true)
	b := New("b", LE, r("1"), Objective(), scope.Empty(), false, true)
	if !a.IdentityEqualCoef(b) {
		t.Fatal("two constraints built from the shared objective vector should be identity-equal")
	}

	valueEqual := New("c", LE, r("1"), vector.FromPairs([]int{0}, []rational.Rat{r("1")}), scope.Empty(), false, false)
	if a.IdentityEqualCoef(valueEqual) {
		t.Fatal("a value-equal but distinct vector should not be identity-equal")
	}
}

func TestTrashClearsCoefficients(t *testing.T) {
	c := New("c", LE, r("1"), vector.FromPairs([]int{0}, []rational.Rat{r("1")}), scope.Empty(), false, false)
	c.Trash()
	if !c.IsTrashed() {
		t.Fatal("expected IsTrashed() after Trash()")
	}
	if c.Coef != nil {
		t.Fatal("expected Coef to be released after Trash()")
	}
}
