package vector

import (
	"testing"

	"github.com/scipopt/vipr-go/pkg/rational"
)

func r(s string) rational.Rat {
	v, err := rational.Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestSetGetDefaultZero(t *testing.T) {
	v := New()
	if !rational.IsZero(v.Get(3)) {
		t.Error("unset entry should read as zero")
	}
	v.Set(3, r("5/2"))
	if got := v.Get(3); !rational.Equal(got, r("5/2")) {
		t.Errorf("Get(3) = %s, want 5/2", got)
	}
}

func TestCompactifyDropsZeros(t *testing.T) {
	v := New()
	v.Set(1, r("0"))
	v.Set(2, r("3"))
	v.Compactify()
	if v.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", v.Len())
	}
	if !rational.IsZero(v.Get(1)) {
		t.Error("compactified entry 1 should read back as zero")
	}
}

func TestEqualIgnoresStoredZeros(t *testing.T) {
	a := New()
	a.Set(1, r("2"))
	a.Set(2, r("0"))

	b := New()
	b.Set(1, r("2"))

	if !Equal(a, b) {
		t.Error("vectors differing only by a stored zero should be equal")
	}
}

func TestSub(t *testing.T) {
	a := FromPairs([]int{1, 2}, []rational.Rat{r("3"), r("5")})
	b := FromPairs([]int{2, 3}, []rational.Rat{r("1"), r("4")})

	d := Sub(a, b)
	if got := d.Get(1); !rational.Equal(got, r("3")) {
		t.Errorf("d[1] = %s, want 3", got)
	}
	if got := d.Get(2); !rational.Equal(got, r("4")) {
		t.Errorf("d[2] = %s, want 4", got)
	}
	if got := d.Get(3); !rational.Equal(got, r("-4")) {
		t.Errorf("d[3] = %s, want -4", got)
	}
}

func TestScalarProduct(t *testing.T) {
	a := FromPairs([]int{1, 2, 3}, []rational.Rat{r("1"), r("2"), r("3")})
	b := FromPairs([]int{2, 3, 4}, []rational.Rat{r("5"), r("7"), r("9")})

	// overlap on indices 2,3: 2*5 + 3*7 = 10+21 = 31
	if got := ScalarProduct(a, b); !rational.Equal(got, r("31")) {
		t.Errorf("ScalarProduct = %s, want 31", got)
	}
}

func TestCloneIndependence(t *testing.T) {
	a := FromPairs([]int{1}, []rational.Rat{r("1")})
	b := a.Clone()
	b.Set(1, r("99"))
	if got := a.Get(1); !rational.Equal(got, r("1")) {
		t.Errorf("mutating clone affected original: a[1] = %s", got)
	}
}

func TestIndicesSorted(t *testing.T) {
	v := FromPairs([]int{5, 1, 3}, []rational.Rat{r("1"), r("1"), r("1")})
	idx := v.Indices()
	want := []int{1, 3, 5}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("Indices() = %v, want %v", idx, want)
		}
	}
}
