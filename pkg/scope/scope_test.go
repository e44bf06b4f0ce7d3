package scope

import "testing"

func TestInsertContains(t *testing.T) {
	s := Empty()
	s.Insert(3)
	s.Insert(10)
	if !s.Contains(3) || !s.Contains(10) {
		t.Fatal("expected 3 and 10 to be members")
	}
	if s.Contains(4) {
		t.Fatal("4 should not be a member")
	}
}

func TestRemove(t *testing.T) {
	s := Single(7)
	s.Remove(7)
	if !s.IsEmpty() {
		t.Fatal("scope should be empty after removing its only member")
	}
}

func TestUnion(t *testing.T) {
	a := Single(1)
	b := Single(2)
	u := Union(a, b)
	if !u.Contains(1) || !u.Contains(2) {
		t.Fatal("union should contain both members")
	}
	// originals must be unaffected
	if a.Contains(2) || b.Contains(1) {
		t.Fatal("union must not alias its inputs")
	}
}

func TestEqualAndSubset(t *testing.T) {
	a := Union(Single(1), Single(2))
	b := Union(Single(2), Single(1))
	if !Equal(a, b) {
		t.Fatal("scopes with the same members in different insertion order should be equal")
	}
	if !Subset(Single(1), a) {
		t.Fatal("{1} should be a subset of {1,2}")
	}
	if Subset(a, Single(1)) {
		t.Fatal("{1,2} should not be a subset of {1}")
	}
}

func TestCountAndIndices(t *testing.T) {
	s := Union(Single(5), Single(1))
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	idx := s.Indices()
	if len(idx) != 2 || idx[0] != 1 || idx[1] != 5 {
		t.Fatalf("Indices() = %v, want [1 5]", idx)
	}
}
