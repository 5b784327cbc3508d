package assign

import (
	"slices"
	"testing"
)

func TestBruteForce_Empty(t *testing.T) {
	if got, total := BruteForce(nil); got != nil || total != 0 {
		t.Errorf("expected nil/0, got %v/%d", got, total)
	}
}

func TestBruteForce_Rectangular(t *testing.T) {
	m := Matrix{
		{10, 1},
		{1, 10},
		{5, 5},
	}
	got, total := BruteForce(m)
	if total != 2 {
		t.Errorf("expected optimal total 2, got %d (%v)", total, got)
	}
	if got[0] != 1 || got[1] != 0 || got[2] != Unassigned {
		t.Errorf("expected [1 0 -1], got %v", got)
	}
}

func TestBruteForce_OverLimit(t *testing.T) {
	m := make(Matrix, BruteForceLimit+1)
	for i := range m {
		m[i] = make([]int64, BruteForceLimit+1)
	}
	if got, _ := BruteForce(m); got != nil {
		t.Errorf("expected nil above the size limit, got %v", got)
	}
}

func TestPermutations_CountAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	permutations(4, func(p []int) {
		key := ""
		for _, v := range p {
			key += string(rune('0' + v))
		}
		if seen[key] {
			t.Errorf("permutation %v visited twice", p)
		}
		seen[key] = true
	})
	if len(seen) != 24 {
		t.Errorf("expected 24 permutations, got %d", len(seen))
	}
}

func TestPermutations_Trivial(t *testing.T) {
	var visits [][]int
	permutations(1, func(p []int) {
		visits = append(visits, slices.Clone(p))
	})
	if len(visits) != 1 || !slices.Equal(visits[0], []int{0}) {
		t.Errorf("expected single [0] visit, got %v", visits)
	}
}
