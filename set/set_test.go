package set

import (
	"sort"
	"testing"
)

func TestFromSliceDeduplicates(t *testing.T) {
	s := FromSlice([]string{"raleigh", "durham", "raleigh"})
	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}
	if !s.Contains("raleigh") || !s.Contains("durham") {
		t.Errorf("set missing expected members: %v", s.ToSlice())
	}
}

func TestAddRemove(t *testing.T) {
	s := New[string]()
	s.Add("asheville")
	if !s.Contains("asheville") {
		t.Error("expected member after Add")
	}
	s.Remove("asheville")
	if s.Contains("asheville") {
		t.Error("expected member removed")
	}
	// removing a missing item is a no-op
	s.Remove("asheville")
	if s.Size() != 0 {
		t.Errorf("Size() = %d, want 0", s.Size())
	}
}

func TestIntersection(t *testing.T) {
	a := FromSlice([]int{1, 2, 3})
	b := FromSlice([]int{2, 3, 4})
	got := a.Intersection(b).ToSlice()
	sort.Ints(got)
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("Intersection = %v, want [2 3]", got)
	}
}
