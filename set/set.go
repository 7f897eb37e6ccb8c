package set

// Set represents a collection of unique elements.
type Set[T comparable] struct {
	items map[T]struct{}
}

// New creates and returns a new empty Set.
func New[T comparable]() *Set[T] {
	return &Set[T]{
		items: make(map[T]struct{}),
	}
}

// FromSlice creates a new Set from the provided slice of items.
// Duplicates in the slice are represented once.
func FromSlice[T comparable](items []T) *Set[T] {
	set := New[T]()
	for _, item := range items {
		set.Add(item)
	}
	return set
}

// Add adds an item to the Set.
func (s *Set[T]) Add(item T) {
	s.items[item] = struct{}{}
}

// Remove removes an item from the Set.
// If the item doesn't exist, the Set remains unchanged.
func (s *Set[T]) Remove(item T) {
	delete(s.items, item)
}

// Contains checks if the item exists in the Set.
func (s *Set[T]) Contains(item T) bool {
	_, exists := s.items[item]
	return exists
}

// Size returns the number of items in the Set.
func (s *Set[T]) Size() int {
	return len(s.items)
}

// ToSlice returns all the items in the Set as a slice.
// The order of items in the returned slice is not guaranteed.
func (s *Set[T]) ToSlice() []T {
	result := make([]T, 0, len(s.items))
	for item := range s.items {
		result = append(result, item)
	}
	return result
}

// Intersection returns a new Set containing only elements that exist in both Sets.
func (s *Set[T]) Intersection(other *Set[T]) *Set[T] {
	result := New[T]()
	for item := range s.items {
		if other.Contains(item) {
			result.Add(item)
		}
	}
	return result
}
