package service

// List editing helpers shared by the question list and per-question
// option lists. All operations return a fresh slice; callers never see
// in-place mutation of a draft they already hold.

// appendItem returns a new list with item appended.
func appendItem[T any](list []T, item T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, item)
}

// removeItem excises the element at index, preserving the order of the
// remaining items. The removal is rejected (original list returned,
// ok=false) when the index is out of range or the list would shrink
// below min.
func removeItem[T any](list []T, index, min int) ([]T, bool) {
	if index < 0 || index >= len(list) {
		return list, false
	}
	if len(list)-1 < min {
		return list, false
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:index]...)
	out = append(out, list[index+1:]...)
	return out, true
}
