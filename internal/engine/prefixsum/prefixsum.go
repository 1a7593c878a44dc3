// Package prefixsum provides an index over a sequence of non-negative
// integers that answers prefix-sum and reverse lookups.
//
// The view model stores one value per model line: the number of view lines
// that model line produces. PrefixSum then maps a model line to its first
// view line and IndexOf maps a view line back to its model line.
//
// Prefix sums are cached and recomputed lazily from the lowest index that
// was invalidated, so a burst of edits near the end of a document only pays
// for the tail.
package prefixsum

import "sort"

// IndexResult is the answer of a reverse lookup: the element that contains
// the requested offset and the offset within that element.
type IndexResult struct {
	Index     int
	Remainder int
}

// Index is a mutable sequence of non-negative integers with prefix sums.
// It is not safe for concurrent use.
type Index struct {
	values []int
	sums   []int // sums[i] = values[0] + ... + values[i]
	valid  int   // sums[0:valid] are up to date
}

// New creates an index holding a copy of values.
// Negative values are treated as zero.
func New(values []int) *Index {
	idx := &Index{values: make([]int, len(values)), sums: make([]int, len(values))}
	for i, v := range values {
		idx.values[i] = clampValue(v)
	}
	return idx
}

func clampValue(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// Len returns the number of values.
func (idx *Index) Len() int {
	return len(idx.values)
}

// Value returns the value at index.
func (idx *Index) Value(index int) int {
	return idx.values[index]
}

// Values returns a copy of all values.
func (idx *Index) Values() []int {
	out := make([]int, len(idx.values))
	copy(out, idx.values)
	return out
}

// SetValue replaces the value at index.
// It returns false if index is out of range or the value is unchanged.
func (idx *Index) SetValue(index, value int) bool {
	if index < 0 || index >= len(idx.values) {
		return false
	}
	value = clampValue(value)
	if idx.values[index] == value {
		return false
	}
	idx.values[index] = value
	idx.invalidate(index)
	return true
}

// InsertValues inserts values before insertIndex.
// insertIndex is clamped into [0, Len()].
func (idx *Index) InsertValues(insertIndex int, values []int) bool {
	if len(values) == 0 {
		return false
	}
	insertIndex = max(0, min(insertIndex, len(idx.values)))

	next := make([]int, 0, len(idx.values)+len(values))
	next = append(next, idx.values[:insertIndex]...)
	for _, v := range values {
		next = append(next, clampValue(v))
	}
	next = append(next, idx.values[insertIndex:]...)
	sums := make([]int, len(next))
	copy(sums, idx.sums[:min(insertIndex, idx.valid)])
	idx.values = next
	idx.sums = sums
	idx.invalidate(insertIndex)
	return true
}

// RemoveValues removes count values starting at startIndex.
// The range is clamped to the existing values.
func (idx *Index) RemoveValues(startIndex, count int) bool {
	if startIndex < 0 || startIndex >= len(idx.values) || count <= 0 {
		return false
	}
	end := min(startIndex+count, len(idx.values))
	idx.values = append(idx.values[:startIndex], idx.values[end:]...)
	idx.sums = idx.sums[:len(idx.values)]
	idx.invalidate(startIndex)
	return true
}

func (idx *Index) invalidate(from int) {
	if from < idx.valid {
		idx.valid = from
	}
}

// Total returns the sum of all values.
func (idx *Index) Total() int {
	if len(idx.values) == 0 {
		return 0
	}
	return idx.sumThrough(len(idx.values) - 1)
}

// PrefixSum returns the sum of the first count values.
// PrefixSum(0) is zero and PrefixSum(Len()) equals Total().
func (idx *Index) PrefixSum(count int) int {
	if count <= 0 {
		return 0
	}
	count = min(count, len(idx.values))
	return idx.sumThrough(count - 1)
}

// sumThrough returns values[0] + ... + values[i].
func (idx *Index) sumThrough(i int) int {
	if i >= idx.valid {
		start := idx.valid
		acc := 0
		if start > 0 {
			acc = idx.sums[start-1]
		}
		for j := start; j <= i; j++ {
			acc += idx.values[j]
			idx.sums[j] = acc
		}
		idx.valid = i + 1
	}
	return idx.sums[i]
}

// IndexOf finds the element covering the zero-based offset sum.
// Elements with value zero are never returned unless all trailing elements
// are zero. Offsets past the total resolve to the last element with the
// excess as remainder.
func (idx *Index) IndexOf(sum int) IndexResult {
	n := len(idx.values)
	if n == 0 {
		return IndexResult{}
	}
	sum = max(0, sum)
	idx.sumThrough(n - 1)

	// First index whose inclusive prefix sum exceeds sum.
	i := sort.Search(n, func(i int) bool { return idx.sums[i] > sum })
	if i == n {
		i = n - 1
	}
	before := 0
	if i > 0 {
		before = idx.sums[i-1]
	}
	return IndexResult{Index: i, Remainder: sum - before}
}
