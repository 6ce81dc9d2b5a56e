// Package bloom provides item identity deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for run-scoped item deduplication.
// A positive test only means the item MIGHT have been seen; callers that
// cannot tolerate false positives must confirm against authoritative
// state before dropping an item.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds an item identity to the filter.
func (f *Filter) Add(id string) {
	f.f.AddString(id)
}

// Test returns true if the identity might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(id string) bool {
	return f.f.TestString(id)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
