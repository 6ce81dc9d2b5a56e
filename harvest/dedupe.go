package harvest

import "github.com/fwojciec/relgraph/bloom"

// deduper tracks item identities seen during a single run. The Bloom
// filter is a fast pre-check; the map is authoritative, so a Bloom false
// positive never drops a genuinely new item.
type deduper struct {
	filter *bloom.Filter
	seen   map[string]struct{}
}

func newDeduper(expectedItems uint, falsePositiveRate float64) *deduper {
	return &deduper{
		filter: bloom.NewFilter(expectedItems, falsePositiveRate),
		seen:   make(map[string]struct{}),
	}
}

// duplicate reports whether the identity was already observed this run,
// recording it otherwise.
func (d *deduper) duplicate(id string) bool {
	if d.filter.Test(id) {
		if _, ok := d.seen[id]; ok {
			return true
		}
	}
	d.filter.Add(id)
	d.seen[id] = struct{}{}
	return false
}
