package goquery

import "github.com/fwojciec/relgraph"

var _ relgraph.LocatorRegistry = (*Registry)(nil)

// Registry manages locator profiles per harvest kind, with a fallback
// profile for kinds nothing specific is registered for.
type Registry struct {
	fallback *relgraph.LocatorProfile
	profiles map[relgraph.HarvestKind]*relgraph.LocatorProfile
}

// NewRegistry creates an empty Registry with the given fallback profile.
func NewRegistry(fallback *relgraph.LocatorProfile) *Registry {
	return &Registry{
		fallback: fallback,
		profiles: make(map[relgraph.HarvestKind]*relgraph.LocatorProfile),
	}
}

// DefaultRegistry returns a Registry pre-loaded with the built-in
// profiles for every harvest kind.
func DefaultRegistry() *Registry {
	r := NewRegistry(ConnectionLocators())
	r.Register(ConnectionLocators())
	r.Register(ActivityLocators())
	r.Register(CompanyLocators())
	return r
}

// Get returns the profile for a harvest kind, falling back to the
// registry-wide default when none is registered.
func (r *Registry) Get(kind relgraph.HarvestKind) *relgraph.LocatorProfile {
	if profile, ok := r.profiles[kind]; ok {
		return profile
	}
	return r.fallback
}

// Register adds or replaces the profile for its harvest kind.
func (r *Registry) Register(profile *relgraph.LocatorProfile) {
	r.profiles[profile.Kind] = profile
}

// List returns all registered harvest kinds.
func (r *Registry) List() []relgraph.HarvestKind {
	kinds := make([]relgraph.HarvestKind, 0, len(r.profiles))
	for kind := range r.profiles {
		kinds = append(kinds, kind)
	}
	return kinds
}
