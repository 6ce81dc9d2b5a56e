package relgraph

// Locator describes one way to resolve a value from an item's HTML.
// An empty Attr means the element's trimmed text is the value.
type Locator struct {
	Selector string `yaml:"selector"`
	Attr     string `yaml:"attr,omitempty"`
}

// LocatorChain is an ordered list of candidate locators for one logical
// field. Resolution returns the first non-empty match, or nothing.
// Chains are data, not code: they are inherently brittle against source
// markup and must be swappable without touching extraction logic.
type LocatorChain []Locator

// LocatorProfile bundles the locator chains for one harvest kind.
type LocatorProfile struct {
	Kind      HarvestKind             `yaml:"kind"`
	Container LocatorChain            `yaml:"container"`
	Fields    map[string]LocatorChain `yaml:"fields"`
}

// Field returns the chain for a logical field, or nil if none is
// configured.
func (p *LocatorProfile) Field(name string) LocatorChain {
	if p == nil {
		return nil
	}
	return p.Fields[name]
}

// LocatorRegistry manages locator profiles per harvest kind.
type LocatorRegistry interface {
	// Get returns the profile for a harvest kind, falling back to a
	// registry-wide default when no specific profile is registered.
	Get(kind HarvestKind) *LocatorProfile

	// Register adds or replaces the profile for a harvest kind.
	Register(profile *LocatorProfile)

	// List returns all registered harvest kinds.
	List() []HarvestKind
}

// ProfileExtractor resolves a profile node from a single item's HTML.
// Extraction is pure: it never mutates external state and reports failure
// only through its error result.
type ProfileExtractor interface {
	// ExtractProfile returns the node extracted from the item HTML.
	// Returns ENOTFOUND if a mandatory identifying field is unrecoverable;
	// missing optional fields are left zero-valued.
	ExtractProfile(html string) (*Node, error)
}

// ActivityExtractor resolves an activity event from a single item's HTML.
type ActivityExtractor interface {
	// ExtractActivity returns the activity extracted from the item HTML.
	// Returns ENOTFOUND if the acting profile cannot be identified.
	ExtractActivity(html string) (*Activity, error)
}

// CompanyExtractor resolves a company employee row from a single item's
// HTML.
type CompanyExtractor interface {
	// ExtractEmployee returns the company identity and employee reference
	// extracted from the item HTML.
	// Returns ENOTFOUND if the company cannot be identified.
	ExtractEmployee(html string) (*Company, *EmployeeRef, error)
}

// ContentExtractor recovers readable text from an HTML fragment when
// locator-based content extraction comes up empty.
type ContentExtractor interface {
	// ExtractText returns the main text content of the fragment.
	ExtractText(html string) (string, error)
}

// Converter transforms HTML content into Markdown for storage.
type Converter interface {
	Convert(html string) (string, error)
}
