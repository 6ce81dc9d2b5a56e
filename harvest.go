package relgraph

// HarvestKind identifies an acquisition pipeline. Each kind keeps its own
// progress checkpoint.
type HarvestKind string

// Harvest kinds.
const (
	HarvestConnections HarvestKind = "connections"
	HarvestActivities  HarvestKind = "activities"
	HarvestCompanies   HarvestKind = "companies"
)

// Valid reports whether the kind is one of the known harvest kinds.
func (k HarvestKind) Valid() bool {
	switch k {
	case HarvestConnections, HarvestActivities, HarvestCompanies:
		return true
	}
	return false
}

// HarvestEventType indicates the type of harvest progress event.
type HarvestEventType int

// Harvest progress event types.
const (
	HarvestStarted HarvestEventType = iota
	HarvestBatchSaved
	HarvestItemSkipped
	HarvestPaused
	HarvestFinished
)

// HarvestEvent reports progress during a harvest operation.
type HarvestEvent struct {
	Type         HarvestEventType
	Kind         HarvestKind
	TotalScraped int
	LastID       string
	Error        error
}

// HarvestProgressFunc is called as a harvest proceeds. It must not block;
// persistence does not wait for it.
type HarvestProgressFunc func(event HarvestEvent)
