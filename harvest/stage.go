package harvest

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/relgraph"
)

// parsedItem is one extracted record plus the identity used for run-scoped
// deduplication. Exactly one of the record fields is set, matching the
// harvest kind.
type parsedItem struct {
	id       string
	node     *relgraph.Node
	activity *relgraph.Activity
	company  *relgraph.Company
	employee *relgraph.EmployeeRef
}

// stager accumulates extracted records for one harvest kind and writes
// them to storage in bulk.
type stager interface {
	// parse extracts a record from one item's HTML.
	parse(html string) (parsedItem, error)

	// stored reports whether the item's record already exists in storage.
	// The controller consults it only for items the run has not seen, so a
	// re-harvest does not re-write or re-count records from earlier runs.
	stored(ctx context.Context, item parsedItem) (bool, error)

	// stage adds a parsed item to the pending batch.
	stage(item parsedItem)

	// size returns the number of pending records.
	size() int

	// flush writes the pending records to storage in a single transaction
	// per table and clears the batch.
	flush(ctx context.Context) error
}

// connectionStager harvests connection cards into nodes plus owner edges.
type connectionStager struct {
	extractor relgraph.ProfileExtractor
	nodes     relgraph.NodeService
	edges     relgraph.EdgeService
	ownerID   string

	pendingNodes []*relgraph.Node
	pendingEdges []*relgraph.Edge
}

func (s *connectionStager) parse(html string) (parsedItem, error) {
	node, err := s.extractor.ExtractProfile(html)
	if err != nil {
		return parsedItem{}, err
	}
	if node.Degree == 0 {
		node.Degree = 1
	}
	if node.Status == "" {
		node.Status = relgraph.StatusConnected
	}
	if node.ScrapedAt.IsZero() {
		node.ScrapedAt = time.Now()
	}
	if err := node.Validate(); err != nil {
		return parsedItem{}, err
	}
	return parsedItem{id: node.ID, node: node}, nil
}

func (s *connectionStager) stored(ctx context.Context, item parsedItem) (bool, error) {
	_, err := s.nodes.FindNodeByID(ctx, item.id)
	if err != nil {
		if relgraph.ErrorCode(err) == relgraph.ENOTFOUND {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *connectionStager) stage(item parsedItem) {
	s.pendingNodes = append(s.pendingNodes, item.node)
	if s.ownerID != "" && s.ownerID != item.node.ID {
		s.pendingEdges = append(s.pendingEdges, &relgraph.Edge{
			From:      s.ownerID,
			To:        item.node.ID,
			Weight:    1 / float64(item.node.Degree),
			Kind:      relgraph.EdgeKindConnection,
			CreatedAt: time.Now(),
		})
	}
}

func (s *connectionStager) size() int { return len(s.pendingNodes) }

func (s *connectionStager) flush(ctx context.Context) error {
	if len(s.pendingNodes) == 0 {
		return nil
	}
	if err := s.nodes.BulkUpsertNodes(ctx, s.pendingNodes); err != nil {
		return err
	}
	if len(s.pendingEdges) > 0 {
		if err := s.edges.BulkUpsertEdges(ctx, s.pendingEdges); err != nil {
			return err
		}
	}
	s.pendingNodes = nil
	s.pendingEdges = nil
	return nil
}

// activityStager harvests feed entries into activity events.
type activityStager struct {
	extractor relgraph.ActivityExtractor
	store     relgraph.ActivityService

	pending []*relgraph.Activity
}

func (s *activityStager) parse(html string) (parsedItem, error) {
	activity, err := s.extractor.ExtractActivity(html)
	if err != nil {
		return parsedItem{}, err
	}
	activity.Normalize()
	if activity.ScrapedAt.IsZero() {
		activity.ScrapedAt = time.Now()
	}
	if err := activity.Validate(); err != nil {
		return parsedItem{}, err
	}
	return parsedItem{id: activityIdentity(activity), activity: activity}, nil
}

func (s *activityStager) stored(ctx context.Context, item parsedItem) (bool, error) {
	a := item.activity
	existing, err := s.store.FindActivities(ctx, relgraph.ActivityFilter{
		ActorID:  &a.ActorID,
		TargetID: &a.TargetID,
		Type:     &a.Type,
	})
	if err != nil {
		return false, err
	}
	for _, e := range existing {
		if activityIdentity(e) == item.id {
			return true, nil
		}
	}
	return false, nil
}

func (s *activityStager) stage(item parsedItem) {
	s.pending = append(s.pending, item.activity)
}

func (s *activityStager) size() int { return len(s.pending) }

func (s *activityStager) flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	if err := s.store.BulkCreateActivities(ctx, s.pending); err != nil {
		return err
	}
	s.pending = nil
	return nil
}

// companyStager harvests employee rows into company maps. Employee lists
// accumulate across the whole run because the store replaces them
// wholesale; each flush re-upserts the full list gathered so far.
type companyStager struct {
	extractor relgraph.CompanyExtractor
	store     relgraph.CompanyService

	companies map[string]*relgraph.Company
	dirty     map[string]struct{}
	staged    int
}

func (s *companyStager) parse(html string) (parsedItem, error) {
	company, employee, err := s.extractor.ExtractEmployee(html)
	if err != nil {
		return parsedItem{}, err
	}
	if err := company.Validate(); err != nil {
		return parsedItem{}, err
	}
	if employee.NodeID == "" {
		return parsedItem{}, relgraph.Errorf(relgraph.ENOTFOUND, "employee identity not found")
	}
	return parsedItem{id: company.ID + "|" + employee.NodeID, company: company, employee: employee}, nil
}

// stored checks whether the employee row is already recorded on the
// stored company. The first encounter of a company seeds the in-memory
// record from storage, so subsequent wholesale upserts keep the
// employees gathered by earlier runs.
func (s *companyStager) stored(ctx context.Context, item parsedItem) (bool, error) {
	s.init()
	company, ok := s.companies[item.company.ID]
	if !ok {
		existing, err := s.store.FindCompanyByID(ctx, item.company.ID)
		if err != nil {
			if relgraph.ErrorCode(err) == relgraph.ENOTFOUND {
				return false, nil
			}
			return false, err
		}
		s.companies[existing.ID] = existing
		company = existing
	}
	for _, e := range company.Employees {
		if e.NodeID == item.employee.NodeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *companyStager) init() {
	if s.companies == nil {
		s.companies = make(map[string]*relgraph.Company)
		s.dirty = make(map[string]struct{})
	}
}

func (s *companyStager) stage(item parsedItem) {
	s.init()
	company, ok := s.companies[item.company.ID]
	if !ok {
		company = &relgraph.Company{
			ID:   item.company.ID,
			Name: item.company.Name,
		}
		s.companies[company.ID] = company
	}
	company.Employees = append(company.Employees, *item.employee)
	company.ScrapedAt = time.Now()
	s.dirty[company.ID] = struct{}{}
	s.staged++
}

func (s *companyStager) size() int { return s.staged }

func (s *companyStager) flush(ctx context.Context) error {
	for id := range s.dirty {
		if err := s.store.UpsertCompany(ctx, s.companies[id]); err != nil {
			return err
		}
	}
	s.dirty = make(map[string]struct{})
	s.staged = 0
	return nil
}

// activityIdentity derives the identity an activity deduplicates on.
func activityIdentity(a *relgraph.Activity) string {
	return strings.Join([]string{
		a.ActorID,
		a.TargetID,
		a.Type,
		a.PostID,
		a.OccurredAt.UTC().Format(time.RFC3339),
	}, "|")
}
