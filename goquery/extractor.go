// Package goquery implements locator-chain extraction of graph records
// from rendered item HTML. Locator chains are ordered fallbacks: the
// first selector that yields a non-empty value wins, so a markup change
// that breaks the primary selector degrades to the next one instead of
// failing the item.
package goquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/relgraph"
)

var _ relgraph.ProfileExtractor = (*ProfileExtractor)(nil)

// ProfileExtractor extracts connection nodes from item HTML using a
// locator profile. A nil Profile uses the built-in connection locators.
type ProfileExtractor struct {
	Profile *relgraph.LocatorProfile
}

// ExtractProfile extracts a node from one connection card's HTML.
// Returns ENOTFOUND when neither an identity nor a name can be resolved;
// missing optional fields are left zero-valued.
func (e *ProfileExtractor) ExtractProfile(html string) (*relgraph.Node, error) {
	doc, err := parseFragment(html)
	if err != nil {
		return nil, err
	}
	profile := e.Profile
	if profile == nil {
		profile = ConnectionLocators()
	}

	profileURL := resolve(doc, profile.Field("profileUrl"))
	id := resolve(doc, profile.Field("id"))
	if id == "" {
		id = slugFromURL(profileURL)
	}
	if id == "" {
		return nil, relgraph.Errorf(relgraph.ENOTFOUND, "profile identity not found")
	}

	name := resolve(doc, profile.Field("name"))
	if name == "" {
		return nil, relgraph.Errorf(relgraph.ENOTFOUND, "profile name not found for %q", id)
	}

	node := &relgraph.Node{
		ID:         id,
		Name:       name,
		Headline:   resolve(doc, profile.Field("headline")),
		Company:    resolve(doc, profile.Field("company")),
		Role:       resolve(doc, profile.Field("role")),
		Location:   resolve(doc, profile.Field("location")),
		ProfileURL: profileURL,
		Skills:     resolveAll(doc, profile.Field("skills")),
		Degree:     1,
		Status:     relgraph.StatusConnected,
		ScrapedAt:  time.Now(),
	}

	if years := resolve(doc, profile.Field("yearsExperience")); years != "" {
		node.YearsExperience = leadingInt(years)
	}

	// A headline like "Staff Engineer at Initech" carries both fields
	// when no dedicated locator resolves them.
	if node.Company == "" || node.Role == "" {
		role, company := splitHeadline(node.Headline)
		if node.Company == "" {
			node.Company = company
		}
		if node.Role == "" {
			node.Role = role
		}
	}

	return node, nil
}

var _ relgraph.ActivityExtractor = (*ActivityExtractor)(nil)

// ActivityExtractor extracts activity events from feed item HTML.
// Content recovery prefers the locator chain, falls back to the optional
// ContentExtractor, and is converted to Markdown when a Converter is set.
type ActivityExtractor struct {
	Profile   *relgraph.LocatorProfile
	Content   relgraph.ContentExtractor
	Converter relgraph.Converter

	// Now anchors relative timestamps; defaults to time.Now.
	Now func() time.Time
}

// ExtractActivity extracts an activity from one feed item's HTML.
// Returns ENOTFOUND when the acting profile cannot be identified.
func (e *ActivityExtractor) ExtractActivity(html string) (*relgraph.Activity, error) {
	doc, err := parseFragment(html)
	if err != nil {
		return nil, err
	}
	profile := e.Profile
	if profile == nil {
		profile = ActivityLocators()
	}

	actorID := resolve(doc, profile.Field("actorId"))
	if actorID == "" {
		actorID = slugFromURL(resolve(doc, profile.Field("actorUrl")))
	}
	if actorID == "" {
		return nil, relgraph.Errorf(relgraph.ENOTFOUND, "activity actor not found")
	}

	targetID := resolve(doc, profile.Field("targetId"))
	if targetID == "" {
		targetID = slugFromURL(resolve(doc, profile.Field("targetUrl")))
	}

	content := resolve(doc, profile.Field("content"))
	if content == "" && e.Content != nil {
		if text, err := e.Content.ExtractText(html); err == nil {
			content = text
		}
	}
	if content != "" && e.Converter != nil {
		if markdown, err := e.Converter.Convert(content); err == nil {
			content = strings.TrimSpace(markdown)
		}
	}

	activity := &relgraph.Activity{
		ActorID:    actorID,
		TargetID:   targetID,
		Type:       activityType(resolve(doc, profile.Field("type"))),
		Content:    content,
		PostID:     resolve(doc, profile.Field("postId")),
		OccurredAt: e.parseWhen(resolve(doc, profile.Field("occurredAt"))),
		ScrapedAt:  time.Now(),
	}
	activity.Normalize()
	return activity, nil
}

var _ relgraph.CompanyExtractor = (*CompanyExtractor)(nil)

// CompanyExtractor extracts company employee rows from item HTML.
type CompanyExtractor struct {
	Profile *relgraph.LocatorProfile
}

// ExtractEmployee extracts the company identity and one employee
// reference from an employee row's HTML.
// Returns ENOTFOUND when the company cannot be identified.
func (e *CompanyExtractor) ExtractEmployee(html string) (*relgraph.Company, *relgraph.EmployeeRef, error) {
	doc, err := parseFragment(html)
	if err != nil {
		return nil, nil, err
	}
	profile := e.Profile
	if profile == nil {
		profile = CompanyLocators()
	}

	companyID := resolve(doc, profile.Field("companyId"))
	companyURL := resolve(doc, profile.Field("companyUrl"))
	if companyID == "" {
		companyID = slugFromURL(companyURL)
	}
	name := resolve(doc, profile.Field("companyName"))
	if companyID == "" && name == "" {
		return nil, nil, relgraph.Errorf(relgraph.ENOTFOUND, "company identity not found")
	}
	if companyID == "" {
		companyID = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	}
	if name == "" {
		name = companyID
	}

	nodeID := resolve(doc, profile.Field("employeeId"))
	if nodeID == "" {
		nodeID = slugFromURL(resolve(doc, profile.Field("employeeUrl")))
	}
	if nodeID == "" {
		return nil, nil, relgraph.Errorf(relgraph.ENOTFOUND, "employee identity not found for company %q", companyID)
	}

	company := &relgraph.Company{
		ID:        companyID,
		Name:      name,
		ScrapedAt: time.Now(),
	}
	employee := &relgraph.EmployeeRef{
		NodeID: nodeID,
		Name:   resolve(doc, profile.Field("employeeName")),
		Role:   resolve(doc, profile.Field("employeeRole")),
	}
	return company, employee, nil
}

func parseFragment(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, relgraph.Errorf(relgraph.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// resolve walks the chain and returns the first non-empty value.
func resolve(doc *goquery.Document, chain relgraph.LocatorChain) string {
	for _, locator := range chain {
		sel := doc.Find(locator.Selector).First()
		var value string
		if locator.Attr != "" {
			value, _ = sel.Attr(locator.Attr)
		} else {
			value = sel.Text()
		}
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}

// resolveAll returns every match of the first locator in the chain that
// matches anything. Used for list-valued fields like skills.
func resolveAll(doc *goquery.Document, chain relgraph.LocatorChain) []string {
	for _, locator := range chain {
		var values []string
		doc.Find(locator.Selector).Each(func(_ int, sel *goquery.Selection) {
			var value string
			if locator.Attr != "" {
				value, _ = sel.Attr(locator.Attr)
			} else {
				value = sel.Text()
			}
			if value = strings.TrimSpace(value); value != "" {
				values = append(values, value)
			}
		})
		if len(values) > 0 {
			return values
		}
	}
	return nil
}

// slugFromURL derives a stable identity from a profile or company URL:
// the last non-empty path segment, query and fragment stripped.
func slugFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// splitHeadline splits "Role at Company" headlines.
func splitHeadline(headline string) (role, company string) {
	role, company, ok := strings.Cut(headline, " at ")
	if !ok {
		return "", ""
	}
	return strings.TrimSpace(role), strings.TrimSpace(company)
}

// activityType maps free-form type markers onto the known activity types.
func activityType(marker string) string {
	marker = strings.ToLower(marker)
	switch {
	case strings.Contains(marker, "comment"):
		return relgraph.ActivityComment
	case strings.Contains(marker, "like"), strings.Contains(marker, "react"), strings.Contains(marker, "celebrate"):
		return relgraph.ActivityReaction
	case strings.Contains(marker, "share"), strings.Contains(marker, "repost"):
		return relgraph.ActivityShare
	default:
		return relgraph.ActivityPost
	}
}

var relativeAgePattern = regexp.MustCompile(`(?i)\b(\d+)\s*(h|hr|hour|d|day|w|week|mo|month|y|year)s?\b`)

var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// parseWhen interprets a timestamp marker, absolute or relative
// ("3d", "2 weeks ago"). Unparseable markers fall back to the current
// time so the event is still recorded.
func (e *ActivityExtractor) parseWhen(marker string) time.Time {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	marker = strings.TrimSpace(marker)
	if marker == "" {
		return now()
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, marker); err == nil {
			return t
		}
	}

	if m := relativeAgePattern.FindStringSubmatch(marker); m != nil {
		n, _ := strconv.Atoi(m[1])
		var unit time.Duration
		switch strings.ToLower(m[2]) {
		case "h", "hr", "hour":
			unit = time.Hour
		case "d", "day":
			unit = 24 * time.Hour
		case "w", "week":
			unit = 7 * 24 * time.Hour
		case "mo", "month":
			unit = 30 * 24 * time.Hour
		default:
			unit = 365 * 24 * time.Hour
		}
		return now().Add(-time.Duration(n) * unit)
	}

	return now()
}

// leadingInt parses the leading digits of a string like "12 years".
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}
