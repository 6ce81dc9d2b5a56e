package goquery

import "github.com/fwojciec/relgraph"

// ConnectionLocators returns the default locator profile for connection
// cards. Data attributes come first; display classes are the fallback.
func ConnectionLocators() *relgraph.LocatorProfile {
	return &relgraph.LocatorProfile{
		Kind:      relgraph.HarvestConnections,
		Container: relgraph.LocatorChain{{Selector: ".connection-card"}, {Selector: "li.search-result"}},
		Fields: map[string]relgraph.LocatorChain{
			"id": {
				{Selector: "[data-entity-id]", Attr: "data-entity-id"},
			},
			"profileUrl": {
				{Selector: "a.connection-card__link", Attr: "href"},
				{Selector: "a[href*='/in/']", Attr: "href"},
			},
			"name": {
				{Selector: ".connection-card__name"},
				{Selector: ".entity-result__title-text span[aria-hidden='true']"},
				{Selector: "a span[dir='ltr']"},
			},
			"headline": {
				{Selector: ".connection-card__occupation"},
				{Selector: ".entity-result__primary-subtitle"},
			},
			"company": {
				{Selector: "[data-company-name]", Attr: "data-company-name"},
				{Selector: ".entity-result__summary strong"},
			},
			"role": {
				{Selector: "[data-role]", Attr: "data-role"},
			},
			"location": {
				{Selector: ".connection-card__location"},
				{Selector: ".entity-result__secondary-subtitle"},
			},
			"skills": {
				{Selector: ".skill-pill"},
				{Selector: "[data-skill]", Attr: "data-skill"},
			},
			"yearsExperience": {
				{Selector: "[data-years-experience]", Attr: "data-years-experience"},
				{Selector: ".experience-years"},
			},
		},
	}
}

// ActivityLocators returns the default locator profile for feed entries.
func ActivityLocators() *relgraph.LocatorProfile {
	return &relgraph.LocatorProfile{
		Kind:      relgraph.HarvestActivities,
		Container: relgraph.LocatorChain{{Selector: ".feed-item"}, {Selector: "article"}},
		Fields: map[string]relgraph.LocatorChain{
			"actorId": {
				{Selector: "[data-actor-id]", Attr: "data-actor-id"},
			},
			"actorUrl": {
				{Selector: "a.feed-item__actor", Attr: "href"},
				{Selector: "a[href*='/in/']", Attr: "href"},
			},
			"targetId": {
				{Selector: "[data-target-id]", Attr: "data-target-id"},
			},
			"targetUrl": {
				{Selector: "a.feed-item__target", Attr: "href"},
			},
			"type": {
				{Selector: "[data-activity-type]", Attr: "data-activity-type"},
				{Selector: ".feed-item__header"},
			},
			"content": {
				{Selector: ".feed-item__text"},
				{Selector: ".update-text"},
			},
			"postId": {
				{Selector: "[data-post-id]", Attr: "data-post-id"},
				{Selector: "[data-urn]", Attr: "data-urn"},
			},
			"occurredAt": {
				{Selector: "time", Attr: "datetime"},
				{Selector: "time"},
				{Selector: ".feed-item__age"},
			},
		},
	}
}

// CompanyLocators returns the default locator profile for employee rows.
func CompanyLocators() *relgraph.LocatorProfile {
	return &relgraph.LocatorProfile{
		Kind:      relgraph.HarvestCompanies,
		Container: relgraph.LocatorChain{{Selector: ".employee-row"}, {Selector: "li.org-people-card"}},
		Fields: map[string]relgraph.LocatorChain{
			"companyId": {
				{Selector: "[data-company-id]", Attr: "data-company-id"},
			},
			"companyUrl": {
				{Selector: "a[href*='/company/']", Attr: "href"},
			},
			"companyName": {
				{Selector: "[data-company-name]", Attr: "data-company-name"},
				{Selector: ".employee-row__company"},
			},
			"employeeId": {
				{Selector: "[data-employee-id]", Attr: "data-employee-id"},
			},
			"employeeUrl": {
				{Selector: "a.employee-row__profile", Attr: "href"},
				{Selector: "a[href*='/in/']", Attr: "href"},
			},
			"employeeName": {
				{Selector: ".employee-row__name"},
				{Selector: ".org-people-profile-card__profile-title"},
			},
			"employeeRole": {
				{Selector: ".employee-row__role"},
				{Selector: ".org-people-profile-card__profile-position"},
			},
		},
	}
}
