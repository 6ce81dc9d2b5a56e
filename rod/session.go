// Package rod provides a live page session over Chrome browser
// automation. The session drives the incrementally rendered list the
// harvester reads from: counting items, loading more, and snapshotting
// item HTML.
package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/relgraph"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var _ relgraph.PageSession = (*Session)(nil)

// Session is a relgraph.PageSession backed by a headless Chrome page.
// A Session owns its browser process; Close must be called when the
// session is no longer needed.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page

	itemSelectors    []string
	showMoreSelector string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithShowMoreSelector sets a button selector that LoadMore clicks when
// present, before falling back to scrolling.
func WithShowMoreSelector(selector string) SessionOption {
	return func(s *Session) {
		s.showMoreSelector = selector
	}
}

// NewSession launches a headless browser, navigates to the URL and waits
// for the initial render. itemSelectors are ordered fallbacks for the
// repeated list element; the first selector matching anything wins.
func NewSession(url string, itemSelectors []string, opts ...SessionOption) (*Session, error) {
	if len(itemSelectors) == 0 {
		return nil, relgraph.Errorf(relgraph.EINVALID, "at least one item selector required")
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("opening page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("waiting for page load: %w", err)
	}

	s := &Session{
		browser:       browser,
		launcher:      l,
		page:          page,
		itemSelectors: itemSelectors,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ItemCount returns the number of currently materialized list items.
func (s *Session) ItemCount(ctx context.Context) (int, error) {
	selector, err := s.activeSelector(ctx)
	if err != nil {
		return 0, err
	}
	obj, err := s.page.Context(ctx).Eval(`(sel) => document.querySelectorAll(sel).length`, selector)
	if err != nil {
		return 0, relgraph.Errorf(relgraph.EUNAVAILABLE, "counting items: %v", err)
	}
	return obj.Value.Int(), nil
}

// LoadMore asks the page to materialize more items. It clicks the
// show-more control when one is configured and visible, otherwise it
// scrolls to the bottom. It returns without waiting for new content.
func (s *Session) LoadMore(ctx context.Context) error {
	page := s.page.Context(ctx)

	if s.showMoreSelector != "" {
		obj, err := page.Eval(`(sel) => {
			const button = document.querySelector(sel);
			if (button) {
				button.click();
				return true;
			}
			return false;
		}`, s.showMoreSelector)
		if err != nil {
			return relgraph.Errorf(relgraph.EUNAVAILABLE, "clicking show more: %v", err)
		}
		if obj.Value.Bool() {
			return nil
		}
	}

	_, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	if err != nil {
		return relgraph.Errorf(relgraph.EUNAVAILABLE, "scrolling: %v", err)
	}
	return nil
}

// ItemHTML returns the outer HTML of every materialized item in scan
// order.
func (s *Session) ItemHTML(ctx context.Context) ([]string, error) {
	selector, err := s.activeSelector(ctx)
	if err != nil {
		return nil, err
	}
	obj, err := s.page.Context(ctx).Eval(
		`(sel) => Array.from(document.querySelectorAll(sel)).map(el => el.outerHTML)`,
		selector,
	)
	if err != nil {
		return nil, relgraph.Errorf(relgraph.EUNAVAILABLE, "reading item html: %v", err)
	}

	arr := obj.Value.Arr()
	items := make([]string, 0, len(arr))
	for _, v := range arr {
		items = append(items, v.Str())
	}
	return items, nil
}

// Close releases the page and browser resources.
func (s *Session) Close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

// activeSelector resolves the first item selector that matches anything
// on the current page. When none match yet, the first selector is
// returned so callers observe a zero count rather than an error.
func (s *Session) activeSelector(ctx context.Context) (string, error) {
	page := s.page.Context(ctx)
	for _, selector := range s.itemSelectors {
		obj, err := page.Eval(`(sel) => document.querySelector(sel) !== null`, selector)
		if err != nil {
			return "", relgraph.Errorf(relgraph.EUNAVAILABLE, "resolving item selector: %v", err)
		}
		if obj.Value.Bool() {
			return selector, nil
		}
	}
	return s.itemSelectors[0], nil
}
