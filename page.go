package relgraph

import "context"

// PageSession provides access to the live, incrementally rendered page the
// harvester reads from. Implementations hide browser automation details.
//
// Items are the repeated elements of the page's main list (connection
// cards, activity entries, employee rows). The page materializes more
// items on demand; LoadMore requests another increment.
type PageSession interface {
	// ItemCount returns the number of currently materialized items.
	ItemCount(ctx context.Context) (int, error)

	// LoadMore instructs the page to materialize more items, typically by
	// scrolling or activating a "show more" control. It returns without
	// waiting for new content; callers observe growth via ItemCount.
	LoadMore(ctx context.Context) error

	// ItemHTML returns the outer HTML of every materialized item in scan
	// order.
	ItemHTML(ctx context.Context) ([]string, error)

	// Close releases page resources.
	// Must be called when the session is no longer needed.
	Close() error
}
