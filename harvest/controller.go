// Package harvest orchestrates incremental acquisition of relationship
// graph records from a live rendered page into local storage. It drives
// the page session's load-more loop, extracts records item by item,
// deduplicates them against the run and against existing store contents,
// and persists them in batches with a
// durable progress checkpoint after every batch.
package harvest

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/fwojciec/relgraph"
	"github.com/google/uuid"
)

const (
	defaultBatchSize  = 50
	defaultStallLimit = 3
	defaultDelayMin   = 2 * time.Second
	defaultDelayMax   = 5 * time.Second

	// pausePollInterval is how often a paused harvest re-checks its control.
	pausePollInterval = 200 * time.Millisecond

	// dedupeExpectedItems sizes the run-scoped Bloom filter.
	dedupeExpectedItems = 10000
	// dedupeFalsePositiveRate is acceptable because positives are confirmed
	// against the authoritative seen set.
	dedupeFalsePositiveRate = 0.01
)

// Controller orchestrates harvests. One Controller serves one page
// session; concurrent harvests must share a Serializer so only one runs
// at a time.
type Controller struct {
	Session relgraph.PageSession

	ProfileExtractor  relgraph.ProfileExtractor
	ActivityExtractor relgraph.ActivityExtractor
	CompanyExtractor  relgraph.CompanyExtractor

	Nodes      relgraph.NodeService
	Edges      relgraph.EdgeService
	Activities relgraph.ActivityService
	Companies  relgraph.CompanyService
	Progresses relgraph.ProgressService

	Serializer relgraph.Serializer
	Logger     *slog.Logger

	// OwnerID is the profile whose relationship graph is being harvested.
	// Connection harvests record an edge from the owner to each node.
	OwnerID string

	// BatchSize is the number of records accumulated before a storage
	// flush and checkpoint. Defaults to 50.
	BatchSize int

	// MaxLoadIterations bounds the number of load-more rounds.
	// Zero means no bound.
	MaxLoadIterations int

	// StallLimit is the number of consecutive load rounds with no item
	// growth before the list is considered exhausted. Defaults to 3.
	StallLimit int

	// DelayMin and DelayMax bound the randomized wait between load rounds.
	DelayMin time.Duration
	DelayMax time.Duration

	// RetryDelays are the backoff delays applied when RetryOnEmpty is set
	// and a load round yields no growth.
	RetryDelays []time.Duration

	// RetryOnEmpty retries a no-growth load round with backoff before
	// counting it as a stall.
	RetryOnEmpty bool
}

// Options configures a single harvest run.
type Options struct {
	// Resume continues from a prior checkpoint when one exists and is not
	// complete. Without it the harvest starts fresh.
	Resume bool

	// Control carries pause and stop signals. Optional.
	Control *Control

	// Progress receives events as the harvest proceeds. Optional.
	Progress relgraph.HarvestProgressFunc
}

// Harvest runs an acquisition pipeline for the given kind and returns the
// final progress record. When a Serializer is configured the run waits
// its turn behind other enqueued operations.
func (c *Controller) Harvest(ctx context.Context, kind relgraph.HarvestKind, opts Options) (*relgraph.Progress, error) {
	if !kind.Valid() {
		return nil, relgraph.Errorf(relgraph.EINVALID, "unknown harvest kind %q", kind)
	}

	var progress *relgraph.Progress
	run := func(ctx context.Context) error {
		var err error
		progress, err = c.runWithRetry(ctx, kind, opts)
		return err
	}

	var runErr error
	if c.Serializer != nil {
		runErr = c.Serializer.Enqueue(ctx, run)
	} else {
		runErr = run(ctx)
	}
	return progress, runErr
}

// runWithRetry retries the whole run on transient host failures
// (EUNAVAILABLE), consuming the backoff schedule before the error
// propagates. Each retry resumes from the checkpoint the failed attempt
// persisted, so records saved before the failure are neither re-written
// nor re-counted. Persistence and validation failures propagate
// immediately.
func (c *Controller) runWithRetry(ctx context.Context, kind relgraph.HarvestKind, opts Options) (*relgraph.Progress, error) {
	progress, err := c.run(ctx, kind, opts)
	if err == nil || relgraph.ErrorCode(err) != relgraph.EUNAVAILABLE {
		return progress, err
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	for attempt, delay := range delays {
		c.logger().Warn("transient failure, retrying harvest",
			"kind", kind, "attempt", attempt+1, "delay", delay, "error", err)
		if serr := sleep(ctx, delay); serr != nil {
			return progress, err
		}
		opts.Resume = true
		progress, err = c.run(ctx, kind, opts)
		if err == nil || relgraph.ErrorCode(err) != relgraph.EUNAVAILABLE {
			return progress, err
		}
	}
	return progress, err
}

func (c *Controller) run(ctx context.Context, kind relgraph.HarvestKind, opts Options) (*relgraph.Progress, error) {
	progress, err := c.loadProgress(ctx, kind, opts.Resume)
	if err != nil {
		return nil, err
	}
	if err := c.Progresses.SaveProgress(ctx, progress); err != nil {
		return progress, err
	}

	emit(opts.Progress, relgraph.HarvestEvent{
		Type:         relgraph.HarvestStarted,
		Kind:         kind,
		TotalScraped: progress.TotalScraped,
		LastID:       progress.LastID,
	})

	st := c.stagerFor(kind)
	dedupe := newDeduper(dedupeExpectedItems, dedupeFalsePositiveRate)

	// On resume, items up to the checkpoint cursor are skipped. If the
	// cursor never reappears the whole list is reprocessed; storage
	// writes are idempotent so that only costs time.
	skipUntil := ""
	if opts.Resume && progress.TotalScraped > 0 {
		skipUntil = progress.LastID
	}

	batchSize := c.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	stallLimit := c.StallLimit
	if stallLimit <= 0 {
		stallLimit = defaultStallLimit
	}

	processed := 0
	stalls := 0
	loads := 0
	lastID := progress.LastID
	stopped := false

	for {
		if err := ctx.Err(); err != nil {
			return progress, c.fail(ctx, progress, opts, err)
		}
		if opts.Control != nil && opts.Control.Stopped() {
			stopped = true
			break
		}
		if opts.Control != nil && opts.Control.Paused() {
			if err := c.pauseUntilResumed(ctx, st, progress, lastID, opts); err != nil {
				return progress, c.fail(ctx, progress, opts, err)
			}
			continue
		}

		items, err := c.Session.ItemHTML(ctx)
		if err != nil {
			return progress, c.fail(ctx, progress, opts, err)
		}

		for processed < len(items) {
			html := items[processed]
			processed++

			item, err := st.parse(html)
			if err != nil {
				c.logger().Warn("item skipped", "kind", kind, "position", processed-1, "error", err)
				emit(opts.Progress, relgraph.HarvestEvent{
					Type:         relgraph.HarvestItemSkipped,
					Kind:         kind,
					TotalScraped: progress.TotalScraped,
					Error:        err,
				})
				continue
			}

			if skipUntil != "" {
				if item.id == skipUntil {
					skipUntil = ""
				}
				dedupe.duplicate(item.id)
				continue
			}

			if dedupe.duplicate(item.id) {
				emit(opts.Progress, relgraph.HarvestEvent{
					Type:         relgraph.HarvestItemSkipped,
					Kind:         kind,
					TotalScraped: progress.TotalScraped,
					LastID:       item.id,
				})
				continue
			}

			// First sighting in this run; records persisted by earlier
			// runs are skipped rather than re-written.
			exists, err := st.stored(ctx, item)
			if err != nil {
				return progress, c.fail(ctx, progress, opts, err)
			}
			if exists {
				emit(opts.Progress, relgraph.HarvestEvent{
					Type:         relgraph.HarvestItemSkipped,
					Kind:         kind,
					TotalScraped: progress.TotalScraped,
					LastID:       item.id,
				})
				continue
			}

			st.stage(item)
			lastID = item.id

			if st.size() >= batchSize {
				if err := c.flush(ctx, st, progress, lastID, opts); err != nil {
					return progress, c.fail(ctx, progress, opts, err)
				}
			}
		}

		if progress.KnownTotal != nil && processed >= *progress.KnownTotal {
			break
		}
		if c.MaxLoadIterations > 0 && loads >= c.MaxLoadIterations {
			break
		}

		count, err := c.loadMore(ctx, processed)
		if err != nil {
			return progress, c.fail(ctx, progress, opts, err)
		}
		loads++

		if count <= processed {
			stalls++
			if stalls >= stallLimit {
				break
			}
		} else {
			stalls = 0
		}
	}

	if err := c.flush(ctx, st, progress, lastID, opts); err != nil {
		return progress, c.fail(ctx, progress, opts, err)
	}

	if stopped {
		if err := c.checkpoint(ctx, progress, relgraph.ProgressPaused); err != nil {
			return progress, c.fail(ctx, progress, opts, err)
		}
		emit(opts.Progress, relgraph.HarvestEvent{
			Type:         relgraph.HarvestPaused,
			Kind:         kind,
			TotalScraped: progress.TotalScraped,
			LastID:       progress.LastID,
		})
		return progress, nil
	}

	if err := c.checkpoint(ctx, progress, relgraph.ProgressComplete); err != nil {
		return progress, c.fail(ctx, progress, opts, err)
	}
	emit(opts.Progress, relgraph.HarvestEvent{
		Type:         relgraph.HarvestFinished,
		Kind:         kind,
		TotalScraped: progress.TotalScraped,
		LastID:       progress.LastID,
	})
	return progress, nil
}

// loadProgress resolves the starting checkpoint for a run. A resumed run
// adopts the prior cursor; a run after an error keeps the cursor under a
// fresh run ID since the error state has no onward transitions.
func (c *Controller) loadProgress(ctx context.Context, kind relgraph.HarvestKind, resume bool) (*relgraph.Progress, error) {
	now := time.Now()

	if resume {
		prior, err := c.Progresses.FindProgress(ctx, kind)
		if err != nil && relgraph.ErrorCode(err) != relgraph.ENOTFOUND {
			return nil, err
		}
		if prior != nil && prior.Resumable() {
			switch prior.Status {
			case relgraph.ProgressRunning:
				// Stale record from an interrupted run; adopt it.
				return prior, nil
			case relgraph.ProgressPaused:
				if err := prior.Transition(relgraph.ProgressRunning); err != nil {
					return nil, err
				}
				return prior, nil
			case relgraph.ProgressError:
				return &relgraph.Progress{
					Kind:         kind,
					RunID:        uuid.NewString(),
					TotalScraped: prior.TotalScraped,
					LastID:       prior.LastID,
					StartedAt:    now,
					SavedAt:      now,
					Status:       relgraph.ProgressRunning,
					KnownTotal:   prior.KnownTotal,
				}, nil
			}
		}
	}

	return &relgraph.Progress{
		Kind:      kind,
		RunID:     uuid.NewString(),
		StartedAt: now,
		SavedAt:   now,
		Status:    relgraph.ProgressRunning,
	}, nil
}

func (c *Controller) stagerFor(kind relgraph.HarvestKind) stager {
	switch kind {
	case relgraph.HarvestActivities:
		return &activityStager{extractor: c.ActivityExtractor, store: c.Activities}
	case relgraph.HarvestCompanies:
		return &companyStager{extractor: c.CompanyExtractor, store: c.Companies}
	default:
		return &connectionStager{
			extractor: c.ProfileExtractor,
			nodes:     c.Nodes,
			edges:     c.Edges,
			ownerID:   c.OwnerID,
		}
	}
}

// flush writes the pending batch and advances the durable checkpoint.
func (c *Controller) flush(ctx context.Context, st stager, progress *relgraph.Progress, lastID string, opts Options) error {
	n := st.size()
	if n == 0 {
		return nil
	}
	if err := st.flush(ctx); err != nil {
		return err
	}
	progress.TotalScraped += n
	progress.LastID = lastID
	progress.SavedAt = time.Now()
	if err := c.Progresses.SaveProgress(ctx, progress); err != nil {
		return err
	}
	emit(opts.Progress, relgraph.HarvestEvent{
		Type:         relgraph.HarvestBatchSaved,
		Kind:         progress.Kind,
		TotalScraped: progress.TotalScraped,
		LastID:       progress.LastID,
	})
	return nil
}

// pauseUntilResumed checkpoints the partial batch, marks the progress
// record paused and polls until resumed, stopped or canceled.
func (c *Controller) pauseUntilResumed(ctx context.Context, st stager, progress *relgraph.Progress, lastID string, opts Options) error {
	if err := c.flush(ctx, st, progress, lastID, opts); err != nil {
		return err
	}
	if err := c.checkpoint(ctx, progress, relgraph.ProgressPaused); err != nil {
		return err
	}
	emit(opts.Progress, relgraph.HarvestEvent{
		Type:         relgraph.HarvestPaused,
		Kind:         progress.Kind,
		TotalScraped: progress.TotalScraped,
		LastID:       progress.LastID,
	})

	for opts.Control.Paused() && !opts.Control.Stopped() {
		if err := sleep(ctx, pausePollInterval); err != nil {
			return err
		}
	}
	if opts.Control.Stopped() {
		// The outer loop observes the stop and finishes from the paused
		// state, which is already durable.
		return nil
	}
	return c.checkpoint(ctx, progress, relgraph.ProgressRunning)
}

func (c *Controller) checkpoint(ctx context.Context, progress *relgraph.Progress, to relgraph.ProgressStatus) error {
	if progress.Status != to {
		if err := progress.Transition(to); err != nil {
			return err
		}
	}
	progress.SavedAt = time.Now()
	return c.Progresses.SaveProgress(ctx, progress)
}

// loadMore requests another page increment, waits out the randomized
// inter-load delay and returns the new item count. When RetryOnEmpty is
// set, a round with no growth is retried with backoff before returning.
func (c *Controller) loadMore(ctx context.Context, before int) (int, error) {
	count, err := c.loadOnce(ctx)
	if err != nil {
		return 0, err
	}
	if count > before || !c.RetryOnEmpty {
		return count, nil
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	for attempt, delay := range delays {
		c.logger().Debug("no new items, retrying load", "attempt", attempt+1)
		if err := sleep(ctx, delay); err != nil {
			return 0, err
		}
		count, err = c.loadOnce(ctx)
		if err != nil {
			return 0, err
		}
		if count > before {
			break
		}
	}
	return count, nil
}

func (c *Controller) loadOnce(ctx context.Context) (int, error) {
	if err := c.Session.LoadMore(ctx); err != nil {
		return 0, err
	}
	if err := sleep(ctx, c.jitter()); err != nil {
		return 0, err
	}
	return c.Session.ItemCount(ctx)
}

// jitter returns a randomized wait between load rounds. Varying the delay
// keeps the load pattern irregular.
func (c *Controller) jitter() time.Duration {
	lo, hi := c.DelayMin, c.DelayMax
	if lo < 0 {
		lo = 0
	}
	if lo == 0 && hi == 0 {
		lo, hi = defaultDelayMin, defaultDelayMax
	}
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo)
}

// fail marks the checkpoint errored so the failure survives restarts,
// then reports the original error. The checkpoint write uses a detached
// context so cancellation does not lose the error state.
func (c *Controller) fail(ctx context.Context, progress *relgraph.Progress, opts Options, err error) error {
	if progress.Status == relgraph.ProgressRunning {
		if terr := progress.Transition(relgraph.ProgressError); terr == nil {
			progress.SavedAt = time.Now()
			if serr := c.Progresses.SaveProgress(context.WithoutCancel(ctx), progress); serr != nil {
				c.logger().Error("failed to persist error state", "kind", progress.Kind, "error", serr)
			}
		}
	}
	emit(opts.Progress, relgraph.HarvestEvent{
		Type:         relgraph.HarvestFinished,
		Kind:         progress.Kind,
		TotalScraped: progress.TotalScraped,
		LastID:       progress.LastID,
		Error:        err,
	})
	return err
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func emit(fn relgraph.HarvestProgressFunc, event relgraph.HarvestEvent) {
	if fn != nil {
		fn(event)
	}
}
