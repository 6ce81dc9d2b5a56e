package harvest

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/relgraph"
	"golang.org/x/time/rate"
)

var _ relgraph.Serializer = (*Serializer)(nil)

// Serializer runs enqueued operations one at a time in FIFO order. Each
// caller chains behind the previous caller's completion signal, so waiting
// callers are released in submission order. An optional minimum interval
// between operation starts is enforced with a token bucket.
type Serializer struct {
	mu      sync.Mutex
	tail    chan struct{}
	limiter *rate.Limiter
}

// NewSerializer creates a Serializer. A positive minInterval spaces
// consecutive operation starts at least that far apart.
func NewSerializer(minInterval time.Duration) *Serializer {
	s := &Serializer{}
	if minInterval > 0 {
		s.limiter = rate.NewLimiter(rate.Every(minInterval), 1)
	}
	return s
}

// Enqueue submits the operation and blocks until it has run or the context
// is canceled while waiting. A canceled waiter gives up its queue slot, but
// operations behind it stay blocked until the operation in front finishes:
// at most one operation is ever in flight.
func (s *Serializer) Enqueue(ctx context.Context, op func(ctx context.Context) error) error {
	done := make(chan struct{})
	s.mu.Lock()
	prev := s.tail
	s.tail = done
	s.mu.Unlock()

	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			// Hand the slot off only once the predecessor completes, so
			// followers cannot overlap the operation still running.
			go func() {
				<-prev
				close(done)
			}()
			return ctx.Err()
		}
	}
	defer close(done)

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	return op(ctx)
}
