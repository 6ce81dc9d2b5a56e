package harvest

import "sync"

// Control carries pause, resume and stop signals into a running harvest.
// All methods are safe for concurrent use; the zero value is ready to use.
type Control struct {
	mu      sync.Mutex
	paused  bool
	stopped bool
}

// Pause asks the harvest to checkpoint and wait until resumed or stopped.
func (c *Control) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume lets a paused harvest continue.
func (c *Control) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// Stop asks the harvest to checkpoint and return. A stopped harvest leaves
// its progress record in the paused state so a later run can resume it.
func (c *Control) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
}

// Paused reports whether a pause has been requested.
func (c *Control) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Stopped reports whether a stop has been requested.
func (c *Control) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}
