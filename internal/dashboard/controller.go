// Package dashboard owns the view state of one dashboard page instance and
// orchestrates the two upstream fetches that populate it.
package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nfrund/userdash/internal/domain"
)

// Fetcher is the data access contract the controller depends on.
type Fetcher interface {
	FetchUserProfile(ctx context.Context, id string) (*domain.UserProfile, error)
	FetchUserActivities(ctx context.Context, id string) ([]domain.UserActivity, error)
}

// Observer receives a snapshot after every transition. Observers run with the
// controller lock held and must not call back into the controller.
type Observer func(ViewState)

// Controller exclusively owns a ViewState. Every fetch is tagged with the
// generation current at issue time and its result is dropped if the subject
// has changed since.
type Controller struct {
	fetcher Fetcher
	ctx     context.Context
	logger  *slog.Logger

	mu         sync.Mutex
	state      ViewState
	generation uint64
	observers  []Observer

	inflight sync.WaitGroup
}

// NewController creates a controller whose fetches run under ctx. Superseded
// fetches are not cancelled.
func NewController(ctx context.Context, fetcher Fetcher, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		fetcher: fetcher,
		ctx:     ctx,
		logger:  logger,
	}
}

// Subscribe registers an observer for subsequent transitions.
func (c *Controller) Subscribe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Snapshot returns a copy of the current view state.
func (c *Controller) Snapshot() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subject returns the identifier currently being displayed.
func (c *Controller) Subject() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Subject
}

// SetSubject switches the controller to a new subject identifier. It always
// resets, even when id equals the current subject, and then launches both
// fetches concurrently. It returns the new generation.
func (c *Controller) SetSubject(id string) uint64 {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state.reset(id, gen)
	c.notifyLocked()
	c.state.Phase = PhaseLoading
	c.notifyLocked()
	c.inflight.Add(2)
	c.mu.Unlock()

	c.logger.Debug("Dashboard subject changed", "subject", id, "generation", gen)

	go c.loadProfile(id, gen)
	go c.loadActivities(id, gen)
	return gen
}

// Wait blocks until every fetch issued so far has completed.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) loadProfile(id string, gen uint64) {
	defer c.inflight.Done()

	profile, err := c.fetcher.FetchUserProfile(c.ctx, id)
	c.apply(gen, func(s *ViewState) {
		if err != nil {
			c.logger.Warn("Profile fetch failed", "subject", id, "error", err)
			s.setError(ProfileErrorMessage)
			return
		}
		s.setProfile(profile)
	})
}

func (c *Controller) loadActivities(id string, gen uint64) {
	defer c.inflight.Done()

	activities, err := c.fetcher.FetchUserActivities(c.ctx, id)
	c.apply(gen, func(s *ViewState) {
		if err != nil {
			c.logger.Warn("Activities fetch failed", "subject", id, "error", err)
			s.setError(ActivitiesErrorMessage)
			return
		}
		s.setActivities(activities)
	})
}

// apply runs transition if gen is still current.
func (c *Controller) apply(gen uint64, transition func(*ViewState)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("Discarding stale fetch result", "generation", gen, "current", c.generation)
		return
	}
	transition(&c.state)
	c.notifyLocked()
}

func (c *Controller) notifyLocked() {
	if len(c.observers) == 0 {
		return
	}
	for _, o := range c.observers {
		o(c.state.clone())
	}
}
