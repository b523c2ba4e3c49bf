package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	dash "github.com/nfrund/userdash/internal/dashboard"
)

// Page is one opened dashboard: a page instance id and the controller that
// owns its view state.
type Page struct {
	ID         string
	Controller *dash.Controller
	CreatedAt  time.Time
}

// PageStore keeps the live page instances in memory. When full, the oldest
// page is evicted.
type PageStore struct {
	mu    sync.Mutex
	pages map[string]*Page
	order []string
	max   int

	ctx     context.Context
	fetcher dash.Fetcher
	logger  *slog.Logger
}

// NewPageStore creates a store holding at most max pages. Controllers
// created by the store fetch under ctx.
func NewPageStore(ctx context.Context, fetcher dash.Fetcher, max int, logger *slog.Logger) *PageStore {
	if max < 1 {
		max = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PageStore{
		pages:   make(map[string]*Page),
		max:     max,
		ctx:     ctx,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Create registers a new page instance. observe, if non-nil, is subscribed
// to the controller before it is returned.
func (s *PageStore) Create(observe func(pageID string, state dash.ViewState)) *Page {
	id := uuid.NewString()
	controller := dash.NewController(s.ctx, s.fetcher, s.logger.With("page_id", id))
	if observe != nil {
		controller.Subscribe(func(state dash.ViewState) { observe(id, state) })
	}
	page := &Page{ID: id, Controller: controller, CreatedAt: time.Now()}

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.order) >= s.max {
		oldest := s.pages[s.order[0]]
		s.order = s.order[1:]
		delete(s.pages, oldest.ID)
		s.logger.Debug("Evicted dashboard page", "page_id", oldest.ID, "age", page.CreatedAt.Sub(oldest.CreatedAt))
	}
	s.pages[id] = page
	s.order = append(s.order, id)
	return page
}

// Get looks up a page instance.
func (s *PageStore) Get(id string) (*Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[id]
	return p, ok
}

// Len returns the number of live pages.
func (s *PageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}
