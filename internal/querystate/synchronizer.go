// Package querystate owns the asset list filters, keeps them in step with
// their shareable URL form, and fetches the matching catalog page.
package querystate

import (
	"context"
	"net/url"
	"sync"

	"assetdirectory/internal/catalog"
	"assetdirectory/pkg/models"
	"assetdirectory/pkg/notification"

	"go.uber.org/zap"
)

const MessageFetchFailed = "Unable to load assets"

// View is the list state derived from the last applied response.
type View struct {
	Filters FilterSet
	Count   int
	Results []models.Asset
}

// ResultsExist is true when at least one returned record has an identity,
// so a placeholder record does not count as a result.
func (v View) ResultsExist() bool {
	for i := range v.Results {
		if v.Results[i].HasIdentity() {
			return true
		}
	}
	return false
}

// Synchronizer applies fetch responses in issue order: only the response to
// the most recently issued fetch may replace the view.
type Synchronizer struct {
	mu       sync.Mutex
	searcher catalog.Searcher
	notifier notification.Notifier
	logger   *zap.Logger

	filters  FilterSet
	issued   uint64
	inFlight int
	view     View
}

func NewSynchronizer(searcher catalog.Searcher, notifier notification.Notifier, logger *zap.Logger, initial FilterSet) *Synchronizer {
	if initial.Limit < 1 {
		initial.Limit = DefaultPageSize
	}
	if initial.Page < 1 {
		initial.Page = 1
	}

	return &Synchronizer{
		searcher: searcher,
		notifier: notifier,
		logger:   logger,
		filters:  initial,
		view:     View{Filters: initial},
	}
}

func (s *Synchronizer) SetFilter(ctx context.Context, key Key, value string) error {
	if key == KeyPage || key == KeyLimit {
		n, err := parsePositive(value)
		if err != nil {
			return err
		}
		if key == KeyPage {
			return s.SetPage(ctx, n)
		}
		return s.update(ctx, func(f FilterSet) (FilterSet, error) { return f.WithLimit(n) })
	}

	return s.update(ctx, func(f FilterSet) (FilterSet, error) { return f.With(key, value) })
}

func (s *Synchronizer) ClearFilter(ctx context.Context, keys ...Key) error {
	return s.update(ctx, func(f FilterSet) (FilterSet, error) { return f.Without(keys...) })
}

func (s *Synchronizer) ClearAll(ctx context.Context) error {
	return s.update(ctx, func(f FilterSet) (FilterSet, error) { return f.Cleared(), nil })
}

func (s *Synchronizer) SetPage(ctx context.Context, page int) error {
	return s.update(ctx, func(f FilterSet) (FilterSet, error) { return f.WithPage(page) })
}

// SetParams replaces the filters with the ones encoded in shareable
// parameters, e.g. when a bookmarked link is opened.
func (s *Synchronizer) SetParams(ctx context.Context, values url.Values) error {
	return s.update(ctx, func(f FilterSet) (FilterSet, error) { return Decode(values, f.Limit) })
}

// Refresh refetches the current filters.
func (s *Synchronizer) Refresh(ctx context.Context) {
	s.mu.Lock()
	token, snapshot := s.issue()
	s.mu.Unlock()

	s.fetch(ctx, token, snapshot)
}

func (s *Synchronizer) update(ctx context.Context, change func(FilterSet) (FilterSet, error)) error {
	s.mu.Lock()
	next, err := change(s.filters)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if next == s.filters {
		s.mu.Unlock()
		return nil
	}
	s.filters = next
	token, snapshot := s.issue()
	s.mu.Unlock()

	s.fetch(ctx, token, snapshot)
	return nil
}

// issue must be called with mu held.
func (s *Synchronizer) issue() (uint64, FilterSet) {
	s.issued++
	s.inFlight++
	return s.issued, s.filters
}

func (s *Synchronizer) fetch(ctx context.Context, token uint64, filters FilterSet) {
	resp, err := s.searcher.Search(ctx, filters.Request())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--

	if token != s.issued {
		s.logger.Debug("discarding stale asset page",
			zap.Uint64("token", token),
			zap.Uint64("latest", s.issued),
			zap.Error(err),
		)
		return
	}

	if err != nil {
		s.logger.Warn("asset list fetch failed", zap.Uint64("token", token), zap.Error(err))
		s.notifier.Error(MessageFetchFailed)
		return
	}

	if resp == nil {
		resp = &catalog.SearchResponse{}
	}
	s.view = View{
		Filters: filters,
		Count:   resp.Count,
		Results: append([]models.Asset(nil), resp.Results...),
	}
}

func (s *Synchronizer) Filters() FilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filters
}

// Params is the shareable form of the current filters.
func (s *Synchronizer) Params() url.Values {
	return Encode(s.Filters())
}

func (s *Synchronizer) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.view
	view.Results = append([]models.Asset(nil), s.view.Results...)
	return view
}

func (s *Synchronizer) Results() []models.Asset {
	return s.View().Results
}

func (s *Synchronizer) ResultsExist() bool {
	return s.View().ResultsExist()
}

// Loading reports whether any fetch is still outstanding.
func (s *Synchronizer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inFlight > 0
}
