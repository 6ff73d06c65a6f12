package resolver

import (
	"context"
	"errors"
	"testing"

	"assetdirectory/internal/catalog"
	"assetdirectory/internal/identifier"
	"assetdirectory/pkg/models"
	"assetdirectory/pkg/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) LookupRegistry(ctx context.Context, code string) (*models.RegistryRecord, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RegistryRecord), args.Error(1)
}

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, req catalog.SearchRequest) (*catalog.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.SearchResponse), args.Error(1)
}

type navigationRecorder struct {
	paths []string
}

func (n *navigationRecorder) Navigate(path string) {
	n.paths = append(n.paths, path)
}

func asset(id, facilityID string) models.Asset {
	return models.Asset{ID: id, Location: models.Location{ID: "L1", Facility: models.Facility{ID: facilityID}}}
}

func setupResolver() (*Resolver, *MockRegistry, *MockSearcher, *navigationRecorder, *notification.Recorder) {
	registry := new(MockRegistry)
	searcher := new(MockSearcher)
	navigator := &navigationRecorder{}
	notifier := &notification.Recorder{}

	return New(registry, searcher, navigator, notifier, zap.NewNop()), registry, searcher, navigator, notifier
}

func TestResolve_NavigatesOnSingleMatch(t *testing.T) {
	r, registry, searcher, navigator, notifier := setupResolver()

	registry.On("LookupRegistry", mock.Anything, "QR123").
		Return(&models.RegistryRecord{AssetID: "A9", QRCodeID: "K1"}, nil).Once()
	searcher.On("Search", mock.Anything, catalog.SearchRequest{QRCodeID: "K1", Limit: searchLimit}).
		Return(&catalog.SearchResponse{Results: []models.Asset{asset("A9", "F2")}, Count: 1}, nil).Once()

	outcome := r.Resolve(context.Background(), "https://x/y?asset=QR123")

	assert.True(t, outcome.Succeeded())
	assert.Equal(t, "F2", outcome.FacilityID)
	assert.Equal(t, "A9", outcome.AssetID)
	assert.Equal(t, []string{"/facility/F2/assets/A9"}, navigator.paths)
	assert.Empty(t, notifier.Messages())

	registry.AssertExpectations(t)
	searcher.AssertExpectations(t)
}

func TestResolve_InvalidInputMakesNoCalls(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{"not a url", "not a url", identifier.ErrMalformedInput},
		{"no identifier", "https://x/y?other=1", identifier.ErrMissingIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, registry, searcher, navigator, notifier := setupResolver()

			outcome := r.Resolve(context.Background(), tt.raw)

			assert.Equal(t, ReasonInvalidInput, outcome.Reason)
			assert.ErrorIs(t, outcome.Err, tt.err)
			assert.Empty(t, navigator.paths)
			assert.Equal(t, []string{MessageInvalidAssetID}, notifier.Messages())
			registry.AssertNotCalled(t, "LookupRegistry", mock.Anything, mock.Anything)
			searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		})
	}
}

func TestResolve_RegistryMissSkipsCatalog(t *testing.T) {
	r, registry, searcher, navigator, notifier := setupResolver()

	registry.On("LookupRegistry", mock.Anything, "QR404").Return(nil, catalog.ErrNotFound).Once()

	outcome := r.Resolve(context.Background(), "https://x/y?assetQR=QR404")

	assert.Equal(t, ReasonRegistryLookupMiss, outcome.Reason)
	assert.ErrorIs(t, outcome.Err, catalog.ErrNotFound)
	assert.Empty(t, navigator.paths)
	assert.Equal(t, []string{MessageInvalidAssetID}, notifier.Messages())
	searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestResolve_TransportFaultsReportAsRegistryMiss(t *testing.T) {
	fault := errors.New("connection reset")

	t.Run("registry fault", func(t *testing.T) {
		r, registry, searcher, _, notifier := setupResolver()
		registry.On("LookupRegistry", mock.Anything, "QR1").Return(nil, fault).Once()

		outcome := r.Resolve(context.Background(), "https://x/y?asset=QR1")

		assert.Equal(t, ReasonRegistryLookupMiss, outcome.Reason)
		assert.ErrorIs(t, outcome.Err, fault)
		assert.Equal(t, []string{MessageInvalidAssetID}, notifier.Messages())
		searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("catalog fault", func(t *testing.T) {
		r, registry, searcher, navigator, notifier := setupResolver()
		registry.On("LookupRegistry", mock.Anything, "QR1").Return(&models.RegistryRecord{QRCodeID: "QR1"}, nil).Once()
		searcher.On("Search", mock.Anything, mock.Anything).Return(nil, fault).Once()

		outcome := r.Resolve(context.Background(), "https://x/y?asset=QR1")

		assert.Equal(t, ReasonRegistryLookupMiss, outcome.Reason)
		assert.ErrorIs(t, outcome.Err, fault)
		assert.Empty(t, navigator.paths)
		assert.Len(t, notifier.Messages(), 1)
	})
}

func TestResolve_CatalogMatchCounts(t *testing.T) {
	tests := []struct {
		name    string
		resp    *catalog.SearchResponse
		reason  Reason
		message string
	}{
		{"no match", &catalog.SearchResponse{}, ReasonCatalogMiss, MessageAssetNotFound},
		{"two matches", &catalog.SearchResponse{Results: []models.Asset{asset("A1", "F1"), asset("A2", "F1")}, Count: 2}, ReasonAmbiguous, MessageAmbiguousAsset},
		{"one returned of many", &catalog.SearchResponse{Results: []models.Asset{asset("A1", "F1")}, Count: 3}, ReasonAmbiguous, MessageAmbiguousAsset},
		{"match without facility", &catalog.SearchResponse{Results: []models.Asset{asset("A1", "")}, Count: 1}, ReasonCatalogMiss, MessageAssetNotFound},
		{"placeholder record", &catalog.SearchResponse{Results: []models.Asset{{}}, Count: 1}, ReasonCatalogMiss, MessageAssetNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, registry, searcher, navigator, notifier := setupResolver()
			registry.On("LookupRegistry", mock.Anything, "QR123").Return(&models.RegistryRecord{QRCodeID: "QR123"}, nil).Once()
			searcher.On("Search", mock.Anything, mock.Anything).Return(tt.resp, nil).Once()

			outcome := r.Resolve(context.Background(), "https://x/y?asset=QR123")

			assert.Equal(t, tt.reason, outcome.Reason)
			assert.Empty(t, navigator.paths)
			assert.Equal(t, []string{tt.message}, notifier.Messages())
		})
	}
}

func TestReason_Message(t *testing.T) {
	assert.Equal(t, MessageInvalidAssetID, ReasonInvalidInput.Message())
	assert.Equal(t, MessageInvalidAssetID, ReasonRegistryLookupMiss.Message())
	assert.Equal(t, MessageAssetNotFound, ReasonCatalogMiss.Message())
	assert.Equal(t, MessageAmbiguousAsset, ReasonAmbiguous.Message())
}
