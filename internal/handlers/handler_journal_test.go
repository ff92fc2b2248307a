package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/handlers"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/httpcache"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest) (*domain.Journal, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) DeleteJournal(ctx context.Context, journalID string) error {
	args := m.Called(ctx, journalID)
	return args.Error(0)
}
func (m *MockJournalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) GetJournalBySlug(ctx context.Context, slug string) (*domain.Journal, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*portssvc.JournalListResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.JournalListResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	metrics            *httpcache.Metrics
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockJournalService = new(MockJournalService)
	suite.metrics = httpcache.NewMetrics()

	cache := handlers.NewCacheControl(suite.metrics, httpcache.Config{
		MaxAge:               300,
		StaleWhileRevalidate: 60,
	})
	api := suite.router.Group("/api")
	handlers.RegisterJournalReadRoutes(api, suite.mockJournalService, cache)
}

func (suite *JournalHandlerTestSuite) publishedJournal(slug string) *domain.Journal {
	now := time.Now().UTC().Truncate(time.Second)
	publishedAt := now.Add(-time.Hour)
	return &domain.Journal{
		JournalID:   uuid.NewString(),
		Title:       "Entry " + slug,
		Slug:        slug,
		Content:     json.RawMessage(`[{"children":[{"text":"Body text."}]}]`),
		Excerpt:     "Body text.",
		Status:      domain.JournalStatusPublished,
		PublishedAt: &publishedAt,
		TagIDs:      []string{},
		Timestamps:  domain.Timestamps{CreatedAt: publishedAt, UpdatedAt: now},
	}
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestListJournals_SetsCachingHeaders() {
	journal := suite.publishedJournal("first-entry")
	result := &portssvc.JournalListResult{
		Journals:   []domain.Journal{*journal},
		Total:      1,
		Page:       1,
		Limit:      10,
		Categories: []domain.Category{},
		Tags:       []domain.Tag{},
	}
	// The public listing always requests published entries only.
	suite.mockJournalService.On("ListJournals", mock.Anything, mock.MatchedBy(func(p dto.ListJournalsParams) bool {
		return p.Status == "published" && p.Page == 1 && p.Limit == 10
	})).Return(result, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/journals", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("public, max-age=300, stale-while-revalidate=60", w.Header().Get("Cache-Control"))
	suite.NotEmpty(w.Header().Get("ETag"))

	var body dto.SuccessResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Success)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestListJournals_StableETagAcrossRequests() {
	journal := suite.publishedJournal("stable-entry")
	result := &portssvc.JournalListResult{
		Journals:   []domain.Journal{*journal},
		Total:      1,
		Page:       1,
		Limit:      10,
		Categories: []domain.Category{},
		Tags:       []domain.Tag{},
	}
	suite.mockJournalService.On("ListJournals", mock.Anything, mock.Anything).Return(result, nil).Twice()

	first := httptest.NewRecorder()
	req1, _ := http.NewRequest(http.MethodGet, "/api/journals", nil)
	suite.router.ServeHTTP(first, req1)

	second := httptest.NewRecorder()
	req2, _ := http.NewRequest(http.MethodGet, "/api/journals", nil)
	suite.router.ServeHTTP(second, req2)

	// The envelope timestamp differs per request; the tag must not.
	suite.Equal(first.Header().Get("ETag"), second.Header().Get("ETag"))
}

func (suite *JournalHandlerTestSuite) TestGetJournalBySlug_ConditionalRequest() {
	journal := suite.publishedJournal("cached-entry")
	suite.mockJournalService.On("GetJournalBySlug", mock.Anything, "cached-entry").Return(journal, nil).Twice()

	first := httptest.NewRecorder()
	req1, _ := http.NewRequest(http.MethodGet, "/api/journals/cached-entry", nil)
	suite.router.ServeHTTP(first, req1)

	suite.Equal(http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	suite.NotEmpty(etag)
	suite.NotEmpty(first.Header().Get("Last-Modified"))

	second := httptest.NewRecorder()
	req2, _ := http.NewRequest(http.MethodGet, "/api/journals/cached-entry", nil)
	req2.Header.Set("If-None-Match", etag)
	suite.router.ServeHTTP(second, req2)

	suite.Equal(http.StatusNotModified, second.Code)
	suite.Empty(second.Body.Bytes())

	// First round trip was a miss, the revalidation a hit.
	snapshot := suite.metrics.Snapshot()
	entry := snapshot["journals:detail:slug=cached-entry"]
	suite.Equal(int64(1), entry.Hits)
	suite.Equal(int64(1), entry.Misses)
}

func (suite *JournalHandlerTestSuite) TestGetJournalBySlug_IfModifiedSince() {
	journal := suite.publishedJournal("dated-entry")
	suite.mockJournalService.On("GetJournalBySlug", mock.Anything, "dated-entry").Return(journal, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/journals/dated-entry", nil)
	req.Header.Set("If-Modified-Since", journal.UpdatedAt.Format(http.TimeFormat))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotModified, w.Code)
}

func (suite *JournalHandlerTestSuite) TestGetJournalBySlug_DraftHidden() {
	journal := suite.publishedJournal("hidden-draft")
	journal.Status = domain.JournalStatusDraft
	journal.PublishedAt = nil
	suite.mockJournalService.On("GetJournalBySlug", mock.Anything, "hidden-draft").Return(journal, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/journals/hidden-draft", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)

	var body dto.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.False(body.Success)
	suite.Equal(dto.CodeNotFound, body.Error.Code)
}

// --- Run Test Suite ---
func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
