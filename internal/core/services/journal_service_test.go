package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/core/services"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
)

var testContent = json.RawMessage(`[{"children":[{"text":"Some words about a trip to the mountains."}]}]`)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockTagRepo      *MockTagRepository
	mockCategoryRepo *MockCategoryRepository
	mockReconciler   *MockReconciler
	service          portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockTagRepo = new(MockTagRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockReconciler = new(MockReconciler)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo, suite.mockTagRepo, suite.mockCategoryRepo, suite.mockReconciler)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_DerivesSlugExcerptAndSEO() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Title:   "A Trip to the Mountains!",
		Content: testContent,
	}

	suite.mockJournalRepo.On("SlugExists", ctx, "a-trip-to-the-mountains", "").Return(false, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Slug == "a-trip-to-the-mountains" &&
			j.Excerpt == "Some words about a trip to the mountains." &&
			j.SEO.Title == req.Title &&
			j.SEO.Description == j.Excerpt &&
			j.Status == domain.JournalStatusDraft &&
			j.PublishedAt == nil
	})).Return(nil).Once()
	suite.mockReconciler.On("Reconcile", ctx, mock.Anything).Return().Once()

	journal, err := suite.service.CreateJournal(ctx, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "a-trip-to-the-mountains", journal.Slug)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_PublishedSetsPublishedAt() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Title:   "Published Right Away",
		Content: testContent,
		Status:  "published",
	}

	suite.mockJournalRepo.On("SlugExists", ctx, "published-right-away", "").Return(false, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Status == domain.JournalStatusPublished && j.PublishedAt != nil
	})).Return(nil).Once()
	suite.mockReconciler.On("Reconcile", ctx, mock.Anything).Return().Once()

	_, err := suite.service.CreateJournal(ctx, req)
	assert.NoError(suite.T(), err)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_DuplicateSlugRejected() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{Title: "Taken Title", Content: testContent}

	suite.mockJournalRepo.On("SlugExists", ctx, "taken-title", "").Return(true, nil).Once()

	_, err := suite.service.CreateJournal(ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_UnknownTagRejected() {
	ctx := context.Background()
	tagID := uuid.NewString()
	req := dto.CreateJournalRequest{Title: "Tagged Entry", Content: testContent, TagIDs: []string{tagID}}

	suite.mockJournalRepo.On("SlugExists", ctx, "tagged-entry", "").Return(false, nil).Once()
	suite.mockTagRepo.On("FindTagsByIDs", ctx, []string{tagID}).Return([]domain.Tag{}, nil).Once()

	_, err := suite.service.CreateJournal(ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_ReconcilesUnionOfTagSets() {
	ctx := context.Background()
	journalID := uuid.NewString()
	oldTag := uuid.NewString()
	keptTag := uuid.NewString()
	newTag := uuid.NewString()

	existing := &domain.Journal{
		JournalID: journalID,
		Title:     "Existing Entry",
		Slug:      "existing-entry",
		Content:   testContent,
		Status:    domain.JournalStatusDraft,
		TagIDs:    []string{oldTag, keptTag},
	}
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(existing, nil).Once()
	suite.mockTagRepo.On("FindTagsByIDs", ctx, []string{keptTag, newTag}).
		Return([]domain.Tag{{TagID: keptTag}, {TagID: newTag}}, nil).Once()
	suite.mockJournalRepo.On("UpdateJournal", ctx, mock.Anything).Return(nil).Once()
	suite.mockReconciler.On("Reconcile", ctx, mock.MatchedBy(func(ids []string) bool {
		// Removed, kept and added tags all get recounted.
		return assert.ObjectsAreEqual([]string{oldTag, keptTag, newTag}, ids)
	})).Return().Once()

	newTags := []string{keptTag, newTag}
	_, err := suite.service.UpdateJournal(ctx, journalID, dto.UpdateJournalRequest{TagIDs: &newTags})

	assert.NoError(suite.T(), err)
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_PublishTransitionSetsTimestamp() {
	ctx := context.Background()
	journalID := uuid.NewString()
	existing := &domain.Journal{
		JournalID: journalID,
		Title:     "Draft Entry",
		Slug:      "draft-entry",
		Content:   testContent,
		Status:    domain.JournalStatusDraft,
	}
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(existing, nil).Once()
	suite.mockJournalRepo.On("UpdateJournal", ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Status == domain.JournalStatusPublished && j.PublishedAt != nil
	})).Return(nil).Once()
	suite.mockReconciler.On("Reconcile", ctx, mock.Anything).Return().Once()

	status := "published"
	journal, err := suite.service.UpdateJournal(ctx, journalID, dto.UpdateJournalRequest{Status: &status})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), journal.PublishedAt)
	assert.WithinDuration(suite.T(), time.Now().UTC(), *journal.PublishedAt, time.Minute)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_UnpublishClearsTimestamp() {
	ctx := context.Background()
	journalID := uuid.NewString()
	publishedAt := time.Now().UTC().Add(-24 * time.Hour)
	existing := &domain.Journal{
		JournalID:   journalID,
		Title:       "Published Entry",
		Slug:        "published-entry",
		Content:     testContent,
		Status:      domain.JournalStatusPublished,
		PublishedAt: &publishedAt,
	}
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(existing, nil).Once()
	suite.mockJournalRepo.On("UpdateJournal", ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Status == domain.JournalStatusDraft && j.PublishedAt == nil
	})).Return(nil).Once()
	suite.mockReconciler.On("Reconcile", ctx, mock.Anything).Return().Once()

	status := "draft"
	journal, err := suite.service.UpdateJournal(ctx, journalID, dto.UpdateJournalRequest{Status: &status})

	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), journal.PublishedAt)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_SlugStableWithoutTitleChange() {
	ctx := context.Background()
	journalID := uuid.NewString()
	existing := &domain.Journal{
		JournalID: journalID,
		Title:     "Stable Title",
		Slug:      "stable-title",
		Content:   testContent,
		Status:    domain.JournalStatusDraft,
	}
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(existing, nil).Once()
	suite.mockJournalRepo.On("UpdateJournal", ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Slug == "stable-title"
	})).Return(nil).Once()
	suite.mockReconciler.On("Reconcile", ctx, mock.Anything).Return().Once()

	newContent := json.RawMessage(`[{"children":[{"text":"Edited body."}]}]`)
	journal, err := suite.service.UpdateJournal(ctx, journalID, dto.UpdateJournalRequest{Content: newContent})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "stable-title", journal.Slug)
	// Content edits re-derive the excerpt when no explicit one is given.
	assert.Equal(suite.T(), "Edited body.", journal.Excerpt)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SlugExists", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteJournal_ReconcilesItsTags() {
	ctx := context.Background()
	journalID := uuid.NewString()
	tagIDs := []string{uuid.NewString(), uuid.NewString()}
	existing := &domain.Journal{JournalID: journalID, TagIDs: tagIDs}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(existing, nil).Once()
	suite.mockJournalRepo.On("DeleteJournal", ctx, journalID).Return(nil).Once()
	suite.mockReconciler.On("Reconcile", ctx, tagIDs).Return().Once()

	err := suite.service.DeleteJournal(ctx, journalID)

	assert.NoError(suite.T(), err)
	suite.mockReconciler.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
