package services_test

import (
	"context"
	"errors"
	"testing"

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

type TagServiceTestSuite struct {
	suite.Suite
	mockTagRepo     *MockTagRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.TagSvcFacade
}

func (suite *TagServiceTestSuite) SetupTest() {
	suite.mockTagRepo = new(MockTagRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewTagService(suite.mockTagRepo, suite.mockJournalRepo)
}

func (suite *TagServiceTestSuite) TestCreateTag_Success() {
	ctx := context.Background()
	req := dto.CreateTagRequest{Name: "Test Tag 1"}

	suite.mockTagRepo.On("SaveTag", ctx, mock.MatchedBy(func(t domain.Tag) bool {
		return t.Name == "Test Tag 1" && t.Slug == "test-tag-1" && t.JournalCount == 0
	})).Return(nil).Once()

	tag, err := suite.service.CreateTag(ctx, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "test-tag-1", tag.Slug)
	assert.Zero(suite.T(), tag.JournalCount)
	suite.mockTagRepo.AssertExpectations(suite.T())
}

func (suite *TagServiceTestSuite) TestCreateTag_InvalidName() {
	ctx := context.Background()

	_, err := suite.service.CreateTag(ctx, dto.CreateTagRequest{Name: "   "})
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	_, err = suite.service.CreateTag(ctx, dto.CreateTagRequest{Name: "bad/name"})
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	suite.mockTagRepo.AssertNotCalled(suite.T(), "SaveTag", mock.Anything, mock.Anything)
}

func (suite *TagServiceTestSuite) TestReconcile_CorrectsDriftedCount() {
	ctx := context.Background()
	tagID := uuid.NewString()

	suite.mockJournalRepo.On("CountJournalsWithTag", ctx, tagID).Return(3, nil).Once()
	suite.mockTagRepo.On("FindTagByID", ctx, tagID).
		Return(&domain.Tag{TagID: tagID, Name: "Go", Slug: "go", JournalCount: 7}, nil).Once()
	suite.mockTagRepo.On("UpdateJournalCount", ctx, tagID, 3).Return(nil).Once()

	suite.service.Reconcile(ctx, []string{tagID})

	suite.mockTagRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *TagServiceTestSuite) TestReconcile_SkipsWriteWhenCountMatches() {
	ctx := context.Background()
	tagID := uuid.NewString()

	suite.mockJournalRepo.On("CountJournalsWithTag", ctx, tagID).Return(2, nil).Once()
	suite.mockTagRepo.On("FindTagByID", ctx, tagID).
		Return(&domain.Tag{TagID: tagID, JournalCount: 2}, nil).Once()

	suite.service.Reconcile(ctx, []string{tagID})

	suite.mockTagRepo.AssertNotCalled(suite.T(), "UpdateJournalCount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TagServiceTestSuite) TestReconcile_DeduplicatesTagIDs() {
	ctx := context.Background()
	tagID := uuid.NewString()

	// Two references to the same tag trigger exactly one recount.
	suite.mockJournalRepo.On("CountJournalsWithTag", ctx, tagID).Return(1, nil).Once()
	suite.mockTagRepo.On("FindTagByID", ctx, tagID).
		Return(&domain.Tag{TagID: tagID, JournalCount: 1}, nil).Once()

	suite.service.Reconcile(ctx, []string{tagID, tagID, ""})

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *TagServiceTestSuite) TestReconcile_SwallowsErrors() {
	ctx := context.Background()
	broken := uuid.NewString()
	healthy := uuid.NewString()

	suite.mockJournalRepo.On("CountJournalsWithTag", ctx, broken).
		Return(0, errors.New("connection reset")).Once()
	suite.mockJournalRepo.On("CountJournalsWithTag", ctx, healthy).Return(4, nil).Once()
	suite.mockTagRepo.On("FindTagByID", ctx, healthy).
		Return(&domain.Tag{TagID: healthy, JournalCount: 0}, nil).Once()
	suite.mockTagRepo.On("UpdateJournalCount", ctx, healthy, 4).Return(nil).Once()

	// Must not panic or abort; the healthy tag still gets reconciled.
	suite.service.Reconcile(ctx, []string{broken, healthy})

	suite.mockTagRepo.AssertExpectations(suite.T())
}

func (suite *TagServiceTestSuite) TestReconcile_IgnoresVanishedTag() {
	ctx := context.Background()
	tagID := uuid.NewString()

	suite.mockJournalRepo.On("CountJournalsWithTag", ctx, tagID).Return(0, nil).Once()
	suite.mockTagRepo.On("FindTagByID", ctx, tagID).Return(nil, apperrors.ErrNotFound).Once()

	suite.service.Reconcile(ctx, []string{tagID})

	suite.mockTagRepo.AssertNotCalled(suite.T(), "UpdateJournalCount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TagServiceTestSuite) TestReconcileAll_ReportsCorrections() {
	ctx := context.Background()
	drifted := uuid.NewString()
	accurate := uuid.NewString()

	suite.mockTagRepo.On("ListAllTagIDs", ctx).Return([]string{drifted, accurate}, nil).Once()
	suite.mockJournalRepo.On("CountJournalsWithTag", ctx, drifted).Return(5, nil).Once()
	suite.mockTagRepo.On("FindTagByID", ctx, drifted).
		Return(&domain.Tag{TagID: drifted, JournalCount: 2}, nil).Once()
	suite.mockTagRepo.On("UpdateJournalCount", ctx, drifted, 5).Return(nil).Once()
	suite.mockJournalRepo.On("CountJournalsWithTag", ctx, accurate).Return(1, nil).Once()
	suite.mockTagRepo.On("FindTagByID", ctx, accurate).
		Return(&domain.Tag{TagID: accurate, JournalCount: 1}, nil).Once()

	corrected, err := suite.service.ReconcileAll(ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, corrected)
	suite.mockTagRepo.AssertExpectations(suite.T())
}

func (suite *TagServiceTestSuite) TestUpdateTag_RenamesAndRecounts() {
	ctx := context.Background()
	tagID := uuid.NewString()
	existing := &domain.Tag{TagID: tagID, Name: "Old Name", Slug: "old-name", JournalCount: 2}

	suite.mockTagRepo.On("FindTagByID", ctx, tagID).Return(existing, nil)
	suite.mockTagRepo.On("UpdateTag", ctx, mock.MatchedBy(func(t domain.Tag) bool {
		return t.Name == "Test Tag 2" && t.Slug == "test-tag-2"
	})).Return(nil).Once()
	suite.mockJournalRepo.On("CountJournalsWithTag", ctx, tagID).Return(2, nil).Once()

	tag, err := suite.service.UpdateTag(ctx, tagID, dto.UpdateTagRequest{Name: "Test Tag 2"})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), tag)
	suite.mockTagRepo.AssertExpectations(suite.T())
}

func (suite *TagServiceTestSuite) TestDeleteTag_CascadesBeforeDelete() {
	ctx := context.Background()
	tagID := uuid.NewString()
	journalIDs := []string{"j1", "j2", "j3"}

	suite.mockTagRepo.On("FindTagByID", ctx, tagID).
		Return(&domain.Tag{TagID: tagID}, nil).Once()
	suite.mockJournalRepo.On("FindJournalIDsWithTag", ctx, tagID, 50).
		Return(journalIDs, nil).Once()
	for _, journalID := range journalIDs {
		suite.mockJournalRepo.On("RemoveTagFromJournal", ctx, journalID, tagID).Return(nil).Once()
	}
	suite.mockTagRepo.On("DeleteTag", ctx, tagID).Return(nil).Once()

	err := suite.service.DeleteTag(ctx, tagID)

	assert.NoError(suite.T(), err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockTagRepo.AssertExpectations(suite.T())
}

func (suite *TagServiceTestSuite) TestDeleteTag_CascadeFailureDoesNotBlockDelete() {
	ctx := context.Background()
	tagID := uuid.NewString()

	suite.mockTagRepo.On("FindTagByID", ctx, tagID).
		Return(&domain.Tag{TagID: tagID}, nil).Once()
	suite.mockJournalRepo.On("FindJournalIDsWithTag", ctx, tagID, 50).
		Return(nil, errors.New("timeout")).Once()
	suite.mockTagRepo.On("DeleteTag", ctx, tagID).Return(nil).Once()

	err := suite.service.DeleteTag(ctx, tagID)

	assert.NoError(suite.T(), err)
	suite.mockTagRepo.AssertExpectations(suite.T())
}

func TestTagServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TagServiceTestSuite))
}
