package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	args := m.Called(ctx, journalID)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalBySlug(ctx context.Context, slug string) (*domain.Journal, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, filter portsrepo.ListJournalsFilter) ([]domain.Journal, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Journal), args.Int(1), args.Error(2)
}

func (m *MockJournalRepository) SlugExists(ctx context.Context, slug, excludeJournalID string) (bool, error) {
	args := m.Called(ctx, slug, excludeJournalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalRepository) CountJournalsWithTag(ctx context.Context, tagID string) (int, error) {
	args := m.Called(ctx, tagID)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) FindJournalIDsWithTag(ctx context.Context, tagID string, limit int) ([]string, error) {
	args := m.Called(ctx, tagID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockJournalRepository) RemoveTagFromJournal(ctx context.Context, journalID, tagID string) error {
	args := m.Called(ctx, journalID, tagID)
	return args.Error(0)
}

// --- Mock TagRepository ---
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) UpdateTag(ctx context.Context, tag domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) UpdateJournalCount(ctx context.Context, tagID string, count int) error {
	args := m.Called(ctx, tagID, count)
	return args.Error(0)
}

func (m *MockTagRepository) DeleteTag(ctx context.Context, tagID string) error {
	args := m.Called(ctx, tagID)
	return args.Error(0)
}

func (m *MockTagRepository) FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) FindTagsByIDs(ctx context.Context, tagIDs []string) ([]domain.Tag, error) {
	args := m.Called(ctx, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagRepository) ListTags(ctx context.Context, filter portsrepo.ListTagsFilter) ([]domain.Tag, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagRepository) ListAllTagIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, filter portsrepo.ListCategoriesFilter) ([]domain.Category, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- Mock TagReconciler ---
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, tagIDs []string) {
	m.Called(ctx, tagIDs)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiry *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiry)
	return args.Error(0)
}
