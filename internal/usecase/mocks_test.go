package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/shortly/internal/entity"
	"github.com/vadimbarashkov/shortly/pkg/token"
)

type mockURLRepository struct {
	mock.Mock
}

func (m *mockURLRepository) Save(ctx context.Context, url *entity.URL) (*entity.URL, error) {
	args := m.Called(ctx, url)
	if v := args.Get(0); v != nil {
		return v.(*entity.URL), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockURLRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	if v := args.Get(0); v != nil {
		return v.(*entity.URL), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockURLRepository) AddClicks(ctx context.Context, shortCode string, delta int64) error {
	return m.Called(ctx, shortCode, delta).Error(0)
}

func (m *mockURLRepository) ListByOwner(ctx context.Context, userID int64, limit, offset int) ([]*entity.URL, error) {
	args := m.Called(ctx, userID, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]*entity.URL), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockURLRepository) CountByOwner(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockURLRepository) UpdateOwned(ctx context.Context, externalID string, userID int64, originalURL string) (*entity.URL, error) {
	args := m.Called(ctx, externalID, userID, originalURL)
	if v := args.Get(0); v != nil {
		return v.(*entity.URL), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockURLRepository) RemoveOwned(ctx context.Context, externalID string, userID int64) error {
	return m.Called(ctx, externalID, userID).Error(0)
}

type mockShortCodeGenerator struct {
	mock.Mock
}

func (m *mockShortCodeGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Save(ctx context.Context, user *entity.User) (*entity.User, error) {
	args := m.Called(ctx, user)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) RetrieveByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) RetrieveByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	args := m.Called(ctx, externalID)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Verify(password, digest string) bool {
	return m.Called(password, digest).Bool(0)
}

type mockTokenSigner struct {
	mock.Mock
}

func (m *mockTokenSigner) Sign(subject, email string) (string, error) {
	args := m.Called(subject, email)
	return args.String(0), args.Error(1)
}

func (m *mockTokenSigner) Verify(tokenString string) (*token.Claims, error) {
	args := m.Called(tokenString)
	if v := args.Get(0); v != nil {
		return v.(*token.Claims), args.Error(1)
	}
	return nil, args.Error(1)
}
