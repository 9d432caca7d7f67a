package http

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/shortly/internal/entity"
)

type mockURLUseCase struct {
	mock.Mock
}

func (m *mockURLUseCase) ShortenURL(ctx context.Context, originalURL string, owner *entity.User) (*entity.URL, error) {
	args := m.Called(ctx, originalURL, owner)
	if v := args.Get(0); v != nil {
		return v.(*entity.URL), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockURLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	if v := args.Get(0); v != nil {
		return v.(*entity.URL), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockURLUseCase) RecordClick(ctx context.Context, shortCode string) error {
	return m.Called(ctx, shortCode).Error(0)
}

func (m *mockURLUseCase) ListURLs(ctx context.Context, owner *entity.User, limit, offset int) (*entity.URLPage, error) {
	args := m.Called(ctx, owner, limit, offset)
	if v := args.Get(0); v != nil {
		return v.(*entity.URLPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockURLUseCase) ModifyURL(ctx context.Context, externalID string, owner *entity.User, originalURL string) (*entity.URL, error) {
	args := m.Called(ctx, externalID, owner, originalURL)
	if v := args.Get(0); v != nil {
		return v.(*entity.URL), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockURLUseCase) DeactivateURL(ctx context.Context, externalID string, owner *entity.User) error {
	return m.Called(ctx, externalID, owner).Error(0)
}

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) Register(ctx context.Context, email, password string) (*entity.User, error) {
	args := m.Called(ctx, email, password)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	args := m.Called(ctx, accessToken)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthUseCase) Login(ctx context.Context, email, password string) (*entity.User, *entity.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Get(1).(*entity.TokenPair), args.Error(2)
	}
	return nil, nil, args.Error(2)
}

func (m *mockAuthUseCase) Refresh(ctx context.Context, refreshToken string) (*entity.User, *entity.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Get(1).(*entity.TokenPair), args.Error(2)
	}
	return nil, nil, args.Error(2)
}
