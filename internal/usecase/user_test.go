package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/shortly/internal/entity"
)

type UserUseCaseTestSuite struct {
	suite.Suite
	errUnknown   error
	userRepoMock *mockUserRepository
	hasherMock   *mockPasswordHasher
	uc           *UserUseCase
}

func (suite *UserUseCaseTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
}

func (suite *UserUseCaseTestSuite) SetupSubTest() {
	suite.userRepoMock = new(mockUserRepository)
	suite.hasherMock = new(mockPasswordHasher)
	suite.uc = NewUserUseCase(suite.userRepoMock, suite.hasherMock)
}

func (suite *UserUseCaseTestSuite) TearDownSubTest() {
	suite.userRepoMock.AssertExpectations(suite.T())
	suite.hasherMock.AssertExpectations(suite.T())
}

func (suite *UserUseCaseTestSuite) TestRegister() {
	suite.Run("email exists", func() {
		suite.userRepoMock.
			On("RetrieveByEmail", context.Background(), "user@example.com").
			Once().
			Return(&entity.User{ID: 1, Email: "user@example.com"}, nil)

		user, err := suite.uc.Register(context.Background(), "user@example.com", "secret123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrEmailExists)
		suite.Nil(user)
	})

	suite.Run("lookup error", func() {
		suite.userRepoMock.
			On("RetrieveByEmail", context.Background(), "user@example.com").
			Once().
			Return(nil, suite.errUnknown)

		user, err := suite.uc.Register(context.Background(), "user@example.com", "secret123")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(user)
	})

	suite.Run("hash error", func() {
		suite.userRepoMock.
			On("RetrieveByEmail", context.Background(), "user@example.com").
			Once().
			Return(nil, entity.ErrUserNotFound)
		suite.hasherMock.On("Hash", "secret123").Once().Return("", suite.errUnknown)

		user, err := suite.uc.Register(context.Background(), "user@example.com", "secret123")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(user)
	})

	suite.Run("email taken concurrently", func() {
		suite.userRepoMock.
			On("RetrieveByEmail", context.Background(), "user@example.com").
			Once().
			Return(nil, entity.ErrUserNotFound)
		suite.hasherMock.On("Hash", "secret123").Once().Return("digest", nil)
		suite.userRepoMock.
			On("Save", context.Background(), mock.AnythingOfType("*entity.User")).
			Once().
			Return(nil, entity.ErrEmailExists)

		user, err := suite.uc.Register(context.Background(), "user@example.com", "secret123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrEmailExists)
		suite.Nil(user)
	})

	suite.Run("success", func() {
		suite.userRepoMock.
			On("RetrieveByEmail", context.Background(), "user@example.com").
			Once().
			Return(nil, entity.ErrUserNotFound)
		suite.hasherMock.On("Hash", "secret123").Once().Return("digest", nil)
		suite.userRepoMock.
			On("Save", context.Background(), mock.MatchedBy(func(u *entity.User) bool {
				_, err := uuid.Parse(u.ExternalID)
				return err == nil &&
					u.Email == "user@example.com" &&
					u.PasswordDigest == "digest"
			})).
			Once().
			Return(&entity.User{ID: 1, Email: "user@example.com", PasswordDigest: "digest"}, nil)

		user, err := suite.uc.Register(context.Background(), "user@example.com", "secret123")

		suite.NoError(err)
		suite.NotNil(user)
		suite.Equal("user@example.com", user.Email)
		suite.NotEqual("secret123", user.PasswordDigest)
	})
}

func TestUserUseCase(t *testing.T) {
	suite.Run(t, new(UserUseCaseTestSuite))
}
