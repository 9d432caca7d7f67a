package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/shortly/internal/entity"
)

const testUserExternalID = "9a4f0c2e-7b3d-4e1a-8c5f-6d2e1b0a9f8c"

type UserRepositoryTestSuite struct {
	suite.Suite
	errUnknown error
	columns    []string
	mock       sqlmock.Sqlmock
	repo       *UserRepository
}

func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
	suite.columns = []string{
		"id", "external_id", "email", "password_digest",
		"created_at", "updated_at", "deleted_at",
	}
}

func (suite *UserRepositoryTestSuite) SetupSubTest() {
	db, mock := newMockDB(suite.T())

	suite.mock = mock
	suite.repo = NewUserRepository(db)
}

func (suite *UserRepositoryTestSuite) TearDownSubTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *UserRepositoryTestSuite) row() *sqlmock.Rows {
	return sqlmock.NewRows(suite.columns).
		AddRow(testOwnerID, testUserExternalID, "user@example.com", "digest", time.Time{}, time.Time{}, nil)
}

func (suite *UserRepositoryTestSuite) TestSave() {
	user := &entity.User{
		ExternalID:     testUserExternalID,
		Email:          "user@example.com",
		PasswordDigest: "digest",
	}

	suite.Run("email exists", func() {
		suite.mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(testUserExternalID, "user@example.com", "digest").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationErrCode, ConstraintName: usersEmailConstraint})

		saved, err := suite.repo.Save(context.Background(), user)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrEmailExists)
		suite.Nil(saved)
	})

	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(testUserExternalID, "user@example.com", "digest").
			WillReturnError(suite.errUnknown)

		saved, err := suite.repo.Save(context.Background(), user)

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(saved)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(testUserExternalID, "user@example.com", "digest").
			WillReturnRows(suite.row())

		saved, err := suite.repo.Save(context.Background(), user)

		suite.NoError(err)
		suite.NotNil(saved)
		suite.Equal(testOwnerID, saved.ID)
		suite.Equal(testUserExternalID, saved.ExternalID)
		suite.Equal("user@example.com", saved.Email)
		suite.Equal("digest", saved.PasswordDigest)
		suite.Nil(saved.DeletedAt)
	})
}

func (suite *UserRepositoryTestSuite) TestRetrieveByEmail() {
	const query = `SELECT (.+) FROM users\s+WHERE email = \$1 AND deleted_at IS NULL`

	suite.Run("user not found", func() {
		suite.mock.ExpectQuery(query).
			WithArgs("user@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := suite.repo.RetrieveByEmail(context.Background(), "user@example.com")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrUserNotFound)
		suite.Nil(user)
	})

	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(query).
			WithArgs("user@example.com").
			WillReturnError(suite.errUnknown)

		user, err := suite.repo.RetrieveByEmail(context.Background(), "user@example.com")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(user)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(query).
			WithArgs("user@example.com").
			WillReturnRows(suite.row())

		user, err := suite.repo.RetrieveByEmail(context.Background(), "user@example.com")

		suite.NoError(err)
		suite.NotNil(user)
		suite.Equal("user@example.com", user.Email)
	})
}

func (suite *UserRepositoryTestSuite) TestRetrieveByExternalID() {
	const query = `SELECT (.+) FROM users\s+WHERE external_id = \$1 AND deleted_at IS NULL`

	suite.Run("malformed external id", func() {
		user, err := suite.repo.RetrieveByExternalID(context.Background(), "not-a-uuid")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrUserNotFound)
		suite.Nil(user)
	})

	suite.Run("user not found", func() {
		suite.mock.ExpectQuery(query).
			WithArgs(testUserExternalID).
			WillReturnError(sql.ErrNoRows)

		user, err := suite.repo.RetrieveByExternalID(context.Background(), testUserExternalID)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrUserNotFound)
		suite.Nil(user)
	})

	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(query).
			WithArgs(testUserExternalID).
			WillReturnError(suite.errUnknown)

		user, err := suite.repo.RetrieveByExternalID(context.Background(), testUserExternalID)

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(user)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(query).
			WithArgs(testUserExternalID).
			WillReturnRows(suite.row())

		user, err := suite.repo.RetrieveByExternalID(context.Background(), testUserExternalID)

		suite.NoError(err)
		suite.NotNil(user)
		suite.Equal(testOwnerID, user.ID)
		suite.Equal(testUserExternalID, user.ExternalID)
	})
}

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
