package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortly/internal/entity"
)

type userRepository interface {
	Save(ctx context.Context, user *entity.User) (*entity.User, error)
	RetrieveByEmail(ctx context.Context, email string) (*entity.User, error)
	RetrieveByExternalID(ctx context.Context, externalID string) (*entity.User, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

type UserUseCase struct {
	userRepo userRepository
	hasher   passwordHasher
}

func NewUserUseCase(userRepo userRepository, hasher passwordHasher) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// Register creates an account for email. Only the password digest is stored.
func (uc *UserUseCase) Register(ctx context.Context, email, password string) (*entity.User, error) {
	const op = "usecase.UserUseCase.Register"

	_, err := uc.userRepo.RetrieveByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%s: %w", op, entity.ErrEmailExists)
	case !errors.Is(err, entity.ErrUserNotFound):
		return nil, fmt.Errorf("%s: failed to check email: %w", op, err)
	}

	digest, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := uc.userRepo.Save(ctx, &entity.User{
		ExternalID:     uuid.NewString(),
		Email:          email,
		PasswordDigest: digest,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to register user: %w", op, err)
	}

	return user, nil
}
