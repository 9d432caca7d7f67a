package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/vadimbarashkov/shortly/internal/entity"
	"github.com/vadimbarashkov/shortly/pkg/token"
	"golang.org/x/sync/errgroup"
)

type passwordVerifier interface {
	Verify(password, digest string) bool
}

type tokenSigner interface {
	Sign(subject, email string) (string, error)
	Verify(token string) (*token.Claims, error)
}

type AuthUseCase struct {
	userRepo      userRepository
	verifier      passwordVerifier
	accessSigner  tokenSigner
	refreshSigner tokenSigner
}

func NewAuthUseCase(
	userRepo userRepository,
	verifier passwordVerifier,
	accessSigner, refreshSigner tokenSigner,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:      userRepo,
		verifier:      verifier,
		accessSigner:  accessSigner,
		refreshSigner: refreshSigner,
	}
}

// ValidateCredentials returns the active user identified by email if password
// matches its digest. An unknown email and a wrong password are reported
// identically as entity.ErrInvalidCredentials.
func (uc *AuthUseCase) ValidateCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	const op = "usecase.AuthUseCase.ValidateCredentials"

	user, err := uc.userRepo.RetrieveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: failed to retrieve user: %w", op, err)
	}

	if !uc.verifier.Verify(password, user.PasswordDigest) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrInvalidCredentials)
	}

	return user, nil
}

// IssueTokenPair signs an access and a refresh token for user. Either both are
// returned or neither is.
func (uc *AuthUseCase) IssueTokenPair(ctx context.Context, user *entity.User) (*entity.TokenPair, error) {
	const op = "usecase.AuthUseCase.IssueTokenPair"

	var pair entity.TokenPair

	var g errgroup.Group

	g.Go(func() error {
		var err error
		pair.AccessToken, err = uc.accessSigner.Sign(user.ExternalID, user.Email)
		return err
	})

	g.Go(func() error {
		var err error
		pair.RefreshToken, err = uc.refreshSigner.Sign(user.ExternalID, user.Email)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: failed to sign tokens: %w", op, err)
	}

	return &pair, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*entity.User, *entity.TokenPair, error) {
	const op = "usecase.AuthUseCase.Login"

	user, err := uc.ValidateCredentials(ctx, email, password)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := uc.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, pair, nil
}

// Authenticate resolves an access token to the active user it was issued for.
// Credential problems are reported as entity.ErrUnauthorized; store failures
// are returned unchanged.
func (uc *AuthUseCase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	const op = "usecase.AuthUseCase.Authenticate"

	user, err := uc.resolve(ctx, uc.accessSigner, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*entity.User, *entity.TokenPair, error) {
	const op = "usecase.AuthUseCase.Refresh"

	user, err := uc.resolve(ctx, uc.refreshSigner, refreshToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := uc.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, pair, nil
}

func (uc *AuthUseCase) resolve(ctx context.Context, signer tokenSigner, tokenString string) (*entity.User, error) {
	claims, err := signer.Verify(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrUnauthorized, err)
	}

	user, err := uc.userRepo.RetrieveByExternalID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", entity.ErrUnauthorized, err)
		}

		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}
