// Package usecase implements the application logic of the URL shortener:
// shortening and resolving URLs, account registration and credential handling.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortly/internal/entity"
	"golang.org/x/sync/errgroup"
)

// ErrMaxRetriesExceeded is returned when every generated short code collided with an existing one.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")

const maxShortenRetries = 5

type urlRepository interface {
	Save(ctx context.Context, url *entity.URL) (*entity.URL, error)
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	AddClicks(ctx context.Context, shortCode string, delta int64) error
	ListByOwner(ctx context.Context, userID int64, limit, offset int) ([]*entity.URL, error)
	CountByOwner(ctx context.Context, userID int64) (int64, error)
	UpdateOwned(ctx context.Context, externalID string, userID int64, originalURL string) (*entity.URL, error)
	RemoveOwned(ctx context.Context, externalID string, userID int64) error
}

type shortCodeGenerator interface {
	Generate() (string, error)
}

type URLUseCase struct {
	urlRepo   urlRepository
	generator shortCodeGenerator
}

func NewURLUseCase(urlRepo urlRepository, generator shortCodeGenerator) *URLUseCase {
	return &URLUseCase{
		urlRepo:   urlRepo,
		generator: generator,
	}
}

// ShortenURL stores originalURL under a freshly generated short code. A nil
// owner creates an anonymous record. Colliding codes are regenerated a bounded
// number of times.
func (uc *URLUseCase) ShortenURL(ctx context.Context, originalURL string, owner *entity.User) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ShortenURL"

	var userID *int64
	if owner != nil {
		id := owner.ID
		userID = &id
	}

	for i := 0; i < maxShortenRetries; i++ {
		shortCode, err := uc.generator.Generate()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		url, err := uc.urlRepo.Save(ctx, &entity.URL{
			ExternalID:  uuid.NewString(),
			ShortCode:   shortCode,
			OriginalURL: originalURL,
			UserID:      userID,
		})
		if err != nil {
			if errors.Is(err, entity.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

func (uc *URLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ResolveShortCode"

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return url, nil
}

// RecordClick counts one visit of the short code. Codes that no longer resolve are ignored.
func (uc *URLUseCase) RecordClick(ctx context.Context, shortCode string) error {
	const op = "usecase.URLUseCase.RecordClick"

	if err := uc.urlRepo.AddClicks(ctx, shortCode, 1); err != nil {
		return fmt.Errorf("%s: failed to record click: %w", op, err)
	}

	return nil
}

// ListURLs returns one page of the owner's URLs along with the total count.
func (uc *URLUseCase) ListURLs(ctx context.Context, owner *entity.User, limit, offset int) (*entity.URLPage, error) {
	const op = "usecase.URLUseCase.ListURLs"

	if owner == nil {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUnauthorized)
	}

	var (
		urls  []*entity.URL
		total int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		urls, err = uc.urlRepo.ListByOwner(gCtx, owner.ID, limit, offset)
		return err
	})

	g.Go(func() error {
		var err error
		total, err = uc.urlRepo.CountByOwner(gCtx, owner.ID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return &entity.URLPage{URLs: urls, Total: total}, nil
}

func (uc *URLUseCase) ModifyURL(ctx context.Context, externalID string, owner *entity.User, originalURL string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ModifyURL"

	if owner == nil {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUnauthorized)
	}

	url, err := uc.urlRepo.UpdateOwned(ctx, externalID, owner.ID, originalURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to modify url: %w", op, err)
	}

	return url, nil
}

func (uc *URLUseCase) DeactivateURL(ctx context.Context, externalID string, owner *entity.User) error {
	const op = "usecase.URLUseCase.DeactivateURL"

	if owner == nil {
		return fmt.Errorf("%s: %w", op, entity.ErrUnauthorized)
	}

	if err := uc.urlRepo.RemoveOwned(ctx, externalID, owner.ID); err != nil {
		return fmt.Errorf("%s: failed to deactivate url: %w", op, err)
	}

	return nil
}
