package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortly/internal/entity"
)

type authUseCase interface {
	authenticator
	Login(ctx context.Context, email, password string) (*entity.User, *entity.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*entity.User, *entity.TokenPair, error)
}

type authHandler struct {
	useCase  authUseCase
	validate *validator.Validate
}

func newAuthHandler(useCase authUseCase, validate *validator.Validate) *authHandler {
	return &authHandler{
		useCase:  useCase,
		validate: validate,
	}
}

// login answers unknown emails and wrong passwords with the same 401 response.
func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	if !decodeRequest(w, r, h.validate, &req) {
		return
	}

	user, pair, err := h.useCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, invalidCredentialsResponse)
			return
		}

		respondServerError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAuthResponse(user, pair))
}

func (h *authHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest

	if !decodeRequest(w, r, h.validate, &req) {
		return
	}

	user, pair, err := h.useCase.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthorized) {
			respondUnauthorized(w, r)
			return
		}

		respondServerError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAuthResponse(user, pair))
}
