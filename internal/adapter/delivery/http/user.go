package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortly/internal/entity"
)

type userUseCase interface {
	Register(ctx context.Context, email, password string) (*entity.User, error)
}

type userHandler struct {
	useCase  userUseCase
	validate *validator.Validate
}

func newUserHandler(useCase userUseCase, validate *validator.Validate) *userHandler {
	return &userHandler{
		useCase:  useCase,
		validate: validate,
	}
}

func (h *userHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest

	if !decodeRequest(w, r, h.validate, &req) {
		return
	}

	user, err := h.useCase.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrEmailExists) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emailExistsResponse)
			return
		}

		respondServerError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toUserResponse(user))
}
