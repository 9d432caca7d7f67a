package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortly/internal/entity"
)

const statusError = "error"

// urlRequest represents the structure for a request to shorten or modify a URL.
type urlRequest struct {
	Original string `json:"original" validate:"required,url"`
}

// registerRequest represents the structure for a request to create an account.
type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// loginRequest represents the structure for a request to exchange credentials for tokens.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// urlResponse is the public shape of a URL record. Internal keys and timestamps are not exposed.
type urlResponse struct {
	ID           string `json:"id"`
	Original     string `json:"original"`
	Shortened    string `json:"shortened"`
	ShortenedURL string `json:"shortenedUrl"`
	Clicks       int64  `json:"clicks"`
}

// toURLResponse converts an entity.URL to a urlResponse, deriving the short link from baseURL.
func toURLResponse(url *entity.URL, baseURL string) urlResponse {
	return urlResponse{
		ID:           url.ExternalID,
		Original:     url.OriginalURL,
		Shortened:    url.ShortCode,
		ShortenedURL: baseURL + "/" + url.ShortCode,
		Clicks:       url.Clicks,
	}
}

type urlPageResponse struct {
	Data       []urlResponse `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

func toURLPageResponse(p *entity.URLPage, page, limit int, baseURL string) urlPageResponse {
	data := make([]urlResponse, 0, len(p.URLs))
	for _, url := range p.URLs {
		data = append(data, toURLResponse(url, baseURL))
	}

	return urlPageResponse{
		Data:       data,
		Total:      p.Total,
		Page:       page,
		Limit:      limit,
		TotalPages: p.TotalPages(limit),
	}
}

// userResponse is the public shape of an account. The password digest is never exposed.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:    user.ExternalID,
		Email: user.Email,
	}
}

type authResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         userResponse `json:"user"`
}

func toAuthResponse(user *entity.User, pair *entity.TokenPair) authResponse {
	return authResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         toUserResponse(user),
	}
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

// Predefined error responses for common scenarios.
var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "invalid request body",
	}

	invalidQueryResponse = errorResponse{
		Status:  statusError,
		Message: "invalid query parameters",
	}

	urlNotFoundResponse = errorResponse{
		Status:  statusError,
		Message: "url not found",
	}

	emailExistsResponse = errorResponse{
		Status:  statusError,
		Message: "email already registered",
	}

	invalidCredentialsResponse = errorResponse{
		Status:  statusError,
		Message: "invalid credentials",
	}

	unauthorizedResponse = errorResponse{
		Status:  statusError,
		Message: "unauthorized",
	}

	serverErrorResponse = errorResponse{
		Status:  statusError,
		Message: "server error occurred",
	}
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	case "email":
		return "invalid email"
	case "min":
		return "value is too short"
	case "max":
		return "value is too long"
	default:
		return "invalid value"
	}
}

// getValidationErrors processes validation errors and returns a list of validationError.
func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

// validationErrorResponse constructs an errorResponse for validation errors.
func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
