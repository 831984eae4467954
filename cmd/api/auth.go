package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/SilasJCSP/delivery-tech-fat/internal/service"
)

type userContextKey string

const userCtxKey userContextKey = "user"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=admin cliente restaurante entregador"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// registerUserHandler godoc
//
//	@Summary		Register user
//	@Description	Creates a user account, role defaults to cliente
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"User data"
//	@Success		201		{object}	domain.User
//	@Failure		400		{object}	map[string]string
//	@Router			/auth/register [post]
func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.authService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// loginHandler godoc
//
//	@Summary		Login
//	@Description	Issues a bearer token for the credentials
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	map[string]string
//	@Router			/auth/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, user, err := app.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	resp := LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}

	if err := app.jsonRespone(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// currentUserHandler godoc
//
//	@Summary	Current user
//	@Tags		auth
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Success	200	{object}	domain.User
//	@Failure	401	{object}	map[string]string
//	@Router		/auth/me [get]
func (app *application) currentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		app.unauthorizedResponse(w, r, errors.New("missing user in context"))
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// logoutHandler godoc
//
//	@Summary	Logout
//	@Tags		auth
//	@Security	ApiKeyAuth
//	@Success	204
//	@Failure	401	{object}	map[string]string
//	@Router		/auth/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	if err := app.authService.Logout(r.Context(), token); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("authorization header is missing")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("authorization header is malformed")
	}

	return parts[1], nil
}

// AuthTokenMiddleware resolves the bearer token to a user and stores it on
// the request context. Expired sessions read as unauthorized.
func (app *application) AuthTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			app.unauthorizedResponse(w, r, err)
			return
		}

		user, err := app.authService.Authenticate(r.Context(), token)
		if err != nil {
			app.unauthorizedResponse(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userCtxKey).(*domain.User)
	return user
}
