// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/internal/platform/middleware"
	requestutil "github.com/taibuivan/todo/internal/platform/request"
	"github.com/taibuivan/todo/internal/platform/router"
	"github.com/taibuivan/todo/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the authentication and profile HTTP endpoints.
//
// # Scope
//
// Signup and login issue tokens, logout revokes them, and the profile route
// is the only endpoint guarded by a bearer token.
type Handler struct {
	authService *Service
	verifier    middleware.TokenVerifier
	emailCheck  *validator.Validate
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, verifier middleware.TokenVerifier) *Handler {
	return &Handler{
		authService: service,
		verifier:    verifier,
		emailCheck:  validator.New(),
	}
}

// RegisterRoutes mounts the endpoints on the versioned route table.
//
// # Endpoints
//   - POST /auth/signup   : Creates an account and returns a token.
//   - POST /auth/login    : Authenticates and returns a token.
//   - POST /auth/logout   : Revokes the presented token. Always 204.
//   - GET  /users/profile : Returns the caller's account.
func (handler *Handler) RegisterRoutes(routes *router.Router) {
	routes.Post("/auth/signup", handler.signup, router.RequireJSON())
	routes.Post("/auth/login", handler.login, router.RequireJSON())
	routes.Post("/auth/logout", handler.logout)
	routes.Get("/users/profile", middleware.RequireAuth(handler.verifier, handler.profile))
}

// # Validation Rules

var signupRules = validate.Rules(
	validate.Field(FieldUsername, validate.Required(), validate.String(), validate.MinLength(3), validate.MaxLength(50), validate.NotEmpty()),
	validate.Field(FieldEmail, validate.Required(), validate.String(), validate.MaxLength(255), validate.NotEmpty()),
	validate.Field(FieldPassword, validate.Required(), validate.String(), validate.MinLength(8), validate.MaxLength(100)),
)

var loginRules = validate.Rules(
	validate.Field(FieldUsername, validate.Required(), validate.String(), validate.NotEmpty()),
	validate.Field(FieldPassword, validate.Required(), validate.String()),
)

/*
Signup handles the creation of a new user account.

POST /api/v1/auth/signup

Response:
  - 201: AuthResponse
  - 400: INVALID_JSON or VALIDATION_ERROR
  - 409: CONFLICT when the username or email already exists
*/
func (handler *Handler) signup(request *http.Request, _ router.Params) (router.Response, error) {
	data, err := requestutil.DecodeObject(request)
	if err != nil {
		return router.Response{}, err
	}

	validate.SanitizeFields(data, FieldUsername, FieldEmail)

	checker := validate.New()
	if !checker.Validate(data, signupRules) {
		return router.Response{}, checker.Err()
	}

	email := data[FieldEmail].(string)
	if err := handler.emailCheck.Var(email, "email"); err != nil {
		return router.Response{}, apperr.ValidationError("Invalid email format", nil)
	}

	response, err := handler.authService.Signup(request.Context(), SignupInput{
		Username: data[FieldUsername].(string),
		Email:    email,
		Password: data[FieldPassword].(string),
	})
	if err != nil {
		return router.Response{}, err
	}

	return router.Created(response), nil
}

/*
Login authenticates a user by username and password.

POST /api/v1/auth/login

Response:
  - 200: AuthResponse
  - 400: INVALID_JSON or VALIDATION_ERROR
  - 401: Invalid username or password
*/
func (handler *Handler) login(request *http.Request, _ router.Params) (router.Response, error) {
	data, err := requestutil.DecodeObject(request)
	if err != nil {
		return router.Response{}, err
	}

	validate.SanitizeFields(data, FieldUsername)

	checker := validate.New()
	if !checker.Validate(data, loginRules) {
		return router.Response{}, checker.Err()
	}

	response, err := handler.authService.Login(request.Context(), data[FieldUsername].(string), data[FieldPassword].(string))
	if err != nil {
		return router.Response{}, err
	}

	return router.OK(response), nil
}

// logout revokes the bearer token if one is present and valid. The caller
// always gets 204.
func (handler *Handler) logout(request *http.Request, _ router.Params) (router.Response, error) {
	token, _ := middleware.BearerToken(request)
	handler.authService.Logout(request.Context(), token)
	return router.NoContent(), nil
}

// profile returns the authenticated caller's account.
func (handler *Handler) profile(request *http.Request, _ router.Params) (router.Response, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return router.Response{}, err
	}

	user, err := handler.authService.Profile(request.Context(), claims.UserID())
	if err != nil {
		return router.Response{}, err
	}

	return router.OK(user), nil
}
