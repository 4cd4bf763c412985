// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hanqa/internal/platform/apperr"
	"github.com/taibuivan/hanqa/internal/platform/constants"
	"github.com/taibuivan/hanqa/internal/platform/ctxutil"
	"github.com/taibuivan/hanqa/internal/platform/middleware"
	requestutil "github.com/taibuivan/hanqa/internal/platform/request"
	"github.com/taibuivan/hanqa/internal/platform/respond"
	"github.com/taibuivan/hanqa/internal/platform/validate"
)

// Section is an admin-only router mounted under a path prefix.
type Section struct {
	Pattern string
	Router  http.Handler
}

// Handler implements the admin HTTP surface.
type Handler struct {
	service    *Service
	production bool
}

// NewHandler constructs a new admin [Handler]. In production the session
// cookie is marked Secure.
func NewHandler(service *Service, production bool) *Handler {
	return &Handler{service: service, production: production}
}

// Routes returns a [chi.Router] mounted at /api/v1/admin.
//
// # Endpoints
//   - POST /login    : Public. Sets the session cookie.
//   - POST /logout   : Public. Clears the session cookie.
//   - GET  /session  : Admin only.
//   - Each [Section] : Admin only, mounted at its pattern.
func (handler *Handler) Routes(sections ...Section) chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAdmin(handler.service))

		protected.Get("/session", handler.session)
		for _, section := range sections {
			protected.Mount(section.Pattern, section.Router)
		}
	})

	return router
}

// loginRequest is the body of POST /login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
POST /api/v1/admin/login.

Description: Checks the admin credentials and starts a 24h session.

Request (Body):
  - { "username": "string", "password": "string" }

Response:
  - 200: Session: Cookie admin_token set
  - 400: VALIDATION_ERROR: Missing fields
  - 401: UNAUTHORIZED: Invalid username or password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).
		Required("username", input.Username).
		Required("password", input.Password).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, session, err := handler.service.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.cookie(token, int(handler.service.TTL().Seconds())))
	respond.OK(writer, session)
}

/*
POST /api/v1/admin/logout.

Description: Clears the session cookie. The token itself is not revoked.

Response:
  - 204: No Content
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	http.SetCookie(writer, handler.cookie("", -1))
	respond.NoContent(writer)
}

/*
GET /api/v1/admin/session.

Description: Returns the verified session of the caller.

Response:
  - 200: Session
  - 401: UNAUTHORIZED: Missing, invalid or expired session
*/
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	claims := ctxutil.GetAdmin(request.Context())
	if claims == nil {
		respond.Error(writer, request, apperr.Unauthorized("Admin session required"))
		return
	}

	respond.OK(writer, sessionFromClaims(claims))
}

func (handler *Handler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     constants.AdminTokenCookieName,
		Value:    value,
		Path:     constants.AdminTokenCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   handler.production,
		SameSite: http.SameSiteLaxMode,
	}
}
