// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hanqa/internal/platform/ctxutil"
	"github.com/taibuivan/hanqa/internal/platform/middleware"
	requestutil "github.com/taibuivan/hanqa/internal/platform/request"
	"github.com/taibuivan/hanqa/internal/platform/respond"
	"github.com/taibuivan/hanqa/internal/platform/sec"
	"github.com/taibuivan/hanqa/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for reports.
type Handler struct {
	service *Service
}

// NewHandler constructs a new moderation [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the member-facing router, mounted at /api/v1/reports behind
// Authenticate.
//
// Moderators may read the queue from their user session. Decisions stay on
// the admin router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.fileReport)
	router.With(middleware.RequireRole(sec.RoleModerator)).Get("/queue", handler.listReports)
	return router
}

// AdminRoutes returns the moderation queue, mounted at
// /api/v1/admin/reports behind RequireAdmin.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listReports)
	router.Patch("/{id}", handler.decide)
	return router
}

/*
POST /api/v1/reports.

Description: Files a report against a post, answer, comment or user.

Request (Body):
  - { "targetType": "post|answer|comment|user", "targetId": "uuid", "reason": "string(5-500)" }

Response:
  - 201: Report: Created
  - 400: VALIDATION_ERROR: Invalid input or self-report
  - 401: UNAUTHORIZED: Authentication required
  - 409: CONFLICT: A pending report on this target already exists
  - 429: RATE_LIMITED: Report budget exhausted
*/
func (handler *Handler) fileReport(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReportInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.FileReport(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, report)
}

/*
GET /api/v1/admin/reports (admin session) and GET /api/v1/reports/queue (moderator role).

Description: Lists reports newest first.

Request:
  - status: string (pending|reviewed|resolved|dismissed, optional)
  - page: int
  - limit: int

Response:
  - 200: []Report: Paginated list
  - 400: VALIDATION_ERROR: Unknown status
  - 401: UNAUTHORIZED: Admin session or user session required
  - 403: FORBIDDEN: User session below moderator
*/
func (handler *Handler) listReports(writer http.ResponseWriter, request *http.Request) {
	page := requestutil.Page(request)
	status := Status(request.URL.Query().Get("status"))

	reports, total, err := handler.service.ListReports(request.Context(), status, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reports, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
PATCH /api/v1/admin/reports/{id}.

Description: Records a moderation decision. Setting "pending" re-opens the report.

Request (Body):
  - { "status": "reviewed|resolved|dismissed|pending", "reviewNote": "string?" }

Response:
  - 200: Report: Updated
  - 400: VALIDATION_ERROR: Invalid status or id
  - 401: UNAUTHORIZED: Admin session required
  - 404: NOT_FOUND: Report not found
*/
func (handler *Handler) decide(writer http.ResponseWriter, request *http.Request) {
	reportID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var decision Decision
	if err := requestutil.DecodeJSON(request, &decision); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var admin string
	if claims := ctxutil.GetAdmin(request.Context()); claims != nil {
		admin = claims.Username
	}

	report, err := handler.service.Decide(request.Context(), reportID, decision, admin)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}
