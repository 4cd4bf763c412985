// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package trust

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hanqa/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/hanqa/internal/platform/request"
	"github.com/taibuivan/hanqa/internal/platform/respond"
)

// Handler implements the public HTTP layer for trust profiles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new trust [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] meant to be mounted under /api/v1/users.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{userID}/trust", handler.getTrust)
	return router
}

// AdminRoutes returns the trust management endpoints, mounted at
// /api/v1/admin/trust behind RequireAdmin.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Patch("/users/{userID}/signals", handler.updateSignals)
	router.Post("/recompute", handler.recompute)
	return router
}

/*
GET /api/v1/users/{userID}/trust.

Description: Returns the stored trust profile with its composite score and level.

Request:
  - userID: string (UUID)

Response:
  - 200: ProfileScore: Success
  - 400: VALIDATION_ERROR: Malformed user id
  - 404: NOT_FOUND: User not found
*/
func (handler *Handler) getTrust(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "userID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	score, err := handler.service.GetScore(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, score)
}

/*
PATCH /api/v1/admin/trust/users/{userID}/signals.

Description: Sets the expert and verified flags and the badge type that feed
content ranking. Omitted fields keep their value; an empty badgeType clears it.

Request (Body):
  - { "isExpert": bool?, "isVerified": bool?, "badgeType": "string?" }

Response:
  - 200: Signals: The stored signals
  - 400: VALIDATION_ERROR: Empty patch, unknown badge type or malformed id
  - 401: UNAUTHORIZED: Admin session required
  - 404: NOT_FOUND: User not found
*/
func (handler *Handler) updateSignals(writer http.ResponseWriter, request *http.Request) {
	var patch SignalsPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var admin string
	if claims := ctxutil.GetAdmin(request.Context()); claims != nil {
		admin = claims.Username
	}

	signals, err := handler.service.UpdateSignals(request.Context(), requestutil.Param(request, "userID"), patch, admin)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, signals)
}

/*
POST /api/v1/admin/trust/recompute.

Description: Recomputes every author's trust profile synchronously.

Response:
  - 200: RecomputeReport: Users updated and duration
  - 401: UNAUTHORIZED: Admin session required
*/
func (handler *Handler) recompute(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.Recompute(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}
