// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package qa

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hanqa/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/hanqa/internal/platform/request"
	"github.com/taibuivan/hanqa/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for posts, answers and comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new qa [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /api/v1/posts.
//
// Writes require an authenticated user. Authenticate must wrap the mount so
// the handlers can read the claims.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery
	router.Get("/trending", handler.trending)

	// ## Submissions (Auth Required)
	router.Post("/", handler.createPost)
	router.Post("/{postID}/answers", handler.createAnswer)
	router.Post("/{postID}/comments", handler.createComment)

	return router
}

// AdminRoutes returns the soft-delete endpoints, mounted at
// /api/v1/admin/content behind RequireAdmin.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Delete("/posts/{id}", handler.deleteWith(handler.service.DeletePost))
	router.Delete("/answers/{id}", handler.deleteWith(handler.service.DeleteAnswer))
	router.Delete("/comments/{id}", handler.deleteWith(handler.service.DeleteComment))
	return router
}

/*
GET /api/v1/posts/trending.

Description: Recent posts ranked by likes, views and author trust.

Request:
  - limit: int (1-50, default 20)

Response:
  - 200: []Ranked[TrendingPost]: Highest score first
*/
func (handler *Handler) trending(writer http.ResponseWriter, request *http.Request) {
	limit, _ := strconv.Atoi(request.URL.Query().Get("limit"))

	ranked, err := handler.service.Trending(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ranked)
}

/*
POST /api/v1/posts.

Description: Creates a question. The title is stored as plain text and the
body as sanitized HTML.

Request (Body):
  - { "title": "string", "body": "html" }

Response:
  - 201: Post: Created
  - 400: TOO_SHORT/TOO_LONG/LOW_QUALITY/PROHIBITED_CONTENT/DISALLOWED_LINK (meta.field names the input)
  - 401: UNAUTHORIZED: Authentication required
  - 429: RATE_LIMITED: Submission budget exhausted
*/
func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PostInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.CreatePost(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
POST /api/v1/posts/{postID}/answers.

Description: Answers a question.

Request (Body):
  - { "body": "html" }

Response:
  - 201: Answer: Created
  - 400: Verdict or content-policy rejection
  - 401: UNAUTHORIZED: Authentication required
  - 404: NOT_FOUND: Post not found
  - 429: RATE_LIMITED: Submission budget exhausted
*/
func (handler *Handler) createAnswer(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AnswerInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	answer, err := handler.service.CreateAnswer(request.Context(), userID, requestutil.Param(request, "postID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, answer)
}

/*
POST /api/v1/posts/{postID}/comments.

Description: Comments on a question, or on one of its answers when answerId is set.

Request (Body):
  - { "answerId": "uuid?", "body": "html" }

Response:
  - 201: Comment: Created
  - 400: Verdict or content-policy rejection
  - 401: UNAUTHORIZED: Authentication required
  - 404: NOT_FOUND: Post or answer not found
  - 429: RATE_LIMITED: Submission budget exhausted
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), userID, requestutil.Param(request, "postID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
DELETE /api/v1/admin/content/{posts|answers|comments}/{id}.

Description: Soft-deletes content. The row stays for audit and still counts
against the author's submission budget.

Response:
  - 204: No Content
  - 400: VALIDATION_ERROR: Malformed id
  - 401: UNAUTHORIZED: Admin session required
  - 404: NOT_FOUND: Already deleted or never existed
*/
func (handler *Handler) deleteWith(remove func(context.Context, string, string) error) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var admin string
		if claims := ctxutil.GetAdmin(request.Context()); claims != nil {
			admin = claims.Username
		}

		if err := remove(request.Context(), requestutil.Param(request, "id"), admin); err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.NoContent(writer)
	}
}
