// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ugc

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/hanqa/internal/platform/request"
	"github.com/taibuivan/hanqa/internal/platform/respond"
	"github.com/taibuivan/hanqa/internal/platform/validate"
)

// ProbeRequest is the body of the validation probe.
type ProbeRequest struct {
	ContentType ContentType `json:"contentType"`
	Content     string      `json:"content"`
}

// ProbeResult reports content that passed every gate.
type ProbeResult struct {
	OK     bool `json:"ok"`
	Length int  `json:"length"`
	Min    int  `json:"min"`
	Max    int  `json:"max"`
}

// Handler exposes the screener to editors for live feedback.
type Handler struct {
	screener *Screener
}

// NewHandler constructs a new ugc [Handler].
func NewHandler(screener *Screener) *Handler {
	return &Handler{screener: screener}
}

// Routes returns a [chi.Router] with the probe endpoint. Rate limiting is
// applied by the caller when mounting.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/validate", handler.probe)
	return router
}

/*
POST /api/v1/ugc/validate.

Description: Runs the full content pipeline without persisting anything.
Editors call it while the user types.

Request (Body):
  - { "contentType": "post_title|post|answer|comment", "content": "string" }

Response:
  - 200: ProbeResult: Content would be accepted
  - 400: TOO_SHORT/TOO_LONG/LOW_QUALITY/PROHIBITED_CONTENT/DISALLOWED_LINK
  - 429: RATE_LIMITED: Probe budget exhausted
*/
func (handler *Handler) probe(writer http.ResponseWriter, request *http.Request) {
	var input ProbeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.OneOf("contentType", string(input.ContentType),
		string(ContentPostTitle), string(ContentPost), string(ContentAnswer), string(ContentComment))
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var (
		screened Screened
		err      error
	)
	if input.ContentType == ContentPostTitle {
		screened, err = handler.screener.ScreenPlain(request.Context(), input.ContentType, input.Content)
	} else {
		screened, err = handler.screener.Screen(request.Context(), input.ContentType, input.Content)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bounds, _ := handler.screener.Limits().For(input.ContentType)
	respond.OK(writer, ProbeResult{OK: true, Length: screened.Length, Min: bounds.Min, Max: bounds.Max})
}
