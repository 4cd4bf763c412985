// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hanqa/internal/platform/apperr"
	"github.com/taibuivan/hanqa/internal/platform/respond"
)

/*
TestOK verifies the success envelope.
*/
func TestOK(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]int{"score": 120})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success":true,"data":{"score":120}}`, recorder.Body.String())
}

/*
TestError_Verdict verifies that verdict meta reaches the client.
*/
func TestError_Verdict(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/posts", nil)

	err := apperr.Rejected("TOO_SHORT", "Content is too short").
		WithMeta("length", 3).WithMeta("min", 10).WithMeta("max", 8000)
	respond.Error(recorder, request, err)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "TOO_SHORT", body.Code)
	assert.EqualValues(t, 3, body.Meta["length"])
	assert.EqualValues(t, 10, body.Meta["min"])
}

/*
TestError_RateLimited verifies the Retry-After header.
*/
func TestError_RateLimited(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/reports", nil)

	respond.Error(recorder, request, apperr.RateLimited(600))

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "600", recorder.Header().Get("Retry-After"))
}

/*
TestError_Unknown verifies that unexpected errors never leak their cause.
*/
func TestError_Unknown(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "relation")
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}
