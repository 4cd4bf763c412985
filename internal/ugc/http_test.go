// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ugc_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hanqa/internal/ugc"
)

/*
TestHandler_Probe verifies the dry-run endpoint.
*/
func TestHandler_Probe(t *testing.T) {
	router := ugc.NewHandler(newScreener(t)).Routes()

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"accepted", `{"contentType":"comment","content":"<p>Thanks, that solved my problem.</p>"}`, http.StatusOK, ""},
		{"too_short", `{"contentType":"comment","content":"short"}`, http.StatusBadRequest, "TOO_SHORT"},
		{"unknown_type", `{"contentType":"chapter","content":"long enough content here"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad_json", `{`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)
			require.Equal(t, tt.status, recorder.Code)

			var envelope struct {
				Success bool            `json:"success"`
				Code    string          `json:"code"`
				Data    ugc.ProbeResult `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

			if tt.code == "" {
				assert.True(t, envelope.Success)
				assert.True(t, envelope.Data.OK)
				assert.Equal(t, 800, envelope.Data.Max)
				return
			}
			assert.False(t, envelope.Success)
			assert.Equal(t, tt.code, envelope.Code)
		})
	}
}
