// In file: cmd/assistant/handler_test.go
package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleHealthReportsBuildInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAssistantHandler(nil, nil, nil, nil, nil, nil, GetBuildInfo())
	engine := gin.New()
	engine.GET("/health", h.HandleHealth)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var payload struct {
		Status string    `json:"status"`
		Build  BuildInfo `json:"build"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload.Status)
	assert.Equal(t, "dev", payload.Build.Version)
	assert.Equal(t, runtime.Version(), payload.Build.GoVersion)
	assert.NotEmpty(t, payload.Build.Platform)
}

func TestBuildInfoSummary(t *testing.T) {
	info := GetBuildInfo()
	summary := info.Summary()
	assert.Contains(t, summary, info.Version)
	assert.Contains(t, summary, info.GitCommit)
	assert.Contains(t, summary, info.Platform)
}
