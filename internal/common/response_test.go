package common

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONErrorEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	JSONError(rr, http.StatusBadRequest, "VALIDATION", "carrier and code are required", nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION", body["error"].Code)
	assert.Equal(t, "carrier and code are required", body["error"].Message)
	assert.NotContains(t, rr.Body.String(), "details")
}

func TestJSONWritesValue(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, map[string]any{"ok": true})

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
}
