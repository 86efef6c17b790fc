package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("thing not found")

func respondWith(t *testing.T, r *ChainedResponder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/things/7", nil)
	r.RespondError(c, err)

	var body ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestChainedResponder_SentinelMapping(t *testing.T) {
	r := NewChainedResponder("", Sentinel(errMissing, ErrNotFound))

	w, body := respondWith(t, r, fmt.Errorf("lookup: %w", errMissing))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ContentTypeProblemJSON, w.Header().Get("Content-Type"))
	assert.Equal(t, TypeNotFound, body.Type)
	assert.Equal(t, "/api/things/7", body.Instance)
	assert.Equal(t, "lookup: thing not found", body.Detail)
}

func TestChainedResponder_FallsBackToInternal(t *testing.T) {
	r := NewChainedResponder("https://backoffice.example.com")

	w, body := respondWith(t, r, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "https://backoffice.example.com"+TypeInternal, body.Type)
}

func TestChainedResponder_PassesProblemThrough(t *testing.T) {
	r := NewChainedResponder("")
	r.AddMapper(Sentinel(errMissing, ErrNotFound))

	problem := NewValidationProblem("bad payload", map[string]string{"name": "is required"})
	w, body := respondWith(t, r, problem)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"name": "is required"}, body.Extensions["fields"])
}

func TestWithExtension_DoesNotShareTemplateMap(t *testing.T) {
	first := ErrConflict.WithExtension("key", "a")
	second := first.WithExtension("other", "b")
	assert.Len(t, first.Extensions, 1)
	assert.Len(t, second.Extensions, 2)
	assert.Nil(t, ErrConflict.Extensions)
}
