package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depo/internal/core/apperror"
	appctx "depo/internal/core/context"
)

type tokens map[string]*appctx.UserContext

func (t tokens) ValidateToken(token string) (*appctx.UserContext, error) {
	if u, ok := t[token]; ok {
		return u, nil
	}
	return nil, errors.New("unknown token")
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), Trace(), ErrorHandler())
	r.GET("/x", handlers...)
	return r
}

func serve(r http.Handler, header string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRecovery_RendersInternalError(t *testing.T) {
	r := newEngine(func(c *gin.Context) { panic("boom") })

	w, body := serve(r, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, body["code"])
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestErrorHandler_RendersAppError(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		_ = c.Error(apperror.NewFormNotSubmittable("unit"))
	})

	w, body := serve(r, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodeFormNotSubmittable, body["code"])
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestAuth(t *testing.T) {
	v := tokens{
		"admin": {UserID: "1", Username: "admin", IsAdmin: true},
		"clerk": {UserID: "2", Username: "clerk"},
	}
	var seen *appctx.UserContext
	r := newEngine(Auth(v), RequireAdmin(), func(c *gin.Context) {
		seen = appctx.GetUser(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic admin", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"not admin", "Bearer clerk", http.StatusForbidden},
		{"admin", "bearer admin", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := serve(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	require.NotNil(t, seen)
	assert.Equal(t, "admin", seen.Username)
}
