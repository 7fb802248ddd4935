package errors

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/", handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	return w
}

func TestResponders(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	tests := []struct {
		name       string
		handler    gin.HandlerFunc
		wantStatus int
		wantBody   string
	}{
		{
			name: "validation with nested and aggregate fields",
			handler: func(c *gin.Context) {
				Validation(c, FieldErrors{
					"email":   Field("bad", CodeInvalid),
					"address": FieldErrors{"zip": Field("bad zip", CodeInvalid)},
					"company": All(FieldError{Message: "incomplete", Code: CodeIncompleteProfile}),
				})
			},
			wantStatus: http.StatusBadRequest,
			wantBody: `{
				"email": [{"message": "bad", "code": "invalid"}],
				"address": {"zip": [{"message": "bad zip", "code": "invalid"}]},
				"company": [{"__all__": [{"message": "incomplete", "code": "incomplete_profile"}]}]
			}`,
		},
		{
			name:       "unauthorized default message",
			handler:    func(c *gin.Context) { Unauthorized(c, "") },
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error": "unauthorized", "message": "authentication required"}`,
		},
		{
			name:       "not found",
			handler:    func(c *gin.Context) { NotFound(c, "job") },
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error": "not_found", "message": "job not found"}`,
		},
		{
			name:       "bad request with details",
			handler:    func(c *gin.Context) { BadRequest(c, "", fmt.Errorf("unexpected EOF")) },
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error": "bad_request", "message": "invalid request", "details": "unexpected EOF"}`,
		},
		{
			name:       "internal error",
			handler:    func(c *gin.Context) { InternalError(c, "failed to load reports", fmt.Errorf("backend down")) },
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error": "server_error", "message": "failed to load reports", "details": "backend down"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.handler)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		env  string
		err  error
		want string
	}{
		{name: "nil", env: "production", err: nil, want: ""},
		{name: "development keeps message", env: "development", err: fmt.Errorf("dial tcp 10.0.0.1: connection refused"), want: "dial tcp 10.0.0.1: connection refused"},
		{name: "timeout", env: "production", err: fmt.Errorf("context deadline exceeded"), want: "request timed out"},
		{name: "connection", env: "production", err: fmt.Errorf("connection refused"), want: "connection error occurred"},
		{name: "other", env: "production", err: fmt.Errorf("pq: syntax error"), want: "an error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENVIRONMENT", tt.env)
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}
