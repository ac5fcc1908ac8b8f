package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestWebhookSecretMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		header   string
		wantCode int
	}{
		{name: "disabled", secret: "", header: "", wantCode: http.StatusOK},
		{name: "match", secret: "s3cr3t", header: "s3cr3t", wantCode: http.StatusOK},
		{name: "missing", secret: "s3cr3t", header: "", wantCode: http.StatusUnauthorized},
		{name: "wrong", secret: "s3cr3t", header: "guess", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/token", nil)
			if tt.header != "" {
				req.Header.Set(SecretTokenHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
			_ = NewWebhookSecretMiddleware(tt.secret)(next)(e.NewContext(req, rec))

			if rec.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}
