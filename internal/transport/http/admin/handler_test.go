package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestPassphraseMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		supplied   string
		wantStatus int
	}{
		{"correct passphrase", "admin123", http.StatusOK},
		{"wrong passphrase", "letmein", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
	}

	e := echo.New()
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	guard := passphrase("admin123")(next)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
			if tt.supplied != "" {
				req.Header.Set(PassphraseHeader, tt.supplied)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := guard(c); err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
