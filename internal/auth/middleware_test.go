package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/rs/zerolog"
)

func protectedHandler(t *testing.T, gotClaims **Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotClaims = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware(t *testing.T) {
	token, err := NewToken("secret", "test", time.Minute, Claims{UserID: "s1", Role: models.RoleStudent, Name: "Student One"})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectClaims   bool
	}{
		{"no header", "", http.StatusUnauthorized, false},
		{"malformed header", "Token abc", http.StatusUnauthorized, false},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized, false},
		{"valid token", "Bearer " + token, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var claims *Claims
			handler := Middleware("secret", zerolog.Nop())(protectedHandler(t, &claims))

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectClaims {
				if claims == nil || claims.UserID != "s1" {
					t.Errorf("expected claims in context, got %+v", claims)
				}
			} else if claims != nil {
				t.Errorf("claims leaked past rejected request: %+v", claims)
			}
		})
	}
}
