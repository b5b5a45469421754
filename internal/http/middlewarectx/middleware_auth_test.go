package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/jwt"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret-key", time.Hour)

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, _ := r.Context().Value(CustomerUID).(string)
		memberID, _ := r.Context().Value(MemberID).(string)
		role, _ := r.Context().Value(Role).(string)
		w.Header().Set("X-Customer-UID", uid)
		w.Header().Set("X-Member-ID", memberID)
		w.Header().Set("X-Role", role)
		w.WriteHeader(http.StatusOK)
	})

	validToken, err := maker.GenerateToken("uid-1", "U001", "member")
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer " + validToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no bearer prefix",
			authHeader:     validToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer not.a.token",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := JWTMiddleware(maker, newNoopLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/member/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			mw(okHandler).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "uid-1", w.Header().Get("X-Customer-UID"))
				assert.Equal(t, "U001", w.Header().Get("X-Member-ID"))
				assert.Equal(t, "member", w.Header().Get("X-Role"))
			}
		})
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		role           any
		expectedStatus int
	}{
		{name: "admin passes", role: "admin", expectedStatus: http.StatusOK},
		{name: "member is rejected", role: "member", expectedStatus: http.StatusForbidden},
		{name: "no role in context", role: nil, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := AdminOnlyMiddleware(newNoopLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard", nil)
			if tt.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), Role, tt.role))
			}
			w := httptest.NewRecorder()

			mw(okHandler).ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Лимит 1 запрос без всплеска: второй запрос подряд должен упереться.
	limiter := rate.NewLimiter(1, 1)
	mw := RateLimitMiddleware(limiter, newNoopLogger())

	first := httptest.NewRecorder()
	mw(okHandler).ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	mw(okHandler).ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
