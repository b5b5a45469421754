package changepassword

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/middlewarectx"
	membersvc "github.com/dacchuvinay/ultra-fitness-backend/internal/services/member"
)

// MockService реализует интерфейс changepassword.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ChangePassword(ctx context.Context, customerUID, currentPassword, newPassword string) (string, error) {
	args := m.Called(ctx, customerUID, currentPassword, newPassword)
	return args.String(0), args.Error(1)
}

func TestChangePasswordHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		customerUID    string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешная смена пароля возвращает свежий токен",
			body:        `{"current_password":"oldpass","new_password":"newpass"}`,
			customerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("ChangePassword", mock.Anything, "uid-1", "oldpass", "newpass").
					Return("token-new", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"token-new"`,
		},
		{
			name:        "короткий новый пароль",
			body:        `{"current_password":"oldpass","new_password":"abc"}`,
			customerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("ChangePassword", mock.Anything, "uid-1", "oldpass", "abc").
					Return("", membersvc.ErrPasswordTooShort)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"password must be at least 4 characters"`,
		},
		{
			name:        "неверный текущий пароль",
			body:        `{"current_password":"nope","new_password":"newpass"}`,
			customerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("ChangePassword", mock.Anything, "uid-1", "nope", "newpass").
					Return("", membersvc.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"invalid member id or password"`,
		},
		{
			name:           "не указан текущий пароль",
			body:           `{"new_password":"newpass"}`,
			customerUID:    "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field CurrentPassword is a required field`,
		},
		{
			name:           "некорректный JSON",
			body:           `{`,
			customerUID:    "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "нет uid в контексте",
			body:           `{"current_password":"oldpass","new_password":"newpass"}`,
			customerUID:    "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:        "клиент не найден",
			body:        `{"current_password":"oldpass","new_password":"newpass"}`,
			customerUID: "ghost",
			setupMock: func(m *MockService) {
				m.On("ChangePassword", mock.Anything, "ghost", "oldpass", "newpass").
					Return("", membersvc.ErrMemberNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"member not found"`,
		},
		{
			name:        "ошибка сервиса",
			body:        `{"current_password":"oldpass","new_password":"newpass"}`,
			customerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("ChangePassword", mock.Anything, "uid-1", "oldpass", "newpass").
					Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"internal server error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/member/change-password", strings.NewReader(tt.body))
			if tt.customerUID != "" {
				req = req.WithContext(context.WithValue(req.Context(),
					middlewarectx.CustomerUID, tt.customerUID))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
