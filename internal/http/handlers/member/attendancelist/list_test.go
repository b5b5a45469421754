package attendancelist

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
	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
	membersvc "github.com/dacchuvinay/ultra-fitness-backend/internal/services/member"
)

// MockService реализует интерфейс attendancelist.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListAttendance(ctx context.Context, customerUID string, limit, offset int) (*membersvc.AttendancePage, error) {
	args := m.Called(ctx, customerUID, limit, offset)
	if res := args.Get(0); res != nil {
		return res.(*membersvc.AttendancePage), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAttendanceListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	page := &membersvc.AttendancePage{
		Items: []*models.Attendance{
			{ID: 2, CustomerUID: "uid-1", Date: "2025-06-02"},
			{ID: 1, CustomerUID: "uid-1", Date: "2025-06-01"},
		},
		Total: 42,
	}

	tests := []struct {
		name           string
		url            string
		customerUID    string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное чтение с дефолтной пагинацией",
			url:         "/api/v1/member/attendance",
			customerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("ListAttendance", mock.Anything, "uid-1", 30, 0).Return(page, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":42`,
		},
		{
			name:        "вторая страница превращается в смещение",
			url:         "/api/v1/member/attendance?limit=10&page=2",
			customerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("ListAttendance", mock.Anything, "uid-1", 10, 10).Return(page, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total_pages":5`,
		},
		{
			name:        "limit ограничивается сверху",
			url:         "/api/v1/member/attendance?limit=500",
			customerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("ListAttendance", mock.Anything, "uid-1", 100, 0).Return(page, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"current_page":1`,
		},
		{
			name:        "кривые параметры заменяются дефолтами",
			url:         "/api/v1/member/attendance?limit=abc&page=-5",
			customerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("ListAttendance", mock.Anything, "uid-1", 30, 0).Return(page, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":42`,
		},
		{
			name:           "нет uid в контексте",
			url:            "/api/v1/member/attendance",
			customerUID:    "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:        "ошибка сервиса",
			url:         "/api/v1/member/attendance",
			customerUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("ListAttendance", mock.Anything, "uid-1", 30, 0).
					Return(nil, errors.New("db error"))
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

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
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
