// Package dashboard реализует HTTP-обработчик сводки по клубу для
// административного экрана.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/response"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/sl"
	analyticssvc "github.com/dacchuvinay/ultra-fitness-backend/internal/services/analytics"
)

// Service описывает интерфейс бизнес-логики сводки.
type Service interface {
	GetDashboard(ctx context.Context) (*analyticssvc.Dashboard, error)
}

// Handler обрабатывает HTTP-запросы сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка по клубу
// @Description Возвращает количество клиентов по статусам абонемента и посещения за сегодня.
// @Tags Analytics
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сводные показатели"
// @Failure 401 {object} response.ErrorResponse "Нет или неверный токен"
// @Failure 403 {object} response.ErrorResponse "Требуется роль admin"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/analytics/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	dashboard, err := h.service.GetDashboard(r.Context())
	if err != nil {
		log.Error("failed to get dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(dashboard))
}
