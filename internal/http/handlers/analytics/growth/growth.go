// Package growth реализует HTTP-обработчик динамики регистраций по месяцам.
package growth

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

// Service описывает интерфейс бизнес-логики динамики регистраций.
type Service interface {
	GetMembershipGrowth(ctx context.Context) ([]analyticssvc.GrowthPoint, error)
}

// Handler обрабатывает HTTP-запросы динамики регистраций.
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
// @Summary Динамика регистраций
// @Description Возвращает регистрации за последние месяцы, месяцы без регистраций включаются с нулём.
// @Tags Analytics
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Точки графика по месяцам"
// @Failure 401 {object} response.ErrorResponse "Нет или неверный токен"
// @Failure 403 {object} response.ErrorResponse "Требуется роль admin"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/analytics/growth [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.growth"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	points, err := h.service.GetMembershipGrowth(r.Context())
	if err != nil {
		log.Error("failed to get membership growth", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"points": points,
	}))
}
