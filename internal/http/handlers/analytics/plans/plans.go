// Package plans реализует HTTP-обработчик статистики популярности тарифов.
package plans

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/response"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/sl"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики популярности тарифов.
type Service interface {
	GetPlanPopularity(ctx context.Context) ([]repository.LabelCount, error)
}

// Handler обрабатывает HTTP-запросы популярности тарифов.
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
// @Summary Популярность тарифов
// @Description Возвращает количество клиентов по каждому тарифу, от популярных к редким.
// @Tags Analytics
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Распределение по тарифам"
// @Failure 401 {object} response.ErrorResponse "Нет или неверный токен"
// @Failure 403 {object} response.ErrorResponse "Требуется роль admin"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/analytics/plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.plans"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.service.GetPlanPopularity(r.Context())
	if err != nil {
		log.Error("failed to get plan popularity", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": plans,
	}))
}
