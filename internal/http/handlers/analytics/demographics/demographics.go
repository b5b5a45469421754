// Package demographics реализует HTTP-обработчик возрастной статистики клиентов.
package demographics

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

// Service описывает интерфейс бизнес-логики возрастной статистики.
type Service interface {
	GetAgeDemographics(ctx context.Context) ([]repository.LabelCount, error)
}

// Handler обрабатывает HTTP-запросы возрастной статистики.
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
// @Summary Возрастная статистика
// @Description Возвращает распределение клиентов по возрастным группам.
// @Tags Analytics
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Возрастные группы"
// @Failure 401 {object} response.ErrorResponse "Нет или неверный токен"
// @Failure 403 {object} response.ErrorResponse "Требуется роль admin"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/analytics/demographics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.demographics"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	buckets, err := h.service.GetAgeDemographics(r.Context())
	if err != nil {
		log.Error("failed to get age demographics", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"buckets": buckets,
	}))
}
