// Package list реализует HTTP-обработчик списка объявлений клуба.
// Клиент видит действующие объявления, администратор может запросить все.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/middlewarectx"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/response"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/sl"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики списков объявлений.
type Service interface {
	ListActive(ctx context.Context) ([]*models.Announcement, error)
	ListAll(ctx context.Context) ([]*models.Announcement, error)
}

// Handler обрабатывает HTTP-запросы списка объявлений.
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
// @Summary Список объявлений
// @Description Возвращает действующие объявления. Администратор с параметром all=true получает все, включая снятые.
// @Tags Announcements
// @Produce  json
// @Security BearerAuth
// @Param all query bool false "Вернуть все объявления (только admin)"
// @Success 200 {object} map[string]any "Список объявлений"
// @Failure 401 {object} response.ErrorResponse "Нет или неверный токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/announcements [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.announcement.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	role, _ := r.Context().Value(middlewarectx.Role).(string)

	var announcements []*models.Announcement
	var err error
	if role == "admin" && r.URL.Query().Get("all") == "true" {
		announcements, err = h.service.ListAll(r.Context())
	} else {
		announcements, err = h.service.ListActive(r.Context())
	}
	if err != nil {
		log.Error("failed to list announcements", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("announcements listed", "count", len(announcements))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"items": announcements,
		"count": len(announcements),
	}))
}
