// Package attendancelist реализует HTTP-обработчик истории посещений клиента
// с пагинацией, от новых к старым.
package attendancelist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/middlewarectx"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/response"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/sl"
	membersvc "github.com/dacchuvinay/ultra-fitness-backend/internal/services/member"
)

// Service описывает интерфейс бизнес-логики истории посещений.
type Service interface {
	ListAttendance(ctx context.Context, customerUID string, limit, offset int) (*membersvc.AttendancePage, error)
}

// Handler обрабатывает HTTP-запросы истории посещений.
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
// @Summary История посещений
// @Description Возвращает посещения клиента с пагинацией, от новых к старым.
// @Tags Member
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Размер страницы (по умолчанию 30, максимум 100)"
// @Param page query int false "Номер страницы, с единицы (по умолчанию 1)"
// @Success 200 {object} map[string]any "Страница посещений"
// @Failure 401 {object} response.ErrorResponse "Нет или неверный токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/member/attendance [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.attendancelist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	customerUID, ok := r.Context().Value(middlewarectx.CustomerUID).(string)
	if !ok || customerUID == "" {
		log.Error("customer uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	limit, currentPage := parsePagination(r)

	page, err := h.service.ListAttendance(r.Context(), customerUID, limit, (currentPage-1)*limit)
	if err != nil {
		log.Error("failed to list attendance", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	totalPages := (page.Total + limit - 1) / limit
	log.Info("attendance listed", "count", len(page.Items))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"attendance":   page.Items,
		"total":        page.Total,
		"current_page": currentPage,
		"total_pages":  totalPages,
	}))
}

func parsePagination(r *http.Request) (limit, page int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 30
	}
	if limit > 100 {
		limit = 100
	}
	page, err = strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return limit, page
}
