// Package profile реализует HTTP-обработчик получения профиля клиента
// вместе с вычисленным статусом абонемента.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/middlewarectx"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/response"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/sl"
	membersvc "github.com/dacchuvinay/ultra-fitness-backend/internal/services/member"
)

// Service описывает интерфейс бизнес-логики профиля.
type Service interface {
	GetProfile(ctx context.Context, customerUID string) (*membersvc.Profile, error)
}

// Handler обрабатывает HTTP-запросы профиля клиента.
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
// @Summary Профиль клиента
// @Description Возвращает профиль текущего клиента и статус его абонемента.
// @Tags Member
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Профиль клиента"
// @Failure 401 {object} response.ErrorResponse "Нет или неверный токен"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/member/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.profile"

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

	profile, err := h.service.GetProfile(r.Context(), customerUID)
	if err != nil {
		if errors.Is(err, membersvc.ErrMemberNotFound) {
			log.Error("member not found", slog.String("customer_uid", customerUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
			return
		}
		log.Error("failed to get profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(profile))
}
