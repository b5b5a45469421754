// Package changepassword реализует HTTP-обработчик смены пароля клиента.
// Первая успешная смена навсегда снимает флаг первого входа.
package changepassword

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/middlewarectx"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/response"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/sl"
	membersvc "github.com/dacchuvinay/ultra-fitness-backend/internal/services/member"
)

// Request — структура входных данных для смены пароля.
// Минимальная длина нового пароля проверяется бизнес-логикой.
type Request struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики смены пароля.
type Service interface {
	ChangePassword(ctx context.Context, customerUID, currentPassword, newPassword string) (string, error)
}

// Handler обрабатывает HTTP-запросы смены пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена пароля
// @Description Проверяет текущий пароль, устанавливает новый и снимает признак первого входа. Возвращает свежий токен.
// @Tags Member
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Текущий и новый пароль"
// @Success 200 {object} map[string]any "Свежий токен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или слишком короткий пароль"
// @Failure 401 {object} response.ErrorResponse "Неверный текущий пароль или нет токена"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 422 {object} response.ErrorResponse "Не заполнены обязательные поля"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/member/change-password [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.changepassword"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, err := h.service.ChangePassword(r.Context(), customerUID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, membersvc.ErrPasswordTooShort):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("password must be at least 4 characters"))
		case errors.Is(err, membersvc.ErrInvalidCredentials):
			log.Info("current password mismatch", slog.String("customer_uid", customerUID))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid member id or password"))
		case errors.Is(err, membersvc.ErrMemberNotFound):
			log.Error("member not found", slog.String("customer_uid", customerUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
		default:
			log.Error("failed to change password", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	log.Info("password changed", slog.String("customer_uid", customerUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": token,
	}))
}
