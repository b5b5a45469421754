// Package ultrafitness предоставляет маршруты для основного приложения.
package ultrafitness

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/analytics/dashboard"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/analytics/demographics"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/analytics/growth"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/analytics/plans"
	announcementcreate "github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/announcement/create"
	announcementlist "github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/announcement/list"
	announcementremove "github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/announcement/remove"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/health"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/member/attendancelist"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/member/changepassword"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/member/login"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/member/paymentlist"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/member/profile"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/handlers/member/profileupdate"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/http/middlewarectx"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/jwt"
	analyticsservice "github.com/dacchuvinay/ultra-fitness-backend/internal/services/analytics"
	announcementservice "github.com/dacchuvinay/ultra-fitness-backend/internal/services/announcement"
	memberservice "github.com/dacchuvinay/ultra-fitness-backend/internal/services/member"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	jwtMaker jwt.Maker,
	db *repository.Storage,
	memberService *memberservice.MemberService,
	announcementService *announcementservice.AnnouncementService,
	analyticsService *analyticsservice.AnalyticsService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limiter := rate.NewLimiter(50, 100)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/member/login", login.New(logger, memberService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))
			r.Get("/member/me", profile.New(logger, memberService).ServeHTTP)
			r.Put("/member/profile", profileupdate.New(logger, memberService).ServeHTTP)
			r.Put("/member/change-password", changepassword.New(logger, memberService).ServeHTTP)
			r.Get("/member/attendance", attendancelist.New(logger, memberService).ServeHTTP)
			r.Get("/member/payments", paymentlist.New(logger, memberService).ServeHTTP)
			r.Get("/announcements", announcementlist.New(logger, announcementService).ServeHTTP)

			// Административная группа
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Post("/announcements", announcementcreate.New(logger, announcementService).ServeHTTP)
				r.Delete("/announcements/{id}", announcementremove.New(logger, announcementService).ServeHTTP)
				r.Get("/analytics/dashboard", dashboard.New(logger, analyticsService).ServeHTTP)
				r.Get("/analytics/plans", plans.New(logger, analyticsService).ServeHTTP)
				r.Get("/analytics/demographics", demographics.New(logger, analyticsService).ServeHTTP)
				r.Get("/analytics/growth", growth.New(logger, analyticsService).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
