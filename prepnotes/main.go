package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"prepnotes/prepnotes/auth"
	"prepnotes/prepnotes/config"
	"prepnotes/prepnotes/controllers"
	"prepnotes/prepnotes/middlewares"
	"prepnotes/prepnotes/routes"
	"prepnotes/prepnotes/sources/psql"
	"prepnotes/prepnotes/sources/psql/dao"
	rediscache "prepnotes/prepnotes/sources/redis"
	"prepnotes/prepnotes/utils/logging"
	"prepnotes/prepnotes/utils/markdown"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewUserDAO(db.DB)
	noteDAO := dao.NewNoteDAO(db.DB)
	catDAO := dao.NewCategoryDAO(db.DB)
	if err := catDAO.Seed(ctx); err != nil {
		logging.ErrorLogger.Error("category seed error", zap.Error(err))
		os.Exit(1)
	}

	cache, err := rediscache.NewNotesCache(cfg.RedisAddr)
	if err != nil {
		logging.ErrorLogger.Error("redis connection error", zap.Error(err))
		os.Exit(1)
	}
	defer cache.Close()

	resolver := auth.NewJWTResolver(cfg.JWTSecret)
	authCtrl := controllers.NewAuthController(userDAO)
	userCtrl := controllers.NewUserController(userDAO, authCtrl)
	notesCtrl := controllers.NewNotesController(noteDAO, catDAO, cache)
	catCtrl := controllers.NewCategoriesController(catDAO)
	healthCtrl := controllers.NewHealthController()
	renderer := markdown.NewRenderer()

	// One sync per 5 seconds per identity, matching the client debounce.
	syncLimiter := middlewares.NewRateLimiter(rate.Every(5*time.Second), 1)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middlewares.MetricsMiddleware)

	r.Mount("/healthz", routes.HealthRoutes(healthCtrl))
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/api/auth", routes.AuthRoutes(authCtrl, resolver, syncLimiter))
	r.Mount("/api/categories", routes.CategoryRoutes(catCtrl))
	r.Mount("/api/notes", routes.NotesRoutes(notesCtrl, renderer, resolver))
	r.Mount("/api/users", routes.UserRoutes(userCtrl, resolver))

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
