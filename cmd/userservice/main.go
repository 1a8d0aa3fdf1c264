package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	myPostgresRepo "github.com/skylume/user-service/internal/adapters/db/postgres"
	transport "github.com/skylume/user-service/internal/adapters/transport/http"
	"github.com/skylume/user-service/internal/adapters/transport/http/middleware"
	"github.com/skylume/user-service/internal/app/auth/jwt"
	authsvc "github.com/skylume/user-service/internal/app/auth/service"
	profilesvc "github.com/skylume/user-service/internal/app/profile/service"
	"github.com/skylume/user-service/internal/app/profile/storage"
	"github.com/skylume/user-service/internal/infra/config"
	lg "github.com/skylume/user-service/internal/infra/log"
	"github.com/skylume/user-service/internal/infra/migrate"
	"github.com/skylume/user-service/internal/infra/server"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		zapLog.Fatal("init upload storage", zap.Error(err))
	}

	tokens, err := jwt.NewManager(cfg)
	if err != nil {
		zapLog.Fatal("init token manager", zap.Error(err))
	}

	userRepo := myPostgresRepo.NewPostgresUserRepo(db)
	auth := authsvc.New(userRepo, tokens, validator.New())
	profile := profilesvc.New(userRepo, store, cfg.WebHostURL, zapLog)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(zapLog))
	router.Use(middleware.Metrics())
	router.Use(middleware.NewRateLimitPerIP(50, 100, 10_000, time.Hour))

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept",
				"Authorization",
				"X-Requested-With",
			},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: cfg.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	handler := transport.NewHandler(auth, profile, tokens, zapLog)
	handler.RegisterRoutes(router)

	router.Static("/profile_pic", cfg.UploadDir+"/profile_pic")
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return server.StartHTTPServer(ctx, cfg, router.Handler(), zapLog)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		zapLog.Info("shutdown signal received")
		cancel()
	case <-ctx.Done():
	}

	if err := g.Wait(); err != nil && err != http.ErrServerClosed {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
