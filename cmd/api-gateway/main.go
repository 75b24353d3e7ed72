package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/ibmastery/ibhub-api/api/swagger"
	"github.com/ibmastery/ibhub-api/internal/handler"
	"github.com/ibmastery/ibhub-api/internal/middleware"
	"github.com/ibmastery/ibhub-api/internal/models"
	"github.com/ibmastery/ibhub-api/internal/repository"
	"github.com/ibmastery/ibhub-api/internal/seed"
	"github.com/ibmastery/ibhub-api/internal/service"
	"github.com/ibmastery/ibhub-api/pkg/cache"
	"github.com/ibmastery/ibhub-api/pkg/config"
	"github.com/ibmastery/ibhub-api/pkg/database"
	"github.com/ibmastery/ibhub-api/pkg/jobs"
	"github.com/ibmastery/ibhub-api/pkg/logger"
	corsmiddleware "github.com/ibmastery/ibhub-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ibmastery/ibhub-api/pkg/middleware/requestid"
	"github.com/ibmastery/ibhub-api/pkg/storage"
)

// @title IB Hub API
// @version 0.1.0
// @description Student dashboard backend: weekly timetable, onboarding, exports, focus timer and study help
// @BasePath /api/v1
// @schemes http

// eventStore is what the services need from the event layer; both the
// Postgres repository and the in-memory store satisfy it.
type eventStore interface {
	Insert(ctx context.Context, event *models.TimetableEvent) error
	ListOnDay(ctx context.Context, userID string, day time.Time) ([]models.TimetableEvent, error)
	ListBetween(ctx context.Context, userID string, from, to time.Time) ([]models.TimetableEvent, error)
}

// userDirectory covers the user lookups and auth bookkeeping the services
// depend on.
type userDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
	SaveOnboarding(ctx context.Context, userID string, programme models.Programme, subjects []models.SubjectSelection) error
	ListSubjects(ctx context.Context, userID string) ([]models.SubjectSelection, error)
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error
	RevokeUserRefreshTokens(ctx context.Context, userID string) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		events eventStore
		users  userDirectory
	)

	if cfg.Database.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		events = repository.NewEventRepository(db)
		users = repository.NewUserRepository(db)
		logr.Info("using postgres storage", zap.String("host", cfg.Database.Host))
	} else {
		memEvents := repository.NewMemoryEventStore()
		memUsers := repository.NewMemoryUserStore()
		seedMemoryStores(cfg, logr, memEvents, memUsers)
		events = memEvents
		users = memUsers
		logr.Info("using in-memory storage")
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect to redis", zap.Error(err))
		}
		repo := repository.NewCacheRepository(client, logr)
		defer repo.Close() //nolint:errcheck
		cacheRepo = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Calendar.CacheTTL, logr, cfg.Redis.Enabled)

	validate := validator.New()

	authSvc := service.NewAuthService(users, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "ibhub-api",
	})
	timetableSvc := service.NewTimetableService(events, cacheSvc, cfg.Calendar, validate, logr)
	onboardingSvc := service.NewOnboardingService(users, validate, logr)
	pomodoroSvc := service.NewPomodoroService(cfg.Pomodoro, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(authSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	onboardingHandler := handler.NewOnboardingHandler(onboardingSvc)
	pomodoroHandler := handler.NewPomodoroHandler(pomodoroSvc)

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	authorized := api.Group("")
	authorized.Use(middleware.JWT(authSvc))
	authorized.GET("/auth/me", authHandler.Me)
	authorized.POST("/auth/logout", authHandler.Logout)
	authorized.POST("/auth/change-password", authHandler.ChangePassword)

	authorized.GET("/timetable/week", timetableHandler.Week)
	authorized.POST("/timetable/events", timetableHandler.CreateEvent)
	authorized.GET("/timetable/events/defaults", timetableHandler.FormDefaults)
	authorized.GET("/timetable/categories", timetableHandler.Categories)

	authorized.GET("/onboarding", onboardingHandler.Profile)
	authorized.POST("/onboarding", onboardingHandler.Complete)

	authorized.GET("/pomodoro", pomodoroHandler.State)
	authorized.POST("/pomodoro/start", pomodoroHandler.Start)
	authorized.POST("/pomodoro/pause", pomodoroHandler.Pause)
	authorized.POST("/pomodoro/resume", pomodoroHandler.Resume)
	authorized.POST("/pomodoro/reset", pomodoroHandler.Reset)

	authorized.GET("/metrics/snapshot", metricsHandler.Snapshot)

	if cfg.StudyHelp.Enabled {
		chatSvc := service.NewStudyBuddyService(nil, cfg.StudyHelp, validate, logr)
		chatHandler := handler.NewChatHandler(chatSvc)
		authorized.POST("/study-help/chat", chatHandler.Chat)
	}

	var exportQueue *jobs.Queue
	if cfg.Exports.Enabled {
		files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Fatal("failed to prepare export storage", zap.Error(err))
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

		var exportSvc *service.ExportService
		exportQueue = jobs.NewQueue("exports", func(ctx context.Context, job jobs.Job) error {
			return exportSvc.Process(ctx, job)
		}, jobs.QueueConfig{
			Workers: cfg.Exports.WorkerConcurrency,
			Logger:  logr,
		})
		exportSvc = service.NewExportService(events, users, exportQueue, files, signer, metricsSvc, validate, logr, service.ExportServiceConfig{
			FirstDay:  cfg.Calendar.FirstDay,
			ResultTTL: cfg.Exports.SignedURLTTL,
		})

		exportQueue.Start(ctx)
		go exportSvc.RunCleanup(ctx, cfg.Exports.CleanupInterval)

		exportHandler := handler.NewExportHandler(exportSvc)
		authorized.POST("/exports", exportHandler.Create)
		authorized.GET("/exports/:id", exportHandler.Status)
		api.GET("/exports/download/:token", exportHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown interrupted", zap.Error(err))
	}
	if exportQueue != nil {
		exportQueue.Stop()
	}
}

// seedMemoryStores loads the seed snapshot, or a demo week when no snapshot
// is configured, so the in-memory mode has data to show immediately.
func seedMemoryStores(cfg *config.Config, logr *zap.Logger, events *repository.MemoryEventStore, users *repository.MemoryUserStore) {
	hash, err := bcrypt.GenerateFromPassword([]byte("ibhub-demo"), bcrypt.DefaultCost)
	if err != nil {
		logr.Fatal("failed to hash demo password", zap.Error(err))
	}

	now := time.Now()
	demoID := users.AddUser(models.User{
		Email:              "demo@ibhub.dev",
		PasswordHash:       string(hash),
		FirstName:          "Demo",
		LastName:           "Student",
		Programme:          models.ProgrammeDP,
		OnboardingComplete: true,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	})

	if cfg.Calendar.SeedPath != "" {
		loaded, err := seed.Load(cfg.Calendar.SeedPath)
		if err != nil {
			logr.Warn("failed to load seed snapshot", zap.String("path", cfg.Calendar.SeedPath), zap.Error(err))
		} else if err := events.Seed(loaded); err != nil {
			logr.Warn("failed to apply seed snapshot", zap.Error(err))
		} else {
			logr.Info("seeded events from snapshot", zap.String("path", cfg.Calendar.SeedPath), zap.Int("count", len(loaded)))
			return
		}
	}

	demo := seed.DemoEvents(demoID, now, cfg.Calendar.FirstDay)
	if err := events.Seed(demo); err != nil {
		logr.Warn("failed to seed demo events", zap.Error(err))
		return
	}
	logr.Info("seeded demo week", zap.String("user", demoID), zap.Int("count", len(demo)))
}
