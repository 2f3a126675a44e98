package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"faceyoga_backend/internal/config"
	"faceyoga_backend/internal/controller"
	"faceyoga_backend/internal/repository"
	"faceyoga_backend/internal/service"
	"faceyoga_backend/pkg/database"
	"faceyoga_backend/pkg/logger"
	"faceyoga_backend/pkg/monitoring"
	"faceyoga_backend/pkg/security"
	"faceyoga_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	exercise     *repository.ExerciseRepository
	course       *repository.CourseRepository
	purchase     *repository.PurchaseRepository
	grant        *repository.AccessGrantRepository
	subscription *repository.SubscriptionRepository
	goal         *repository.GoalRepository
	goalProgress *repository.GoalProgressRepository
	practice     *repository.PracticeRepository
}

type services struct {
	storage  *service.StorageService
	auth     *service.AuthService
	user     *service.UserService
	access   *service.AccessService
	exercise *service.ExerciseService
	course   *service.CourseService
	payment  *service.PaymentService
	goal     *service.GoalService
	progress *service.ProgressService
	practice *service.PracticeService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	exercise *controller.ExerciseController
	course   *controller.CourseController
	purchase *controller.PurchaseController
	webhook  *controller.WebhookController
	goal     *controller.GoalController
	practice *controller.PracticeController
	health   *controller.HealthController
}

// RegisterConfigCallback subscribes to config file reloads.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig runs every registered reload callback with the new config.
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		exercise:     repository.NewExerciseRepository(db),
		course:       repository.NewCourseRepository(db),
		purchase:     repository.NewPurchaseRepository(db),
		grant:        repository.NewAccessGrantRepository(db),
		subscription: repository.NewSubscriptionRepository(db),
		goal:         repository.NewGoalRepository(db),
		goalProgress: repository.NewGoalProgressRepository(db),
		practice:     repository.NewPracticeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.access = service.NewAccessService(repos.exercise, repos.course, repos.grant, repos.subscription, rdb)
	s.exercise = service.NewExerciseService(repos.exercise, s.access, s.storage)
	s.course = service.NewCourseService(repos.course, repos.exercise, s.access)
	s.payment = service.NewPaymentService(repos.course, repos.purchase, repos.grant, cfg)
	s.goal = service.NewGoalService(repos.goal, repos.goalProgress, repos.exercise)
	s.progress = service.NewProgressService(repos.goal, repos.goalProgress, repos.exercise, repos.practice)
	s.practice = service.NewPracticeService(repos.practice, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.user),
		exercise: controller.NewExerciseController(s.exercise),
		course:   controller.NewCourseController(s.course),
		purchase: controller.NewPurchaseController(s.payment),
		webhook:  controller.NewWebhookController(s.payment),
		goal:     controller.NewGoalController(s.goal, s.progress),
		practice: controller.NewPracticeController(s.progress, s.practice, s.access),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	var corsMu sync.RWMutex
	corsHandler := security.CORS(cfg.CORS.AllowedOrigins)

	router.Use(func(c *gin.Context) {
		corsMu.RLock()
		h := corsHandler
		corsMu.RUnlock()
		h(c)
	})

	a.RegisterConfigCallback(func(next *config.Config) {
		corsMu.Lock()
		corsHandler = security.CORS(next.CORS.AllowedOrigins)
		corsMu.Unlock()
		logger.Log.Info("CORS origins reloaded", zap.Strings("origins", next.CORS.AllowedOrigins))
	})

	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// expireSubscriptions flips overdue subscriptions hourly so access checks
// read fresh status.
func (a *App) startBackgroundTasks(repos *repositories) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			n, err := repos.subscription.ExpireOverdue(time.Now())
			if err != nil {
				logger.Log.Error("subscription expiry sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Log.Info("expired overdue subscriptions", zap.Int64("count", n))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Release deployments migrate only when asked to.
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis only caches ownership lookups; run degraded without it.
		logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("faceyoga-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(repos)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
