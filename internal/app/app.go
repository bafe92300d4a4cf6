package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnsphere_backend/internal/config"
	"learnsphere_backend/internal/controller"
	"learnsphere_backend/internal/repository"
	"learnsphere_backend/internal/service"
	"learnsphere_backend/pkg/configwatcher"
	"learnsphere_backend/pkg/database"
	"learnsphere_backend/pkg/logger"
	"learnsphere_backend/pkg/monitoring"
	"learnsphere_backend/pkg/security"
	"learnsphere_backend/pkg/tracing"

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
	user        *repository.UserRepository
	course      *repository.CourseRepository
	quiz        *repository.QuizRepository
	attempt     *repository.AttemptRepository
	progress    *repository.ProgressRepository
	achievement *repository.AchievementRepository
	checkin     *repository.CheckinRepository
}

type services struct {
	auth        *service.AuthService
	content     *service.ContentService
	attempt     *service.AttemptService
	progress    *service.ProgressService
	achievement *service.AchievementService
	user        *service.UserService
}

type controllers struct {
	auth        *controller.AuthController
	content     *controller.ContentController
	attempt     *controller.AttemptController
	progress    *controller.ProgressController
	achievement *controller.AchievementController
	user        *controller.UserController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		quiz:        repository.NewQuizRepository(db),
		attempt:     repository.NewAttemptRepository(db),
		progress:    repository.NewProgressRepository(db),
		achievement: repository.NewAchievementRepository(db),
		checkin:     repository.NewCheckinRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.content = service.NewContentService(repos.course, repos.quiz)
	s.achievement = service.NewAchievementService(repos.achievement, repos.user)
	s.progress = service.NewProgressService(
		repos.course,
		repos.progress,
		repos.attempt,
		repos.user,
		s.achievement,
		rdb,
		time.Duration(cfg.Attempt.SummaryCacheSeconds)*time.Second,
	)
	s.attempt = service.NewAttemptService(
		repos.quiz,
		repos.attempt,
		repos.user,
		s.progress,
		s.achievement,
	)
	s.user = service.NewUserService(repos.user, repos.checkin, s.achievement)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		content:     controller.NewContentController(s.content),
		attempt:     controller.NewAttemptController(s.attempt),
		progress:    controller.NewProgressController(s.progress),
		achievement: controller.NewAchievementController(s.achievement),
		user:        controller.NewUserController(s.user),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 启动倒计时时钟：所有限时作答会话共用这一个
// ticker，步长可配置，到 0 的会话按超时评分落库。
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		interval := time.Duration(a.Config.Attempt.TickIntervalSeconds) * time.Second
		ticker := time.NewTicker(interval)
		for range ticker.C {
			s.attempt.Tick()
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("learnsphere", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		go func() {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	// 配置热加载：写回 App 并广播给已注册的回调
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(reloaded interface{}) {
		newCfg, ok := reloaded.(*config.Config)
		if !ok {
			return
		}
		app.Config = newCfg
		for _, cb := range app.configCallbacks {
			cb(newCfg)
		}
		logger.Log.Info("config reloaded")
	})

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
