package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"anoa.com/mentoria/internal/config"
	"anoa.com/mentoria/internal/entity"
	"anoa.com/mentoria/internal/middleware"
	"anoa.com/mentoria/pkg/response"
	"anoa.com/mentoria/pkg/storage"
	"anoa.com/mentoria/pkg/token"

	userHttp "anoa.com/mentoria/internal/modules/user/delivery/http"
	userRepo "anoa.com/mentoria/internal/modules/user/repository"
	userService "anoa.com/mentoria/internal/modules/user/service"

	mentorHttp "anoa.com/mentoria/internal/modules/mentor/delivery/http"
	mentorRepo "anoa.com/mentoria/internal/modules/mentor/repository"
	mentorService "anoa.com/mentoria/internal/modules/mentor/service"

	menteeHttp "anoa.com/mentoria/internal/modules/mentee/delivery/http"
	menteeRepo "anoa.com/mentoria/internal/modules/mentee/repository"
	menteeService "anoa.com/mentoria/internal/modules/mentee/service"

	sessionHttp "anoa.com/mentoria/internal/modules/session/delivery/http"
	sessionRepo "anoa.com/mentoria/internal/modules/session/repository"
	sessionService "anoa.com/mentoria/internal/modules/session/service"

	counterRepo "anoa.com/mentoria/internal/modules/counter/repository"
	counterService "anoa.com/mentoria/internal/modules/counter/service"

	documentHttp "anoa.com/mentoria/internal/modules/document/delivery/http"
	documentRepo "anoa.com/mentoria/internal/modules/document/repository"
	documentService "anoa.com/mentoria/internal/modules/document/service"

	goalHttp "anoa.com/mentoria/internal/modules/goal/delivery/http"
	goalRepo "anoa.com/mentoria/internal/modules/goal/repository"
	goalService "anoa.com/mentoria/internal/modules/goal/service"

	reviewHttp "anoa.com/mentoria/internal/modules/review/delivery/http"
	reviewRepo "anoa.com/mentoria/internal/modules/review/repository"
	reviewService "anoa.com/mentoria/internal/modules/review/service"

	adminHttp "anoa.com/mentoria/internal/modules/admin/delivery/http"
	adminService "anoa.com/mentoria/internal/modules/admin/service"

	statHttp "anoa.com/mentoria/internal/modules/stat/delivery/http"
	statRepo "anoa.com/mentoria/internal/modules/stat/repository"
	statService "anoa.com/mentoria/internal/modules/stat/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	counters    counterService.CounterService
	cfg         *config.Config
	log         *zap.Logger
	workers     sync.WaitGroup
}

// NewServer wires every module. redisClient and fileStorage may be nil.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, fileStorage storage.FileStorage, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(userRepo, tokens)
	authHandler := userHttp.NewAuthHandler(authSvc)

	mentorRepo := mentorRepo.NewMentorRepository(db)
	mentorSvc := mentorService.NewMentorService(mentorRepo, redisClient, log.Named("mentor"))
	mentorHandler := mentorHttp.NewMentorHandler(mentorSvc)

	menteeRepo := menteeRepo.NewMenteeRepository(db)
	menteeSvc := menteeService.NewMenteeService(menteeRepo)
	menteeHandler := menteeHttp.NewMenteeHandler(menteeSvc)

	sessionRepo := sessionRepo.NewSessionRepository(db)
	sessionSvc := sessionService.NewSessionService(sessionRepo, mentorRepo, menteeRepo)
	sessionHandler := sessionHttp.NewSessionHandler(sessionSvc)

	counterSvc := counterService.NewCounterService(redisClient, counterRepo.NewCounterRepository(db), log.Named("counter"))

	documentRepo := documentRepo.NewDocumentRepository(db)
	documentSvc := documentService.NewDocumentService(documentRepo, mentorRepo, sessionRepo, counterSvc, fileStorage, cfg.UploadFolder, log.Named("document"))
	documentHandler := documentHttp.NewDocumentHandler(documentSvc)

	goalRepo := goalRepo.NewGoalRepository(db)
	goalSvc := goalService.NewGoalService(goalRepo)
	goalHandler := goalHttp.NewGoalHandler(goalSvc)

	reviewRepo := reviewRepo.NewReviewRepository(db)
	reviewSvc := reviewService.NewReviewService(reviewRepo, sessionRepo, menteeRepo, userRepo)
	reviewHandler := reviewHttp.NewReviewHandler(reviewSvc)

	adminSvc := adminService.NewAdminService(userRepo, authSvc)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	statSvc := statService.NewStatService(statRepo.NewStatRepository(db), redisClient, log.Named("stat"))
	statHandler := statHttp.NewStatHandler(statSvc)

	router := gin.New()
	router.MaxMultipartMemory = documentService.MaxUploadSize

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(middleware.ZapLogger(log.Named("http")))

	s := &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		counters:    counterSvc,
		cfg:         cfg,
		log:         log,
	}

	router.GET("/health", s.health)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, tokens)
	requireAuth := authMiddleware.RequireAuth()
	optionalAuth := authMiddleware.OptionalAuth()
	mentorOnly := authMiddleware.RequireMentorType()

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.Me)
		auth.PUT("/profile", requireAuth, authHandler.UpdateProfile)
		auth.DELETE("/account", requireAuth, authHandler.DeleteAccount)
	}

	mentors := api.Group("/mentors")
	{
		mentors.GET("", optionalAuth, mentorHandler.GetAll)
		mentors.GET("/specialties", mentorHandler.Specialties)
		mentors.GET("/:id", mentorHandler.GetByID)
		mentors.POST("", requireAuth, mentorOnly, mentorHandler.Create)
		mentors.PUT("/:id", requireAuth, mentorHandler.Update)
		mentors.PUT("/:id/availability", requireAuth, mentorHandler.ReplaceAvailability)
		mentors.DELETE("/:id", requireAuth, mentorHandler.Delete)
	}

	mentees := api.Group("/mentees")
	mentees.Use(requireAuth)
	{
		mentees.GET("/me", menteeHandler.GetMe)
		mentees.GET("/:id", menteeHandler.GetByID)
		mentees.PUT("/:id", menteeHandler.Update)
		mentees.DELETE("/:id", menteeHandler.Delete)
	}

	sessions := api.Group("/sessions")
	{
		sessions.GET("", optionalAuth, sessionHandler.GetAll)
		sessions.GET("/my/enrolled", requireAuth, sessionHandler.MyEnrolled)
		sessions.GET("/:id", optionalAuth, sessionHandler.GetByID)
		sessions.POST("", requireAuth, mentorOnly, sessionHandler.Create)
		sessions.PUT("/:id", requireAuth, sessionHandler.Update)
		sessions.DELETE("/:id", requireAuth, sessionHandler.Delete)
		sessions.POST("/:id/join", requireAuth, sessionHandler.Join)
		sessions.POST("/:id/leave", requireAuth, sessionHandler.Leave)
		sessions.GET("/:id/participants", requireAuth, sessionHandler.Participants)
		sessions.GET("/:id/reviews", reviewHandler.BySession)
	}

	documents := api.Group("/documents")
	{
		documents.GET("", optionalAuth, documentHandler.GetAll)
		documents.POST("", requireAuth, mentorOnly, documentHandler.Create)
		documents.POST("/upload", requireAuth, mentorOnly, documentHandler.Upload)
		documents.GET("/:id", optionalAuth, documentHandler.GetByID)
		documents.PUT("/:id", requireAuth, documentHandler.Update)
		documents.DELETE("/:id", requireAuth, documentHandler.Delete)
		documents.POST("/:id/download", optionalAuth, documentHandler.Download)
	}

	goals := api.Group("/goals")
	goals.Use(requireAuth)
	{
		goals.GET("", goalHandler.GetAll)
		goals.POST("", goalHandler.Create)
		goals.GET("/:id", goalHandler.GetByID)
		goals.PUT("/:id", goalHandler.Update)
		goals.DELETE("/:id", goalHandler.Delete)
	}

	api.POST("/reviews", requireAuth, reviewHandler.Create)
	api.GET("/users/:id/reviews", reviewHandler.ByUser)
	api.GET("/stats", statHandler.GetPlatformStats)

	admin := api.Group("/admin")
	admin.Use(requireAuth, authMiddleware.RequireRoles(entity.RoleAdmin))
	{
		admin.GET("/users", adminHandler.GetAllUsers)
		admin.PUT("/users/:id/role", adminHandler.UpdateRole)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// StartWorkers launches background jobs; they stop when ctx is cancelled.
func (s *Server) StartWorkers(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	s.workers.Add(1)
	go func() {
		defer s.workers.Done()
		s.counters.StartSyncWorker(ctx, s.cfg.CounterSyncInterval)
	}()
}

// WaitWorkers blocks until every worker started by StartWorkers has returned.
func (s *Server) WaitWorkers() {
	s.workers.Wait()
}

// HTTPServer returns an http.Server bound to addr serving this router.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "database": "ok", "redis": "disabled"}
	code := http.StatusOK

	if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["status"], status["database"] = "degraded", "unreachable"
		code = http.StatusServiceUnavailable
	}
	if s.redisClient != nil {
		status["redis"] = "ok"
		if err := s.redisClient.Ping(ctx).Err(); err != nil {
			status["redis"] = "unreachable"
			s.log.Warn("redis health check failed", zap.Error(err))
		}
	}

	c.JSON(code, response.Envelope{Success: code == http.StatusOK, Data: status})
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
