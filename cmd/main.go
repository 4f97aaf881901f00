package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mvhien/learnhub/config"
	"github.com/mvhien/learnhub/database"
	_ "github.com/mvhien/learnhub/docs" // Swagger docs - auto-generated
	"github.com/mvhien/learnhub/internal/auth"
	"github.com/mvhien/learnhub/internal/controller"
	adminctrl "github.com/mvhien/learnhub/internal/controller/admin"
	studentctrl "github.com/mvhien/learnhub/internal/controller/student"
	"github.com/mvhien/learnhub/internal/datamanager"
	"github.com/mvhien/learnhub/internal/event"
	"github.com/mvhien/learnhub/internal/logger"
	"github.com/mvhien/learnhub/internal/middleware"
	"github.com/mvhien/learnhub/internal/model"
	"github.com/mvhien/learnhub/internal/repository"
	"github.com/mvhien/learnhub/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title LearnHub Enrollment API
// @version 1.0
// @description Course enrollment, access-request approval and dual-table sync API.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,
			auth.NewTokenManager,
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewCourseRepository,
			repository.NewEnrollmentRepository,
			repository.NewProgressRepository,
			repository.NewRequestRepository,
			repository.NewQBankRepository,
			repository.NewNotificationRepository,
			repository.NewStore,
		),

		// Data manager and event plumbing
		fx.Provide(
			service.NewNotificationService,
			func(store repository.Store, notificationSvc service.NotificationService, cfg *config.Config) (*event.Bus, *datamanager.Manager) {
				bus := event.NewBus()
				bus.Subscribe(event.NewAuditSink())
				bus.Subscribe(notificationSvc)
				dm := datamanager.NewManager(store, bus, datamanager.Config{
					MaxRetries:  cfg.Retry.MaxRetries,
					BaseBackoff: time.Duration(cfg.Retry.BaseBackoffMS) * time.Millisecond,
					MaxBackoff:  time.Duration(cfg.Retry.MaxBackoffMS) * time.Millisecond,
				})
				return bus, dm
			},
		),

		// API controllers layer
		fx.Provide(
			controller.NewAuthController,
			adminctrl.NewAdminController,
			studentctrl.NewStudentController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokenManager *auth.TokenManager,
	bus *event.Bus,
	authCtrl *controller.AuthController,
	adminCtrl *adminctrl.AdminController,
	studentCtrl *studentctrl.StudentController,
) {
	api := router.Group("/api/v1")
	{
		api.POST("/auth/dev-token", authCtrl.DevToken)
		api.GET("/courses", studentCtrl.ListCourses)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(tokenManager))
	{
		authed.POST("/courses/:course_id/requests", studentCtrl.CreateAccessRequest)
		authed.GET("/me/enrollments", studentCtrl.ListMyEnrollments)
		authed.GET("/me/requests", studentCtrl.ListMyRequests)
		authed.GET("/me/notifications", studentCtrl.ListMyNotifications)
		authed.POST("/me/notifications/:notification_id/read", studentCtrl.MarkNotificationRead)
	}

	adminAPI := api.Group("/admin")
	adminAPI.Use(middleware.RequireAuth(tokenManager), middleware.RequireAdmin())
	{
		adminAPI.GET("/requests", adminCtrl.ListPendingRequests)
		adminAPI.POST("/requests/:request_id/approve", adminCtrl.ApproveRequest)
		adminAPI.POST("/requests/:request_id/reject", adminCtrl.RejectRequest)
		adminAPI.POST("/requests/repair", adminCtrl.RepairStuckRequests)
		adminAPI.POST("/enrollments", adminCtrl.EnrollStudent)
		adminAPI.POST("/enrollments/remove", adminCtrl.UnenrollStudent)
		adminAPI.POST("/enrollments/sync", adminCtrl.SyncEnrollment)
		adminAPI.GET("/question-banks", adminCtrl.ListQuestionBanks)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("LearnHub API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			// Let in-flight event deliveries drain before closing.
			bus.Wait()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Enrollment{},
		&model.StudentProgress{},
		&model.AccessRequest{},
		&model.QuestionBank{},
		&model.Question{},
		&model.QBankEnrollment{},
		&model.Notification{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
