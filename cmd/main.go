package main

import (
	"context"
	"net/http"
	"time"

	"quizforge/config"
	"quizforge/database"
	_ "quizforge/docs" // Swagger docs - auto-generated
	adminctrl "quizforge/internal/controller/admin"
	functionsctrl "quizforge/internal/controller/functions"
	userctrl "quizforge/internal/controller/user"
	"quizforge/internal/llm"
	"quizforge/internal/logger"
	"quizforge/internal/model"
	"quizforge/internal/repository"
	"quizforge/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title QuizForge API
// @version 1.0
// @description AI quiz generation and LLM-graded attempts for e-learning. Quizzes are generated from a topic or document, attempts are graded by the configured provider.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Provider factory for the generation and evaluation pipelines
		fx.Provide(
			func() llm.Factory { return llm.New },
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuizRepository,
			repository.NewAttemptRepository,
			repository.NewProviderSettingRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewGenerationService,
			service.NewEvaluationService,
			service.NewSettingsService,
			service.NewQuizService,
			service.NewAttemptService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminQuizController,
			userctrl.NewQuizController,
			userctrl.NewAttemptController,
			userctrl.NewSettingsController,
			functionsctrl.NewFunctionsController,
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
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
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

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminQuizCtrl *adminctrl.AdminQuizController,
	quizCtrl *userctrl.QuizController,
	attemptCtrl *userctrl.AttemptController,
	settingsCtrl *userctrl.SettingsController,
	functionsCtrl *functionsctrl.FunctionsController,
) {
	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		quizzesAdminGroup := adminAPIGroup.Group("/quizzes")
		quizzesAdminGroup.POST("", adminQuizCtrl.CreateQuiz)
		quizzesAdminGroup.POST("/generate", adminQuizCtrl.GenerateQuiz)
	}

	// User Routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		// Quiz catalog
		userAPIGroup.GET("/quizzes", quizCtrl.ListQuizzes)
		userAPIGroup.GET("/quizzes/:quiz_id", quizCtrl.GetQuiz)

		// Attempt lifecycle
		userAPIGroup.POST("/quizzes/:quiz_id/attempts", attemptCtrl.StartAttempt)
		userAPIGroup.PUT("/attempts/:attempt_id/answers", attemptCtrl.SaveAnswer)
		userAPIGroup.POST("/attempts/:attempt_id/submit", attemptCtrl.SubmitAttempt)
		userAPIGroup.GET("/attempts/:attempt_id", attemptCtrl.GetAttempt)
		userAPIGroup.GET("/users/:user_id/attempts", attemptCtrl.ListUserAttempts)

		// Per-user provider settings
		userAPIGroup.GET("/users/:user_id/provider-settings", settingsCtrl.GetProviderSettings)
		userAPIGroup.PUT("/users/:user_id/provider-settings", settingsCtrl.SaveProviderSettings)
	}

	// Stateless pipeline endpoints
	functionsGroup := router.Group("/api/v1/functions")
	{
		functionsGroup.POST("/generate-quiz", functionsCtrl.GenerateQuiz)
		functionsGroup.POST("/evaluate-quiz", functionsCtrl.EvaluateQuiz)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizForge API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
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
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.ProviderSetting{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
