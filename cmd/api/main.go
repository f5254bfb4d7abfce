package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/study-api/internal/config"
	"github.com/yourusername/study-api/internal/domain/repository"
	"github.com/yourusername/study-api/internal/handler"
	"github.com/yourusername/study-api/internal/middleware"
	pgRepo "github.com/yourusername/study-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/study-api/internal/repository/redis"
	"github.com/yourusername/study-api/internal/service"
	"github.com/yourusername/study-api/pkg/auth"
	"github.com/yourusername/study-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Redis опционален: без него приложение работает, просто без кеша статистики
	var cacheRepo repository.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis, continuing without cache: %v", err)
		} else {
			log.Println("Successfully connected to Redis")
			repo, err := redisRepo.NewCacheRepo(redisClient)
			if err != nil {
				log.Printf("Failed to initialize CacheRepo, continuing without cache: %v", err)
			} else {
				cacheRepo = repo
			}
		}
	}

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	subjectRepo := pgRepo.NewSubjectRepo(db)
	paperRepo := pgRepo.NewPaperRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	statusRepo := pgRepo.NewStatusRepo(db)
	recordRepo := pgRepo.NewStudyRecordRepo(db)
	assignmentRepo := pgRepo.NewAssignmentRepo(db)

	// Инициализируем сервисы
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	authService := service.NewAuthService(userRepo, jwtService)
	catalogService := service.NewCatalogService(subjectRepo, paperRepo, questionRepo, assignmentRepo, userRepo, cfg.Upload.Dir)
	studyService := service.NewStudyService(db, questionRepo, statusRepo, recordRepo, cacheRepo)
	statsService := service.NewStatsService(questionRepo, recordRepo, cacheRepo)

	// Администратор по умолчанию для первого запуска
	if err := authService.EnsureDefaultAdmin(); err != nil {
		log.Printf("Failed to ensure default admin: %v", err)
		os.Exit(1)
	}

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, jwtService)
	subjectHandler := handler.NewSubjectHandler(catalogService, studyService)
	paperHandler := handler.NewPaperHandler(catalogService, studyService)
	questionHandler := handler.NewQuestionHandler(catalogService, studyService)
	studyHandler := handler.NewStudyHandler(studyService, statsService)
	adminHandler := handler.NewAdminHandler(authService, catalogService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Статическая раздача загруженных изображений
	router.Static("/uploads", cfg.Upload.Dir)

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)

			authedAuth := authGroup.Group("/")
			authedAuth.Use(authMiddleware.RequireAuth())
			{
				authedAuth.POST("/logout", authHandler.Logout)
				authedAuth.POST("/change-password", authHandler.ChangePassword)
			}
		}

		// Пользователи
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", authHandler.Me)
		}

		// Предметы
		subjects := api.Group("/subjects")
		subjects.Use(authMiddleware.RequireAuth())
		{
			subjects.GET("", subjectHandler.List)
			subjects.POST("", subjectHandler.Create)

			subjectWithID := subjects.Group("/:id")
			subjectWithID.Use(middleware.ExtractUintParam("id", "subject_id"))
			{
				subjectWithID.DELETE("", subjectHandler.Delete)
				subjectWithID.GET("/questions", subjectHandler.Questions)
				subjectWithID.GET("/study", subjectHandler.Study)
			}
		}

		// Билеты
		papers := api.Group("/papers")
		papers.Use(authMiddleware.RequireAuth())
		{
			papers.GET("", paperHandler.List)
			papers.POST("", paperHandler.Create)
			papers.POST("/import", paperHandler.Import)

			paperWithID := papers.Group("/:id")
			paperWithID.Use(middleware.ExtractUintParam("id", "paper_id"))
			{
				paperWithID.GET("", paperHandler.Get)
				paperWithID.DELETE("", paperHandler.Delete)
				paperWithID.GET("/test", paperHandler.Test)
				paperWithID.GET("/export", paperHandler.Export)
			}
		}

		// Вопросы
		questions := api.Group("/questions")
		questions.Use(authMiddleware.RequireAuth())
		{
			questions.GET("", questionHandler.ManageList)
			questions.POST("", questionHandler.Create)

			questionWithID := questions.Group("/:id")
			questionWithID.Use(middleware.ExtractUintParam("id", "question_id"))
			{
				questionWithID.GET("", questionHandler.Get)
				questionWithID.DELETE("", questionHandler.Delete)
				questionWithID.POST("/images", questionHandler.UploadImage)
				questionWithID.POST("/clone", questionHandler.Clone)
				questionWithID.POST("/clear-status", studyHandler.ClearStatus)
				questionWithID.POST("/unmark-difficult", studyHandler.UnmarkDifficult)
			}
		}

		// Учебный цикл и статистика
		study := api.Group("/study")
		study.Use(authMiddleware.RequireAuth())
		{
			study.POST("/record", studyHandler.Record)
			study.POST("/reset-stats", studyHandler.ResetStats)
		}

		stats := api.Group("/stats")
		stats.Use(authMiddleware.RequireAuth())
		{
			stats.GET("/dashboard", studyHandler.Dashboard)
		}

		// Админские операции
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.DELETE("/users/:id", middleware.ExtractUintParam("id", "target_user_id"), adminHandler.DeleteUser)

			adminPapers := admin.Group("/papers/:id")
			adminPapers.Use(middleware.ExtractUintParam("id", "paper_id"))
			{
				adminPapers.POST("/distribute", adminHandler.DistributePaper)
				adminPapers.POST("/revoke", adminHandler.RevokePaper)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown по SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
