// File: adamosign/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adamosign/config"
	"adamosign/cron"
	"adamosign/database"
	documentRepoPkg "adamosign/database/repository/document"
	userRepoPkg "adamosign/database/repository/user"
	"adamosign/handlers"
	"adamosign/middleware"
	"adamosign/routes"
	"adamosign/services/document"
	"adamosign/services/guest"
	"adamosign/services/notifier"
	"adamosign/services/storage"
	"adamosign/services/tasks"
	"adamosign/services/user"
	"adamosign/services/wizard"
	"adamosign/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitWizardCache()
	utils.InitAuthCache()

	fileStorage, err := storage.NewS3FileStorage(context.Background())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize file storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	docRepo := documentRepoPkg.NewMongoDocumentRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	handlers.SetUserService(userService)

	botClient := notifier.NewBotClient(config.AppConfig.BotBaseURL)
	reminderScheduler := tasks.NewAsynqReminderScheduler()

	wizardService := &wizard.DefaultWizardSessionService{}

	documentService := &document.DefaultDocumentService{
		Repo:      docRepo,
		Storage:   fileStorage,
		Notifier:  botClient,
		Reminders: reminderScheduler,
	}

	guestService := &guest.DefaultGuestService{
		Repo: docRepo,
		Bot:  botClient,
	}

	// Reminder worker for the remind-every-3-days option.
	cron.InitReminderWorker(docRepo, botClient, reminderScheduler)

	// Health monitor over Mongo and the Redis clients.
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetWizardCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Wizard:   handlers.NewWizardHandler(wizardService, fileStorage),
		Document: handlers.NewDocumentHandler(documentService, wizardService, fileStorage),
		Guest:    handlers.NewGuestHandler(guestService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
