package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"taskmarket.com/taskmarket/internal/auth"
	config "taskmarket.com/taskmarket/internal/configs"
	httpapi "taskmarket.com/taskmarket/internal/http"
	repository "taskmarket.com/taskmarket/internal/repositories"
	"taskmarket.com/taskmarket/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task marketplace HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		database := config.NewDatabaseClient(cfg.DatabaseDSN)

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		tokenStore := auth.NewRedisTokenStore(redisClient, time.Duration(cfg.AuthTokenTTLHours)*time.Hour)

		userRepo := repository.NewUserRepository(database)
		taskRepo := repository.NewTaskRepository(database)
		offerRepo := repository.NewOfferRepository(database)
		conversationRepo := repository.NewConversationRepository(database)
		reviewRepo := repository.NewReviewRepository(database)
		reportRepo := repository.NewReportRepository(database)

		authService := services.NewAuthService(userRepo, tokenStore)
		taskService := services.NewTaskService(taskRepo, offerRepo, conversationRepo)
		chatService := services.NewChatService(taskRepo, conversationRepo)
		reviewService := services.NewReviewService(reviewRepo, userRepo, taskService)
		reportService := services.NewReportService(reportRepo)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := authService.EnsureAdminUser(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminFullName); err != nil {
			log.Fatalf("admin bootstrap failed: %v", err)
		}

		e := echo.New()
		e.HideBanner = true

		httpapi.Register(e, httpapi.Handlers{
			Auth:    httpapi.NewAuthHandler(authService),
			Tasks:   httpapi.NewTaskHandler(taskService),
			Chat:    httpapi.NewChatHandler(chatService),
			Reviews: httpapi.NewReviewHandler(reviewService),
			Reports: httpapi.NewReportHandler(reportService),
		}, authService, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
