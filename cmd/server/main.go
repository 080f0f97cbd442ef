package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dishankaswal/CodeArena/internal/api"
	"github.com/Dishankaswal/CodeArena/internal/app/evaluator"
	"github.com/Dishankaswal/CodeArena/internal/app/service"
	"github.com/Dishankaswal/CodeArena/internal/common/security"
	"github.com/Dishankaswal/CodeArena/internal/domain/repository"
	"github.com/Dishankaswal/CodeArena/internal/platform/cache"
	"github.com/Dishankaswal/CodeArena/internal/platform/config"
	"github.com/Dishankaswal/CodeArena/internal/platform/database"
	"github.com/Dishankaswal/CodeArena/internal/platform/genai"
	"github.com/Dishankaswal/CodeArena/internal/platform/judge"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	contestRepo := repository.NewPgContestRepository(database.DB)
	registrationRepo := repository.NewPgRegistrationRepository(database.DB)
	questionRepo := repository.NewPgQuestionRepository(database.DB)

	// 6. Initialize external clients
	judgeClient := judge.NewClient(config.AppConfig.PistonURL)
	generator := genai.NewClient(config.AppConfig.GeminiURL, config.AppConfig.GeminiAPIKey)

	// 7. Initialize Services
	sessionStore := cache.NewRedisSessionStore(cache.RDB)
	sessions := service.NewSessionManager(sessionStore, userRepo)
	authService := service.NewAuthService(userRepo, sessions)
	contestService := service.NewContestService(contestRepo, registrationRepo)
	questionService := service.NewQuestionService(questionRepo, contestRepo, contestService)
	eval := evaluator.New(judgeClient, config.AppConfig.EvalMaxInFlight)
	submissionService := service.NewSubmissionService(questionRepo, contestRepo, contestService, judgeClient, eval)

	// 8. Forward cross-instance session changes to local observers
	listenCtx, listenCancel := context.WithCancel(context.Background())
	defer listenCancel()
	go sessions.Listen(listenCtx)

	// 9. Initialize Router & HTTP Server
	router := api.NewRouter(authService, sessions, contestService, questionService, submissionService, generator)

	server := &http.Server{
		Addr:        ":" + config.AppConfig.APIPort,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: the countdown SSE stream outlives any fixed
		// value; per-request timeouts come from the router middleware.
		IdleTimeout: 120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	listenCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
