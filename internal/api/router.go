package api

import (
	"net/http"
	"time"

	"github.com/Dishankaswal/CodeArena/internal/api/handler"
	"github.com/Dishankaswal/CodeArena/internal/api/middleware"
	"github.com/Dishankaswal/CodeArena/internal/app/service"
	"github.com/Dishankaswal/CodeArena/internal/common/security"
	"github.com/Dishankaswal/CodeArena/internal/platform/genai"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	sessions *service.SessionManager,
	contestService *service.ContestService,
	questionService *service.QuestionService,
	submissionService *service.SubmissionService,
	generator *genai.Client,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)

	// Verifies token, puts claims in context. Searches "Authorization: Bearer T".
	r.Use(jwtauth.Verifier(security.TokenAuth))

	authn := middleware.Authenticator(sessions)

	// Applied per group rather than globally: the countdown stream must stay
	// open until the contest ends, so it is registered without this cap.
	timeout := chiMiddleware.Timeout(60 * time.Second)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes
		authHandler := handler.NewAuthHandler(authService, sessions)
		v1.Group(func(public chi.Router) {
			public.Use(timeout)
			authHandler.RegisterRoutes(public)
		})
		v1.Group(func(protected chi.Router) {
			protected.Use(timeout, authn)
			authHandler.RegisterProtectedRoutes(protected)
		})

		// Contest routes (listing public, creation/registration protected)
		contestHandler := handler.NewContestHandler(contestService)
		questionHandler := handler.NewQuestionHandler(questionService, submissionService)
		v1.Route("/contests", func(cr chi.Router) {
			contestHandler.RegisterRoutes(cr, authn, timeout)
			cr.Group(func(protected chi.Router) {
				protected.Use(timeout, authn)
				questionHandler.RegisterContestRoutes(protected)
			})
		})

		// Question routes (protected)
		v1.Route("/questions", func(qr chi.Router) {
			qr.Use(timeout, authn)
			questionHandler.RegisterRoutes(qr)
		})

		// One-shot execution and problem HTML generation (protected)
		executionHandler := handler.NewExecutionHandler(submissionService)
		generatorHandler := handler.NewGeneratorHandler(generator)
		v1.Group(func(protected chi.Router) {
			protected.Use(timeout, authn)
			executionHandler.RegisterRoutes(protected)
			generatorHandler.RegisterRoutes(protected)
		})
	})

	return r
}
