package routes

import (
	"net/http"
	"time"

	"github.com/Dosada05/tournament-bracket/handlers"
	"github.com/Dosada05/tournament-bracket/middleware"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tournament-bracket/docs"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	bracketHandler *handlers.BracketHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// WebSocket не должен попадать под таймаут запроса.
	router.Get("/ws/bracket", webSocketHandler.ServeWs)

	router.Group(func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
		}

		r.Post("/auth/login", authHandler.Login)

		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.OptionalAuthenticate(opts.JWTSecret))

			// Публичные маршруты
			r.Get("/roster", tournamentHandler.GetRosterHandler)
			r.Post("/roster/teams", tournamentHandler.AdmitTeamHandler)
			r.Get("/bracket", bracketHandler.GetBracketHandler)
			r.Post("/bracket/rounds/{round}/matches/{match}/score", bracketHandler.SubmitScoreHandler)

			// Только для администратора
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(opts.JWTSecret))
				r.Use(middleware.Authorize(models.RoleAdmin))

				r.Delete("/roster/teams/{index}", tournamentHandler.RemoveTeamHandler)
				r.Delete("/roster/waitlist/{index}", tournamentHandler.RemoveWaitlistedTeamHandler)
				r.Put("/settings/capacity", tournamentHandler.SetCapacityHandler)
				r.Put("/settings/mode", tournamentHandler.SetModeHandler)
				r.Post("/bracket/reset", bracketHandler.ResetBracketHandler)
				r.Post("/tournament/clear", tournamentHandler.ClearTournamentHandler)
			})
		})
	})
}
