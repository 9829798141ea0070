package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/vendas/internal/auth"
	"github.com/MrJamesThe3rd/vendas/internal/http/importsheet"
	"github.com/MrJamesThe3rd/vendas/internal/http/sales"
)

func New(
	allowedOrigins []string,
	authn *auth.Authenticator,
	importV1 *importsheet.Handler,
	salesV1 *sales.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Idempotency-Key"},
		AllowCredentials: true,
	}))
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authn.Middleware)

		r.Route("/import", importV1.Routes)

		salesV1.Routes(r)
	})

	return router
}
