package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/recipevault/engine/internal/api/handlers"
	mw "github.com/recipevault/engine/internal/api/middleware"
)

type Dependencies struct {
	HMACSecret         []byte
	UserHandler        *handlers.UserHandler
	TagsHandler        *handlers.TagsHandler
	IngredientsHandler *handlers.IngredientsHandler
	RecipesHandler     *handlers.RecipesHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/user", func(ur chi.Router) {
			ur.Post("/create", dep.UserHandler.Create)
			ur.Post("/token", dep.UserHandler.Token)

			ur.Route("/me", func(mr chi.Router) {
				mr.Use(mw.Auth(dep.HMACSecret))
				mr.Get("/", dep.UserHandler.Me)
				mr.Patch("/", dep.UserHandler.UpdateMe)
			})
		})

		api.Route("/recipe", func(rr chi.Router) {
			rr.Use(mw.Auth(dep.HMACSecret))

			rr.Get("/tags", dep.TagsHandler.List)
			rr.Post("/tags", dep.TagsHandler.Create)

			rr.Get("/ingredients", dep.IngredientsHandler.List)
			rr.Post("/ingredients", dep.IngredientsHandler.Create)

			rr.Route("/recipes", func(rcr chi.Router) {
				rcr.Get("/", dep.RecipesHandler.List)
				rcr.Post("/", dep.RecipesHandler.Create)

				rcr.Route("/{id}", func(dr chi.Router) {
					dr.Get("/", dep.RecipesHandler.Get)
					dr.Put("/", dep.RecipesHandler.Update)
					dr.Patch("/", dep.RecipesHandler.Patch)
					dr.Post("/upload-image", dep.RecipesHandler.UploadImage)
				})
			})
		})
	})

	return r
}
