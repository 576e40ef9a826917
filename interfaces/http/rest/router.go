package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"cookbook-backend/application/ports"
	"cookbook-backend/interfaces/http/rest/handlers"
	"cookbook-backend/interfaces/http/rest/middleware"
	"cookbook-backend/interfaces/http/web"
	"cookbook-backend/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	authHandler   *handlers.AuthHandler
	recipeHandler *handlers.RecipeHandler
	sessions      *auth.Manager
	users         ports.UserRepository
	imageDir      string
	logger        *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	authHandler *handlers.AuthHandler,
	recipeHandler *handlers.RecipeHandler,
	sessions *auth.Manager,
	users ports.UserRepository,
	imageDir string,
	logger *zap.Logger,
) *Router {
	return &Router{
		authHandler:   authHandler,
		recipeHandler: recipeHandler,
		sessions:      sessions,
		users:         users,
		imageDir:      imageDir,
		logger:        logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Every route sees the session's user when there is one
	router.Use(middleware.Authenticate(rt.sessions, rt.users, rt.logger))

	// Health check
	router.Get("/health", rt.healthCheck)

	// Static assets: embedded stylesheet and uploaded recipe images
	router.Handle("/css/*", http.StripPrefix("/css/", web.StylesheetHandler()))
	router.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(rt.imageDir))))

	// Public pages
	router.Get("/", rt.authHandler.Landing)
	router.Get("/login", rt.authHandler.ShowLogin)
	router.Post("/login", rt.authHandler.Login)
	router.Get("/register", rt.authHandler.ShowRegister)
	router.Post("/register", rt.authHandler.Register)

	// Authenticated pages
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser())

		r.Get("/logout", rt.authHandler.Logout)

		r.Get("/browse", rt.recipeHandler.Browse)
		r.Get("/recipe-add", rt.recipeHandler.ShowAdd)
		r.Post("/recipe-add", rt.recipeHandler.Create)
		r.Get("/my-recipes", rt.recipeHandler.MyRecipes)
		r.Post("/my-recipes", rt.recipeHandler.BulkDelete)
		r.Get("/saved-recipes", rt.recipeHandler.SavedRecipes)

		r.Route("/recipe/{slug}", func(r chi.Router) {
			r.Get("/", rt.recipeHandler.Detail)
			r.Post("/", rt.recipeHandler.AddComment)
			r.Get("/edit", rt.recipeHandler.ShowEdit)
			r.Post("/edit", rt.recipeHandler.Edit)
			r.Get("/delete", rt.recipeHandler.Delete)
			r.Get("/save", rt.recipeHandler.ToggleSave)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
