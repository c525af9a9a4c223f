package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/mvidal0/nexo/internal/cache"
	"github.com/mvidal0/nexo/internal/config"
	"github.com/mvidal0/nexo/internal/database"
	"github.com/mvidal0/nexo/internal/identity"
	postgresrepo "github.com/mvidal0/nexo/internal/repository/postgres"
	"github.com/mvidal0/nexo/internal/service"
	"github.com/mvidal0/nexo/internal/transport/http/handlers"
	"github.com/mvidal0/nexo/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()

	if cfg.IDPURL == "" || cfg.IDPAnonKey == "" {
		log.Fatal("IDP_URL and IDP_ANON_KEY are required")
	}

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Identity provider
	verifier, err := identity.NewVerifier(identity.JWKSURL(cfg.IDPURL))
	if err != nil {
		log.Fatal(err)
	}
	idpClient := identity.NewClient(cfg.IDPURL, cfg.IDPAnonKey)

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	fieldRepo := postgresrepo.NewCustomFieldRepo(pool)
	badgeRepo := postgresrepo.NewBadgeRepo(pool)
	postRepo := postgresrepo.NewPostRepo(pool)

	// Services
	authService := service.NewAuthService(idpClient, userRepo, fieldRepo, badgeRepo, postRepo)
	profileService := service.NewProfileService(userRepo, fieldRepo, badgeRepo)
	postService := service.NewPostService(postRepo)

	// Profile cache is optional; the app runs without Redis
	if rdb, err := cache.Connect(cfg); err != nil {
		log.Printf("Profile cache disabled: %v", err)
	} else {
		profiles := cache.NewProfileCache(rdb)
		authService.SetProfileCache(profiles)
		profileService.SetProfileCache(profiles)
		postService.SetProfileCache(profiles)
		log.Println("Connected to redis")
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	postHandler := handlers.NewPostHandler(postService)

	// Auth middleware
	auth := middleware.Auth(verifier)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Protected - Auth
	mux.Handle("POST /api/v1/auth/sync", auth(http.HandlerFunc(authHandler.Sync)))
	mux.Handle("GET /api/v1/auth/me", auth(http.HandlerFunc(authHandler.Me)))

	// Protected - Profile
	mux.Handle("PATCH /api/v1/profile", auth(http.HandlerFunc(profileHandler.Update)))
	mux.Handle("POST /api/v1/profile/fields", auth(http.HandlerFunc(profileHandler.AddField)))
	mux.Handle("PUT /api/v1/profile/fields/{id}", auth(http.HandlerFunc(profileHandler.UpdateField)))
	mux.Handle("DELETE /api/v1/profile/fields/{id}", auth(http.HandlerFunc(profileHandler.DeleteField)))
	mux.Handle("PUT /api/v1/profile/badge", auth(http.HandlerFunc(profileHandler.UpsertBadge)))

	// Protected - Posts
	mux.Handle("GET /api/v1/posts", auth(http.HandlerFunc(postHandler.Feed)))
	mux.Handle("POST /api/v1/posts", auth(http.HandlerFunc(postHandler.Create)))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
