package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/maisonbleue/backend/internal/auth"
	"github.com/maisonbleue/backend/internal/config"
	"github.com/maisonbleue/backend/internal/database"
	postgresrepo "github.com/maisonbleue/backend/internal/repository/postgres"
	"github.com/maisonbleue/backend/internal/service"
	"github.com/maisonbleue/backend/internal/storage"
	"github.com/maisonbleue/backend/internal/transport/http/handlers"
	"github.com/maisonbleue/backend/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Database
	if err := database.Migrate(ctx, cfg); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		slog.Error("connecting to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	slog.Info("connected to database", "host", cfg.DBHost, "db", cfg.DBName)

	// Image storage
	var store storage.Store
	if cfg.StorageDriver == "s3" {
		store, err = storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	} else {
		store, err = storage.NewLocalStore(cfg.UploadDir)
	}
	if err != nil {
		slog.Error("setting up storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	categoryRepo := postgresrepo.NewCategoryRepo(pool)
	articleRepo := postgresrepo.NewArticleRepo(pool)
	publicationRepo := postgresrepo.NewPublicationRepo(pool)
	boutiqueRepo := postgresrepo.NewBoutiqueRepo(pool)

	// Services
	issuer := auth.NewIssuer(cfg.JWTSecret, time.Duration(cfg.TokenLifetimeMin)*time.Minute)
	authService := service.NewAuthService(userRepo, issuer)
	categoryService := service.NewCategoryService(categoryRepo)
	articleService := service.NewArticleService(articleRepo)
	publicationService := service.NewPublicationService(publicationRepo)
	boutiqueService := service.NewBoutiqueService(boutiqueRepo)
	uploadService := service.NewUploadService(store, cfg.MaxUploadMB*1024*1024)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	articleHandler := handlers.NewArticleHandler(articleService)
	publicationHandler := handlers.NewPublicationHandler(publicationService)
	boutiqueHandler := handlers.NewBoutiqueHandler(boutiqueService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// Auth middleware
	protected := middleware.Auth(authService)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Auth
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/init", authHandler.Init)
	mux.Handle("GET /api/auth/me", protected(http.HandlerFunc(authHandler.Me)))

	// Categories
	mux.HandleFunc("GET /api/categories", categoryHandler.List)
	mux.Handle("POST /api/categories", protected(http.HandlerFunc(categoryHandler.Create)))
	mux.Handle("PUT /api/categories/{id}", protected(http.HandlerFunc(categoryHandler.Update)))
	mux.Handle("DELETE /api/categories/{id}", protected(http.HandlerFunc(categoryHandler.Delete)))

	// Articles
	mux.HandleFunc("GET /api/articles", articleHandler.List)
	mux.HandleFunc("GET /api/articles/{slug}", articleHandler.Get)
	mux.Handle("GET /api/articles/admin/all", protected(http.HandlerFunc(articleHandler.ListAdmin)))
	mux.Handle("GET /api/articles/admin/{id}", protected(http.HandlerFunc(articleHandler.GetAdmin)))
	mux.Handle("POST /api/articles", protected(http.HandlerFunc(articleHandler.Create)))
	mux.Handle("PUT /api/articles/{id}", protected(http.HandlerFunc(articleHandler.Update)))
	mux.Handle("DELETE /api/articles/{id}", protected(http.HandlerFunc(articleHandler.Delete)))

	// Publications
	mux.HandleFunc("GET /api/publications", publicationHandler.List)
	mux.HandleFunc("GET /api/publications/{slug}", publicationHandler.Get)
	mux.Handle("GET /api/publications/admin/all", protected(http.HandlerFunc(publicationHandler.ListAdmin)))
	mux.Handle("GET /api/publications/admin/{id}", protected(http.HandlerFunc(publicationHandler.GetAdmin)))
	mux.Handle("POST /api/publications", protected(http.HandlerFunc(publicationHandler.Create)))
	mux.Handle("PUT /api/publications/{id}", protected(http.HandlerFunc(publicationHandler.Update)))
	mux.Handle("DELETE /api/publications/{id}", protected(http.HandlerFunc(publicationHandler.Delete)))

	// Boutique
	mux.HandleFunc("GET /api/boutique", boutiqueHandler.List)
	mux.HandleFunc("GET /api/boutique/{slug}", boutiqueHandler.Get)
	mux.Handle("GET /api/boutique/admin/all", protected(http.HandlerFunc(boutiqueHandler.ListAdmin)))
	mux.Handle("GET /api/boutique/admin/{id}", protected(http.HandlerFunc(boutiqueHandler.GetAdmin)))
	mux.Handle("POST /api/boutique", protected(http.HandlerFunc(boutiqueHandler.Create)))
	mux.Handle("PUT /api/boutique/{id}", protected(http.HandlerFunc(boutiqueHandler.Update)))
	mux.Handle("DELETE /api/boutique/{id}", protected(http.HandlerFunc(boutiqueHandler.Delete)))

	// Upload + static serving of locally stored images
	mux.Handle("POST /api/upload", protected(http.HandlerFunc(uploadHandler.Upload)))
	if cfg.StorageDriver == "local" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	slog.Info("starting server", "addr", addr, "env", cfg.AppEnv)
	if err := http.ListenAndServe(addr, middleware.CORS(cfg.AllowedOrigins, mux)); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
