package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/sada-news/backend/cache"
	"github.com/sada-news/backend/config"
	"github.com/sada-news/backend/handlers"
	"github.com/sada-news/backend/middleware"
	"github.com/sada-news/backend/models"
	"github.com/sada-news/backend/service"
	"github.com/sada-news/backend/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("config:", err)
	}
	handlers.Verbose = !cfg.Production()

	ctx := context.Background()
	var db store.Store
	switch cfg.Storage {
	case config.StorageMemory:
		log.Println("using in-memory storage (development mode, nothing persists)")
		db = store.NewMemory()
	default:
		db, err = store.NewMongo(ctx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			log.Fatal("mongodb:", err)
		}
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Println("store close:", err)
		}
	}()

	if err := seedAdmin(ctx, db, cfg); err != nil {
		log.Fatal("seed admin:", err)
	}

	listCache, err := cache.New(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		log.Fatal("cache:", err)
	}
	defer listCache.Close()
	if cfg.RedisURL != "" {
		log.Println("using redis cache")
	}

	var s3Service *service.S3Service
	if cfg.S3Bucket != "" {
		s3Service, err = service.NewS3Service(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			log.Fatal("s3:", err)
		}
	} else {
		log.Println("warning: AWS_S3_BUCKET not set; uploads will fail")
	}

	authHandler := &handlers.AuthHandler{
		Store:     db,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.JWTExpires,
	}
	articlesHandler := &handlers.ArticlesHandler{Store: db, Cache: listCache, CacheTTL: cfg.CacheTTL}
	videosHandler := &handlers.VideosHandler{Store: db, Cache: listCache, CacheTTL: cfg.CacheTTL}
	usersHandler := &handlers.UsersHandler{Store: db}
	searchHandler := &handlers.SearchHandler{Store: db}
	uploadHandler := &handlers.UploadHandler{MaxBytes: cfg.MaxUploadMB * 1024 * 1024}
	if s3Service != nil {
		uploadHandler.S3 = s3Service
		articlesHandler.Media = s3Service
		videosHandler.Media = s3Service
	}
	loginGuard := middleware.NewLoginGuard(0, 0)
	authed := middleware.Auth(cfg.JWTSecret, db)

	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(loginGuard.Middleware())
			r.Post("/auth/login", authHandler.Login)
		})
		r.Post("/auth/register", authHandler.Register)

		// Public reads.
		r.Get("/articles", articlesHandler.List)
		r.Get("/articles/{id}", articlesHandler.Get)
		r.Post("/articles/{id}/like", articlesHandler.Like)
		r.Post("/articles/{id}/unlike", articlesHandler.Unlike)
		r.Post("/articles/{id}/comments", articlesHandler.AddComment)
		r.Get("/videos", videosHandler.List)
		r.Get("/videos/{id}", videosHandler.Get)
		r.Post("/videos/{id}/like", videosHandler.Like)
		r.Post("/videos/{id}/unlike", videosHandler.Unlike)
		r.Get("/search", searchHandler.Search)

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Get("/auth/me", authHandler.Me)
			r.Post("/articles", articlesHandler.Create)
			r.Put("/articles/{id}", articlesHandler.Update)
			r.Delete("/articles/{id}", articlesHandler.Delete)
			r.Post("/videos", videosHandler.Create)
			r.Put("/videos/{id}", videosHandler.Update)
			r.Delete("/videos/{id}", videosHandler.Delete)
			r.Post("/upload", uploadHandler.Upload)
		})

		// Admin routes.
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/admin/users", usersHandler.List)
			r.Post("/admin/users", usersHandler.Create)
			r.Patch("/admin/users/{id}/toggle-activation", usersHandler.ToggleActivation)
			r.Patch("/admin/users/{id}/approve", usersHandler.Approve)
			r.Delete("/admin/users/{id}", usersHandler.Delete)
		})
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("server listening on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}

// seedAdmin creates the initial admin account when the user collection is
// empty, so a fresh deployment can log in.
func seedAdmin(ctx context.Context, db store.Store, cfg *config.Config) error {
	count, err := db.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.AdminPassword == "" {
		log.Println("warning: no users exist and ADMIN_PASSWORD is not set; skipping admin seed")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	admin := &models.User{
		Username:   strings.ToLower(cfg.AdminUsername),
		Email:      strings.ToLower(cfg.AdminEmail),
		Password:   string(hash),
		Role:       models.RoleAdmin,
		IsActive:   true,
		IsApproved: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := db.CreateUser(ctx, admin); err != nil {
		return err
	}
	log.Println("seeded initial admin user:", admin.Username)
	return nil
}
