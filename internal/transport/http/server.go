package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/handler"
	"yatube/internal/redis"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/internal/worker"
)

// Run wires the application together and serves HTTP until interrupted.
func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// 3. Page cache: Redis when configured, in-process otherwise.
	var pageCache cache.PageCache
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		if err := redisClient.Ping(context.Background()); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		pageCache = cache.NewPageCache(redisClient.Client)
		log.Println("Page cache: redis")
	} else {
		pageCache = cache.NewMemoryPageCache()
		log.Println("Page cache: in-memory (REDIS_URL not set)")
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// 5. Services
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(refreshTokenRepo, cfg)
	feedService := service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, cfg.PageSize)
	postService := service.NewPostService(postRepo, groupRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)
	followService := service.NewFollowService(followRepo, userRepo)

	// Groups are curated out of band; an optional seed file creates any
	// that are missing.
	if cfg.GroupsSeedFile != "" {
		groups, err := service.LoadGroupSeedFile(cfg.GroupsSeedFile)
		if err != nil {
			return fmt.Errorf("failed to load group seed file: %w", err)
		}
		created, err := service.NewGroupService(groupRepo).Seed(context.Background(), groups)
		if err != nil {
			return fmt.Errorf("failed to seed groups: %w", err)
		}
		log.Printf("Seeded groups: file=%s created=%d", cfg.GroupsSeedFile, created)
	}

	// Media is optional: without R2 credentials uploads return 503 and the
	// rest of the application works normally.
	var mediaService *service.MediaService
	if cfg.R2AccountID != "" {
		mediaService, err = service.NewMediaService(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("failed to create media service: %w", err)
		}
		log.Println("Media storage: r2")
	} else {
		log.Println("Media storage: disabled (R2 not configured)")
	}

	// 6. Handlers
	router := NewRouter(RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userService, authService, cfg),
		FeedHandler:    handler.NewFeedHandler(feedService),
		PostHandler:    handler.NewPostHandler(postService, userService),
		CommentHandler: handler.NewCommentHandler(commentService),
		FollowHandler:  handler.NewFollowHandler(followService),
		MediaHandler:   handler.NewMediaHandler(mediaService),

		PageCache:     pageCache,
		IndexCacheTTL: cfg.IndexCacheTTL,
		JWTSecret:     cfg.JWTSecret,
	})

	// 7. Background janitor for expired refresh tokens
	janitor := worker.NewJanitor(refreshTokenRepo, worker.DefaultJanitorConfig())
	janitor.Start(context.Background())
	defer janitor.Stop()

	// 8. Serve until interrupted, then drain in-flight requests.
	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-stop:
		log.Printf("Received %s, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
