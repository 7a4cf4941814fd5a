package container

import (
	"context"
	"fmt"
	"time"

	"bookcatalog-backend/internal/config"
	authorhandler "bookcatalog-backend/internal/domains/author/handler"
	authorrepo "bookcatalog-backend/internal/domains/author/repository"
	authorservice "bookcatalog-backend/internal/domains/author/service"
	bookhandler "bookcatalog-backend/internal/domains/book/handler"
	bookrepo "bookcatalog-backend/internal/domains/book/repository"
	bookservice "bookcatalog-backend/internal/domains/book/service"
	categoryhandler "bookcatalog-backend/internal/domains/category/handler"
	categoryrepo "bookcatalog-backend/internal/domains/category/repository"
	categoryservice "bookcatalog-backend/internal/domains/category/service"
	userhandler "bookcatalog-backend/internal/domains/user/handler"
	userrepo "bookcatalog-backend/internal/domains/user/repository"
	userservice "bookcatalog-backend/internal/domains/user/service"
	"bookcatalog-backend/internal/infrastructure/cache"
	"bookcatalog-backend/internal/infrastructure/database"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/pkg/jwt"
	"bookcatalog-backend/pkg/logger"
)

// Container wires configuration, infrastructure, services and handlers
// in dependency order. Everything the router needs hangs off it.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      *cache.RedisCache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	AuthorHandler   *authorhandler.AuthorHandler
	CategoryHandler *categoryhandler.CategoryHandler
	BookHandler     *bookhandler.BookHandler
	UserHandler     *userhandler.UserHandler
}

func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.App.Environment)

	db := database.NewPostgresDB(cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis)
	if err := redisCache.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		db.Close()
		_ = redisCache.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}

	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	processor := storage.NewImageProcessor()

	authorService := authorservice.NewAuthorService(
		authorrepo.NewPostgresRepository(db.Pool), redisCache)
	categoryService := categoryservice.NewCategoryService(
		categoryrepo.NewPostgresRepository(db.Pool), redisCache)
	bookService := bookservice.NewBookService(
		bookrepo.NewPostgresRepository(db.Pool), redisCache, minioStorage, processor)
	userService := userservice.NewUserService(
		userrepo.NewPostgresRepository(db.Pool), bookService, jwtManager)

	return &Container{
		Config:     cfg,
		DB:         db,
		Cache:      redisCache,
		Storage:    minioStorage,
		JWTManager: jwtManager,

		AuthorHandler:   authorhandler.NewAuthorHandler(authorService),
		CategoryHandler: categoryhandler.NewCategoryHandler(categoryService),
		BookHandler:     bookhandler.NewBookHandler(bookService),
		UserHandler:     userhandler.NewUserHandler(userService),
	}, nil
}

// Cleanup releases infrastructure connections in reverse order.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Warn("failed to close redis", map[string]interface{}{"error": err.Error()})
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
