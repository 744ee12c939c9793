package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	v1 "github.com/alisoliman/recipe-app-api/api/v1"
	"github.com/alisoliman/recipe-app-api/config"
	"github.com/alisoliman/recipe-app-api/database"
	"github.com/alisoliman/recipe-app-api/models"
	"github.com/alisoliman/recipe-app-api/repositories"
	"github.com/alisoliman/recipe-app-api/services"
	"github.com/alisoliman/recipe-app-api/storage"
	"gorm.io/gorm"
)

// app holds the services built from a config and the resources to release
type app struct {
	deps    v1.Dependencies
	media   http.FileSystem
	closers []func() error
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

type stores struct {
	users       repositories.UserRepository
	tags        repositories.AttributeRepository[models.Tag]
	ingredients repositories.AttributeRepository[models.Ingredient]
	recipes     repositories.RecipeRepository
}

// newApp connects the configured backends and builds the v1 services
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	repos, err := a.openStores(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	revoked, err := a.openRevocationList(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	images, err := a.openImageStore(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	a.deps = v1.Dependencies{
		Users:          services.NewUserService(repos.users),
		Tokens:         services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, revoked),
		Tags:           services.NewAttributeService[models.Tag](repos.tags),
		Ingredients:    services.NewAttributeService[models.Ingredient](repos.ingredients),
		Recipes:        services.NewRecipeService(repos.recipes, repos.tags, repos.ingredients, images, services.WithMaxUploadBytes(cfg.MaxUploadBytes)),
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	return a, nil
}

func (a *app) openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		slog.Warn("using in-memory storage; data is lost on exit")
		mem := repositories.NewMemoryStore()
		return stores{
			users:       mem.Users(),
			tags:        mem.Tags(),
			ingredients: mem.Ingredients(),
			recipes:     mem.Recipes(),
		}, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return stores{}, err
	}
	a.closers = append(a.closers, func() error { return database.Close(db) })

	if err := database.Migrate(ctx, db); err != nil {
		return stores{}, err
	}
	return stores{
		users:       repositories.NewUserRepository(db),
		tags:        repositories.NewAttributeRepository[models.Tag](db),
		ingredients: repositories.NewAttributeRepository[models.Ingredient](db),
		recipes:     repositories.NewRecipeRepository(db),
	}, nil
}

func (a *app) openRevocationList(ctx context.Context, cfg *config.Config) (repositories.RevocationList, error) {
	if cfg.Redis.Addr == "" {
		return repositories.NewMemoryRevocationList(), nil
	}

	rdb, err := database.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, rdb.Close)
	return repositories.NewRedisRevocationList(rdb), nil
}

func (a *app) openImageStore(ctx context.Context, cfg *config.Config) (storage.ImageStore, error) {
	if cfg.MediaBackend == config.MediaBackendMinio {
		store, err := storage.NewMinioStore(ctx, cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to object storage: %w", err)
		}
		return store, nil
	}

	store, err := storage.NewDiskStore(cfg.MediaRoot, cfg.MediaURL)
	if err != nil {
		return nil, err
	}
	a.media = store.FileSystem()
	return store, nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(ctx, cfg.DatabaseURL, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
