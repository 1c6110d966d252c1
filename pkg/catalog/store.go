package catalog

import (
	"context"
	"fmt"

	"github.com/travigo/coruna-bus/pkg/config"
	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/database"
	"github.com/travigo/coruna-bus/pkg/redis_client"
)

// Store persists the catalog snapshot. Load returns a nil catalog without an
// error when no usable snapshot exists.
type Store interface {
	Load(ctx context.Context) (*ctdf.Catalog, error)
	Save(ctx context.Context, catalog *ctdf.Catalog) error
	Describe() string
}

// NewStore connects the backend selected by cfg.CatalogStore
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.CatalogStore {
	case "", "file":
		return NewFileStore(cfg.CatalogPath), nil
	case "redis":
		if err := redis_client.Connect(ctx, cfg.Redis); err != nil {
			return nil, err
		}
		return NewRedisStore(redis_client.Client), nil
	case "mongo":
		if err := database.ConnectMongoDB(ctx, cfg.Mongo); err != nil {
			return nil, err
		}
		return NewMongoStore(database.GetCollection(database.CatalogsCollection)), nil
	default:
		return nil, fmt.Errorf("unknown catalog store %q", cfg.CatalogStore)
	}
}
