package database

import (
	"context"
	"fmt"
	"time"

	"github.com/travigo/coruna-bus/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const CatalogsCollection = "catalogs"

func ConnectMongoDB(ctx context.Context, cfg config.MongoConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Connection))
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("pinging mongodb: %w", err)
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(cfg.Database),
	}

	return nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}
