package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/coruna-bus/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const currentSnapshotID = "current"

type mongoSnapshot struct {
	ID          string `bson:"_id"`
	GeneratedAt string `bson:"generated_at"`
	SourceURL   string `bson:"source_url"`
	Payload     string `bson:"payload"`
}

// MongoStore keeps the snapshot as a single document holding the encoded catalog
type MongoStore struct {
	Collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{Collection: collection}
}

func (s *MongoStore) Describe() string {
	return "mongodb:" + s.Collection.Database().Name() + "." + s.Collection.Name()
}

func (s *MongoStore) Load(ctx context.Context) (*ctdf.Catalog, error) {
	var document mongoSnapshot

	err := s.Collection.FindOne(ctx, bson.M{"_id": currentSnapshotID}).Decode(&document)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	catalog, err := Decode([]byte(document.Payload))
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring invalid catalog snapshot")
		return nil, nil
	}

	return catalog, nil
}

func (s *MongoStore) Save(ctx context.Context, catalog *ctdf.Catalog) error {
	data, err := Encode(catalog)
	if err != nil {
		return err
	}

	document := mongoSnapshot{
		ID:          currentSnapshotID,
		GeneratedAt: catalog.GeneratedAt.UTC().Format(time.RFC3339),
		SourceURL:   catalog.SourceURL,
		Payload:     string(data),
	}

	_, err = s.Collection.ReplaceOne(ctx, bson.M{"_id": currentSnapshotID}, document, options.Replace().SetUpsert(true))

	return err
}
