package repository

import (
	"context"
	"errors"
	"fmt"

	"goshorturl/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoRepo connects to the MongoDB deployment at uri. When the URI names a
// user, key is used as its password so the secret stays out of the URI.
func NewMongoRepo(ctx context.Context, uri, key, dbName, collection string) (Repository, error) {
	opts := options.Client().ApplyURI(uri)
	if opts.Auth != nil && key != "" {
		opts.Auth.Password = key
		opts.Auth.PasswordSet = true
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &mongoRepository{
		collection: client.Database(dbName).Collection(collection),
	}, nil
}

type mongoRepository struct {
	collection *mongo.Collection
}

func (m *mongoRepository) Upsert(ctx context.Context, link *models.ShortLink) error {
	_, err := m.collection.ReplaceOne(ctx,
		bson.M{"_id": link.ID},
		link,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

func (m *mongoRepository) Get(ctx context.Context, id string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&link); err != nil {
		return nil, mongoError("find document", err)
	}
	return &link, nil
}

func (m *mongoRepository) IncrementClicks(ctx context.Context, id string) (*models.ShortLink, error) {
	var link models.ShortLink
	err := m.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"clicks": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&link)
	if err != nil {
		return nil, mongoError("increment clicks", err)
	}
	return &link, nil
}

func mongoError(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrRecordNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
