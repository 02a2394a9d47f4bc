package store

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Store on top of MongoDB.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var _ Store = (*Mongo)(nil)

func NewMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	log.Println("Connected to MongoDB")
	m := &Mongo{
		Client:   client,
		Database: client.Database(dbName),
	}
	if err := m.ensureIndexes(ctx); err != nil {
		log.Println("warning: ensure indexes:", err)
	}
	return m, nil
}

func (m *Mongo) Users() *mongo.Collection {
	return m.Database.Collection("users")
}

func (m *Mongo) Articles() *mongo.Collection {
	return m.Database.Collection("articles")
}

func (m *Mongo) Videos() *mongo.Collection {
	return m.Database.Collection("videos")
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.Users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"username": 1}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"email": 1}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}
	_, err = m.Articles().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"status": 1, "category": 1}},
		{Keys: bson.M{"createdAt": -1}},
	})
	if err != nil {
		return err
	}
	_, err = m.Videos().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"status": 1, "category": 1}},
		{Keys: bson.M{"createdAt": -1}},
	})
	return err
}

func (m *Mongo) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// mapErr normalizes driver errors to the store sentinel errors.
func mapErr(err error) error {
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
