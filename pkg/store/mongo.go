package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/layercake/pkg/observability"
)

// MongoStore persists scenes in a MongoDB collection for multi-instance
// deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and uses the "scenes" collection of
// the given database. The connection is verified with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection("scenes"),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Scene, error) {
	var scene Scene
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&scene)
	if errors.Is(err, mongo.ErrNoDocuments) {
		observability.Store().OnStoreGet(ctx, "mongo", id, false)
		return nil, ErrSceneNotFound
	}
	if err != nil {
		observability.Store().OnStoreError(ctx, "mongo", "get", err)
		return nil, fmt.Errorf("find scene: %w", err)
	}
	observability.Store().OnStoreGet(ctx, "mongo", id, true)
	return &scene, nil
}

func (s *MongoStore) List(ctx context.Context) ([]*Scene, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		observability.Store().OnStoreError(ctx, "mongo", "list", err)
		return nil, fmt.Errorf("find scenes: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*Scene
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode scenes: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Save(ctx context.Context, scene *Scene) error {
	stamp(scene, uuid.NewString)

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": scene.ID}, scene, opts); err != nil {
		observability.Store().OnStoreError(ctx, "mongo", "put", err)
		return fmt.Errorf("save scene: %w", err)
	}
	observability.Store().OnStorePut(ctx, "mongo", scene.ID, len(scene.Document))
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		observability.Store().OnStoreError(ctx, "mongo", "delete", err)
		return fmt.Errorf("delete scene: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrSceneNotFound
	}
	observability.Store().OnStoreDelete(ctx, "mongo", id)
	return nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
