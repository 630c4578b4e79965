package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second

	usersCollection    = "users"
	todosCollection    = "todos"
	countersCollection = "counters"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect opens the client, pings the primary and creates the indexes the
// repositories rely on.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI).SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := Ping(connectCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, db, nil
}

// Ping runs the ping command against db. It doubles as the readiness check.
func Ping(ctx context.Context, db *mongo.Database) error {
	if err := db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique username index and the owner lookup index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	_, err = db.Collection(todosCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("todos index: %w", err)
	}
	return nil
}

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// nextID hands out monotonically increasing numeric ids per collection so
// mongo-backed users and todos keep the same integer ids as the SQL store.
func nextID(ctx context.Context, db *mongo.Database, name string) (uint64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var c counter
	err := db.Collection(countersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": 1}}, opts).
		Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return uint64(c.Seq), nil
}
