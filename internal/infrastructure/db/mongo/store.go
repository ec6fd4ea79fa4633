package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

const (
	recordsCollection = "records"
	opTimeout         = 5 * time.Second
)

// Store keeps one document per record, keyed by record name.
type Store struct {
	coll *mongo.Collection
}

type recordDoc struct {
	Key       string `bson:"_id"`
	Data      string `bson:"data"`
	UpdatedAt int64  `bson:"updated_at"`
}

// NewStore uses collection in db, or "records" when collection is empty.
func NewStore(db *mongo.Database, collection string) *Store {
	if collection == "" {
		collection = recordsCollection
	}
	return &Store{coll: db.Collection(collection)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc recordDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("find record %s: %w", key, err)
	}
	return []byte(doc.Data), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := recordDoc{Key: key, Data: string(value), UpdatedAt: time.Now().Unix()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.coll.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
