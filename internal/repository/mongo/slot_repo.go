// internal/repository/mongo/slot_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"functionallab/coach-os/internal/repository"
)

const slotCollectionName = "slots"

// slotDocument is one slot; the slot name is the document _id.
type slotDocument struct {
	Name      string    `bson:"_id"`
	Value     string    `bson:"value"` // JSON text, kept opaque to Mongo
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoSlotRepository implements repository.SlotStore
type mongoSlotRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoSlotRepository creates a slot repository on db. The client is
// disconnected by Close.
func NewMongoSlotRepository(client *mongo.Client, db *mongo.Database) repository.SlotStore {
	return &mongoSlotRepository{
		client:     client,
		collection: db.Collection(slotCollectionName),
	}
}

// Get retrieves the raw JSON value of a slot.
func (r *mongoSlotRepository) Get(ctx context.Context, slot repository.Slot) ([]byte, error) {
	var doc slotDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": string(slot)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return []byte(doc.Value), nil
}

// Put replaces the slot document, creating it when absent.
func (r *mongoSlotRepository) Put(ctx context.Context, slot repository.Slot, value []byte) error {
	doc := slotDocument{
		Name:      string(slot),
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.Name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}

// Delete removes the slot document. Missing documents are not an error.
func (r *mongoSlotRepository) Delete(ctx context.Context, slot repository.Slot) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": string(slot)})
	if err != nil {
		return errors.Join(repository.ErrDeleteFailed, err)
	}
	return nil
}

func (r *mongoSlotRepository) Close() error {
	return DisconnectDB(r.client)
}

// EnsureSlotIndexes creates necessary indexes. Call during startup.
func EnsureSlotIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Lets operators find stale slots without a collection scan.
			Keys:    bson.D{{Key: "updatedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// SlotCollection returns the collection the repository writes to.
func SlotCollection(db *mongo.Database) *mongo.Collection {
	return db.Collection(slotCollectionName)
}
