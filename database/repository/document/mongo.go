package documentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reservo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoDocumentStore struct {
	coll *mongo.Collection
}

// NewMongoDocumentStore stores the document as a single record keyed by models.DocumentID.
func NewMongoDocumentStore(client *mongo.Client, dbName string) DocumentStore {
	return &mongoDocumentStore{
		coll: client.Database(dbName).Collection("agent"),
	}
}

func (r *mongoDocumentStore) Load(ctx context.Context) (*models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := models.DefaultDocument()
	err := r.coll.FindOne(ctx, bson.M{"_id": models.DocumentID}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		doc = models.DefaultDocument()
		if _, err := r.coll.InsertOne(ctx, doc); err != nil && !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to create default document: %w", err)
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

// Save replaces the document only if nobody saved since it was loaded.
func (r *mongoDocumentStore) Save(ctx context.Context, doc *models.Document) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	next := *doc
	next.ID = models.DocumentID
	next.Version = doc.Version + 1

	filter := bson.M{
		"_id":     models.DocumentID,
		"version": doc.Version,
	}
	res, err := r.coll.ReplaceOne(ctx, filter, &next)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	doc.Version = next.Version
	return nil
}
