// File: database/repository/document/documentMongoCrud.go
package documentRepo

import (
	"fmt"
	"time"

	"adamosign/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new document record.
func (r *MongoDocumentRepo) Create(doc *models.Document) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// Update replaces an existing document record.
func (r *MongoDocumentRepo) Update(doc *models.Document) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doc.UpdatedAt = time.Now()
	filter := bson.M{"id": doc.ID}
	update := bson.M{"$set": doc}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update document with id %s: %w", doc.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("document with id %s not found", doc.ID)
	}
	return nil
}

// Delete removes a document record by its ID.
func (r *MongoDocumentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete document with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("document with id %s not found", id)
	}
	return nil
}
