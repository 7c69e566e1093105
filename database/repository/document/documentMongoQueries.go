// File: database/repository/document/documentMongoQueries.go
package documentRepo

import (
	"fmt"
	"time"

	"adamosign/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SetStatus updates only the document-level status field.
func (r *MongoDocumentRepo) SetStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set status on document %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("document with id %s not found", id)
	}
	return nil
}

// UpdateSigner replaces the matching signer entry inside a document's
// participants array using a positional update.
func (r *MongoDocumentRepo) UpdateSigner(documentID string, signer models.DocumentSigner) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": documentID, "participants.signerId": signer.SignerID}
	update := bson.M{"$set": bson.M{
		"participants.$": signer,
		"updatedAt":      time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update signer %s on document %s: %w", signer.SignerID, documentID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("signer %s not found on document %s", signer.SignerID, documentID)
	}
	return nil
}
