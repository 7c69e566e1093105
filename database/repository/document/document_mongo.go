package documentRepo

import (
	"context"
	"fmt"
	"time"

	"adamosign/database"
	"adamosign/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDocumentRepo implements DocumentRepository using MongoDB.
type MongoDocumentRepo struct {
	coll *mongo.Collection
}

// NewMongoDocumentRepo creates a new instance of DocumentRepository using MongoDB.
func NewMongoDocumentRepo() DocumentRepository {
	coll := database.MongoClient.Database("adamosign").Collection("documents")
	repo := &MongoDocumentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoDocumentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ownerId", Value: 1}}},
		{Keys: bson.D{{Key: "participants.signerId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a document by its unique ID.
func (r *MongoDocumentRepo) GetByID(id string) (*models.Document, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc models.Document
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch document with id %s: %w", id, err)
	}
	return &doc, nil
}

// GetByOwner retrieves all documents belonging to the given owner, newest first.
func (r *MongoDocumentRepo) GetByOwner(ownerID string) ([]models.Document, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve documents for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	for cursor.Next(ctx) {
		var d models.Document
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}
