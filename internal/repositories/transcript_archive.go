package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nest/internal/models"
	"nest/internal/structures"
)

type TranscriptArchiveInterface interface {
	Archive(ctx context.Context, transcript *models.ChatTranscript) error
	FindBySession(ctx context.Context, sessionID int64) (*models.ChatTranscript, error)
}

// MongoTranscriptArchive stores ended chat sessions as documents, one per
// session id.
type MongoTranscriptArchive struct {
	collection *mongo.Collection
}

// NewTranscriptArchive returns a no-op archive when client is nil.
func NewTranscriptArchive(client *mongo.Client, conf *structures.Config) TranscriptArchiveInterface {
	if client == nil {
		return noopArchive{}
	}
	return &MongoTranscriptArchive{
		collection: client.Database(conf.Mongo.Database).Collection(conf.Mongo.Collection),
	}
}

func (a *MongoTranscriptArchive) Archive(ctx context.Context, t *models.ChatTranscript) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	_, err := a.collection.ReplaceOne(ctx,
		bson.M{"session_id": t.SessionID},
		t,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("archive transcript %d: %w", t.SessionID, err)
	}
	return nil
}

func (a *MongoTranscriptArchive) FindBySession(ctx context.Context, sessionID int64) (*models.ChatTranscript, error) {
	var t models.ChatTranscript
	err := a.collection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("transcript %d: %w", sessionID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find transcript %d: %w", sessionID, err)
	}
	return &t, nil
}

type noopArchive struct{}

func (noopArchive) Archive(context.Context, *models.ChatTranscript) error { return nil }

func (noopArchive) FindBySession(_ context.Context, sessionID int64) (*models.ChatTranscript, error) {
	return nil, fmt.Errorf("transcript %d: %w", sessionID, models.ErrNotFound)
}
