package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"examforge/internal/model"
)

// SubmissionRecordRepo handles MongoDB operations for the submission archive
type SubmissionRecordRepo interface {
	Insert(ctx context.Context, record *model.SubmissionRecord) (string, error)
	LatestByDraftID(ctx context.Context, draftID string) (*model.SubmissionRecord, error)
	ListByAdminID(ctx context.Context, adminID string) ([]*model.SubmissionRecord, error)
}

type submissionRecordRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRecordRepo creates a new submission record repository
func NewSubmissionRecordRepo(db *mongo.Database) SubmissionRecordRepo {
	return &submissionRecordRepo{
		collection: db.Collection("submission_records"),
	}
}

func (r *submissionRecordRepo) Insert(ctx context.Context, record *model.SubmissionRecord) (string, error) {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

func (r *submissionRecordRepo) LatestByDraftID(ctx context.Context, draftID string) (*model.SubmissionRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "submittedAt", Value: -1}})

	var record model.SubmissionRecord
	err := r.collection.FindOne(ctx, bson.M{"draftId": draftID}, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *submissionRecordRepo) ListByAdminID(ctx context.Context, adminID string) ([]*model.SubmissionRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"adminId": adminID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.SubmissionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
