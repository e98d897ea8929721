package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vrindavan/society-portal/internal/domain"
	"vrindavan/society-portal/internal/repository"
)

// Collection names per submission type. Each type gets its own collection so
// the unique acknowledgement index and exports stay per-type.
var submissionCollections = map[domain.SubmissionType]string{
	domain.TypeShareCertificate: "share_certificates",
	domain.TypeNomination:       "nominations",
	domain.TypeNOCRequest:       "noc_requests",
}

// mongoSubmissionRepository implements repository.SubmissionRepository using MongoDB.
type mongoSubmissionRepository struct {
	db *mongo.Database
}

// NewMongoSubmissionRepository creates a new instance of mongoSubmissionRepository.
// It expects a connected *mongo.Database instance.
func NewMongoSubmissionRepository(db *mongo.Database) repository.SubmissionRepository {
	return &mongoSubmissionRepository{db: db}
}

func (r *mongoSubmissionRepository) collection(t domain.SubmissionType) *mongo.Collection {
	return r.db.Collection(submissionCollections[t])
}

// Create inserts a new submission into the collection for its type.
// A duplicate acknowledgement number maps to repository.ErrDuplicateKey so
// the service layer can regenerate and retry.
func (r *mongoSubmissionRepository) Create(ctx context.Context, sub *domain.Submission) (primitive.ObjectID, error) {
	if !sub.Type.Valid() {
		return primitive.NilObjectID, errors.New("submission type is required")
	}
	if sub.AcknowledgementNumber == "" {
		return primitive.NilObjectID, errors.New("acknowledgement number is required")
	}

	sub.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	result, err := r.collection(sub.Type).InsertOne(ctx, sub)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a submission by its MongoDB ObjectID.
func (r *mongoSubmissionRepository) GetByID(ctx context.Context, t domain.SubmissionType, id primitive.ObjectID) (*domain.Submission, error) {
	var sub domain.Submission
	filter := bson.M{"_id": id}

	err := r.collection(t).FindOne(ctx, filter).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// GetByAcknowledgement retrieves a submission by its acknowledgement number.
// Exact match only; the acknowledgement number is the sole applicant-facing key.
func (r *mongoSubmissionRepository) GetByAcknowledgement(ctx context.Context, t domain.SubmissionType, ackNo string) (*domain.Submission, error) {
	var sub domain.Submission
	filter := bson.M{"acknowledgementNumber": ackNo}

	err := r.collection(t).FindOne(ctx, filter).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// List retrieves all submissions of a type, newest first, optionally narrowed
// by status and/or flat number.
func (r *mongoSubmissionRepository) List(ctx context.Context, t domain.SubmissionType, filter repository.SubmissionFilter) ([]domain.Submission, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.FlatNumber != "" {
		query["flatNumber"] = filter.FlatNumber
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection(t).Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []domain.Submission
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	if subs == nil {
		subs = []domain.Submission{}
	}
	return subs, nil
}

// UpdateStatus overwrites the status and remarks of a submission and returns
// the updated record. No transition graph is enforced.
func (r *mongoSubmissionRepository) UpdateStatus(ctx context.Context, t domain.SubmissionType, id primitive.ObjectID, status domain.Status, remarks string) (*domain.Submission, error) {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"remarks":   remarks,
			"updatedAt": time.Now().UTC(),
		},
	}

	var sub domain.Submission
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection(t).FindOneAndUpdate(ctx, filter, update, opts).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// Delete removes a submission record. The caller is responsible for releasing
// the storage objects the record references.
func (r *mongoSubmissionRepository) Delete(ctx context.Context, t domain.SubmissionType, id primitive.ObjectID) error {
	result, err := r.collection(t).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByStatus aggregates the number of submissions per status for one type.
func (r *mongoSubmissionRepository) CountByStatus(ctx context.Context, t domain.SubmissionType) (map[domain.Status]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection(t).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status domain.Status `bson:"_id"`
		Count  int64         `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// EnsureSubmissionIndexes creates the indexes for one submission collection.
// Call once per collection during application startup. The unique index on
// acknowledgementNumber is what guarantees collision-free acknowledgement
// numbers under concurrent submissions.
func EnsureSubmissionIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "acknowledgementNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "flatNumber", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// CollectionNameFor exposes the collection name for a submission type, used
// by the index bootstrap in main.
func CollectionNameFor(t domain.SubmissionType) string {
	return submissionCollections[t]
}
