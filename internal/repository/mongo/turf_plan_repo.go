package mongo

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const turfPlanCollectionName = "turf_plans"

// mongoTurfPlanRepository implements repository.TurfPlanRepository
type mongoTurfPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoTurfPlanRepository creates a new TurfPlan repository.
func NewMongoTurfPlanRepository(db *mongo.Database) repository.TurfPlanRepository {
	return &mongoTurfPlanRepository{
		collection: db.Collection(turfPlanCollectionName),
	}
}

// Create inserts a new turf plan.
func (r *mongoTurfPlanRepository) Create(ctx context.Context, plan *domain.TurfPlan) (primitive.ObjectID, error) {
	if plan.OwnerID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires ownerId and name")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single turf plan by its ID.
func (r *mongoTurfPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TurfPlan, error) {
	var plan domain.TurfPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByOwnerID retrieves every turf plan owned by a manager.
func (r *mongoTurfPlanRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.TurfPlan, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, ownerSort())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []domain.TurfPlan{}
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// Update overwrites every mutable field, including the time window.
func (r *mongoTurfPlanRepository) Update(ctx context.Context, plan *domain.TurfPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("turf plan ID is required for update")
	}

	plan.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":      plan.Name,
			"amount":    plan.Amount,
			"time_hr":   plan.TimeHr,
			"time_min":  plan.TimeMin,
			"category":  plan.Category,
			"sport":     plan.Sport,
			"from":      plan.From,
			"to":        plan.To,
			"active":    plan.Active,
			"updatedAt": plan.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": plan.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ToggleActive flips the active flag and returns the stored record after the flip.
func (r *mongoTurfPlanRepository) ToggleActive(ctx context.Context, id primitive.ObjectID) (*domain.TurfPlan, error) {
	var plan domain.TurfPlan
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, toggleActivePipeline(), opts).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// EnsureTurfPlanIndexes creates necessary indexes. Call during startup.
func EnsureTurfPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Listing query
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
		{
			// Booking flow looks plans up by ground and sport
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "category", Value: 1}, {Key: "sport", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
