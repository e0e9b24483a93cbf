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

const academyPlanCollectionName = "academy_plans"

// mongoAcademyPlanRepository implements repository.AcademyPlanRepository
type mongoAcademyPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoAcademyPlanRepository creates a new AcademyPlan repository.
func NewMongoAcademyPlanRepository(db *mongo.Database) repository.AcademyPlanRepository {
	return &mongoAcademyPlanRepository{
		collection: db.Collection(academyPlanCollectionName),
	}
}

// Create inserts a new academy plan.
func (r *mongoAcademyPlanRepository) Create(ctx context.Context, plan *domain.AcademyPlan) (primitive.ObjectID, error) {
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

// GetByID retrieves a single academy plan by its ID.
func (r *mongoAcademyPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AcademyPlan, error) {
	var plan domain.AcademyPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByOwnerID retrieves every academy plan owned by a manager.
func (r *mongoAcademyPlanRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.AcademyPlan, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, ownerSort())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []domain.AcademyPlan{}
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// Update overwrites every mutable field. OwnerID and CreatedAt are never touched.
func (r *mongoAcademyPlanRepository) Update(ctx context.Context, plan *domain.AcademyPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("academy plan ID is required for update")
	}

	plan.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":       plan.Name,
			"amount":     plan.Amount,
			"plan_limit": plan.PlanLimit,
			"sport":      plan.Sport,
			"active":     plan.Active,
			"updatedAt":  plan.UpdatedAt,
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
func (r *mongoAcademyPlanRepository) ToggleActive(ctx context.Context, id primitive.ObjectID) (*domain.AcademyPlan, error) {
	var plan domain.AcademyPlan
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

// EnsureAcademyPlanIndexes creates necessary indexes. Call during startup.
func EnsureAcademyPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Listing query: every plan of an owner in creation order
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "active", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
