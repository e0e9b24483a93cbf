package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI and
// verifies it with a ping against the primary.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes for every plan-admin collection.
// Index failures are logged by the caller and are not fatal.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := EnsureAcademyPlanIndexes(ctx, db.Collection(academyPlanCollectionName)); err != nil {
		return err
	}
	if err := EnsureTurfPlanIndexes(ctx, db.Collection(turfPlanCollectionName)); err != nil {
		return err
	}
	return EnsureBookingIndexes(ctx, db.Collection(bookingCollectionName))
}

// toggleActivePipeline flips the stored flag in a single round trip so two
// concurrent toggles can never both read the same starting value.
func toggleActivePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "active", Value: bson.D{{Key: "$not", Value: bson.A{"$active"}}}},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	}
}

// ownerSort lists plans in creation order.
func ownerSort() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
}
