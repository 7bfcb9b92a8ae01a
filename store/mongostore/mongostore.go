// Package mongostore implements store.Store on the official MongoDB driver.
// Documents keep the ObjectID hex string as their _id so ids look the same
// through either backend.
package mongostore

import (
	"context"
	"errors"
	"time"

	"restaurant-admin/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection       = "users"
	restaurantsCollection = "restaurants"
	ordersCollection      = "orders"
	historyCollection     = "order_status_history"
)

// Open connects, pings and ensures indexes on the named database.
func Open(ctx context.Context, uri, database string) (*store.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(database)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	users := &userStore{coll: db.Collection(usersCollection)}
	restaurants := &restaurantStore{
		coll:   db.Collection(restaurantsCollection),
		users:  users.coll,
		orders: db.Collection(ordersCollection),
	}
	orders := &orderStore{
		coll:        db.Collection(ordersCollection),
		history:     db.Collection(historyCollection),
		users:       users.coll,
		restaurants: restaurants.coll,
	}
	return store.New(users, restaurants, orders, client.Disconnect), nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(restaurantsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(ordersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "restaurantId", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(historyCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "orderId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	return err
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func exists(ctx context.Context, coll *mongo.Collection, filter bson.M) (bool, error) {
	count, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var doc T
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// updateByID applies $set and returns the document after the update.
func updateByID[T any](ctx context.Context, coll *mongo.Collection, id string, set bson.M) (*T, error) {
	var doc T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}
