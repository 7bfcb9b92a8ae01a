package mongostore

import (
	"context"
	"time"

	"restaurant-admin/models"
	"restaurant-admin/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/datatypes"
)

type orderStore struct {
	coll        *mongo.Collection
	history     *mongo.Collection
	users       *mongo.Collection
	restaurants *mongo.Collection
}

var newestFirst = bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}

func (s *orderStore) Create(ctx context.Context, order *models.Order) error {
	ok, err := exists(ctx, s.restaurants, bson.M{"_id": order.RestaurantID})
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrInvalidReference
	}
	ok, err = exists(ctx, s.users, bson.M{"_id": order.UserID})
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrInvalidReference
	}

	now := time.Now().UTC()
	if order.ID == "" {
		order.ID = newID()
	}
	if order.Items == nil {
		order.Items = datatypes.JSONSlice[models.OrderItem]{}
	}
	if order.OrderStatus == "" {
		order.OrderStatus = models.StatusOrdered
	}
	order.CreatedAt, order.UpdatedAt = now, now

	if _, err := s.coll.InsertOne(ctx, order); err != nil {
		return err
	}
	return s.record(ctx, order.ID, "", order.OrderStatus, order.UserID, now)
}

func (s *orderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	return findOne[models.Order](ctx, s.coll, bson.M{"_id": id})
}

func (s *orderStore) ListByRestaurants(ctx context.Context, restaurantIDs []string) ([]models.Order, error) {
	if len(restaurantIDs) == 0 {
		return []models.Order{}, nil
	}
	filter := bson.M{"restaurantId": bson.M{"$in": restaurantIDs}}
	return findAll[models.Order](ctx, s.coll, filter, options.Find().SetSort(newestFirst))
}

func (s *orderStore) ListByCustomer(ctx context.Context, userID string) ([]models.Order, error) {
	return findAll[models.Order](ctx, s.coll, bson.M{"userId": userID}, options.Find().SetSort(newestFirst))
}

// UpdateStatus runs without a transaction so it also works against a
// standalone server; the history row is written after the status.
func (s *orderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, changedBy string) (*models.Order, error) {
	now := time.Now().UTC()

	var before models.Order
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	update := bson.M{"$set": bson.M{"orderStatus": status, "updatedAt": now}}
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&before); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	if err := s.record(ctx, id, before.OrderStatus, status, changedBy, now); err != nil {
		return nil, err
	}

	after := before
	after.OrderStatus = status
	after.UpdatedAt = now
	return &after, nil
}

func (s *orderStore) History(ctx context.Context, orderID string) ([]models.OrderStatusHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return findAll[models.OrderStatusHistory](ctx, s.history, bson.M{"orderId": orderID}, opts)
}

func (s *orderStore) record(ctx context.Context, orderID string, from, to models.OrderStatus, changedBy string, at time.Time) error {
	_, err := s.history.InsertOne(ctx, models.OrderStatusHistory{
		ID:         newID(),
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  changedBy,
		CreatedAt:  at,
	})
	return err
}
