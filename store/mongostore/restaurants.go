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

type restaurantStore struct {
	coll   *mongo.Collection
	users  *mongo.Collection
	orders *mongo.Collection
}

func (s *restaurantStore) Create(ctx context.Context, restaurant *models.Restaurant) error {
	ok, err := exists(ctx, s.users, bson.M{"_id": restaurant.UserID})
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrInvalidReference
	}

	now := time.Now().UTC()
	if restaurant.ID == "" {
		restaurant.ID = newID()
	}
	if restaurant.Menu == nil {
		restaurant.Menu = datatypes.JSONSlice[models.MenuItem]{}
	}
	restaurant.CreatedAt, restaurant.UpdatedAt = now, now

	_, err = s.coll.InsertOne(ctx, restaurant)
	return err
}

func (s *restaurantStore) FindByID(ctx context.Context, id string) (*models.Restaurant, error) {
	return findOne[models.Restaurant](ctx, s.coll, bson.M{"_id": id})
}

func (s *restaurantStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Restaurant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return findAll[models.Restaurant](ctx, s.coll, bson.M{"userId": ownerID}, opts)
}

func (s *restaurantStore) Update(ctx context.Context, id string, patch models.RestaurantPatch) (*models.Restaurant, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	setString(set, "name", patch.Name)
	setString(set, "cuisine", patch.Cuisine)
	setString(set, "priceRange", patch.PriceRange)
	setString(set, "address", patch.Address)
	setString(set, "imageUrl", patch.ImageURL)
	setString(set, "img", patch.Img)
	setFloat(set, "rating", patch.Rating)
	setFloat(set, "latitude", patch.Latitude)
	setFloat(set, "longitude", patch.Longitude)
	if patch.Menu != nil {
		set["menu"] = *patch.Menu
	}
	return updateByID[models.Restaurant](ctx, s.coll, id, set)
}

func (s *restaurantStore) ReplaceMenu(ctx context.Context, id string, menu []models.MenuItem) (*models.Restaurant, error) {
	if menu == nil {
		menu = []models.MenuItem{}
	}
	return updateByID[models.Restaurant](ctx, s.coll, id, bson.M{"menu": menu, "updatedAt": time.Now().UTC()})
}

func (s *restaurantStore) Delete(ctx context.Context, id string) error {
	referenced, err := exists(ctx, s.orders, bson.M{"restaurantId": id})
	if err != nil {
		return err
	}
	if referenced {
		if _, err := s.FindByID(ctx, id); err != nil {
			return err
		}
		return store.ErrHasDependents
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
