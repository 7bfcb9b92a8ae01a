package sqlstore

import (
	"context"
	"errors"

	"restaurant-admin/models"
	"restaurant-admin/store"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type restaurantStore struct {
	db *gorm.DB
}

func (s *restaurantStore) Create(ctx context.Context, restaurant *models.Restaurant) error {
	db := s.db.WithContext(ctx)

	ok, err := exists(db, &models.User{}, "id = ?", restaurant.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrInvalidReference
	}

	if restaurant.ID == "" {
		restaurant.ID = uuid.NewString()
	}
	if restaurant.Menu == nil {
		restaurant.Menu = datatypes.JSONSlice[models.MenuItem]{}
	}
	return translate(db.Create(restaurant).Error)
}

func (s *restaurantStore) FindByID(ctx context.Context, id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

func (s *restaurantStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Restaurant, error) {
	restaurants := []models.Restaurant{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at asc").
		Find(&restaurants).Error
	return restaurants, translate(err)
}

func (s *restaurantStore) Update(ctx context.Context, id string, patch models.RestaurantPatch) (*models.Restaurant, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}

	// Only the fields present in the patch are written
	update := map[string]any{}
	setString(update, "name", patch.Name)
	setString(update, "cuisine", patch.Cuisine)
	setString(update, "price_range", patch.PriceRange)
	setString(update, "address", patch.Address)
	setString(update, "image_url", patch.ImageURL)
	setString(update, "img", patch.Img)
	setFloat(update, "rating", patch.Rating)
	setFloat(update, "latitude", patch.Latitude)
	setFloat(update, "longitude", patch.Longitude)
	if patch.Menu != nil {
		update["menu"] = datatypes.JSONSlice[models.MenuItem](*patch.Menu)
	}

	if len(update) > 0 {
		err := s.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Updates(update).Error
		if err != nil {
			return nil, translate(err)
		}
	}
	return s.FindByID(ctx, id)
}

func (s *restaurantStore) ReplaceMenu(ctx context.Context, id string, menu []models.MenuItem) (*models.Restaurant, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if menu == nil {
		menu = []models.MenuItem{}
	}
	err := s.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("id = ?", id).
		Update("menu", datatypes.JSONSlice[models.MenuItem](menu)).Error
	if err != nil {
		return nil, translate(err)
	}
	return s.FindByID(ctx, id)
}

func (s *restaurantStore) Delete(ctx context.Context, id string) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	db := s.db.WithContext(ctx)

	referenced, err := exists(db, &models.Order{}, "restaurant_id = ?", id)
	if err != nil {
		return err
	}
	if referenced {
		return store.ErrHasDependents
	}

	err = translate(db.Delete(&models.Restaurant{}, "id = ?", id).Error)
	if errors.Is(err, store.ErrInvalidReference) {
		return store.ErrHasDependents
	}
	return err
}

func setFloat(update map[string]any, column string, value *float64) {
	if value != nil {
		update[column] = *value
	}
}
