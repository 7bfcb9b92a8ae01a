package sqlstore

import (
	"context"

	"restaurant-admin/models"
	"restaurant-admin/store"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type orderStore struct {
	db *gorm.DB
}

func (s *orderStore) Create(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.Restaurant{}, "id = ?", order.RestaurantID)
		if err != nil {
			return err
		}
		if !ok {
			return store.ErrInvalidReference
		}
		ok, err = exists(tx, &models.User{}, "id = ?", order.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return store.ErrInvalidReference
		}

		if order.ID == "" {
			order.ID = uuid.NewString()
		}
		if order.Items == nil {
			order.Items = datatypes.JSONSlice[models.OrderItem]{}
		}
		if order.OrderStatus == "" {
			order.OrderStatus = models.StatusOrdered
		}
		if err := tx.Create(order).Error; err != nil {
			return translate(err)
		}

		history := models.OrderStatusHistory{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ToStatus:  order.OrderStatus,
			ChangedBy: order.UserID,
		}
		return translate(tx.Create(&history).Error)
	})
}

func (s *orderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *orderStore) ListByRestaurants(ctx context.Context, restaurantIDs []string) ([]models.Order, error) {
	orders := []models.Order{}
	if len(restaurantIDs) == 0 {
		return orders, nil
	}
	err := s.db.WithContext(ctx).
		Where("restaurant_id IN ?", restaurantIDs).
		Order("date desc").
		Order("created_at desc").
		Find(&orders).Error
	return orders, translate(err)
}

func (s *orderStore) ListByCustomer(ctx context.Context, userID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc").
		Order("created_at desc").
		Find(&orders).Error
	return orders, translate(err)
}

func (s *orderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, changedBy string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		previous := order.OrderStatus

		err := tx.Model(&models.Order{}).Where("id = ?", id).Update("order_status", status).Error
		if err != nil {
			return translate(err)
		}

		history := models.OrderStatusHistory{
			ID:         uuid.NewString(),
			OrderID:    id,
			FromStatus: previous,
			ToStatus:   status,
			ChangedBy:  changedBy,
		}
		if err := tx.Create(&history).Error; err != nil {
			return translate(err)
		}
		return translate(tx.First(&order, "id = ?", id).Error)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderStore) History(ctx context.Context, orderID string) ([]models.OrderStatusHistory, error) {
	history := []models.OrderStatusHistory{}
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at asc").
		Find(&history).Error
	return history, translate(err)
}
