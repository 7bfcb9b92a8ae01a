// Package store defines the persistence contract shared by the SQLite and
// MongoDB backends.
package store

import (
	"context"
	"errors"

	"restaurant-admin/models"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("a user with this email already exists")
	ErrDuplicatePhone   = errors.New("a user with this phone number already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrHasDependents    = errors.New("record is still referenced by other records")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
}

type RestaurantStore interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	FindByID(ctx context.Context, id string) (*models.Restaurant, error)
	// ListByOwner returns the owner's restaurants, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Restaurant, error)
	Update(ctx context.Context, id string, patch models.RestaurantPatch) (*models.Restaurant, error)
	ReplaceMenu(ctx context.Context, id string, menu []models.MenuItem) (*models.Restaurant, error)
	Delete(ctx context.Context, id string) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	// ListByRestaurants returns orders for any of the given restaurants sorted
	// by date, newest first.
	ListByRestaurants(ctx context.Context, restaurantIDs []string) ([]models.Order, error)
	ListByCustomer(ctx context.Context, userID string) ([]models.Order, error)
	// UpdateStatus overwrites the status and appends a history entry.
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus, changedBy string) (*models.Order, error)
	History(ctx context.Context, orderID string) ([]models.OrderStatusHistory, error)
}

// Store bundles the three collections behind one handle.
type Store struct {
	Users       UserStore
	Restaurants RestaurantStore
	Orders      OrderStore

	closer func(context.Context) error
}

func New(users UserStore, restaurants RestaurantStore, orders OrderStore, closer func(context.Context) error) *Store {
	return &Store{Users: users, Restaurants: restaurants, Orders: orders, closer: closer}
}

func (s *Store) Close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}
