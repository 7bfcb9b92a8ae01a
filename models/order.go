package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderStatus represents the states an order moves through in the kitchen
type OrderStatus string

const (
	StatusOrdered   OrderStatus = "ordered"
	StatusInProcess OrderStatus = "in process"
	StatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every accepted status in lifecycle order
var OrderStatuses = []OrderStatus{StatusOrdered, StatusInProcess, StatusDelivered}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ID       string  `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

type Order struct {
	ID           string                         `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	Date         string                         `json:"date" gorm:"not null;index" bson:"date"`
	Items        datatypes.JSONSlice[OrderItem] `json:"items" bson:"items"`
	Amount       float64                        `json:"amount" bson:"amount"`
	OrderStatus  OrderStatus                    `json:"orderStatus" gorm:"not null;default:'ordered'" bson:"orderStatus"`
	UserID       string                         `json:"userId" gorm:"size:36;not null;index" bson:"userId"`
	RestaurantID string                         `json:"restaurantId" gorm:"size:36;not null;index" bson:"restaurantId"`
	Latitude     *float64                       `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude    *float64                       `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Customer     *User                          `json:"-" bson:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Restaurant   *Restaurant                    `json:"-" bson:"-" gorm:"foreignKey:RestaurantID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt    time.Time                      `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time                      `json:"updatedAt" bson:"updatedAt"`
}

// DeliveryPoint returns the customer's coordinates. A zero latitude or
// longitude counts as missing.
func (o *Order) DeliveryPoint() (lat, lon float64, ok bool) {
	if o.Latitude == nil || o.Longitude == nil || *o.Latitude == 0 || *o.Longitude == 0 {
		return 0, 0, false
	}
	return *o.Latitude, *o.Longitude, true
}

// OrderStatusHistory tracks every status write, including the initial one
type OrderStatusHistory struct {
	ID         string      `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	OrderID    string      `json:"orderId" gorm:"size:36;not null;index" bson:"orderId"`
	Order      *Order      `json:"-" bson:"-" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	FromStatus OrderStatus `json:"fromStatus,omitempty" bson:"fromStatus,omitempty"`
	ToStatus   OrderStatus `json:"toStatus" gorm:"not null" bson:"toStatus"`
	ChangedBy  string      `json:"changedBy" bson:"changedBy"`
	CreatedAt  time.Time   `json:"createdAt" bson:"createdAt"`
}
