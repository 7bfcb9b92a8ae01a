package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type MenuItem struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

type Restaurant struct {
	ID         string                        `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	Name       string                        `json:"name" gorm:"not null" bson:"name"`
	Cuisine    string                        `json:"cuisine" bson:"cuisine"`
	Rating     float64                       `json:"rating" bson:"rating"`
	PriceRange string                        `json:"priceRange" bson:"priceRange"`
	Address    string                        `json:"address" gorm:"not null" bson:"address"`
	ImageURL   string                        `json:"imageUrl" bson:"imageUrl"`
	Img        string                        `json:"img" bson:"img"`
	Latitude   float64                       `json:"latitude" bson:"latitude"`
	Longitude  float64                       `json:"longitude" bson:"longitude"`
	Menu       datatypes.JSONSlice[MenuItem] `json:"menu" bson:"menu"`
	UserID     string                        `json:"userId" gorm:"size:36;not null;index" bson:"userId"`
	Owner      *User                         `json:"-" bson:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt  time.Time                     `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time                     `json:"updatedAt" bson:"updatedAt"`
}

// Coords is the {latitude, longitude} pair attached to order listings.
type Coords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *Restaurant) Coords() Coords {
	return Coords{Latitude: r.Latitude, Longitude: r.Longitude}
}

// RestaurantPatch carries a partial update. Only non-nil fields are written.
type RestaurantPatch struct {
	Name       *string
	Cuisine    *string
	Rating     *float64
	PriceRange *string
	Address    *string
	ImageURL   *string
	Img        *string
	Latitude   *float64
	Longitude  *float64
	Menu       *[]MenuItem
}

func (p RestaurantPatch) IsEmpty() bool {
	return p.Name == nil && p.Cuisine == nil && p.Rating == nil && p.PriceRange == nil &&
		p.Address == nil && p.ImageURL == nil && p.Img == nil && p.Latitude == nil &&
		p.Longitude == nil && p.Menu == nil
}

var ErrInvalidMenu = errors.New("every menu item needs a name and a non-negative price")

// ValidateMenu checks each entry of a menu list.
func ValidateMenu(menu []MenuItem) error {
	for _, item := range menu {
		if strings.TrimSpace(item.Name) == "" || item.Price < 0 {
			return ErrInvalidMenu
		}
	}
	return nil
}
