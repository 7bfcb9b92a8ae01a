package models

import (
	"time"
)

// User is a registered account. Restaurant owners and ordering customers share
// the same collection.
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	Name      string     `json:"name" gorm:"not null" bson:"name"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null" bson:"email"`
	Phone     string     `json:"phone" gorm:"uniqueIndex;not null" bson:"phone"`
	Password  string     `json:"-" gorm:"not null" bson:"password"`
	Address   string     `json:"address" bson:"address"`
	State     string     `json:"state" bson:"state"`
	City      string     `json:"city" bson:"city"`
	Pincode   string     `json:"pincode" bson:"pincode"`
	DOB       *time.Time `json:"dob,omitempty" gorm:"column:dob" bson:"dob,omitempty"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// UserSummary is the public subset of a user returned on login and embedded in
// enriched orders.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// UserPatch holds the profile fields a PATCH may change. Nil means untouched.
type UserPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	State   *string
	City    *string
	Pincode *string
	DOB     *time.Time
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Address == nil &&
		p.State == nil && p.City == nil && p.Pincode == nil && p.DOB == nil
}
