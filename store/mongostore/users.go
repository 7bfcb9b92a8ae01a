package mongostore

import (
	"context"
	"strings"
	"time"

	"restaurant-admin/models"
	"restaurant-admin/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userStore struct {
	coll *mongo.Collection
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	taken, err := exists(ctx, s.coll, bson.M{"email": user.Email})
	if err != nil {
		return err
	}
	if taken {
		return store.ErrDuplicateEmail
	}
	taken, err = exists(ctx, s.coll, bson.M{"phone": user.Phone})
	if err != nil {
		return err
	}
	if taken {
		return store.ErrDuplicatePhone
	}

	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = newID()
	}
	user.CreatedAt, user.UpdatedAt = now, now

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		return duplicateError(err)
	}
	return nil
}

func (s *userStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, s.coll, bson.M{"_id": id})
}

func (s *userStore) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	return findOne[models.User](ctx, s.coll, bson.M{"phone": phone})
}

func (s *userStore) List(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, s.coll, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

func (s *userStore) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if patch.Email != nil {
		taken, err := exists(ctx, s.coll, bson.M{"email": *patch.Email, "_id": bson.M{"$ne": id}})
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, store.ErrDuplicateEmail
		}
	}
	if patch.Phone != nil {
		taken, err := exists(ctx, s.coll, bson.M{"phone": *patch.Phone, "_id": bson.M{"$ne": id}})
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, store.ErrDuplicatePhone
		}
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	setString(set, "name", patch.Name)
	setString(set, "email", patch.Email)
	setString(set, "phone", patch.Phone)
	setString(set, "address", patch.Address)
	setString(set, "state", patch.State)
	setString(set, "city", patch.City)
	setString(set, "pincode", patch.Pincode)
	if patch.DOB != nil {
		set["dob"] = *patch.DOB
	}

	user, err := updateByID[models.User](ctx, s.coll, id, set)
	if err != nil {
		return nil, duplicateError(err)
	}
	return user, nil
}

func setString(set bson.M, key string, value *string) {
	if value != nil {
		set[key] = *value
	}
}

func setFloat(set bson.M, key string, value *float64) {
	if value != nil {
		set[key] = *value
	}
}

// duplicateError maps a unique-index violation onto the store sentinel for
// the offending key.
func duplicateError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "phone") {
		return store.ErrDuplicatePhone
	}
	return store.ErrDuplicateEmail
}
