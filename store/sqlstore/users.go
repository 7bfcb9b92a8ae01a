package sqlstore

import (
	"context"

	"restaurant-admin/models"
	"restaurant-admin/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	db := s.db.WithContext(ctx)

	taken, err := exists(db, &models.User{}, "email = ?", user.Email)
	if err != nil {
		return err
	}
	if taken {
		return store.ErrDuplicateEmail
	}
	taken, err = exists(db, &models.User{}, "phone = ?", user.Phone)
	if err != nil {
		return err
	}
	if taken {
		return store.ErrDuplicatePhone
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return translate(db.Create(user).Error)
}

func (s *userStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *userStore) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *userStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.db.WithContext(ctx).Order("created_at asc").Find(&users).Error
	return users, translate(err)
}

func (s *userStore) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	if patch.Email != nil {
		taken, err := exists(db, &models.User{}, "email = ? AND id <> ?", *patch.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, store.ErrDuplicateEmail
		}
	}
	if patch.Phone != nil {
		taken, err := exists(db, &models.User{}, "phone = ? AND id <> ?", *patch.Phone, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, store.ErrDuplicatePhone
		}
	}

	update := map[string]any{}
	setString(update, "name", patch.Name)
	setString(update, "email", patch.Email)
	setString(update, "phone", patch.Phone)
	setString(update, "address", patch.Address)
	setString(update, "state", patch.State)
	setString(update, "city", patch.City)
	setString(update, "pincode", patch.Pincode)
	if patch.DOB != nil {
		update["dob"] = *patch.DOB
	}

	if len(update) > 0 {
		if err := db.Model(&models.User{}).Where("id = ?", id).Updates(update).Error; err != nil {
			return nil, translate(err)
		}
	}
	return s.FindByID(ctx, id)
}

func setString(update map[string]any, column string, value *string) {
	if value != nil {
		update[column] = *value
	}
}
