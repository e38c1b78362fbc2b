package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Malek-bh/agrical-api/internal/httperr"
	"github.com/Malek-bh/agrical-api/internal/models"
)

// UserStore is the credential store. Every mutation runs in a single
// transaction so a conflict detected halfway never leaves a partial
// update behind. The unique indexes on username and email are the
// backstop for races the pre-checks cannot see.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// UserUpdate carries the optional profile fields. Nil means "leave as is".
type UserUpdate struct {
	Username     *string
	Email        *string
	FullName     *string
	PasswordHash *string
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NewNotFound("user_not_found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NewNotFound("user_not_found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("username = ?", user.Username).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.NewConflict("username_taken")
		}

		if err := tx.Model(&models.User{}).
			Where("email = ?", user.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.NewConflict("email_taken")
		}

		return tx.Create(user).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.NewConflict("user_already_exists")
	}
	return err
}

func (s *UserStore) Update(ctx context.Context, id uint, upd UserUpdate) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.NewNotFound("user_not_found")
			}
			return err
		}

		if upd.Username != nil && *upd.Username != user.Username {
			var count int64
			if err := tx.Model(&models.User{}).
				Where("username = ? AND id <> ?", *upd.Username, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return httperr.NewConflict("username_taken")
			}
			user.Username = *upd.Username
		}

		if upd.Email != nil && *upd.Email != user.Email {
			var count int64
			if err := tx.Model(&models.User{}).
				Where("email = ? AND id <> ?", *upd.Email, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return httperr.NewConflict("email_taken")
			}
			user.Email = *upd.Email
		}

		if upd.FullName != nil {
			user.FullName = *upd.FullName
		}
		if upd.PasswordHash != nil {
			user.PasswordHash = *upd.PasswordHash
		}

		return tx.Save(&user).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, httperr.NewConflict("user_already_exists")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user; posts, comments, services and requests go
// with it through the ON DELETE CASCADE foreign keys.
func (s *UserStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.NewNotFound("user_not_found")
		}
		return nil
	})
}
