package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bpmutter/tappdin-backend/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("update user failed: %w", err)
	}
	return nil
}

// DeleteCascade removes every record owned by the user and the user row itself
// in a single transaction. A failure on any step rolls back all of them, so a
// reader never observes dependent records without their owner or vice versa.
func (r *UserRepository) DeleteCascade(userID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Checkin{}).Error; err != nil {
			return fmt.Errorf("delete checkins failed: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.List{}).Error; err != nil {
			return fmt.Errorf("delete lists failed: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.LikedBrewery{}).Error; err != nil {
			return fmt.Errorf("delete liked breweries failed: %w", err)
		}
		if err := tx.Delete(&model.User{}, userID).Error; err != nil {
			return fmt.Errorf("delete user failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cascade delete user failed: %w", err)
	}
	return nil
}
