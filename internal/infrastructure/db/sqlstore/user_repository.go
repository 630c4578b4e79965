package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// GormUserRepository is the gorm implementation of ports.UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	rec := newUserRecord(user)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, userLookupError(err)
	}
	return rec.toDomain(), nil
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error; err != nil {
		return nil, userLookupError(err)
	}
	return rec.toDomain(), nil
}

// Update writes every mutable column, including zero values.
func (r *GormUserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing userRecord
		if err := tx.Select("id").First(&existing, user.ID).Error; err != nil {
			return userLookupError(err)
		}

		err := tx.Model(&existing).
			Select("email", "username", "first_name", "last_name", "hashed_password", "is_active", "role", "phone_number").
			Updates(newUserRecord(user)).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserExists
		}
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
}

func userLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("find user: %w", err)
}
