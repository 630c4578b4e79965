package sqlstore

import "github.com/todoapp/todo-api/internal/core/domain"

type userRecord struct {
	ID             uint64  `gorm:"primarykey"`
	Email          string  `gorm:"type:varchar(255)"`
	Username       string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName      string  `gorm:"type:varchar(255)"`
	LastName       string  `gorm:"type:varchar(255)"`
	HashedPassword string  `gorm:"type:varchar(255);not null"`
	IsActive       bool    `gorm:"not null"`
	Role           string  `gorm:"type:varchar(32);not null"`
	PhoneNumber    *string `gorm:"type:varchar(32)"`
}

func (userRecord) TableName() string { return "users" }

func newUserRecord(u *domain.User) *userRecord {
	rec := &userRecord{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		HashedPassword: u.PasswordHash,
		IsActive:       u.IsActive,
		Role:           u.Role,
	}
	if u.PhoneNumber != "" {
		phone := u.PhoneNumber
		rec.PhoneNumber = &phone
	}
	return rec
}

func (r *userRecord) toDomain() *domain.User {
	u := &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		Username:     r.Username,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		PasswordHash: r.HashedPassword,
		IsActive:     r.IsActive,
		Role:         r.Role,
	}
	if r.PhoneNumber != nil {
		u.PhoneNumber = *r.PhoneNumber
	}
	return u
}

type todoRecord struct {
	ID          uint64 `gorm:"primarykey"`
	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:varchar(255)"`
	Priority    int    `gorm:"not null"`
	Complete    bool   `gorm:"not null"`
	OwnerID     uint64 `gorm:"index;not null"`
}

func (todoRecord) TableName() string { return "todos" }

func newTodoRecord(t *domain.Todo) *todoRecord {
	return &todoRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Complete:    t.Complete,
		OwnerID:     t.OwnerID,
	}
}

func (r *todoRecord) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Complete:    r.Complete,
		OwnerID:     r.OwnerID,
	}
}
