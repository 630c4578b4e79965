package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// GormTodoRepository is the gorm implementation of ports.TodoRepository.
type GormTodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *GormTodoRepository {
	return &GormTodoRepository{db: db}
}

func (r *GormTodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	rec := newTodoRecord(todo)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *GormTodoRepository) FindByID(ctx context.Context, id uint64) (*domain.Todo, error) {
	var rec todoRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *GormTodoRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]*domain.Todo, error) {
	return r.list(r.db.WithContext(ctx).Where("owner_id = ?", ownerID))
}

func (r *GormTodoRepository) ListAll(ctx context.Context) ([]*domain.Todo, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *GormTodoRepository) list(q *gorm.DB) ([]*domain.Todo, error) {
	var recs []todoRecord
	if err := q.Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	todos := make([]*domain.Todo, 0, len(recs))
	for i := range recs {
		todos = append(todos, recs[i].toDomain())
	}
	return todos, nil
}

// Update never touches owner_id.
func (r *GormTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing todoRecord
		if err := tx.Select("id").First(&existing, todo.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTodoNotFound
			}
			return fmt.Errorf("find todo: %w", err)
		}

		err := tx.Model(&existing).
			Select("title", "description", "priority", "complete").
			Updates(newTodoRecord(todo)).Error
		if err != nil {
			return fmt.Errorf("update todo: %w", err)
		}
		return nil
	})
}

func (r *GormTodoRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&todoRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete todo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}
