package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/todoapp/todo-api/internal/core/domain"
)

type TodoRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{db: db, coll: db.Collection(todosCollection)}
}

type todoDocument struct {
	ID          int64  `bson:"_id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Priority    int    `bson:"priority"`
	Complete    bool   `bson:"complete"`
	OwnerID     int64  `bson:"owner_id"`
}

func (d todoDocument) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          uint64(d.ID),
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		Complete:    d.Complete,
		OwnerID:     uint64(d.OwnerID),
	}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	id, err := nextID(ctx, r.db, todosCollection)
	if err != nil {
		return nil, err
	}

	doc := todoDocument{
		ID:          int64(id),
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    todo.Priority,
		Complete:    todo.Complete,
		OwnerID:     int64(todo.OwnerID),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id uint64) (*domain.Todo, error) {
	var doc todoDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]*domain.Todo, error) {
	return r.list(ctx, bson.M{"owner_id": int64(ownerID)})
}

func (r *TodoRepository) ListAll(ctx context.Context) ([]*domain.Todo, error) {
	return r.list(ctx, bson.M{})
}

func (r *TodoRepository) list(ctx context.Context, filter bson.M) ([]*domain.Todo, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cur.Close(ctx)

	todos := make([]*domain.Todo, 0)
	for cur.Next(ctx) {
		var doc todoDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		todos = append(todos, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Update never touches owner_id.
func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": int64(todo.ID)}, bson.M{"$set": bson.M{
		"title":       todo.Title,
		"description": todo.Description,
		"priority":    todo.Priority,
		"complete":    todo.Complete,
	}})
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id uint64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": int64(id)})
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}
