package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/todoapp/todo-api/internal/core/domain"
)

type UserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, coll: db.Collection(usersCollection)}
}

type userDocument struct {
	ID             int64  `bson:"_id"`
	Email          string `bson:"email"`
	Username       string `bson:"username"`
	FirstName      string `bson:"first_name"`
	LastName       string `bson:"last_name"`
	HashedPassword string `bson:"hashed_password"`
	IsActive       bool   `bson:"is_active"`
	Role           string `bson:"role"`
	PhoneNumber    string `bson:"phone_number,omitempty"`
}

func newUserDocument(u *domain.User) userDocument {
	return userDocument{
		ID:             int64(u.ID),
		Email:          u.Email,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		HashedPassword: u.PasswordHash,
		IsActive:       u.IsActive,
		Role:           u.Role,
		PhoneNumber:    u.PhoneNumber,
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           uint64(d.ID),
		Email:        d.Email,
		Username:     d.Username,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		PasswordHash: d.HashedPassword,
		IsActive:     d.IsActive,
		Role:         d.Role,
		PhoneNumber:  d.PhoneNumber,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := nextID(ctx, r.db, usersCollection)
	if err != nil {
		return nil, err
	}

	doc := newUserDocument(user)
	doc.ID = int64(id)

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": int64(id)})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	doc := newUserDocument(user)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
