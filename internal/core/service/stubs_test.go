package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/todoapp/todo-api/internal/core/auth"
	"github.com/todoapp/todo-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

var testHasher = auth.NewPasswordHasher(bcrypt.MinCost)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[uint64]*domain.User
	nextID    uint64
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[uint64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint64) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.byID[user.ID] = cloneUser(user)
	return nil
}

type stubTodoRepo struct {
	byID    map[uint64]*domain.Todo
	nextID  uint64
	deletes int
	updates int
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{byID: make(map[uint64]*domain.Todo)}
}

func (r *stubTodoRepo) Create(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	r.nextID++
	clone := *todo
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTodoRepo) FindByID(_ context.Context, id uint64) (*domain.Todo, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTodoRepo) ListByOwner(_ context.Context, ownerID uint64) ([]*domain.Todo, error) {
	var out []*domain.Todo
	for _, t := range r.sorted() {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubTodoRepo) ListAll(_ context.Context) ([]*domain.Todo, error) {
	return r.sorted(), nil
}

func (r *stubTodoRepo) Update(_ context.Context, todo *domain.Todo) error {
	stored, ok := r.byID[todo.ID]
	if !ok {
		return domain.ErrTodoNotFound
	}
	r.updates++
	stored.Title = todo.Title
	stored.Description = todo.Description
	stored.Priority = todo.Priority
	stored.Complete = todo.Complete
	return nil
}

func (r *stubTodoRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTodoNotFound
	}
	r.deletes++
	delete(r.byID, id)
	return nil
}

func (r *stubTodoRepo) sorted() []*domain.Todo {
	out := make([]*domain.Todo, 0, len(r.byID))
	for _, t := range r.byID {
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type stubDenylist struct {
	revoked map[string]time.Time
	err     error
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if d.err != nil {
		return d.err
	}
	if d.revoked == nil {
		d.revoked = make(map[string]time.Time)
	}
	d.revoked[tokenID] = expiresAt
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := d.revoked[tokenID]
	return ok, d.err
}
