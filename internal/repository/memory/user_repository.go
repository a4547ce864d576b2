package memory

import (
	"context"
	"fmt"
	"time"

	"notes-api-be/internal/entity"
	"notes-api-be/internal/repository/contract"
	"notes-api-be/internal/repository/specification"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) contract.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.takeWriteErr(); err != nil {
		return err
	}
	for _, existing := range r.store.users {
		if existing.Username == user.Username {
			return fmt.Errorf("duplicate key value violates unique constraint on username")
		}
	}

	r.store.nextUserID++
	user.Id = r.store.nextUserID
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	copied := *user
	r.store.users[user.Id] = &copied
	return nil
}

func (r *UserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, id := range sortedUserIDs(r.store.users) {
		u := r.store.users[id]
		if matchUser(u, specs...) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var users []*entity.User
	for _, id := range sortedUserIDs(r.store.users) {
		u := r.store.users[id]
		if matchUser(u, specs...) {
			copied := *u
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	users, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(users)), nil
}
