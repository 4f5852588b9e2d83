package users

import (
	"context"

	"github.com/tokenforge/authapi/internal/dbx"
	"github.com/tokenforge/authapi/internal/repository"
)

// Repository is the persistence surface the auth service needs for users.
// The generic Postgres repository satisfies it once specialized to User.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	FindAll(ctx context.Context, f repository.Filter) ([]User, error)
	Exists(ctx context.Context, f repository.Filter) (bool, error)
	GetPage(ctx context.Context, f repository.Filter, pageNumber, pageSize int) ([]User, int64, error)
	Insert(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, u User, expectedVersion int64) error
}

func NewRepository(db dbx.DBTX) Repository {
	return repository.NewPostgres[User, string](db, mapper{})
}

// ByUserName selects a user by the already-normalized username.
func ByUserName(username string) repository.Filter {
	return repository.Where("username = $1", username)
}
