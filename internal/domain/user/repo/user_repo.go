package repo

import (
	"context"

	"github.com/skylume/user-service/internal/domain/user/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user model.User) (uint64, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id uint64) (model.User, error)
	UpdateUser(ctx context.Context, user model.User) error
	DeleteUser(ctx context.Context, id uint64) error
}
