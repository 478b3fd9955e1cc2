package user

import (
	"context"
)

type UserRepository interface {
	GetByPhone(ctx context.Context, phone string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}
