package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/alefshop/attendance-backend/internal/domain/user"
	"github.com/alefshop/attendance-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, name, phone, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	query := `
		INSERT INTO users (id, name, phone, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query, id.String(), newUser.Name, newUser.Phone, newUser.PasswordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrPhoneExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return found, nil
}

// GetByPhone implements user.UserRepository.
func (r *userRepositoryImpl) GetByPhone(ctx context.Context, phone string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by phone: %w", err)
	}

	return found, nil
}

// ExistsByPhone implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE phone = $1)`, phone).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check phone: %w", err)
	}
	return exists, nil
}
