package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alefshop/attendance-backend/internal/domain/auth"
	"github.com/alefshop/attendance-backend/internal/domain/user"
	"github.com/alefshop/attendance-backend/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	passwordCost int
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		passwordCost:   bcrypt.DefaultCost,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	exists, err := a.UserRepository.ExistsByPhone(ctx, req.Phone)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check phone: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, user.ErrPhoneExists
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.UserRepository.Create(ctx, user.User{
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: hash,
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("user registered", "user_id", created.ID)
	return a.issue(created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	found, err := a.UserRepository.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by phone: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issue(found)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(token, jwt.ExpiresAtFromContext(ctx))
	return nil
}

func (a *AuthServiceImpl) issue(u user.User) (auth.TokenResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(u.ID, u.Phone)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User: auth.UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Phone: u.Phone,
		},
	}, nil
}
