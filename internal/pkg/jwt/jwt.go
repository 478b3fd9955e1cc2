package jwt

import (
	"context"
	"sync"
	"time"

	"github.com/alefshop/attendance-backend/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	ClaimUserID = "user_id"
	ClaimPhone  = "phone"
	ClaimType   = "type"

	TokenTypeAccess = "access"
)

type Service interface {
	GenerateAccessToken(userID string, phone string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTTL     time.Duration
	tokenAuth     *jwtauth.JWTAuth
	revokedTokens map[string]int64
	mu            sync.RWMutex
	now           func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTTL time.Duration) *JWTService {
	return &JWTService{
		accessTTL:     accessTTL,
		tokenAuth:     jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens: make(map[string]int64),
		now:           time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(userID string, phone string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTTL).Unix()

	claims := map[string]interface{}{
		ClaimUserID: userID,
		ClaimPhone:  phone,
		ClaimType:   TokenTypeAccess,
		"exp":       expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// RevokeToken blacklists token until expiresAt. Entries past their expiry are
// pruned on each call since the verifier rejects them anyway.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for t, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// UserIDFromContext returns the user_id claim of the verified token in ctx.
func UserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	userID, ok := claims[ClaimUserID].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}

// ExpiresAtFromContext returns the exp claim of the token in ctx as a unix time.
func ExpiresAtFromContext(ctx context.Context) int64 {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return 0
	}
	return token.Expiration().Unix()
}
