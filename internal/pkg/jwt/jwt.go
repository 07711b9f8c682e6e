package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service issues and verifies the access tokens the API layer consumes.
// Full session management (refresh, revocation) lives in the identity
// collaborator; the core only needs employee_id claims.
type Service interface {
	GenerateAccessToken(employeeID string, isAdmin bool) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	expiration time.Duration
	tokenAuth  *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, expiration time.Duration) Service {
	return &JWTService{
		expiration: expiration,
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(employeeID string, isAdmin bool) (string, int64, error) {
	expiresAt := time.Now().Add(j.expiration)

	claims := map[string]interface{}{
		"employee_id": employeeID,
		"is_admin":    isAdmin,
		"type":        "access",
		"exp":         expiresAt.Unix(),
		"iat":         time.Now().Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode access token: %w", err)
	}

	return tokenString, expiresAt.Unix(), nil
}
