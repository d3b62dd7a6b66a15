package security

import (
	"errors"
	"strconv"
	"time"

	"lendahand-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// UserClaims carries the caller identity minted by the auth frontend.
// The API trusts these claims after signature verification; there is no
// user lookup on this side.
type UserClaims struct {
	UserID int32  `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Caller converts verified claims into the domain caller identity.
func (c *UserClaims) Caller() *domain.Caller {
	return &domain.Caller{
		UserID: c.UserID,
		Name:   c.Name,
		Phone:  c.Phone,
		Email:  c.Email,
		Role:   domain.Role(c.Role),
	}
}

type TokenManager interface {
	GenerateAccessToken(caller *domain.Caller) (string, error)
	ValidateToken(tokenString string) (*UserClaims, error)
}

type tokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
	}
}

func (m *tokenManager) GenerateAccessToken(caller *domain.Caller) (string, error) {
	claims := UserClaims{
		UserID: caller.UserID,
		Name:   caller.Name,
		Phone:  caller.Phone,
		Email:  caller.Email,
		Role:   string(caller.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(caller.UserID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "lendahand-auth",
			Audience:  jwt.ClaimStrings{"api-access"},
			ID:        generateJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		// Populate UserID from Subject if it was lost (though we set both)
		if claims.UserID == 0 && claims.Subject != "" {
			uid, _ := strconv.Atoi(claims.Subject)
			claims.UserID = int32(uid)
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Simple unique ID generator
func generateJTI() string {
	return strconv.FormatInt(time.Now().UnixNano(), 16)
}
