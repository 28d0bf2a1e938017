package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Типы токенов в claim "type"
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// GenerateAccessToken выпускает короткоживущий access-токен
func GenerateAccessToken(userID uint, role, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"type":    TokenTypeAccess,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateRefreshToken выпускает refresh-токен и возвращает unix-время истечения
func GenerateRefreshToken(userID uint, secret string, ttl time.Duration) (string, int64, error) {
	expiry := time.Now().Add(ttl).Unix()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    TokenTypeRefresh,
		"exp":     expiry,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(secret))
	return tokenStr, expiry, err
}

func ParseJWT(tokenStr, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if token != nil && token.Valid {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			return claims, nil
		}
	}
	return nil, errors.New("invalid token")
}

// TokenType возвращает claim "type"; токены без типа считаются access
// (совместимость со старыми токенами)
func TokenType(claims jwt.MapClaims) string {
	if t, ok := claims["type"].(string); ok {
		return t
	}
	return TokenTypeAccess
}
