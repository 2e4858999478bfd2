package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"comanda-pos/internal/domain"
)

// GenerateToken signs a short-lived HS256 token for a cashier user.
func GenerateToken(secret string, u domain.Usuario, ttl time.Duration) (string, time.Time, error) {
	expires := time.Now().UTC().Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": u.Nombre,
		"rol": u.Rol,
		"iat": time.Now().UTC().Unix(),
		"exp": expires.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// ValidateToken parses and verifies a token, returning the user name
// and role carried in its claims.
func ValidateToken(secret, tokenStr string) (nombre, rol string, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid token claims")
	}
	nombre, _ = claims["sub"].(string)
	rol, _ = claims["rol"].(string)
	if nombre == "" {
		return "", "", fmt.Errorf("token has no subject")
	}
	return nombre, rol, nil
}
