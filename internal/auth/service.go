package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"comanda-pos/internal/domain"
)

type Service struct {
	repo   UsersRepositoryInterface
	secret string
	ttl    time.Duration
}

func NewService(repo UsersRepositoryInterface, secret string, ttl time.Duration) *Service {
	return &Service{repo: repo, secret: secret, ttl: ttl}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	u, err := s.repo.GetByNombre(ctx, req.Nombre)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, expires, err := GenerateToken(s.secret, u, s.ttl)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{Token: token, ExpiresAt: expires}, nil
}

// CreateUser registers a cashier account with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, nombre, password, rol string) (int64, error) {
	if nombre == "" || password == "" {
		return 0, fmt.Errorf("nombre and password are required")
	}
	if rol == "" {
		rol = "cajero"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.Create(ctx, nombre, string(hash), rol)
}
