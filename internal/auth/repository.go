package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"comanda-pos/internal/domain"
)

type UsersRepositoryInterface interface {
	GetByNombre(ctx context.Context, nombre string) (domain.Usuario, error)
	Create(ctx context.Context, nombre, passwordHash, rol string) (int64, error)
}

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) UsersRepositoryInterface {
	return &UsersRepository{db: db}
}

func (r *UsersRepository) GetByNombre(ctx context.Context, nombre string) (domain.Usuario, error) {
	var u domain.Usuario
	err := r.db.QueryRowContext(ctx, `
		SELECT id, nombre, password_hash, rol FROM usuarios WHERE nombre = $1
	`, nombre).Scan(&u.ID, &u.Nombre, &u.PasswordHash, &u.Rol)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Usuario{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Usuario{}, fmt.Errorf("select usuario: %w", err)
	}
	return u, nil
}

func (r *UsersRepository) Create(ctx context.Context, nombre, passwordHash, rol string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO usuarios (nombre, password_hash, rol) VALUES ($1, $2, $3) RETURNING id
	`, nombre, passwordHash, rol).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert usuario: %w", err)
	}
	return id, nil
}
