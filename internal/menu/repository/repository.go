package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"comanda-pos/internal/domain"
)

type MenuRepositoryInterface interface {
	List(ctx context.Context, categoria string) ([]domain.MenuItem, error)
	Get(ctx context.Context, id int64) (domain.MenuItem, error)
}

type MenuRepository struct {
	db *sql.DB
}

func NewMenuRepository(db *sql.DB) MenuRepositoryInterface {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) List(ctx context.Context, categoria string) ([]domain.MenuItem, error) {
	query := `SELECT id, nombre, precio, categoria, descripcion FROM menu_items ORDER BY categoria, id`
	args := []any{}
	if categoria != "" {
		query = `SELECT id, nombre, precio, categoria, descripcion FROM menu_items WHERE categoria = $1 ORDER BY id`
		args = append(args, categoria)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select menu: %w", err)
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var it domain.MenuItem
		if err := rows.Scan(&it.ID, &it.Nombre, &it.Precio, &it.Categoria, &it.Descripcion); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *MenuRepository) Get(ctx context.Context, id int64) (domain.MenuItem, error) {
	var it domain.MenuItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, nombre, precio, categoria, descripcion FROM menu_items WHERE id = $1
	`, id).Scan(&it.ID, &it.Nombre, &it.Precio, &it.Categoria, &it.Descripcion)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MenuItem{}, domain.ErrMenuItemNotFound
	}
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("select menu item: %w", err)
	}
	return it, nil
}
