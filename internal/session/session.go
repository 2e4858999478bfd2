// Package session holds the pending order a waiter builds up before it
// is submitted. Nothing here touches the store: the cart exists only in
// memory until Submit hands it to the order lifecycle manager.
package session

import (
	"context"
	"fmt"

	"comanda-pos/internal/domain"
)

// Line is one not-yet-persisted cart entry.
type Line struct {
	MenuItemID       int64
	Cantidad         int
	Especificaciones string
	Notas            string
}

// Submitter is the slice of the order lifecycle manager the session
// needs. Passed in explicitly so the session carries no hidden globals.
type Submitter interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.CreateOrderResponse, error)
}

// Session is one client's table selection plus accumulating cart.
// Not safe for concurrent use; each client terminal owns its own.
type Session struct {
	mesa       *int
	paraLlevar bool
	selected   bool
	lines      []Line
}

func New() *Session { return &Session{} }

// SelectTable targets a mesa. Zero or negative numbers are rejected.
func (s *Session) SelectTable(numero int) error {
	if numero < 1 {
		return fmt.Errorf("mesa %d: %w", numero, domain.ErrInvalidSelection)
	}
	n := numero
	s.mesa = &n
	s.paraLlevar = false
	s.selected = true
	return nil
}

// SelectTakeAway marks the pending order as "para llevar".
func (s *Session) SelectTakeAway() {
	s.mesa = nil
	s.paraLlevar = true
	s.selected = true
}

// AddItem appends a line, merging with an existing one when the item
// and its free-text fields match.
func (s *Session) AddItem(menuItemID int64, cantidad int, especificaciones, notas string) error {
	if cantidad < 1 {
		return fmt.Errorf("cantidad %d: %w", cantidad, domain.ErrInvalidQuantity)
	}
	for i := range s.lines {
		l := &s.lines[i]
		if l.MenuItemID == menuItemID && l.Especificaciones == especificaciones && l.Notas == notas {
			l.Cantidad += cantidad
			return nil
		}
	}
	s.lines = append(s.lines, Line{
		MenuItemID:       menuItemID,
		Cantidad:         cantidad,
		Especificaciones: especificaciones,
		Notas:            notas,
	})
	return nil
}

func (s *Session) RemoveItem(index int) error {
	if index < 0 || index >= len(s.lines) {
		return fmt.Errorf("line %d out of range", index)
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	return nil
}

func (s *Session) Clear() {
	s.lines = nil
}

// Lines returns a copy of the cart.
func (s *Session) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Submit hands the cart to the lifecycle manager. On success the
// session is reset; on any failure it is left untouched so the client
// can correct and retry.
func (s *Session) Submit(ctx context.Context, sub Submitter) (domain.CreateOrderResponse, error) {
	if !s.selected {
		return domain.CreateOrderResponse{}, domain.ErrInvalidSelection
	}
	if len(s.lines) == 0 {
		return domain.CreateOrderResponse{}, domain.ErrEmptyOrder
	}

	req := domain.CreateOrderRequest{Mesa: s.mesa, ParaLlevar: s.paraLlevar}
	for _, l := range s.lines {
		req.Items = append(req.Items, domain.CreateOrderItemRequest{
			MenuItemID:       l.MenuItemID,
			Cantidad:         l.Cantidad,
			Especificaciones: l.Especificaciones,
			Notas:            l.Notas,
		})
	}

	resp, err := sub.CreateOrder(ctx, req)
	if err != nil {
		return domain.CreateOrderResponse{}, err
	}

	s.mesa = nil
	s.paraLlevar = false
	s.selected = false
	s.lines = nil
	return resp, nil
}
