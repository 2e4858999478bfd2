package domain

import "errors"

var (
	ErrInvalidSelection    = errors.New("no table selected")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrEmptyOrder          = errors.New("order has no items")
	ErrTableOccupied       = errors.New("table already has an open order")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrOrderLocked         = errors.New("order no longer accepts items")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrInsufficientPayment = errors.New("cash tendered is below the bill total")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
