package store

import (
	"strings"
	"time"

	"blinkfast-backend/internal/catalog"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// RoleFor derives the demo role from the login email.
func RoleFor(email string) Role {
	if strings.Contains(email, "admin") {
		return RoleAdmin
	}
	return RoleUser
}

type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Address string `json:"address,omitempty"`
}

// CartItem is a product plus a quantity. Quantity is always >= 1; an
// entry decremented to zero is removed from the cart, never kept.
type CartItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
)

// CanAdvanceTo reports whether next is the immediate forward step in the
// pending -> shipped -> delivered lifecycle. No backward moves.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusShipped
	case StatusShipped:
		return next == StatusDelivered
	default:
		return false
	}
}

// Order is a frozen snapshot of a cart at placement time. Items and
// Total never change after creation; only Status advances.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	UserName      string      `json:"userName"`
	Items         []CartItem  `json:"items"`
	Total         int         `json:"total"`
	Status        OrderStatus `json:"status"`
	Timestamp     time.Time   `json:"timestamp"`
	Address       string      `json:"address"`
	PaymentMethod string      `json:"paymentMethod"`
}

type View string

const (
	ViewHome     View = "home"
	ViewLogin    View = "login"
	ViewRegister View = "register"
	ViewAdmin    View = "admin"
	ViewProfile  View = "profile"
	ViewCheckout View = "checkout"
)

func (v View) Valid() bool {
	switch v {
	case ViewHome, ViewLogin, ViewRegister, ViewAdmin, ViewProfile, ViewCheckout:
		return true
	}
	return false
}
