// models.go

package main

import (
	"blinkfast-backend/internal/catalog"
	"blinkfast-backend/internal/store"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email string `json:"email"`
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
}

type changeViewRequest struct {
	View string `json:"view"`
}

type addressRequest struct {
	Address string `json:"address"`
}

type paymentRequest struct {
	Method string `json:"method"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type productsResponse struct {
	Products         []catalog.Product `json:"products"`
	BundleSuggestion string            `json:"bundleSuggestion,omitempty"`
}

type cartResponse struct {
	Items []store.CartItem `json:"items"`
	Count int              `json:"count"`
	Total int              `json:"total"`
}

type sessionResponse struct {
	User  store.User       `json:"user"`
	View  store.View       `json:"view"`
	Cart  []store.CartItem `json:"cart"`
	Count int              `json:"cartCount"`
	Total int              `json:"cartTotal"`
}

type checkoutResponse struct {
	Step    string `json:"step"`
	Address string `json:"address,omitempty"`
	Payment string `json:"payment,omitempty"`
}
