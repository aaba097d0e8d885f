package store

import (
	"errors"
	"sync"

	"blinkfast-backend/internal/catalog"
	"blinkfast-backend/internal/checkout"
)

var (
	ErrBadView      = errors.New("store: unknown view")
	ErrAdminOnly    = errors.New("store: admin view requires the admin role")
	ErrEmptyCart    = errors.New("store: cart is empty")
	ErrNoCheckout   = errors.New("store: no checkout in progress")
	ErrCheckoutOpen = errors.New("store: checkout already in progress")
)

// Session owns the state of one authenticated user: the user record,
// the cart, the current view and an in-progress checkout flow, if any.
// Each action locks the session so transitions never interleave.
type Session struct {
	mu       sync.Mutex
	user     User
	cart     []CartItem
	view     View
	checkout *checkout.Sequencer
}

func newSession(user User) *Session {
	return &Session{user: user, view: ViewHome}
}

func (s *Session) User() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// ChangeView switches the active view. The admin view is rejected
// centrally for non-admin users instead of relying on the client not
// offering the control.
func (s *Session) ChangeView(v View) error {
	if !v.Valid() {
		return ErrBadView
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v == ViewAdmin && s.user.Role != RoleAdmin {
		return ErrAdminOnly
	}
	s.view = v
	return nil
}

// AddToCart increments the quantity of an existing entry or appends the
// product with quantity 1, and returns the resulting cart.
func (s *Session) AddToCart(p catalog.Product) []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == p.ID {
			s.cart[i].Quantity++
			return s.cartCopy()
		}
	}
	s.cart = append(s.cart, CartItem{Product: p, Quantity: 1})
	return s.cartCopy()
}

// RemoveFromCart decrements the matching entry; at zero the entry is
// dropped. An unknown product id is a no-op.
func (s *Session) RemoveFromCart(productID string) []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == productID {
			if s.cart[i].Quantity > 1 {
				s.cart[i].Quantity--
			} else {
				s.cart = append(s.cart[:i], s.cart[i+1:]...)
			}
			break
		}
	}
	return s.cartCopy()
}

func (s *Session) Cart() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartCopy()
}

// CartCount is the sum of quantities across all entries.
func (s *Session) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.cart {
		n += item.Quantity
	}
	return n
}

// CartTotal is the sum of price * quantity across all entries.
func (s *Session) CartTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartTotal(s.cart)
}

// CheckoutState is a detached snapshot of the in-progress flow. The
// sequencer itself never leaves the session lock.
type CheckoutState struct {
	Step    checkout.Step
	Address string
	Payment checkout.PaymentMethod
}

func (s *Session) checkoutState() CheckoutState {
	return CheckoutState{
		Step:    s.checkout.Step(),
		Address: s.checkout.Address(),
		Payment: s.checkout.Payment(),
	}
}

// BeginCheckout starts the address/payment/review flow. The cart must
// be non-empty and no other flow may be in progress.
func (s *Session) BeginCheckout() (CheckoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cart) == 0 {
		return CheckoutState{}, ErrEmptyCart
	}
	if s.checkout != nil {
		return CheckoutState{}, ErrCheckoutOpen
	}
	s.checkout = checkout.New()
	s.view = ViewCheckout
	return s.checkoutState(), nil
}

// CheckoutStatus reports the in-progress flow, if any.
func (s *Session) CheckoutStatus() (CheckoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkout == nil {
		return CheckoutState{}, ErrNoCheckout
	}
	return s.checkoutState(), nil
}

// ConfirmAddress records the delivery address on the in-progress flow.
func (s *Session) ConfirmAddress(address string) (CheckoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkout == nil {
		return CheckoutState{}, ErrNoCheckout
	}
	if err := s.checkout.ConfirmAddress(address); err != nil {
		return CheckoutState{}, err
	}
	return s.checkoutState(), nil
}

// SelectPayment records the payment method on the in-progress flow.
func (s *Session) SelectPayment(method string) (CheckoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkout == nil {
		return CheckoutState{}, ErrNoCheckout
	}
	if err := s.checkout.SelectPayment(method); err != nil {
		return CheckoutState{}, err
	}
	return s.checkoutState(), nil
}

// SubmitCheckout finalizes the flow from the review step and hands back
// the collected address and payment method for order placement.
func (s *Session) SubmitCheckout() (string, checkout.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkout == nil {
		return "", "", ErrNoCheckout
	}
	return s.checkout.Submit()
}

// ExitCheckout abandons the flow entirely; nothing is kept.
func (s *Session) ExitCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout = nil
	s.view = ViewHome
}

// takeOrderSnapshot freezes the cart for order placement: it returns a
// copied item list and the total computed from that copy, then empties
// the cart, closes any checkout flow and resets the view.
func (s *Session) takeOrderSnapshot() (User, []CartItem, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cart) == 0 {
		return User{}, nil, 0, ErrEmptyCart
	}
	items := s.cartCopy()
	total := cartTotal(items)
	s.cart = nil
	s.checkout = nil
	s.view = ViewHome
	return s.user, items, total, nil
}

// reset clears the cart and any checkout flow on logout.
func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.checkout = nil
	s.view = ViewHome
}

func (s *Session) cartCopy() []CartItem {
	out := make([]CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

func cartTotal(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	return total
}
