// Package store holds all runtime state of the storefront: sessions
// with their carts, the registered-user table and the shared order
// book. Everything lives in memory and is lost on restart.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"blinkfast-backend/internal/catalog"
)

// TopicOrderPlaced is published with the *Order after every successful
// placement.
const TopicOrderPlaced = "order:placed"

var (
	ErrEmptyEmail    = errors.New("store: email must not be empty")
	ErrEmailTaken    = errors.New("store: email already registered")
	ErrNoSession     = errors.New("store: session not found")
	ErrOrderNotFound = errors.New("store: order not found")
	ErrBadTransition = errors.New("store: invalid status transition")
)

type registeredUser struct {
	name string
	hash []byte
}

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	users    map[string]registeredUser
	orders   []*Order

	bus  EventBus.Bus
	node *snowflake.Node
}

func New() *Store {
	node, err := snowflake.NewNode(1)
	if err != nil {
		// node id 1 is always in range; NewNode only rejects ids > 1023
		panic(err)
	}
	s := &Store{
		sessions: make(map[string]*Session),
		users:    make(map[string]registeredUser),
		bus:      EventBus.New(),
		node:     node,
	}
	s.orders = seedOrders()
	return s
}

// Bus exposes the event bus for order-placed subscribers.
func (s *Store) Bus() EventBus.Bus {
	return s.bus
}

// Register records a user in the in-memory registry. Login stays
// demo-mode, but a registered display name is used on later logins.
func (s *Store) Register(name, email, password string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return ErrEmailTaken
	}
	s.users[email] = registeredUser{name: name, hash: hash}
	return nil
}

// Login never fails for a non-empty email: the role comes from the
// "admin" substring and a fresh session starts at the home view. The
// returned token identifies the session on later requests.
func (s *Store) Login(email string) (*Session, string, error) {
	if email == "" {
		return nil, "", ErrEmptyEmail
	}
	role := RoleFor(email)
	name := "Standard User"
	if role == RoleAdmin {
		name = "Admin User"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if reg, ok := s.users[email]; ok && reg.name != "" {
		name = reg.name
	}
	user := User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Role:  role,
	}
	sess := newSession(user)
	token := uuid.NewString()
	s.sessions[token] = sess
	zap.L().Info("session started",
		zap.String("email", email), zap.String("role", string(role)))
	return sess, token, nil
}

// Logout destroys the session: user gone, cart gone.
func (s *Store) Logout(token string) {
	s.mu.Lock()
	sess, ok := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()
	if ok {
		sess.reset()
		zap.L().Info("session ended", zap.String("email", sess.User().Email))
	}
}

// Session resolves a token to its live session.
func (s *Store) Session(token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrNoSession
	}
	return sess, nil
}

// PlaceOrder freezes the session's cart into a new pending order,
// prepends it to the order book, empties the cart and publishes the
// order-placed event. The order total is computed from the frozen
// snapshot, never from the live cart.
func (s *Store) PlaceOrder(sess *Session, address, paymentMethod string) (Order, error) {
	user, items, total, err := sess.takeOrderSnapshot()
	if err != nil {
		return Order{}, err
	}
	order := &Order{
		ID:            fmt.Sprintf("ORD-%s", s.node.Generate()),
		UserID:        user.ID,
		UserName:      user.Name,
		Items:         items,
		Total:         total,
		Status:        StatusPending,
		Timestamp:     time.Now(),
		Address:       address,
		PaymentMethod: paymentMethod,
	}
	s.mu.Lock()
	s.orders = append([]*Order{order}, s.orders...)
	s.mu.Unlock()

	zap.L().Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("user", order.UserName),
		zap.Int("total", order.Total),
		zap.String("payment", order.PaymentMethod))
	evt := *order
	s.bus.Publish(TopicOrderPlaced, &evt)
	return *order, nil
}

// Orders returns the whole order book, newest first, as detached
// copies. The book's own records are only touched under the store
// lock; handlers marshal the copies without it. Item slices are
// shared but frozen at placement.
func (s *Store) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = *o
	}
	return out
}

// OrdersFor returns the orders belonging to one user, newest first.
func (s *Store) OrdersFor(userID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out
}

// Order looks up a single order by id.
func (s *Store) Order(id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return *o, nil
		}
	}
	return Order{}, ErrOrderNotFound
}

// AdvanceOrderStatus moves an order one step forward in its lifecycle.
// Only the status may change after placement.
func (s *Store) AdvanceOrderStatus(id string, next OrderStatus) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID != id {
			continue
		}
		if !o.Status.CanAdvanceTo(next) {
			return Order{}, ErrBadTransition
		}
		o.Status = next
		zap.L().Info("order status advanced",
			zap.String("order_id", o.ID), zap.String("status", string(next)))
		return *o, nil
	}
	return Order{}, ErrOrderNotFound
}

// Stats are the admin dashboard aggregates.
type Stats struct {
	TotalSales       int `json:"totalSales"`
	OrdersReceived   int `json:"ordersReceived"`
	ProductInventory int `json:"productInventory"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{
		OrdersReceived:   len(s.orders),
		ProductInventory: len(catalog.Products()),
	}
	for _, o := range s.orders {
		st.TotalSales += o.Total
	}
	return st
}

// seedOrders returns the demo order book so the admin dashboard is not
// empty on a fresh start.
func seedOrders() []*Order {
	return []*Order{
		{
			ID:            "ORD-101",
			UserID:        "user-1",
			UserName:      "John Doe",
			Items:         []CartItem{},
			Total:         450,
			Status:        StatusDelivered,
			Timestamp:     time.Now().Add(-24 * time.Hour),
			Address:       "Sector 45, Gurugram",
			PaymentMethod: "UPI",
		},
	}
}
