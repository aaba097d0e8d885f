package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blinkfast-backend/internal/catalog"
	"blinkfast-backend/internal/checkout"
)

func product(t *testing.T, id string) catalog.Product {
	t.Helper()
	p, ok := catalog.Lookup(id)
	require.True(t, ok, "seed product %s missing", id)
	return p
}

func TestRoleFor(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleFor("admin@fast.com"))
	assert.Equal(t, RoleUser, RoleFor("shopper@example.com"))
}

func TestAddToCartIncrementsQuantity(t *testing.T) {
	sess := newSession(User{ID: "u1", Role: RoleUser})
	milk := product(t, "1")

	cart := sess.AddToCart(milk)
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)

	cart = sess.AddToCart(milk)
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, 2, sess.CartCount())
}

func TestRemoveFromCartDecrementsAndDrops(t *testing.T) {
	sess := newSession(User{ID: "u1"})
	sess.AddToCart(product(t, "1"))
	sess.AddToCart(product(t, "1"))

	cart := sess.RemoveFromCart("1")
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)

	cart = sess.RemoveFromCart("1")
	assert.Empty(t, cart)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	sess := newSession(User{ID: "u1"})
	sess.AddToCart(product(t, "3"))

	cart := sess.RemoveFromCart("does-not-exist")
	require.Len(t, cart, 1)
	assert.Equal(t, "3", cart[0].ID)
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestCartNeverHoldsNonPositiveQuantity(t *testing.T) {
	sess := newSession(User{ID: "u1"})
	actions := []struct {
		add bool
		id  string
	}{
		{true, "1"}, {true, "2"}, {false, "1"}, {false, "1"},
		{false, "2"}, {false, "2"}, {true, "5"}, {false, "99"},
	}
	for _, a := range actions {
		if a.add {
			p, _ := catalog.Lookup(a.id)
			sess.AddToCart(p)
		} else {
			sess.RemoveFromCart(a.id)
		}
		for _, item := range sess.Cart() {
			assert.Positive(t, item.Quantity)
		}
	}
}

func TestCartTotal(t *testing.T) {
	sess := newSession(User{ID: "u1"})
	sess.AddToCart(product(t, "1")) // 27
	sess.AddToCart(product(t, "1")) // 27
	sess.AddToCart(product(t, "4")) // 40
	assert.Equal(t, 94, sess.CartTotal())
	assert.Equal(t, 3, sess.CartCount())
}

func TestChangeViewAdminGuard(t *testing.T) {
	user := newSession(User{ID: "u1", Role: RoleUser})
	assert.ErrorIs(t, user.ChangeView(ViewAdmin), ErrAdminOnly)
	assert.Equal(t, ViewHome, user.View())

	admin := newSession(User{ID: "a1", Role: RoleAdmin})
	require.NoError(t, admin.ChangeView(ViewAdmin))
	assert.Equal(t, ViewAdmin, admin.View())

	assert.ErrorIs(t, user.ChangeView(View("garbage")), ErrBadView)
	require.NoError(t, user.ChangeView(ViewProfile))
	assert.Equal(t, ViewProfile, user.View())
}

func TestBeginCheckoutNeedsItems(t *testing.T) {
	sess := newSession(User{ID: "u1"})
	_, err := sess.BeginCheckout()
	assert.ErrorIs(t, err, ErrEmptyCart)

	sess.AddToCart(product(t, "2"))
	state, err := sess.BeginCheckout()
	require.NoError(t, err)
	assert.Equal(t, checkout.StepAddress, state.Step)
	assert.Equal(t, ViewCheckout, sess.View())

	_, err = sess.BeginCheckout()
	assert.ErrorIs(t, err, ErrCheckoutOpen)
}

func TestCheckoutTransitionsThroughSession(t *testing.T) {
	sess := newSession(User{ID: "u1"})
	sess.AddToCart(product(t, "2"))
	_, err := sess.BeginCheckout()
	require.NoError(t, err)

	_, err = sess.ConfirmAddress("  ")
	assert.ErrorIs(t, err, checkout.ErrBlankAddress)

	state, err := sess.ConfirmAddress("221B Baker Street")
	require.NoError(t, err)
	assert.Equal(t, checkout.StepPayment, state.Step)
	assert.Equal(t, "221B Baker Street", state.Address)

	state, err = sess.SelectPayment("cod")
	require.NoError(t, err)
	assert.Equal(t, checkout.StepReview, state.Step)
	assert.Equal(t, checkout.PaymentCOD, state.Payment)

	addr, method, err := sess.SubmitCheckout()
	require.NoError(t, err)
	assert.Equal(t, "221B Baker Street", addr)
	assert.Equal(t, checkout.PaymentCOD, method)
}

func TestCheckoutTransitionsWithoutFlow(t *testing.T) {
	sess := newSession(User{ID: "u1"})
	_, err := sess.ConfirmAddress("221B Baker Street")
	assert.ErrorIs(t, err, ErrNoCheckout)
	_, err = sess.SelectPayment("UPI")
	assert.ErrorIs(t, err, ErrNoCheckout)
	_, _, err = sess.SubmitCheckout()
	assert.ErrorIs(t, err, ErrNoCheckout)
}

func TestExitCheckoutKeepsNothing(t *testing.T) {
	sess := newSession(User{ID: "u1"})
	sess.AddToCart(product(t, "2"))
	_, err := sess.BeginCheckout()
	require.NoError(t, err)
	_, err = sess.ConfirmAddress("221B Baker Street")
	require.NoError(t, err)

	sess.ExitCheckout()
	assert.Equal(t, ViewHome, sess.View())
	_, err = sess.CheckoutStatus()
	assert.ErrorIs(t, err, ErrNoCheckout)

	// Re-entering starts from scratch.
	state, err := sess.BeginCheckout()
	require.NoError(t, err)
	assert.Empty(t, state.Address)
}

func TestConcurrentCheckoutTransitions(t *testing.T) {
	// Two requests carrying the same token may hit the checkout
	// endpoints at once; the session must serialize the transitions.
	sess := newSession(User{ID: "u1"})
	sess.AddToCart(product(t, "2"))
	_, err := sess.BeginCheckout()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sess.ConfirmAddress(fmt.Sprintf("Flat %d, Sector 45", n))
			sess.SelectPayment("COD")
			sess.SubmitCheckout()
			sess.CheckoutStatus()
		}(i)
	}
	wg.Wait()

	// Exactly one address won and the flow ended up submitted.
	state, err := sess.CheckoutStatus()
	require.NoError(t, err)
	assert.Equal(t, checkout.StepSubmitted, state.Step)
	assert.NotEmpty(t, state.Address)
}
