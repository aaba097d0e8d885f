package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartsAtAddressWithUPIDefault(t *testing.T) {
	s := New()
	assert.Equal(t, StepAddress, s.Step())
	assert.Equal(t, PaymentUPI, s.Payment())
}

func TestBlankAddressRejected(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.ConfirmAddress(""), ErrBlankAddress)
	assert.ErrorIs(t, s.ConfirmAddress("   \t\n"), ErrBlankAddress)
	assert.Equal(t, StepAddress, s.Step())
}

func TestAddressAdvances(t *testing.T) {
	s := New()
	require.NoError(t, s.ConfirmAddress("221B Baker Street"))
	assert.Equal(t, StepPayment, s.Step())
	assert.Equal(t, "221B Baker Street", s.Address())
}

func TestAddressIsTrimmed(t *testing.T) {
	s := New()
	require.NoError(t, s.ConfirmAddress("  Sector 45, Gurugram  "))
	assert.Equal(t, "Sector 45, Gurugram", s.Address())
}

func TestPaymentSelection(t *testing.T) {
	s := New()
	require.NoError(t, s.ConfirmAddress("221B Baker Street"))

	assert.ErrorIs(t, s.SelectPayment("BITCOIN"), ErrBadPayment)
	assert.Equal(t, StepPayment, s.Step())

	require.NoError(t, s.SelectPayment("cod"))
	assert.Equal(t, PaymentCOD, s.Payment())
	assert.Equal(t, StepReview, s.Step())
}

func TestEmptyPaymentKeepsDefault(t *testing.T) {
	s := New()
	require.NoError(t, s.ConfirmAddress("221B Baker Street"))
	require.NoError(t, s.SelectPayment(""))
	assert.Equal(t, PaymentUPI, s.Payment())
	assert.Equal(t, StepReview, s.Step())
}

func TestSubmitOnlyFromReview(t *testing.T) {
	s := New()
	_, _, err := s.Submit()
	assert.ErrorIs(t, err, ErrWrongStep)

	require.NoError(t, s.ConfirmAddress("221B Baker Street"))
	_, _, err = s.Submit()
	assert.ErrorIs(t, err, ErrWrongStep)

	require.NoError(t, s.SelectPayment("UPI"))
	addr, method, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, "221B Baker Street", addr)
	assert.Equal(t, PaymentUPI, method)
	assert.Equal(t, StepSubmitted, s.Step())

	_, _, err = s.Submit()
	assert.ErrorIs(t, err, ErrAlreadyDone)
}

func TestNoBackwardTransitions(t *testing.T) {
	s := New()
	require.NoError(t, s.ConfirmAddress("221B Baker Street"))
	// Re-confirming the address from the payment step is not a thing;
	// leaving the flow means abandoning it.
	assert.ErrorIs(t, s.ConfirmAddress("somewhere else"), ErrWrongStep)
	assert.Equal(t, "221B Baker Street", s.Address())
}
