// Package checkout implements the linear checkout step machine:
// address -> payment -> review -> submitted. There is no step-back;
// leaving the flow abandons it entirely and keeps nothing.
package checkout

import (
	"errors"
	"strings"
)

type Step string

const (
	StepAddress   Step = "address"
	StepPayment   Step = "payment"
	StepReview    Step = "review"
	StepSubmitted Step = "submitted"
)

type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCard PaymentMethod = "CARD"
	PaymentCOD  PaymentMethod = "COD"
)

var (
	ErrBlankAddress = errors.New("checkout: address must not be blank")
	ErrBadPayment   = errors.New("checkout: unknown payment method")
	ErrWrongStep    = errors.New("checkout: action not valid in current step")
	ErrAlreadyDone  = errors.New("checkout: flow already submitted")
)

// Sequencer collects address and payment method across the three steps.
// It is owned by a single session and is not safe for concurrent use on
// its own; the owning session serializes access.
type Sequencer struct {
	step    Step
	address string
	payment PaymentMethod
}

func New() *Sequencer {
	return &Sequencer{step: StepAddress, payment: PaymentUPI}
}

func (s *Sequencer) Step() Step             { return s.step }
func (s *Sequencer) Address() string        { return s.address }
func (s *Sequencer) Payment() PaymentMethod { return s.payment }

// ConfirmAddress records the delivery address and advances to payment
// selection. A blank address (after trimming) is rejected and the step
// does not advance.
func (s *Sequencer) ConfirmAddress(address string) error {
	if s.step != StepAddress {
		return ErrWrongStep
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrBlankAddress
	}
	s.address = address
	s.step = StepPayment
	return nil
}

// SelectPayment records the payment method and advances to review.
// An empty method keeps the UPI default.
func (s *Sequencer) SelectPayment(method string) error {
	if s.step != StepPayment {
		return ErrWrongStep
	}
	if method != "" {
		switch m := PaymentMethod(strings.ToUpper(method)); m {
		case PaymentUPI, PaymentCard, PaymentCOD:
			s.payment = m
		default:
			return ErrBadPayment
		}
	}
	s.step = StepReview
	return nil
}

// Submit finalizes the flow from the review step and hands back the
// collected address and payment method for order placement.
func (s *Sequencer) Submit() (address string, method PaymentMethod, err error) {
	switch s.step {
	case StepReview:
		s.step = StepSubmitted
		return s.address, s.payment, nil
	case StepSubmitted:
		return "", "", ErrAlreadyDone
	default:
		return "", "", ErrWrongStep
	}
}
