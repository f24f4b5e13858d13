// Package checkout drives the multi-step purchase wizard: order summary,
// buyer identity, payment proof upload, confirmation. The flow holds all
// state in memory for its own lifetime; nothing (in particular the proof
// image) is ever written to durable storage before submission.
package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

type Step int

const (
	StepOrderSummary Step = iota
	StepUserIdentity
	StepPaymentProof
	StepConfirm
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepOrderSummary:
		return "order_summary"
	case StepUserIdentity:
		return "user_identity"
	case StepPaymentProof:
		return "payment_proof"
	case StepConfirm:
		return "confirm"
	case StepDone:
		return "done"
	}
	return "unknown"
}

const maxProofSize = 5 * 1024 * 1024

var (
	ErrInvalidStep        = errors.New("operation not valid at the current step")
	ErrUsernameRequired   = errors.New("username is required")
	ErrProofRequired      = errors.New("a payment proof image is required")
	ErrProofTooLarge      = errors.New("payment proof exceeds 5MB")
	ErrProofType          = errors.New("payment proof must be a jpeg or png image")
	ErrSubmissionInFlight = errors.New("a submission is already being processed")
	ErrAlreadySubmitted   = errors.New("this order has already been submitted")
)

// OrderSummary is the item being purchased, captured when the flow starts.
type OrderSummary struct {
	OfferID  string
	ItemName string
	Price    decimal.Decimal
	IsBundle bool
}

// ProofImage is the uploaded receipt, held in memory only.
type ProofImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Submission is the assembled payload handed to the Submitter exactly once.
type Submission struct {
	Summary  OrderSummary
	Username string
	Proof    ProofImage
}

// Submitter performs the actual order creation (normally the multipart POST
// to the orders endpoint).
type Submitter interface {
	Submit(ctx context.Context, s Submission) (orderID uint, err error)
}

type Flow struct {
	mu        sync.Mutex
	submitter Submitter
	summary   OrderSummary

	authenticated bool
	username      string
	proof         *ProofImage

	step       Step
	processing bool
	submitted  bool
	orderID    uint
}

// NewFlow starts a checkout for the given item. When username is non-empty
// the buyer is already authenticated and the identity step is skipped.
func NewFlow(submitter Submitter, summary OrderSummary, username string) *Flow {
	return &Flow{
		submitter:     submitter,
		summary:       summary,
		authenticated: username != "",
		username:      username,
		step:          StepOrderSummary,
	}
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Continue advances past the order summary. Authenticated buyers jump
// straight to the proof upload.
func (f *Flow) Continue() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepOrderSummary {
		return ErrInvalidStep
	}
	if f.authenticated {
		f.step = StepPaymentProof
	} else {
		f.step = StepUserIdentity
	}
	return nil
}

// EnterUsername records the in-game identity at the identity step.
func (f *Flow) EnterUsername(username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepUserIdentity {
		return ErrInvalidStep
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	f.username = username
	f.step = StepPaymentProof
	return nil
}

// AttachProof validates and stores the receipt image in memory, then moves
// to confirmation.
func (f *Flow) AttachProof(img ProofImage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPaymentProof {
		return ErrInvalidStep
	}
	if len(img.Data) == 0 {
		return ErrProofRequired
	}
	if len(img.Data) > maxProofSize {
		return ErrProofTooLarge
	}
	if img.ContentType != "image/jpeg" && img.ContentType != "image/png" {
		return ErrProofType
	}

	f.proof = &img
	f.step = StepConfirm
	return nil
}

// Back returns to the previous step, discarding the data of the step being
// left. Not allowed while a submission is in flight or after completion.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing || f.submitted {
		return ErrSubmissionInFlight
	}

	switch f.step {
	case StepConfirm:
		f.proof = nil
		f.step = StepPaymentProof
	case StepPaymentProof:
		if f.authenticated {
			f.step = StepOrderSummary
		} else {
			f.username = ""
			f.step = StepUserIdentity
		}
	case StepUserIdentity:
		f.username = ""
		f.step = StepOrderSummary
	default:
		return ErrInvalidStep
	}
	return nil
}

// Submit performs the order submission exactly once. Concurrent calls and
// calls after success are rejected; a failed submission unlocks the flow so
// the buyer can retry.
func (f *Flow) Submit(ctx context.Context) (uint, error) {
	f.mu.Lock()
	if f.submitted {
		f.mu.Unlock()
		return f.orderID, ErrAlreadySubmitted
	}
	if f.processing {
		f.mu.Unlock()
		return 0, ErrSubmissionInFlight
	}
	if f.step != StepConfirm || f.proof == nil {
		f.mu.Unlock()
		return 0, ErrInvalidStep
	}

	f.processing = true
	submission := Submission{
		Summary:  f.summary,
		Username: f.username,
		Proof:    *f.proof,
	}
	f.mu.Unlock()

	orderID, err := f.submitter.Submit(ctx, submission)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.processing = false
	if err != nil {
		return 0, err
	}

	f.submitted = true
	f.orderID = orderID
	f.proof = nil
	f.step = StepDone
	return orderID, nil
}
