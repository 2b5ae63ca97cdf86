package usecase

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of
// them so callers can classify with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrPersistence    = errors.New("persistence failure")
	ErrPartialCascade = errors.New("partial cascade failure")
)

var (
	ErrProjectNotFound     = fmt.Errorf("%w: project", ErrNotFound)
	ErrEstimateNotFound    = fmt.Errorf("%w: estimate", ErrNotFound)
	ErrChangeOrderNotFound = fmt.Errorf("%w: change order", ErrNotFound)
	ErrExpenseNotFound     = fmt.Errorf("%w: expense", ErrNotFound)
	ErrTimeEntryNotFound   = fmt.Errorf("%w: time entry", ErrNotFound)
	ErrJobNotFound         = fmt.Errorf("%w: job", ErrNotFound)
	ErrInvoiceNotFound     = fmt.Errorf("%w: invoice", ErrNotFound)
	ErrPaymentNotFound     = fmt.Errorf("%w: payment", ErrNotFound)
	ErrBlueprintNotFound   = fmt.Errorf("%w: blueprint of values", ErrNotFound)
)

var (
	ErrInvalidProjectID     = fmt.Errorf("%w: invalid project id", ErrValidation)
	ErrInvalidEstimateID    = fmt.Errorf("%w: invalid estimate id", ErrValidation)
	ErrInvalidChangeOrderID = fmt.Errorf("%w: invalid change order id", ErrValidation)
	ErrInvalidInvoiceID     = fmt.Errorf("%w: invalid invoice id", ErrValidation)
	ErrInvalidPaymentID     = fmt.Errorf("%w: invalid payment id", ErrValidation)
	ErrInvalidBlueprintID   = fmt.Errorf("%w: invalid blueprint id", ErrValidation)
	ErrInvalidAmount        = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrInvalidStatus        = fmt.Errorf("%w: unknown status", ErrValidation)
	ErrInvalidTransition    = fmt.Errorf("%w: status transition not allowed", ErrValidation)
	ErrInvalidSource        = fmt.Errorf("%w: invalid billing source", ErrValidation)
	ErrMissingInvoiceLink   = fmt.Errorf("%w: billed source requires an invoice line item", ErrValidation)
	ErrNoLinkedEstimate     = fmt.Errorf("%w: project has no linked estimate", ErrValidation)
	ErrEstimateNotAccepted  = fmt.Errorf("%w: estimate not accepted", ErrValidation)
	ErrNoBillableItems      = fmt.Errorf("%w: no billable items", ErrValidation)
	ErrInvoiceVoid          = fmt.Errorf("%w: invoice is void", ErrValidation)
	ErrChangeOrderBilled    = fmt.Errorf("%w: change order already billed", ErrValidation)
	ErrSourceNotLinkable    = fmt.Errorf("%w: source cannot be billed on this invoice", ErrValidation)
)

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
