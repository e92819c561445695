package ports

import (
	"context"

	"github.com/stroyservice/intake-system/internal/core/domain"
)

// CreateOrderInput carries the normalized submission fields. Telephone is
// expected to be validated by the transport layer before the service is
// called; the service fills placeholders for every other blank field.
type CreateOrderInput struct {
	Name      string
	Telephone string
	Email     string
	Subject   string
	Message   string
}

// CreateOrderResult is returned after a submission has been handled.
type CreateOrderResult struct {
	Order domain.Order
	// Duplicate is true when the submission matched a recently seen one and
	// no new order was created.
	Duplicate bool
}

// IntakeService defines the web-submission use case.
type IntakeService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error)
}

// SubmissionGuard abstracts the optional duplicate-submission store (Redis).
type SubmissionGuard interface {
	IsDuplicate(ctx context.Context, phone, digest string) (bool, error)
	Mark(ctx context.Context, phone, digest string) error
}
