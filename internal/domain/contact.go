package domain

import (
	"context"
	"errors"
)

var (
	// ErrValidation means one or more required fields were empty.
	ErrValidation = errors.New("all fields are required")
	// ErrDispatch means the mail transport rejected at least one message.
	ErrDispatch = errors.New("failed to send emails")
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates the request and sends the owner
	// notification and the acknowledgement. Both must succeed.
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
