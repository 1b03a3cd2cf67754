package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

const (
	notificationSubjectPrefix = "New Contact Form Submission: "
	acknowledgementSubject    = "Contact message delivery notification"
)

// ContactOwner is the mailbox that receives submissions and signs the
// acknowledgement.
type ContactOwner struct {
	Name     string
	Email    string // inbox for notifications
	MailFrom string // address the site is allowed to send as
}

type contactUsecase struct {
	sender   email.Sender
	validate *validator.Validate
	owner    ContactOwner
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(sender email.Sender, validate *validator.Validate, owner ContactOwner) domain.ContactUsecase {
	return &contactUsecase{
		sender:   sender,
		validate: validate,
		owner:    owner,
	}
}

// SendContactMessage validates the contact request and sends both emails
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if req == nil {
		return domain.ErrValidation
	}

	clean := domain.ContactRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := uc.validate.Struct(clean); err != nil {
		return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(validation.FailedFields(err), ", "))
	}

	notification, err := uc.buildNotification(clean)
	if err != nil {
		return fmt.Errorf("failed to render notification: %w", err)
	}
	acknowledgement, err := uc.buildAcknowledgement(clean)
	if err != nil {
		return fmt.Errorf("failed to render acknowledgement: %w", err)
	}

	// Both sends run to completion; one failing does not cancel the other.
	var (
		g    errgroup.Group
		errs [2]error
	)
	for i, msg := range []email.Message{notification, acknowledgement} {
		i, msg := i, msg
		g.Go(func() error {
			errs[i] = uc.sender.Send(ctx, msg)
			return errs[i]
		})
	}
	if g.Wait() != nil {
		return fmt.Errorf("%w: %w", domain.ErrDispatch, errors.Join(errs[:]...))
	}

	return nil
}

func (uc *contactUsecase) buildNotification(req domain.ContactRequest) (email.Message, error) {
	text, html, err := email.RenderNotification(email.ContactEmailData{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
		OwnerName:   uc.owner.Name,
	})
	if err != nil {
		return email.Message{}, err
	}

	return email.Message{
		From:    email.Address(req.Name, uc.owner.MailFrom),
		To:      uc.owner.Email,
		ReplyTo: req.Email,
		Subject: notificationSubjectPrefix + req.Subject,
		Text:    text,
		HTML:    html,
	}, nil
}

func (uc *contactUsecase) buildAcknowledgement(req domain.ContactRequest) (email.Message, error) {
	text, html, err := email.RenderAcknowledgement(email.ContactEmailData{
		SenderName: req.Name,
		OwnerName:  uc.owner.Name,
	})
	if err != nil {
		return email.Message{}, err
	}

	return email.Message{
		From:    email.Address(uc.owner.Name, uc.owner.MailFrom),
		To:      req.Email,
		Subject: acknowledgementSubject,
		Text:    text,
		HTML:    html,
	}, nil
}
