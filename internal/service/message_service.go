package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "techcorp/internal/errors"
	"techcorp/internal/model"
	"techcorp/internal/repository"
)

const defaultSubject = "General Inquiry"

// MessageService handles contact form submissions and the message inbox.
type MessageService interface {
	Submit(ctx context.Context, name, email, subject, message string) (*model.ContactMessage, error)
	List(ctx context.Context) ([]model.ContactMessage, error)
	Get(ctx context.Context, id uint) (*model.ContactMessage, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type messageService struct {
	messages  repository.MessageRepository
	validator *ContactValidator
}

// NewMessageService creates a new message service.
func NewMessageService(messages repository.MessageRepository, validator *ContactValidator) MessageService {
	return &messageService{
		messages:  messages,
		validator: validator,
	}
}

// Submit validates and stores a contact form submission. The generated
// reference is shown to the sender as a ticket number.
func (s *messageService) Submit(ctx context.Context, name, email, subject, message string) (*model.ContactMessage, error) {
	if err := s.validator.Validate(name, email, message); err != nil {
		return nil, err
	}

	if subject == "" {
		subject = defaultSubject
	}

	msg := &model.ContactMessage{
		Reference: uuid.New(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   message,
		Status:    model.MessageStatusNew,
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

func (s *messageService) List(ctx context.Context) ([]model.ContactMessage, error) {
	return s.messages.ListNewestFirst(ctx)
}

// Get returns a single message, marking it read on first view.
func (s *messageService) Get(ctx context.Context, id uint) (*model.ContactMessage, error) {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, err
	}

	if msg.Status == model.MessageStatusNew {
		if _, err := s.messages.UpdateStatus(ctx, id, model.MessageStatusRead); err == nil {
			msg.Status = model.MessageStatusRead
		}
	}
	return msg, nil
}

// UpdateStatus sets a message's status to one of the known values.
func (s *messageService) UpdateStatus(ctx context.Context, id uint, status string) error {
	switch status {
	case model.MessageStatusNew, model.MessageStatusRead, model.MessageStatusReplied:
	default:
		return apperrors.ErrInvalidStatus
	}

	affected, err := s.messages.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}
