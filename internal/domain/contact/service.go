// internal/domain/contact/service.go
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/pkg/email"
)

var (
	ErrMissingFields = errors.New("name, email and message are required")
	ErrInvalidEmail  = errors.New("invalid email address")
)

const maxMessageLength = 5000

// Repository is the submission persistence port
type Repository interface {
	Create(ctx context.Context, s *Submission) error
	List(ctx context.Context, offset, limit int) ([]Submission, int64, error)
}

// Notifier forwards submissions to the support mailbox
type Notifier interface {
	SendContactNotification(ctx context.Context, data email.ContactNotificationData) error
}

// Service handles contact form submissions
type Service struct {
	repo     Repository
	notifier Notifier
	logger   logrus.FieldLogger
}

// NewService creates a new contact service
func NewService(repo Repository, notifier Notifier, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger.WithField("component", "contact"),
	}
}

// Submit validates and stores a submission, then notifies support.
// Notification failures are logged only.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*Submission, error) {
	sub := &Submission{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}

	if sub.Name == "" || sub.Email == "" || sub.Message == "" {
		return nil, ErrMissingFields
	}
	if addr, err := mail.ParseAddress(sub.Email); err != nil || addr.Address != sub.Email {
		return nil, ErrInvalidEmail
	}
	if len([]rune(sub.Message)) > maxMessageLength {
		sub.Message = string([]rune(sub.Message)[:maxMessageLength])
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"submission_id": sub.ID,
		"email":         sub.Email,
	}).Info("contact form submitted")

	err := s.notifier.SendContactNotification(ctx, email.ContactNotificationData{
		Name:    sub.Name,
		Email:   sub.Email,
		Subject: sub.Subject,
		Message: sub.Message,
	})
	if err != nil {
		s.logger.WithError(err).WithField("submission_id", sub.ID).Warn("failed to notify support")
	}

	return sub, nil
}

// List returns a page of submissions, newest first
func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 50
	}

	subs, total, err := s.repo.List(ctx, (req.Page-1)*req.Limit, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return &ListResponse{
		Submissions: subs,
		Total:       total,
		Page:        req.Page,
		Limit:       req.Limit,
	}, nil
}
