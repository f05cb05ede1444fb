// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/techempire/storefront/internal/config"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidCode  = errors.New("invalid or expired code")
	ErrCodeDelivery = errors.New("failed to deliver code")
)

// maxCodeCandidates bounds how many outstanding codes are checked per attempt
const maxCodeCandidates = 5

// Repository is the user persistence port
type Repository interface {
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	CreateCode(ctx context.Context, code *AuthCode) error
	// ActiveCodes returns unused codes for email that expire after now, newest first
	ActiveCodes(ctx context.Context, email string, now time.Time, limit int) ([]AuthCode, error)
	MarkCodeUsed(ctx context.Context, id uint) error
}

// CodeManager generates and checks sign-in codes
type CodeManager interface {
	Generate() (string, error)
	Hash(code string) (string, error)
	Verify(code, hash string) bool
}

// TokenIssuer signs session tokens
type TokenIssuer interface {
	GenerateToken(userID uint, email, role string) (string, error)
}

// CodeSender delivers sign-in codes
type CodeSender interface {
	SendAuthCode(ctx context.Context, to, code string, expiryMinutes int) error
}

// RequestCodeRequest represents a sign-in code request
type RequestCodeRequest struct {
	Email string `json:"email" binding:"required"`
}

// VerifyCodeRequest represents a sign-in attempt
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Service handles user business logic
type Service struct {
	repo     Repository
	codes    CodeManager
	tokens   TokenIssuer
	sender   CodeSender
	codeTTL  time.Duration
	tokenTTL time.Duration
	devMode  bool
	now      func() time.Time
	logger   logrus.FieldLogger
}

// NewService creates a new user service
func NewService(
	repo Repository,
	codes CodeManager,
	tokens TokenIssuer,
	sender CodeSender,
	cfg *config.Config,
	logger logrus.FieldLogger,
) *Service {
	return &Service{
		repo:     repo,
		codes:    codes,
		tokens:   tokens,
		sender:   sender,
		codeTTL:  cfg.Security.AuthCodeTTL,
		tokenTTL: cfg.JWT.TokenExpiry,
		devMode:  cfg.IsDevelopment(),
		now:      time.Now,
		logger:   logger.WithField("component", "user"),
	}
}

// RequestCode issues a new sign-in code for email and delivers it
func (s *Service) RequestCode(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	code, err := s.codes.Generate()
	if err != nil {
		return err
	}
	hash, err := s.codes.Hash(code)
	if err != nil {
		return err
	}

	authCode := &AuthCode{
		Email:     email,
		CodeHash:  hash,
		ExpiresAt: s.now().UTC().Add(s.codeTTL),
	}
	if err := s.repo.CreateCode(ctx, authCode); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	if s.devMode {
		s.logger.WithFields(logrus.Fields{
			"email": email,
			"code":  code,
		}).Info("auth code issued")
		return nil
	}

	if err := s.sender.SendAuthCode(ctx, email, code, int(s.codeTTL.Minutes())); err != nil {
		s.logger.WithError(err).WithField("email", email).Error("failed to send auth code")
		return fmt.Errorf("%w: %v", ErrCodeDelivery, err)
	}

	s.logger.WithField("email", email).Info("auth code sent")
	return nil
}

// VerifyCode exchanges a valid code for a session token. The user is
// created on first sign-in.
func (s *Service) VerifyCode(ctx context.Context, email, code string) (*AuthResponse, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)

	now := s.now().UTC()
	candidates, err := s.repo.ActiveCodes(ctx, email, now, maxCodeCandidates)
	if err != nil {
		return nil, fmt.Errorf("failed to load codes: %w", err)
	}

	var matched *AuthCode
	for i := range candidates {
		if s.codes.Verify(code, candidates[i].CodeHash) {
			matched = &candidates[i]
			break
		}
	}
	if matched == nil {
		return nil, ErrInvalidCode
	}

	if err := s.repo.MarkCodeUsed(ctx, matched.ID); err != nil {
		return nil, fmt.Errorf("failed to consume code: %w", err)
	}

	u, err := s.getOrCreate(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	u.LastLoginAt = &now

	token, err := s.tokens.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": u.ID,
		"role":    u.Role,
	}).Info("user signed in")

	return &AuthResponse{
		User:      u,
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

// Me returns the signed-in user
func (s *Service) Me(ctx context.Context, userID uint) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *Service) getOrCreate(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	u = &User{
		Email: email,
		Name:  nameFromEmail(email),
		Role:  RoleUser,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithField("user_id", u.ID).Info("user created")
	return u, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
