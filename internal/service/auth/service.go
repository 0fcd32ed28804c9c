// Package auth implements account registration, login and the
// authorization guard used by the HTTP layer.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"news-portal/internal/domain/entity"
	"news-portal/internal/observability/metrics"
	"news-portal/internal/repository"
	"news-portal/internal/utils/text"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong
// password alike.
var ErrInvalidCredentials = &entity.AuthError{Reason: entity.AuthMissing, Message: "invalid credentials"}

// RegisterInput is a registration request.
type RegisterInput struct {
	Name     string `validate:"required,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Role     entity.Role
}

// Session is a signed-in account and its credential.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Options configures Service.
type Options struct {
	MinPasswordLength int
	// Production forces every registration to RoleUser.
	Production bool
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Service handles authentication business logic.
type Service struct {
	users  repository.UserRepository
	tokens *TokenManager
	opts   Options
}

// NewService creates a new authentication service.
func NewService(users repository.UserRepository, tokens *TokenManager, opts Options) *Service {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, tokens: tokens, opts: opts}
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	sess, err := s.register(ctx, in)
	metrics.RecordAuthAttempt("register", err == nil)
	return sess, err
}

func (s *Service) register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	var verrs entity.ValidationErrors
	if err := entity.ValidateStruct(in); err != nil {
		if !errors.As(err, &verrs) {
			return nil, err
		}
	}
	if in.Password != "" && text.CountRunes(in.Password) < s.opts.MinPasswordLength {
		verrs = append(verrs, &entity.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", s.opts.MinPasswordLength),
		})
	}
	role := in.Role
	switch {
	case s.opts.Production || role == "":
		role = entity.RoleUser
	case !role.IsValid():
		verrs = append(verrs, &entity.ValidationError{Field: "role", Message: "role must be one of: user, admin"})
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	slog.Default().Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return s.session(user)
}

// Login checks email and password and signs the account in.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	sess, err := s.login(ctx, email, password)
	metrics.RecordAuthAttempt("login", err == nil)
	return sess, err
}

func (s *Service) login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &entity.ValidationError{Field: "email", Message: "please provide an email and password"}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.session(user)
}

// Me returns the account of p.
func (s *Service) Me(ctx context.Context, p entity.Principal) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}
	return user, nil
}

func (s *Service) session(u *entity.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}
