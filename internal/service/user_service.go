package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"users-api/internal/auth"
	"users-api/internal/domain"
	"users-api/internal/repository"
	"users-api/internal/storage"
	"users-api/internal/validation"
)

// UserParams holds the whitelisted user attributes of a request. A nil field
// was not supplied.
type UserParams struct {
	Email                *string
	Password             *string
	PasswordConfirmation *string
}

// UserService describes user lifecycle and session operations.
type UserService interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, params UserParams) (*domain.User, error)
	Update(ctx context.Context, id int64, params UserParams) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
	ImageURL(ctx context.Context, user *domain.User) string
}

// Options tune a UserService.
type Options struct {
	BcryptCost int
	Images     storage.Service
	Logger     logrus.FieldLogger
}

type userService struct {
	users     repository.UserRepository
	tokens    *auth.Issuer
	images    storage.Service
	log       logrus.FieldLogger
	cost      int
	dummyHash []byte
}

func NewUserService(users repository.UserRepository, tokens *auth.Issuer, opts Options) (UserService, error) {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", cost)
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	// compared against on unknown emails so both login failures cost the same
	dummy, err := bcrypt.GenerateFromPassword([]byte("users-api"), cost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}

	return &userService{
		users:     users,
		tokens:    tokens,
		images:    opts.Images,
		log:       log,
		cost:      cost,
		dummyHash: dummy,
	}, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, params UserParams) (*domain.User, error) {
	email := strings.TrimSpace(deref(params.Email))
	password := deref(params.Password)

	fields := validation.ValidateUser(validation.UserInput{
		Email:                email,
		Password:             password,
		PasswordConfirmation: deref(params.PasswordConfirmation),
		PasswordRequired:     true,
	})
	if err := s.checkEmailFree(ctx, email, 0, fields); err != nil {
		return nil, err
	}
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	err = s.withFreshToken(func(token string) error {
		user.AuthToken = token
		_, err := s.users.Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, takenErr(err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id int64, params UserParams) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if params.Email != nil {
		user.Email = strings.TrimSpace(*params.Email)
	}
	password := deref(params.Password)

	fields := validation.ValidateUser(validation.UserInput{
		Email:                user.Email,
		Password:             password,
		PasswordConfirmation: deref(params.PasswordConfirmation),
	})
	if err := s.checkEmailFree(ctx, user.Email, user.ID, fields); err != nil {
		return nil, err
	}
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	// an empty password leaves the stored digest untouched
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, takenErr(err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return notFound(err)
	}

	if s.images != nil && user.Image != "" && !storage.IsAbsoluteURL(user.Image) {
		if err := s.images.DeleteObject(ctx, user.Image); err != nil {
			s.log.WithField("user_id", id).Warnf("delete profile image: %v", err)
		}
	}
	return nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrNotFound
	}
	user, err := s.users.GetByAuthToken(ctx, token)
	if err != nil {
		return notFound(err)
	}

	err = s.withFreshToken(func(token string) error {
		return s.users.UpdateAuthToken(ctx, user.ID, token)
	})
	if err != nil {
		return notFound(err)
	}
	return nil
}

func (s *userService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	if token == "" || s.tokens.Verify(token) != nil {
		return domain.Principal{}, ErrNotAuthenticated
	}

	user, err := s.users.GetByAuthToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Principal{}, ErrNotAuthenticated
		}
		return domain.Principal{}, err
	}
	return domain.Principal{UserID: user.ID}, nil
}

func (s *userService) ImageURL(ctx context.Context, user *domain.User) string {
	if user == nil || user.Image == "" {
		return ""
	}
	if s.images == nil || storage.IsAbsoluteURL(user.Image) {
		return user.Image
	}

	url, err := s.images.ObjectURL(ctx, user.Image)
	if err != nil {
		s.log.WithField("user_id", user.ID).Warnf("resolve profile image: %v", err)
		return ""
	}
	return url
}

// Authorize allows a mutation only when the caller owns the target user.
func Authorize(principal domain.Principal, targetID int64) error {
	if principal.UserID <= 0 || principal.UserID != targetID {
		return ErrForbidden
	}
	return nil
}

// checkEmailFree records a taken error on fields when email belongs to a user
// other than selfID. It only looks when the email is otherwise valid.
func (s *userService) checkEmailFree(ctx context.Context, email string, selfID int64, fields domain.FieldErrors) error {
	if _, bad := fields["email"]; bad {
		return nil
	}
	other, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if other.ID != selfID {
		fields.Add("email", validation.MsgTaken)
	}
	return nil
}

// tokenAttempts bounds retries when a new token collides with a stored one.
const tokenAttempts = 2

// withFreshToken issues a token and hands it to store, issuing again when the
// store reports the token as taken.
func (s *userService) withFreshToken(store func(token string) error) error {
	var err error
	for range tokenAttempts {
		token, issueErr := s.tokens.Issue()
		if issueErr != nil {
			return issueErr
		}
		if err = store(token); !errors.Is(err, repository.ErrTokenTaken) {
			return err
		}
		s.log.Warn("auth token collision, issuing another")
	}
	return err
}

func takenErr(err error) error {
	if errors.Is(err, repository.ErrEmailTaken) {
		return &ValidationError{Fields: domain.FieldErrors{"email": {validation.MsgTaken}}}
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
