package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"librarymanager/internal/apperr"
	"librarymanager/internal/authn"
	"librarymanager/internal/platform/crypto"
	"librarymanager/internal/user"
)

const (
	reasonInvalidLogin  = "invalid email or password"
	reasonEmailTaken    = "email already registered"
	reasonUnknownUser   = "user not found"
	reasonStorage       = "storage unavailable"
	reasonTokenIssuance = "could not issue token"
)

// Session is what a successful signup or login hands back to the client.
type Session struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type Service struct {
	users  user.Repository
	secret string
	ttl    time.Duration
	now    func() time.Time
	newID  func() string
}

func NewService(users user.Repository, secret string, ttl time.Duration) *Service {
	return &Service{
		users:  users,
		secret: secret,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account and signs the caller in.
func (s *Service) Signup(ctx context.Context, in SignupInput) (Session, error) {
	if err := crypto.ValidatePasswordStrength(in.Password); err != nil {
		return Session{}, apperr.Wrap(apperr.KindValidation, err.Error(), err)
	}

	email := normalizeEmail(in.Email)
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return Session{}, apperr.New(apperr.KindConflict, reasonEmailTaken)
	case !errors.Is(err, user.ErrNotFound):
		return Session{}, apperr.Wrap(apperr.KindStorage, reasonStorage, err)
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return Session{}, errors.Wrap(err, "hash password")
	}

	created, err := s.users.Create(ctx, user.User{
		ID:           s.newID(),
		Username:     strings.TrimSpace(in.Username),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			return Session{}, apperr.New(apperr.KindConflict, reasonEmailTaken)
		}
		return Session{}, apperr.Wrap(apperr.KindStorage, reasonStorage, err)
	}
	return s.issue(created)
}

// Login checks the password and returns a fresh token. Unknown email and
// wrong password fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, apperr.New(apperr.KindUnauthenticated, reasonInvalidLogin)
		}
		return Session{}, apperr.Wrap(apperr.KindStorage, reasonStorage, err)
	}
	if !crypto.VerifyPassword(u.PasswordHash, password) {
		return Session{}, apperr.New(apperr.KindUnauthenticated, reasonInvalidLogin)
	}
	return s.issue(u)
}

// Me returns the account behind a verified identity.
func (s *Service) Me(ctx context.Context, caller authn.Identity) (user.User, error) {
	if caller.OwnerID == "" {
		return user.User{}, authn.ErrNoCredential
	}
	u, err := s.users.GetByID(ctx, caller.OwnerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, apperr.New(apperr.KindNotFound, reasonUnknownUser)
		}
		return user.User{}, apperr.Wrap(apperr.KindStorage, reasonStorage, err)
	}
	return u, nil
}

func (s *Service) issue(u user.User) (Session, error) {
	token, err := crypto.GenerateToken(s.secret, u.ID, s.ttl)
	if err != nil {
		return Session{}, apperr.Wrap(apperr.KindUnknown, reasonTokenIssuance, err)
	}
	return Session{Token: token, User: u}, nil
}
