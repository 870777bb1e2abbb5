package auth

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/household-expenses/internal"
	userDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetByUsername(username string) (*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s *userDatamodel.Session) error
	Get(ctx context.Context, token string) (*userDatamodel.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now int64) (int64, error)
}

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*Session, error)
	Authenticate(ctx context.Context, cookieValue string) (*coreUser.User, error)
	Logout(ctx context.Context, cookieValue string) error
}

// Session is an issued login: the signed cookie value and its lifetime.
type Session struct {
	Value     string
	ExpiresAt time.Time
	Remember  bool
	MaxAge    int
	User      *coreUser.User
}

type Options struct {
	SessionTTL  time.Duration
	RememberTTL time.Duration
}

// Service is the main auth service with dependencies
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenGenerator
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new auth service
func NewService(users UserRepository, sessions SessionRepository, tokens TokenGenerator, opts Options, logger *slog.Logger) *Service {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 12 * time.Hour
	}
	if opts.RememberTTL <= 0 {
		opts.RememberTTL = 30 * 24 * time.Hour
	}
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Login verifies credentials and opens a new session.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*Session, error) {
	dto = dto.Normalize()
	if dto.Username == "" || dto.Password == "" {
		return nil, errors.ErrInvalidCredentials
	}

	row, err := s.users.GetByUsername(dto.Username)
	if err != nil {
		return nil, errors.NewInternalError("failed to look up user", err)
	}
	if row == nil {
		return nil, errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	now := s.now()
	ttl := s.opts.SessionTTL
	if dto.Remember {
		ttl = s.opts.RememberTTL
	}
	expiresAt := now.Add(ttl)

	token := uuid.NewString()
	if err := s.sessions.Create(ctx, &userDatamodel.Session{
		Token:     token,
		UserID:    row.ID,
		CreatedAt: now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}); err != nil {
		return nil, errors.NewInternalError("failed to create session", err)
	}

	value, err := s.tokens.Sign(token, row.ID, now, expiresAt)
	if err != nil {
		return nil, errors.NewInternalError("failed to sign session", err)
	}

	out := &Session{
		Value:     value,
		ExpiresAt: expiresAt,
		Remember:  dto.Remember,
		User:      principal(row),
	}
	if dto.Remember {
		out.MaxAge = int(ttl.Seconds())
	}

	s.logger.Info("session opened", "user_id", row.ID, "remember", dto.Remember)
	return out, nil
}

// Authenticate resolves a cookie value to its user; any failure is Unauthorized.
func (s *Service) Authenticate(ctx context.Context, cookieValue string) (*coreUser.User, error) {
	if cookieValue == "" {
		return nil, errors.ErrUnauthorized
	}
	claims, err := s.tokens.Validate(cookieValue)
	if err != nil {
		return nil, errors.ErrUnauthorized
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, errors.ErrUnauthorized
	}

	sess, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load session", err)
	}
	if sess == nil || sess.UserID != userID || sess.ExpiresAt <= s.now().Unix() {
		return nil, errors.ErrUnauthorized
	}

	row, err := s.users.GetByID(userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load user", err)
	}
	if row == nil {
		return nil, errors.ErrUnauthorized
	}
	return principal(row), nil
}

// Logout deletes the cookie's session if it names one.
func (s *Service) Logout(ctx context.Context, cookieValue string) error {
	if cookieValue == "" {
		return nil
	}
	claims, err := s.tokens.Validate(cookieValue)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return errors.NewInternalError("failed to delete session", err)
	}
	return nil
}

// PurgeExpired removes sessions past their expiry.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now().Unix())
}

func principal(row *userDatamodel.User) *coreUser.User {
	return &coreUser.User{
		ID:        row.ID,
		Username:  row.Username,
		Role:      coreUser.Role(row.Role),
		CreatedAt: row.CreatedAt,
	}
}
