package user

import (
	"log/slog"

	errors "github.com/frahmantamala/household-expenses/internal"
	userDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	GetByUsername(username string) (*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	Create(u *userDatamodel.User) error
	List() ([]*userDatamodel.User, error)
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost, logger: logger}
}

func (s *Service) Create(dto CreateUserDTO) (int64, error) {
	dto = dto.Normalize()
	if err := dto.Validate(); err != nil {
		return 0, err
	}
	return s.create(dto.Username, dto.Password, coreUser.Role(dto.Role))
}

func (s *Service) create(username, password string, role coreUser.Role) (int64, error) {
	existing, err := s.repo.GetByUsername(username)
	if err != nil {
		return 0, errors.NewInternalError("failed to look up user", err)
	}
	if existing != nil {
		return 0, errors.ErrUserExists
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return 0, errors.NewInternalError("failed to hash password", err)
	}

	row := &userDatamodel.User{Username: username, PasswordHash: hash, Role: string(role)}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", username)
		return 0, errors.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", row.ID, "role", role)
	return row.ID, nil
}

// EnsureAdmin creates the admin account unless the username is already taken.
func (s *Service) EnsureAdmin(username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, ErrMissingCredentials
	}
	existing, err := s.repo.GetByUsername(username)
	if err != nil {
		return false, errors.NewInternalError("failed to look up user", err)
	}
	if existing != nil {
		return false, nil
	}
	if _, err := s.create(username, password, coreUser.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) List() ([]User, error) {
	rows, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users", err)
	}
	out := make([]User, 0, len(rows))
	for _, row := range rows {
		out = append(out, *FromDataModel(row))
	}
	return out, nil
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
