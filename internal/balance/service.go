package balance

import (
	"log/slog"

	errors "github.com/frahmantamala/household-expenses/internal"
	balanceDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/balance"
	"github.com/frahmantamala/household-expenses/internal/month"
)

type RepositoryAPI interface {
	GetByMonth(monthKey string) (*balanceDatamodel.Balance, error)
	List() ([]*balanceDatamodel.Balance, error)
	Upsert(b *balanceDatamodel.Balance) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get returns the month's balance, or a zero balance when none was recorded.
func (s *Service) Get(monthKey string) (Balance, error) {
	key, err := month.Parse(monthKey)
	if err != nil {
		return Balance{}, errors.NewValidationError("Invalid month", errors.ErrCodeInvalidMonth)
	}

	row, err := s.repo.GetByMonth(key.String())
	if err != nil {
		s.logger.Error("failed to load balance", "error", err, "month", monthKey)
		return Balance{}, errors.NewInternalError("failed to load balance", err)
	}
	if row == nil {
		return Empty(key), nil
	}
	return FromDataModel(row), nil
}

func (s *Service) List() ([]Balance, error) {
	rows, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list balances", "error", err)
		return nil, errors.NewInternalError("failed to list balances", err)
	}
	out := make([]Balance, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Set(dto SetBalanceDTO) (Balance, error) {
	if err := dto.Validate(); err != nil {
		return Balance{}, err
	}

	row := &balanceDatamodel.Balance{MonthKey: dto.MonthKey, StartingBalance: *dto.StartingBalance}
	if err := s.repo.Upsert(row); err != nil {
		s.logger.Error("failed to save balance", "error", err, "month", dto.MonthKey)
		return Balance{}, errors.NewInternalError("failed to save balance", err)
	}

	s.logger.Info("balance saved", "month", dto.MonthKey)
	return FromDataModel(row), nil
}
