package savings

import (
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/household-expenses/internal"
	savingsDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/savings"
)

type RepositoryAPI interface {
	List() ([]*savingsDatamodel.Saving, error)
	GetByID(id int64) (*savingsDatamodel.Saving, error)
	Create(s *savingsDatamodel.Saving) error
	AddToCurrent(id int64, amount float64) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List() ([]Goal, error) {
	rows, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list savings", "error", err)
		return nil, errors.NewInternalError("failed to list savings", err)
	}
	out := make([]Goal, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Create(dto CreateGoalDTO) (*Goal, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &savingsDatamodel.Saving{Name: strings.TrimSpace(dto.Name), Target: *dto.Target}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create saving", "error", err)
		return nil, errors.NewInternalError("failed to create saving", err)
	}

	s.logger.Info("saving created", "saving_id", row.ID)
	goal := FromDataModel(row)
	return &goal, nil
}

// Contribute adds amount to the goal's current value and returns the updated goal.
func (s *Service) Contribute(id int64, dto ContributeDTO) (*Goal, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load saving", err)
	}
	if existing == nil {
		return nil, errors.ErrSavingNotFound
	}

	if err := s.repo.AddToCurrent(id, *dto.Amount); err != nil {
		s.logger.Error("failed to record contribution", "error", err, "saving_id", id)
		return nil, errors.NewInternalError("failed to record contribution", err)
	}

	updated, err := s.repo.GetByID(id)
	if err != nil || updated == nil {
		return nil, errors.NewInternalError("failed to reload saving", err)
	}
	goal := FromDataModel(updated)
	return &goal, nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete saving", "error", err, "saving_id", id)
		return errors.NewInternalError("failed to delete saving", err)
	}
	return nil
}
