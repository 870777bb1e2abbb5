package repository

import (
	"errors"

	savingsDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/savings"
	"github.com/frahmantamala/household-expenses/internal/savings"
	"gorm.io/gorm"
)

type SavingsRepository struct {
	db *gorm.DB
}

func NewSavingsRepository(db *gorm.DB) savings.RepositoryAPI {
	return &SavingsRepository{db: db}
}

func (r *SavingsRepository) List() ([]*savingsDatamodel.Saving, error) {
	var rows []*savingsDatamodel.Saving
	err := r.db.Order("id DESC").Find(&rows).Error
	return rows, err
}

func (r *SavingsRepository) GetByID(id int64) (*savingsDatamodel.Saving, error) {
	var row savingsDatamodel.Saving
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *SavingsRepository) Create(s *savingsDatamodel.Saving) error {
	return r.db.Create(s).Error
}

// AddToCurrent increments the stored value in place.
func (r *SavingsRepository) AddToCurrent(id int64, amount float64) error {
	return r.db.Model(&savingsDatamodel.Saving{}).
		Where("id = ?", id).
		Update("current", gorm.Expr("current + ?", amount)).Error
}

func (r *SavingsRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&savingsDatamodel.Saving{}).Error
}
