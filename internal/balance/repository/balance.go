package repository

import (
	"errors"

	"github.com/frahmantamala/household-expenses/internal/balance"
	balanceDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/balance"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BalanceRepository struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) balance.RepositoryAPI {
	return &BalanceRepository{db: db}
}

func (r *BalanceRepository) GetByMonth(monthKey string) (*balanceDatamodel.Balance, error) {
	var row balanceDatamodel.Balance
	err := r.db.Where("month_key = ?", monthKey).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *BalanceRepository) List() ([]*balanceDatamodel.Balance, error) {
	var rows []*balanceDatamodel.Balance
	err := r.db.Order("month_key DESC").Find(&rows).Error
	return rows, err
}

func (r *BalanceRepository) Upsert(b *balanceDatamodel.Balance) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "month_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"starting_balance", "updated_at"}),
	}).Create(b).Error
}
