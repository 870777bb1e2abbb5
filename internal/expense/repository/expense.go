package repository

import (
	"errors"

	expenseDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/expense"
	"github.com/frahmantamala/household-expenses/internal/expense"
	"gorm.io/gorm"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.RepositoryAPI {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) ListByMonth(monthKey string) ([]*expenseDatamodel.Expense, error) {
	var rows []*expenseDatamodel.Expense
	q := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
	if monthKey != "" {
		q = q.Where("month_key = ?", monthKey)
	}
	err := q.Order("date DESC").Order("id DESC").Find(&rows).Error
	return rows, err
}

func (r *ExpenseRepository) GetByID(id int64) (*expenseDatamodel.Expense, error) {
	var row expenseDatamodel.Expense
	err := r.db.Preload("Items").Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Create inserts the expense together with its items.
func (r *ExpenseRepository) Create(row *expenseDatamodel.Expense) error {
	return r.db.Create(row).Error
}

func (r *ExpenseRepository) UpdateReceiptPath(id int64, path string) error {
	return r.db.Model(&expenseDatamodel.Expense{}).Where("id = ?", id).Update("receipt_path", path).Error
}

func (r *ExpenseRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", id).Delete(&expenseDatamodel.ExpenseItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&expenseDatamodel.Expense{}).Error
	})
}

func (r *ExpenseRepository) CreateItem(item *expenseDatamodel.ExpenseItem) error {
	return r.db.Create(item).Error
}

func (r *ExpenseRepository) DeleteItem(id int64) error {
	return r.db.Where("id = ?", id).Delete(&expenseDatamodel.ExpenseItem{}).Error
}
