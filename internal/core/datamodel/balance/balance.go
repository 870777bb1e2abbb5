package balance

import "time"

type Balance struct {
	MonthKey        string    `gorm:"column:month_key;primaryKey"`
	StartingBalance float64   `gorm:"column:starting_balance;not null"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Balance) TableName() string {
	return "balances"
}
