package expense

import "time"

type Expense struct {
	ID          int64         `gorm:"primaryKey"`
	Description string        `gorm:"column:description;not null"`
	Amount      float64       `gorm:"column:amount;not null"`
	Date        string        `gorm:"column:date;not null"`
	Category    string        `gorm:"column:category;not null"`
	Payer       string        `gorm:"column:payer;not null"`
	MonthKey    string        `gorm:"column:month_key;index;not null"`
	ReceiptPath *string       `gorm:"column:receipt_path"`
	Items       []ExpenseItem `gorm:"foreignKey:ExpenseID"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime"`
}

func (Expense) TableName() string {
	return "expenses"
}

type ExpenseItem struct {
	ID        int64   `gorm:"primaryKey"`
	ExpenseID int64   `gorm:"column:expense_id;index;not null"`
	Name      string  `gorm:"column:name;not null"`
	Amount    float64 `gorm:"column:amount;not null"`
}

func (ExpenseItem) TableName() string {
	return "expense_items"
}
