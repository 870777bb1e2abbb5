package savings

import "time"

type Saving struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Target    float64   `gorm:"column:target;not null"`
	Current   float64   `gorm:"column:current;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Saving) TableName() string {
	return "savings"
}
