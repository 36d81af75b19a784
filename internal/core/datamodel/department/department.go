package department

import "time"

// Department is static reference data. Employees reference departments by
// name; the link is enforced by join at read time.
type Department struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Department) TableName() string {
	return "departments"
}
