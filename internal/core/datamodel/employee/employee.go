package employee

import "time"

// Employee carries two materialized aggregates, CustomerRating and
// ReviewCount. They are only ever written by the review submission
// transaction, which recomputes both from the full review set. A rating of 0
// with ReviewCount 0 means the employee has not been reviewed yet.
type Employee struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Department     string    `json:"department" gorm:"not null"`
	Position       string    `json:"position" gorm:"not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone          string    `json:"phone"`
	JoinDate       time.Time `json:"join_date" gorm:"column:join_date;type:date"`
	Avatar         string    `json:"avatar"`
	CustomerRating float64   `json:"customer_rating" gorm:"column:customer_rating;default:0"`
	ReviewCount    int       `json:"review_count" gorm:"column:review_count;default:0"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Employee) TableName() string {
	return "employees"
}
