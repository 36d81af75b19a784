package review

import "time"

// CustomerReview rows are immutable once written. They are removed only when
// the owning employee is deleted.
type CustomerReview struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	EmployeeID    int64     `json:"employee_id" gorm:"column:employee_id;not null;index"`
	CustomerName  string    `json:"customer_name" gorm:"column:customer_name;not null"`
	CustomerEmail string    `json:"customer_email" gorm:"column:customer_email;not null"`
	Rating        int       `json:"rating" gorm:"not null"`
	Comment       string    `json:"comment"`
	Date          time.Time `json:"date" gorm:"type:date"`
}

func (CustomerReview) TableName() string {
	return "customer_reviews"
}
