package review

import (
	errors "github.com/frahmantamala/performance-review/internal"
	"github.com/frahmantamala/performance-review/internal/core/common/validation"
)

// SubmitReviewDTO is the request payload for submitting a customer review.
// Date is optional and defaults to the current date.
type SubmitReviewDTO struct {
	EmployeeID    int64  `json:"employee_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	Date          string `json:"date"`
}

// Validate runs entirely before any store access; a failing payload never
// reaches the transaction.
func (dto SubmitReviewDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("employee_id", dto.EmployeeID).Required()
	v.Field("customer_name", dto.CustomerName).Required()
	v.Field("customer_email", dto.CustomerEmail).Required().MaxLength(255)
	v.Field("rating", dto.Rating).Required().RangeInt(1, 5, errors.ErrCodeInvalidRating)
	if err := v.Validate(); err != nil {
		return err
	}

	if dto.Date != "" {
		if _, err := parseDate(dto.Date); err != nil {
			return errors.NewValidationFieldError("date", "date must be formatted YYYY-MM-DD", errors.ErrCodeInvalidDate)
		}
	}
	return nil
}
