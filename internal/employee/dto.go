package employee

import (
	errors "github.com/frahmantamala/performance-review/internal"
	"github.com/frahmantamala/performance-review/internal/core/common/validation"
)

// CreateEmployeeDTO is the request payload for adding an employee. Phone and
// avatar are optional; when avatar is absent it is derived from the name and
// persisted at creation time.
type CreateEmployeeDTO struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	JoinDate   string `json:"join_date"`
	Avatar     string `json:"avatar"`
}

func (dto CreateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required()
	v.Field("department", dto.Department).Required()
	v.Field("position", dto.Position).Required()
	v.Field("email", dto.Email).Required().MaxLength(255)
	v.Field("join_date", dto.JoinDate).Required()
	if err := v.Validate(); err != nil {
		return err
	}

	if _, err := parseDate(dto.JoinDate); err != nil {
		return errors.NewValidationFieldError("join_date", "join_date must be formatted YYYY-MM-DD", errors.ErrCodeInvalidDate)
	}
	return nil
}
