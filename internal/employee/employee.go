package employee

import (
	"strings"
	"time"
	"unicode"

	employeeDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/employee"
	reviewDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/review"
)

const dateLayout = "2006-01-02"

// Employee is the API-facing shape: joined with its department name and with
// the avatar always filled.
type Employee struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Department     string  `json:"department"`
	DepartmentName string  `json:"department_name"`
	Position       string  `json:"position"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	JoinDate       string  `json:"join_date"`
	Avatar         string  `json:"avatar"`
	CustomerRating float64 `json:"customer_rating"`
	ReviewCount    int     `json:"review_count"`
}

// Review is the review history entry returned alongside a single employee.
type Review struct {
	ID            int64  `json:"id"`
	EmployeeID    int64  `json:"employee_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	Date          string `json:"date"`
}

// Detail is the single-employee response: the employee plus its full review
// history ordered most recent first.
type Detail struct {
	Employee *Employee `json:"employee"`
	Reviews  []Review  `json:"reviews"`
}

// Record is what repositories return: the stored row plus the joined
// department name.
type Record struct {
	employeeDatamodel.Employee
	DepartmentName string `gorm:"column:department_name"`
}

// InitialsAvatar derives a display avatar from up to the first two words of a
// name, uppercased. Shaping only; never written back to the store on read.
func InitialsAvatar(name string) string {
	parts := strings.Fields(name)
	if len(parts) > 2 {
		parts = parts[:2]
	}

	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		if len(runes) > 0 {
			b.WriteRune(unicode.ToUpper(runes[0]))
		}
	}
	return b.String()
}

func FromRecord(rec *Record) *Employee {
	avatar := rec.Avatar
	if avatar == "" {
		avatar = InitialsAvatar(rec.Name)
	}

	return &Employee{
		ID:             rec.ID,
		Name:           rec.Name,
		Department:     rec.Department,
		DepartmentName: rec.DepartmentName,
		Position:       rec.Position,
		Email:          rec.Email,
		Phone:          rec.Phone,
		JoinDate:       rec.JoinDate.Format(dateLayout),
		Avatar:         avatar,
		CustomerRating: rec.CustomerRating,
		ReviewCount:    rec.ReviewCount,
	}
}

func FromRecordSlice(recs []*Record) []*Employee {
	result := make([]*Employee, len(recs))
	for i, rec := range recs {
		result[i] = FromRecord(rec)
	}
	return result
}

func reviewFromDataModel(r *reviewDatamodel.CustomerReview) Review {
	return Review{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Rating:        r.Rating,
		Comment:       r.Comment,
		Date:          r.Date.Format(dateLayout),
	}
}

func ReviewsFromDataModel(rows []*reviewDatamodel.CustomerReview) []Review {
	result := make([]Review, len(rows))
	for i, r := range rows {
		result[i] = reviewFromDataModel(r)
	}
	return result
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
