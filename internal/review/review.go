package review

import (
	"time"

	reviewDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/review"
)

const dateLayout = "2006-01-02"

// SubmitResult reports the committed state of a submission: the review id and
// the employee aggregates recomputed inside the same transaction.
type SubmitResult struct {
	ReviewID       int64
	EmployeeID     int64
	CustomerRating float64
	ReviewCount    int
}

func newDataModel(dto SubmitReviewDTO, date time.Time) *reviewDatamodel.CustomerReview {
	return &reviewDatamodel.CustomerReview{
		EmployeeID:    dto.EmployeeID,
		CustomerName:  dto.CustomerName,
		CustomerEmail: dto.CustomerEmail,
		Rating:        dto.Rating,
		Comment:       dto.Comment,
		Date:          date,
	}
}
