package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeReviewSubmitted = "review.submitted"
	EventTypeEmployeeDeleted = "employee.deleted"
)

// ReviewSubmittedEvent is published after a review transaction commits. It
// carries the freshly recomputed aggregates for audit logging.
type ReviewSubmittedEvent struct {
	BaseEvent
	ReviewID       int64   `json:"review_id"`
	EmployeeID     int64   `json:"employee_id"`
	Rating         int     `json:"rating"`
	CustomerRating float64 `json:"customer_rating"`
	ReviewCount    int     `json:"review_count"`
}

func NewReviewSubmittedEvent(reviewID, employeeID int64, rating int, customerRating float64, reviewCount int) *ReviewSubmittedEvent {
	return &ReviewSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeReviewSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"review_id":       reviewID,
				"employee_id":     employeeID,
				"rating":          rating,
				"customer_rating": customerRating,
				"review_count":    reviewCount,
			},
		},
		ReviewID:       reviewID,
		EmployeeID:     employeeID,
		Rating:         rating,
		CustomerRating: customerRating,
		ReviewCount:    reviewCount,
	}
}

type EmployeeDeletedEvent struct {
	BaseEvent
	EmployeeID     int64 `json:"employee_id"`
	DeletedReviews int   `json:"deleted_reviews"`
}

func NewEmployeeDeletedEvent(employeeID int64, deletedReviews int) *EmployeeDeletedEvent {
	return &EmployeeDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id":     employeeID,
				"deleted_reviews": deletedReviews,
			},
		},
		EmployeeID:     employeeID,
		DeletedReviews: deletedReviews,
	}
}
