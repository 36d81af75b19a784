package review

import (
	"context"
	"log/slog"
	"time"

	reviewDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/review"
	"github.com/frahmantamala/performance-review/internal/core/events"
)

// Repository executes the review submission as one transaction: verify the
// employee exists, insert the row, recompute the employee's materialized
// customer_rating and review_count from the full review set (including the
// new row), and report the committed aggregates. Any failure after the insert
// rolls the whole transaction back.
type Repository interface {
	SubmitReview(rev *reviewDatamodel.CustomerReview) (*SubmitResult, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles review submission business logic
type Service struct {
	repo   Repository
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo Repository, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// SubmitReview validates the payload, runs the submission transaction and
// publishes an audit event once the transaction has committed.
func (s *Service) SubmitReview(dto SubmitReviewDTO) (*SubmitResult, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("review validation failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	date := time.Now()
	if dto.Date != "" {
		parsed, err := parseDate(dto.Date)
		if err == nil {
			date = parsed
		}
	}

	result, err := s.repo.SubmitReview(newDataModel(dto, date))
	if err != nil {
		s.logger.Error("review submission failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	s.logger.Info("review submitted",
		"review_id", result.ReviewID,
		"employee_id", result.EmployeeID,
		"rating", dto.Rating,
		"customer_rating", result.CustomerRating,
		"review_count", result.ReviewCount)

	if s.bus != nil {
		_ = s.bus.Publish(context.Background(), events.NewReviewSubmittedEvent(
			result.ReviewID,
			result.EmployeeID,
			dto.Rating,
			result.CustomerRating,
			result.ReviewCount,
		))
	}

	return result, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
