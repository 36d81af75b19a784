package employee

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/performance-review/internal"
	employeeDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/employee"
	reviewDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/review"
	"github.com/frahmantamala/performance-review/internal/core/events"
)

// Repository defines the data access methods for employees. Lookups return
// rows joined with the department name; an employee whose department does not
// resolve is absent from every listing.
type Repository interface {
	GetAll() ([]*Record, error)
	GetByID(id int64) (*Record, error)
	GetReviews(employeeID int64) ([]*reviewDatamodel.CustomerReview, error)
	EmailExists(email string) (bool, error)
	Create(emp *employeeDatamodel.Employee) error
	Delete(id int64) (deletedReviews int, err error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles employee business logic
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

func (s *Service) ListEmployees() ([]*Employee, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return FromRecordSlice(records), nil
}

// GetEmployee returns one employee with its full review history, most recent
// review first.
func (s *Service) GetEmployee(id int64) (*Detail, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.ErrEmployeeNotFound
	}

	reviews, err := s.repo.GetReviews(id)
	if err != nil {
		s.logger.Error("failed to load reviews", "error", err, "employee_id", id)
		return nil, err
	}

	return &Detail{
		Employee: FromRecord(record),
		Reviews:  ReviewsFromDataModel(reviews),
	}, nil
}

// CreateEmployee validates the payload, rejects duplicate emails before the
// insert, and persists an initials avatar when none was supplied.
func (s *Service) CreateEmployee(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err)
		return nil, err
	}

	exists, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		s.logger.Error("failed to check employee email", "error", err, "email", dto.Email)
		return nil, err
	}
	if exists {
		return nil, errors.ErrEmailExists
	}

	avatar := dto.Avatar
	if avatar == "" {
		avatar = InitialsAvatar(dto.Name)
	}

	joinDate, err := parseDate(dto.JoinDate)
	if err != nil {
		return nil, errors.NewValidationFieldError("join_date", "join_date must be formatted YYYY-MM-DD", errors.ErrCodeInvalidDate)
	}

	emp := &employeeDatamodel.Employee{
		Name:       dto.Name,
		Department: dto.Department,
		Position:   dto.Position,
		Email:      dto.Email,
		Phone:      dto.Phone,
		JoinDate:   joinDate,
		Avatar:     avatar,
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", dto.Email)
		return nil, err
	}

	record, err := s.repo.GetByID(emp.ID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		// department name did not resolve; the row exists but cannot be listed
		return nil, errors.ErrEmployeeNotFound
	}

	s.logger.Info("employee created",
		"employee_id", emp.ID,
		"department", dto.Department)

	return FromRecord(record), nil
}

// DeleteEmployee removes the employee and its owned reviews in one
// transaction.
func (s *Service) DeleteEmployee(id int64) error {
	deletedReviews, err := s.repo.Delete(id)
	if err != nil {
		return err
	}

	s.logger.Info("employee deleted", "employee_id", id, "deleted_reviews", deletedReviews)

	if s.bus != nil {
		_ = s.bus.Publish(context.Background(), events.NewEmployeeDeletedEvent(id, deletedReviews))
	}

	return nil
}
