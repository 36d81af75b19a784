package department

import (
	"log/slog"

	departmentDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	GetAll() ([]*departmentDatamodel.Department, error)
	GetByName(name string) (*departmentDatamodel.Department, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllDepartments() ([]*Department, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get departments", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

// Exists reports whether a department name resolves to reference data.
func (s *Service) Exists(name string) (bool, error) {
	dep, err := s.repo.GetByName(name)
	if err != nil {
		return false, err
	}
	return dep != nil, nil
}
