package postgres

import (
	departmentDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/department"
	"github.com/frahmantamala/performance-review/internal/department"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) GetByName(name string) (*departmentDatamodel.Department, error) {
	var dep departmentDatamodel.Department
	err := r.db.Where("name = ?", name).First(&dep).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dep, nil
}
