package postgres

import (
	"gorm.io/gorm"

	errors "github.com/frahmantamala/performance-review/internal"
	employeeDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/employee"
	reviewDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/review"
	"github.com/frahmantamala/performance-review/internal/employee"
)

// EmployeeRepository implements employee.Repository using GORM. Listings are
// inner joins against departments by name, so employees whose department does
// not resolve never appear.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

const joinedSelect = `
	SELECT e.*, d.name AS department_name
	FROM employees e
	JOIN departments d ON e.department = d.name`

func (r *EmployeeRepository) GetAll() ([]*employee.Record, error) {
	var records []*employee.Record
	err := r.db.Raw(joinedSelect + " ORDER BY e.id").Scan(&records).Error
	return records, err
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Record, error) {
	var records []*employee.Record
	err := r.db.Raw(joinedSelect+" WHERE e.id = ?", id).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (r *EmployeeRepository) GetReviews(employeeID int64) ([]*reviewDatamodel.CustomerReview, error) {
	var reviews []*reviewDatamodel.CustomerReview
	err := r.db.Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *EmployeeRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *EmployeeRepository) Create(emp *employeeDatamodel.Employee) error {
	return r.db.Create(emp).Error
}

// Delete removes the employee and its reviews in one transaction. The
// migration declares ON DELETE CASCADE as well; deleting the reviews
// explicitly keeps the behavior identical on stores where the pragma is off.
func (r *EmployeeRepository) Delete(id int64) (int, error) {
	deletedReviews := 0

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&employeeDatamodel.Employee{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.ErrEmployeeNotFound
		}

		res := tx.Where("employee_id = ?", id).Delete(&reviewDatamodel.CustomerReview{})
		if res.Error != nil {
			return res.Error
		}
		deletedReviews = int(res.RowsAffected)

		return tx.Where("id = ?", id).Delete(&employeeDatamodel.Employee{}).Error
	})
	if err != nil {
		return 0, err
	}

	return deletedReviews, nil
}
