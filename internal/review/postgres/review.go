package postgres

import (
	"gorm.io/gorm"

	errors "github.com/frahmantamala/performance-review/internal"
	employeeDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/employee"
	reviewDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/review"
	"github.com/frahmantamala/performance-review/internal/review"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) review.Repository {
	return &ReviewRepository{db: db}
}

// SubmitReview inserts the review and rewrites the employee's materialized
// aggregates in a single transaction. The recompute is a full aggregate over
// the employee's reviews, never an incremental update, so the cached values
// are a pure function of the review set at commit time.
func (r *ReviewRepository) SubmitReview(rev *reviewDatamodel.CustomerReview) (*review.SubmitResult, error) {
	result := &review.SubmitResult{EmployeeID: rev.EmployeeID}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&employeeDatamodel.Employee{}).Where("id = ?", rev.EmployeeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.ErrEmployeeNotFound
		}

		if err := tx.Create(rev).Error; err != nil {
			return err
		}

		if err := tx.Exec(`
			UPDATE employees
			SET customer_rating = (
				SELECT AVG(rating)
				FROM customer_reviews
				WHERE employee_id = ?
			),
			review_count = (
				SELECT COUNT(*)
				FROM customer_reviews
				WHERE employee_id = ?
			)
			WHERE id = ?`,
			rev.EmployeeID, rev.EmployeeID, rev.EmployeeID).Error; err != nil {
			return err
		}

		// read back inside the transaction so the reported aggregates match
		// what commits
		row := tx.Raw(`SELECT customer_rating, review_count FROM employees WHERE id = ?`, rev.EmployeeID).Row()
		if err := row.Scan(&result.CustomerRating, &result.ReviewCount); err != nil {
			return err
		}

		result.ReviewID = rev.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
