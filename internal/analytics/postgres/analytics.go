package postgres

import (
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/performance-review/internal/analytics"
)

// AnalyticsRepository runs the read-only aggregate queries behind the
// dashboard and analytics endpoints. Queries are plain SQL kept portable
// across the production store and the in-memory test store.
type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) analytics.Repository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) CountEmployees() (int, error) {
	var count int64
	err := r.db.Raw(`SELECT COUNT(*) FROM employees`).Scan(&count).Error
	return int(count), err
}

// AvgCustomerRating averages the materialized rating over reviewed employees
// only; employees with no reviews do not dilute the average. Returns 0 when
// no employee qualifies.
func (r *AnalyticsRepository) AvgCustomerRating() (float64, error) {
	var avg sql.NullFloat64
	row := r.db.Raw(`SELECT AVG(customer_rating) FROM employees WHERE review_count > 0`).Row()
	if err := row.Scan(&avg); err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

func (r *AnalyticsRepository) TotalReviews() (int, error) {
	var total sql.NullInt64
	row := r.db.Raw(`SELECT SUM(review_count) FROM employees`).Row()
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	if !total.Valid {
		return 0, nil
	}
	return int(total.Int64), nil
}

func (r *AnalyticsRepository) TopRatedCount(threshold float64) (int, error) {
	var count int64
	err := r.db.Raw(`SELECT COUNT(*) FROM employees WHERE customer_rating >= ?`, threshold).Scan(&count).Error
	return int(count), err
}

// RatingDistribution buckets every employee by conditional summation.
// Unreviewed employees carry the default rating 0 and land in the one-star
// bucket, which also absorbs NULL ratings from rows predating the default.
func (r *AnalyticsRepository) RatingDistribution() (analytics.RatingDistribution, error) {
	var dist analytics.RatingDistribution
	row := r.db.Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN customer_rating >= 4.5 THEN 1 ELSE 0 END), 0) AS five_star,
			COALESCE(SUM(CASE WHEN customer_rating >= 3.5 AND customer_rating < 4.5 THEN 1 ELSE 0 END), 0) AS four_star,
			COALESCE(SUM(CASE WHEN customer_rating >= 2.5 AND customer_rating < 3.5 THEN 1 ELSE 0 END), 0) AS three_star,
			COALESCE(SUM(CASE WHEN customer_rating >= 1.5 AND customer_rating < 2.5 THEN 1 ELSE 0 END), 0) AS two_star,
			COALESCE(SUM(CASE WHEN customer_rating < 1.5 OR customer_rating IS NULL THEN 1 ELSE 0 END), 0) AS one_star
		FROM employees`).Row()
	err := row.Scan(&dist.FiveStar, &dist.FourStar, &dist.ThreeStar, &dist.TwoStar, &dist.OneStar)
	return dist, err
}

// ReviewPointsSince fetches raw (date, rating) pairs; month-of-year grouping
// happens in the service so the query stays dialect-neutral.
func (r *AnalyticsRepository) ReviewPointsSince(cutoff time.Time) ([]analytics.ReviewPoint, error) {
	rows, err := r.db.Raw(`SELECT date, rating FROM customer_reviews WHERE date >= ?`, cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []analytics.ReviewPoint
	for rows.Next() {
		var date time.Time
		var rating int
		if err := rows.Scan(&date, &rating); err != nil {
			return nil, err
		}
		points = append(points, analytics.ReviewPoint{
			Month:  int(date.Month()),
			Rating: rating,
		})
	}
	return points, rows.Err()
}

func (r *AnalyticsRepository) DepartmentRatings() ([]analytics.DepartmentRating, error) {
	rows, err := r.db.Raw(`
		SELECT e.department, AVG(e.customer_rating) AS avg_rating
		FROM employees e
		WHERE e.review_count > 0
		GROUP BY e.department
		ORDER BY e.department`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []analytics.DepartmentRating
	for rows.Next() {
		var dr analytics.DepartmentRating
		if err := rows.Scan(&dr.Department, &dr.AvgRating); err != nil {
			return nil, err
		}
		ratings = append(ratings, dr)
	}
	return ratings, rows.Err()
}

func (r *AnalyticsRepository) TopPerformers(limit int) ([]analytics.TopPerformer, error) {
	rows, err := r.db.Raw(`
		SELECT name, customer_rating
		FROM employees
		WHERE review_count > 0
		ORDER BY customer_rating DESC
		LIMIT ?`, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var performers []analytics.TopPerformer
	for rows.Next() {
		var tp analytics.TopPerformer
		if err := rows.Scan(&tp.Name, &tp.CustomerRating); err != nil {
			return nil, err
		}
		performers = append(performers, tp)
	}
	return performers, rows.Err()
}
