package analytics

// Dashboard is the admin landing read-model. Every numeric field is fully
// derived from the store; missing aggregates normalize to 0.
type Dashboard struct {
	TotalEmployees    int                `json:"total_employees"`
	AvgCustomerRating float64            `json:"avg_customer_rating"`
	TotalReviews      int                `json:"total_reviews"`
	TopRated          int                `json:"top_rated"`
	RatingDistribution RatingDistribution `json:"rating_distribution"`
	MonthlyRatings    []MonthlyRating    `json:"monthly_ratings"`
}

// RatingDistribution buckets employees by their materialized rating using
// half-open thresholds. Every employee lands in exactly one bucket, so the
// five counts always sum to the employee total.
type RatingDistribution struct {
	FiveStar  int `json:"five_star"`
	FourStar  int `json:"four_star"`
	ThreeStar int `json:"three_star"`
	TwoStar   int `json:"two_star"`
	OneStar   int `json:"one_star"`
}

// MonthlyRating is one point of the trailing-6-month trend. Month is the
// month-of-year (1-12): reviews from different years sharing a month number
// merge into one bucket.
type MonthlyRating struct {
	Month     int     `json:"month"`
	AvgRating float64 `json:"avg_rating"`
}

type DepartmentRating struct {
	Department string  `json:"department"`
	AvgRating  float64 `json:"avg_rating"`
}

type RatingCategory struct {
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

type TopPerformer struct {
	Name           string  `json:"name"`
	CustomerRating float64 `json:"customer_rating"`
}

// Summary is the analytics read-model.
type Summary struct {
	DepartmentRatings []DepartmentRating `json:"department_ratings"`
	PerformanceTrend  []MonthlyRating    `json:"performance_trend"`
	RatingCategories  []RatingCategory   `json:"rating_categories"`
	TopPerformers     []TopPerformer     `json:"top_performers"`
}

// ReviewPoint is a raw (date, rating) pair used to build monthly trends.
type ReviewPoint struct {
	Month  int
	Rating int
}
