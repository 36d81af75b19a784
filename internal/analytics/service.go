package analytics

import (
	"log/slog"
	"math"
	"sort"
	"time"
)

// Repository provides the raw aggregates the read-models are assembled from.
type Repository interface {
	CountEmployees() (int, error)
	AvgCustomerRating() (float64, error)
	TotalReviews() (int, error)
	TopRatedCount(threshold float64) (int, error)
	RatingDistribution() (RatingDistribution, error)
	ReviewPointsSince(cutoff time.Time) ([]ReviewPoint, error)
	DepartmentRatings() ([]DepartmentRating, error)
	TopPerformers(limit int) ([]TopPerformer, error)
}

const (
	topRatedThreshold = 4.5
	topPerformerLimit = 5
	trendMonths       = 6
)

// ratingCategories is a fixed placeholder signal; it is not derived from
// stored reviews.
var ratingCategories = []RatingCategory{
	{Category: "Service", Rating: 4.3},
	{Category: "Communication", Rating: 4.2},
	{Category: "Problem Solving", Rating: 4.1},
	{Category: "Timeliness", Rating: 4.4},
	{Category: "Professionalism", Rating: 4.5},
}

// Service computes dashboard and analytics read-models. It never mutates
// state.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Dashboard() (*Dashboard, error) {
	totalEmployees, err := s.repo.CountEmployees()
	if err != nil {
		s.logger.Error("failed to count employees", "error", err)
		return nil, err
	}

	avgRating, err := s.repo.AvgCustomerRating()
	if err != nil {
		s.logger.Error("failed to average customer rating", "error", err)
		return nil, err
	}

	totalReviews, err := s.repo.TotalReviews()
	if err != nil {
		s.logger.Error("failed to sum review counts", "error", err)
		return nil, err
	}

	topRated, err := s.repo.TopRatedCount(topRatedThreshold)
	if err != nil {
		s.logger.Error("failed to count top rated employees", "error", err)
		return nil, err
	}

	distribution, err := s.repo.RatingDistribution()
	if err != nil {
		s.logger.Error("failed to compute rating distribution", "error", err)
		return nil, err
	}

	monthly, err := s.monthlyTrend()
	if err != nil {
		s.logger.Error("failed to compute monthly ratings", "error", err)
		return nil, err
	}

	return &Dashboard{
		TotalEmployees:     totalEmployees,
		AvgCustomerRating:  roundToTenth(avgRating),
		TotalReviews:       totalReviews,
		TopRated:           topRated,
		RatingDistribution: distribution,
		MonthlyRatings:     monthly,
	}, nil
}

func (s *Service) Analytics() (*Summary, error) {
	departmentRatings, err := s.repo.DepartmentRatings()
	if err != nil {
		s.logger.Error("failed to compute department ratings", "error", err)
		return nil, err
	}

	trend, err := s.monthlyTrend()
	if err != nil {
		s.logger.Error("failed to compute performance trend", "error", err)
		return nil, err
	}

	topPerformers, err := s.repo.TopPerformers(topPerformerLimit)
	if err != nil {
		s.logger.Error("failed to fetch top performers", "error", err)
		return nil, err
	}

	return &Summary{
		DepartmentRatings: departmentRatings,
		PerformanceTrend:  trend,
		RatingCategories:  ratingCategories,
		TopPerformers:     topPerformers,
	}, nil
}

// monthlyTrend averages raw review ratings over the trailing six calendar
// months, grouped by month-of-year and ordered ascending. Grouping by month
// number alone merges same-month rows from different years; that matches the
// shipped behavior the frontend charts expect.
func (s *Service) monthlyTrend() ([]MonthlyRating, error) {
	cutoff := s.now().AddDate(0, -trendMonths, 0)

	points, err := s.repo.ReviewPointsSince(cutoff)
	if err != nil {
		return nil, err
	}

	sums := make(map[int]int)
	counts := make(map[int]int)
	for _, p := range points {
		sums[p.Month] += p.Rating
		counts[p.Month]++
	}

	months := make([]int, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Ints(months)

	trend := make([]MonthlyRating, 0, len(months))
	for _, m := range months {
		trend = append(trend, MonthlyRating{
			Month:     m,
			AvgRating: float64(sums[m]) / float64(counts[m]),
		})
	}
	return trend, nil
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
