package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/performance-review/internal/analytics"
	employeeDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/employee"
	reviewDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/review"
)

func TestAnalyticsRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Analytics Repository Suite")
}

var _ = Describe("AnalyticsRepository", func() {
	var (
		db   *gorm.DB
		repo analytics.Repository
	)

	seedEmployee := func(name, department, email string, rating float64, reviewCount int) *employeeDatamodel.Employee {
		emp := &employeeDatamodel.Employee{
			Name:           name,
			Department:     department,
			Position:       "Engineer",
			Email:          email,
			JoinDate:       time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
			CustomerRating: rating,
			ReviewCount:    reviewCount,
		}
		Expect(db.Create(emp).Error).NotTo(HaveOccurred())
		return emp
	}

	seedReview := func(employeeID int64, rating int, date time.Time) {
		Expect(db.Create(&reviewDatamodel.CustomerReview{
			EmployeeID:    employeeID,
			CustomerName:  "Jane",
			CustomerEmail: "jane@mail.com",
			Rating:        rating,
			Date:          date,
		}).Error).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&employeeDatamodel.Employee{}, &reviewDatamodel.CustomerReview{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewAnalyticsRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).NotTo(HaveOccurred())
	})

	Describe("CountEmployees", func() {
		It("counts every employee regardless of reviews", func() {
			seedEmployee("A", "Engineering", "a@mail.com", 4.5, 2)
			seedEmployee("B", "Sales", "b@mail.com", 0, 0)

			count, err := repo.CountEmployees()

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})
	})

	Describe("AvgCustomerRating", func() {
		It("averages over reviewed employees only", func() {
			seedEmployee("A", "Engineering", "a@mail.com", 5.0, 2)
			seedEmployee("B", "Sales", "b@mail.com", 3.0, 1)
			seedEmployee("C", "Sales", "c@mail.com", 0, 0)

			avg, err := repo.AvgCustomerRating()

			Expect(err).NotTo(HaveOccurred())
			Expect(avg).To(Equal(4.0))
		})

		It("returns zero when no employee has a review", func() {
			seedEmployee("C", "Sales", "c@mail.com", 0, 0)

			avg, err := repo.AvgCustomerRating()

			Expect(err).NotTo(HaveOccurred())
			Expect(avg).To(BeZero())
		})
	})

	Describe("TotalReviews", func() {
		It("sums the materialized review counts", func() {
			seedEmployee("A", "Engineering", "a@mail.com", 4.0, 3)
			seedEmployee("B", "Sales", "b@mail.com", 4.0, 2)

			total, err := repo.TotalReviews()

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(5))
		})

		It("returns zero on an empty store", func() {
			total, err := repo.TotalReviews()

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeZero())
		})
	})

	Describe("TopRatedCount", func() {
		It("counts employees at or above the threshold", func() {
			seedEmployee("A", "Engineering", "a@mail.com", 4.5, 2)
			seedEmployee("B", "Sales", "b@mail.com", 4.7, 2)
			seedEmployee("C", "Sales", "c@mail.com", 4.4, 2)

			count, err := repo.TopRatedCount(4.5)

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})
	})

	Describe("RatingDistribution", func() {
		It("places every employee in exactly one bucket", func() {
			seedEmployee("Five", "Engineering", "five@mail.com", 4.8, 2)
			seedEmployee("Four", "Engineering", "four@mail.com", 3.9, 2)
			seedEmployee("Three", "Engineering", "three@mail.com", 3.0, 2)
			seedEmployee("Two", "Engineering", "two@mail.com", 1.7, 2)
			seedEmployee("One", "Engineering", "one@mail.com", 1.2, 2)
			seedEmployee("Unreviewed", "Engineering", "none@mail.com", 0, 0)

			dist, err := repo.RatingDistribution()

			Expect(err).NotTo(HaveOccurred())
			Expect(dist.FiveStar).To(Equal(1))
			Expect(dist.FourStar).To(Equal(1))
			Expect(dist.ThreeStar).To(Equal(1))
			Expect(dist.TwoStar).To(Equal(1))
			Expect(dist.OneStar).To(Equal(2))

			total := dist.FiveStar + dist.FourStar + dist.ThreeStar + dist.TwoStar + dist.OneStar
			count, err := repo.CountEmployees()
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(count))
		})

		It("buckets boundary ratings into the higher band", func() {
			seedEmployee("Edge", "Engineering", "edge@mail.com", 4.5, 1)

			dist, err := repo.RatingDistribution()

			Expect(err).NotTo(HaveOccurred())
			Expect(dist.FiveStar).To(Equal(1))
			Expect(dist.FourStar).To(BeZero())
		})
	})

	Describe("ReviewPointsSince", func() {
		It("returns only reviews on or after the cutoff", func() {
			emp := seedEmployee("A", "Engineering", "a@mail.com", 4.0, 2)
			cutoff := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
			seedReview(emp.ID, 5, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))
			seedReview(emp.ID, 2, time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC))

			points, err := repo.ReviewPointsSince(cutoff)

			Expect(err).NotTo(HaveOccurred())
			Expect(points).To(HaveLen(1))
			Expect(points[0].Month).To(Equal(5))
			Expect(points[0].Rating).To(Equal(5))
		})
	})

	Describe("DepartmentRatings", func() {
		It("averages per department over reviewed employees only", func() {
			seedEmployee("A", "Engineering", "a@mail.com", 5.0, 2)
			seedEmployee("B", "Engineering", "b@mail.com", 3.0, 1)
			seedEmployee("C", "Sales", "c@mail.com", 4.0, 1)
			seedEmployee("D", "Sales", "d@mail.com", 0, 0)

			ratings, err := repo.DepartmentRatings()

			Expect(err).NotTo(HaveOccurred())
			Expect(ratings).To(HaveLen(2))
			Expect(ratings[0].Department).To(Equal("Engineering"))
			Expect(ratings[0].AvgRating).To(Equal(4.0))
			Expect(ratings[1].Department).To(Equal("Sales"))
			Expect(ratings[1].AvgRating).To(Equal(4.0))
		})
	})

	Describe("TopPerformers", func() {
		It("orders by rating descending and honors the limit", func() {
			seedEmployee("A", "Engineering", "a@mail.com", 4.1, 1)
			seedEmployee("B", "Engineering", "b@mail.com", 4.9, 1)
			seedEmployee("C", "Engineering", "c@mail.com", 4.5, 1)
			seedEmployee("D", "Engineering", "d@mail.com", 0, 0)

			performers, err := repo.TopPerformers(2)

			Expect(err).NotTo(HaveOccurred())
			Expect(performers).To(HaveLen(2))
			Expect(performers[0].Name).To(Equal("B"))
			Expect(performers[1].Name).To(Equal("C"))
		})
	})
})
