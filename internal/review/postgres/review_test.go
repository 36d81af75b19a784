package postgres

import (
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	internal "github.com/frahmantamala/performance-review/internal"
	employeeDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/employee"
	reviewDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/review"
	"github.com/frahmantamala/performance-review/internal/review"
)

func TestReviewRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Review Repository Suite")
}

var _ = Describe("ReviewRepository", func() {
	var (
		db   *gorm.DB
		repo review.Repository
	)

	newReview := func(employeeID int64, rating int) *reviewDatamodel.CustomerReview {
		return &reviewDatamodel.CustomerReview{
			EmployeeID:    employeeID,
			CustomerName:  "Jane Customer",
			CustomerEmail: "jane@mail.com",
			Rating:        rating,
			Comment:       "test",
			Date:          time.Now(),
		}
	}

	seedEmployee := func(name, email string) *employeeDatamodel.Employee {
		emp := &employeeDatamodel.Employee{
			Name:       name,
			Department: "Engineering",
			Position:   "Engineer",
			Email:      email,
			JoinDate:   time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
		}
		Expect(db.Create(emp).Error).NotTo(HaveOccurred())
		return emp
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&employeeDatamodel.Employee{}, &reviewDatamodel.CustomerReview{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewReviewRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).NotTo(HaveOccurred())
	})

	Describe("SubmitReview", func() {
		It("inserts the review and materializes the first aggregates", func() {
			emp := seedEmployee("Sarah Johnson", "sarah@mail.com")

			result, err := repo.SubmitReview(newReview(emp.ID, 5))

			Expect(err).NotTo(HaveOccurred())
			Expect(result.ReviewID).To(BeNumerically(">", 0))
			Expect(result.EmployeeID).To(Equal(emp.ID))
			Expect(result.CustomerRating).To(Equal(5.0))
			Expect(result.ReviewCount).To(Equal(1))
		})

		It("recomputes aggregates from the full review set on every submission", func() {
			emp := seedEmployee("Sarah Johnson", "sarah@mail.com")

			_, err := repo.SubmitReview(newReview(emp.ID, 5))
			Expect(err).NotTo(HaveOccurred())

			result, err := repo.SubmitReview(newReview(emp.ID, 3))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.CustomerRating).To(Equal(4.0))
			Expect(result.ReviewCount).To(Equal(2))

			var stored employeeDatamodel.Employee
			Expect(db.First(&stored, emp.ID).Error).NotTo(HaveOccurred())
			Expect(stored.CustomerRating).To(Equal(4.0))
			Expect(stored.ReviewCount).To(Equal(2))
		})

		It("keeps aggregates per employee", func() {
			a := seedEmployee("Sarah Johnson", "sarah@mail.com")
			b := seedEmployee("Michael Chen", "michael@mail.com")

			_, err := repo.SubmitReview(newReview(a.ID, 5))
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.SubmitReview(newReview(b.ID, 1))
			Expect(err).NotTo(HaveOccurred())

			var storedA, storedB employeeDatamodel.Employee
			Expect(db.First(&storedA, a.ID).Error).NotTo(HaveOccurred())
			Expect(db.First(&storedB, b.ID).Error).NotTo(HaveOccurred())
			Expect(storedA.CustomerRating).To(Equal(5.0))
			Expect(storedB.CustomerRating).To(Equal(1.0))
		})

		It("rejects an unknown employee and leaves nothing behind", func() {
			_, err := repo.SubmitReview(newReview(999, 4))

			Expect(errors.Is(err, internal.ErrEmployeeNotFound)).To(BeTrue())

			var count int64
			Expect(db.Model(&reviewDatamodel.CustomerReview{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})
})
