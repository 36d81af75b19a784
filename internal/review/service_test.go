package review_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/performance-review/internal"
	reviewDatamodel "github.com/frahmantamala/performance-review/internal/core/datamodel/review"
	"github.com/frahmantamala/performance-review/internal/core/events"
	"github.com/frahmantamala/performance-review/internal/review"
)

func TestReviewService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Review Service Suite")
}

// Mock repository for testing
type mockReviewRepository struct {
	submitted   []*reviewDatamodel.CustomerReview
	submitError error
	result      *review.SubmitResult
}

func (m *mockReviewRepository) SubmitReview(rev *reviewDatamodel.CustomerReview) (*review.SubmitResult, error) {
	if m.submitError != nil {
		return nil, m.submitError
	}
	m.submitted = append(m.submitted, rev)
	if m.result != nil {
		return m.result, nil
	}
	return &review.SubmitResult{
		ReviewID:       1,
		EmployeeID:     rev.EmployeeID,
		CustomerRating: float64(rev.Rating),
		ReviewCount:    1,
	}, nil
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(_ context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("ReviewService", func() {
	var (
		service  *review.Service
		mockRepo *mockReviewRepository
		bus      *mockPublisher
	)

	validDTO := func() review.SubmitReviewDTO {
		return review.SubmitReviewDTO{
			EmployeeID:    7,
			CustomerName:  "Jane Customer",
			CustomerEmail: "jane@mail.com",
			Rating:        4,
			Comment:       "Very helpful",
		}
	}

	BeforeEach(func() {
		mockRepo = &mockReviewRepository{}
		bus = &mockPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = review.NewService(mockRepo, bus, logger)
	})

	Describe("SubmitReview", func() {
		It("submits a valid review and reports the committed aggregates", func() {
			mockRepo.result = &review.SubmitResult{
				ReviewID:       10,
				EmployeeID:     7,
				CustomerRating: 4.0,
				ReviewCount:    2,
			}

			result, err := service.SubmitReview(validDTO())

			Expect(err).NotTo(HaveOccurred())
			Expect(result.ReviewID).To(Equal(int64(10)))
			Expect(result.CustomerRating).To(Equal(4.0))
			Expect(result.ReviewCount).To(Equal(2))
			Expect(mockRepo.submitted).To(HaveLen(1))
		})

		It("defaults the review date to today when omitted", func() {
			_, err := service.SubmitReview(validDTO())

			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.submitted[0].Date).To(BeTemporally("~", time.Now(), time.Minute))
		})

		It("uses the provided date when one is supplied", func() {
			dto := validDTO()
			dto.Date = "2025-04-15"

			_, err := service.SubmitReview(dto)

			Expect(err).NotTo(HaveOccurred())
			want, _ := time.Parse("2006-01-02", "2025-04-15")
			Expect(mockRepo.submitted[0].Date).To(Equal(want))
		})

		It("publishes an audit event after a successful submission", func() {
			_, err := service.SubmitReview(validDTO())

			Expect(err).NotTo(HaveOccurred())
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeReviewSubmitted))
		})

		It("rejects a rating below 1 without touching the store", func() {
			dto := validDTO()
			dto.Rating = 0

			_, err := service.SubmitReview(dto)

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.submitted).To(BeEmpty())
			Expect(bus.published).To(BeEmpty())
		})

		It("rejects a rating above 5 without touching the store", func() {
			dto := validDTO()
			dto.Rating = 6

			_, err := service.SubmitReview(dto)

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.submitted).To(BeEmpty())
		})

		It("rejects a missing customer name", func() {
			dto := validDTO()
			dto.CustomerName = ""

			_, err := service.SubmitReview(dto)

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.submitted).To(BeEmpty())
		})

		It("rejects a malformed date", func() {
			dto := validDTO()
			dto.Date = "15/04/2025"

			_, err := service.SubmitReview(dto)

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.submitted).To(BeEmpty())
		})

		It("passes an unknown employee error through unchanged", func() {
			mockRepo.submitError = internal.ErrEmployeeNotFound

			_, err := service.SubmitReview(validDTO())

			Expect(errors.Is(err, internal.ErrEmployeeNotFound)).To(BeTrue())
			Expect(bus.published).To(BeEmpty())
		})

		It("does not publish an event when the store fails", func() {
			mockRepo.submitError = errors.New("db down")

			_, err := service.SubmitReview(validDTO())

			Expect(err).To(HaveOccurred())
			Expect(bus.published).To(BeEmpty())
		})
	})
})
