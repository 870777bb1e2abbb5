package balance_test

import (
	"fmt"
	"time"

	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/balance"
	balanceDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/balance"
	"github.com/frahmantamala/household-expenses/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type MockRepository struct {
	rows map[string]*balanceDatamodel.Balance
	err  error
}

func (m *MockRepository) GetByMonth(monthKey string) (*balanceDatamodel.Balance, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows[monthKey], nil
}

func (m *MockRepository) List() ([]*balanceDatamodel.Balance, error) {
	out := make([]*balanceDatamodel.Balance, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, row)
	}
	return out, m.err
}

func (m *MockRepository) Upsert(b *balanceDatamodel.Balance) error {
	if m.err != nil {
		return m.err
	}
	b.UpdatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	m.rows[b.MonthKey] = b
	return nil
}

var _ = Describe("Balance Service", func() {
	var (
		repo    *MockRepository
		service *balance.Service
	)

	BeforeEach(func() {
		repo = &MockRepository{rows: map[string]*balanceDatamodel.Balance{}}
		service = balance.NewService(repo, logger.Discard())
	})

	Describe("Get", func() {
		It("reports zero with no timestamp for an unrecorded month", func() {
			b, err := service.Get("2024-03")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b.MonthKey)).To(Equal("2024-03"))
			Expect(b.StartingBalance).To(BeZero())
			Expect(b.UpdatedAt).To(BeNil())
		})

		It("rejects a malformed month", func() {
			_, err := service.Get("March")
			Expect(errors.IsType(err, errors.ErrorTypeValidation)).To(BeTrue())
		})

		It("wraps repository failures as internal errors", func() {
			repo.err = fmt.Errorf("disk gone")
			_, err := service.Get("2024-03")
			Expect(errors.IsType(err, errors.ErrorTypeInternal)).To(BeTrue())
		})
	})

	Describe("Set", func() {
		It("requires both fields", func() {
			_, err := service.Set(balance.SetBalanceDTO{MonthKey: "2024-01"})
			Expect(err).To(MatchError("Missing fields"))

			_, err = service.Set(balance.SetBalanceDTO{StartingBalance: amount(10)})
			Expect(err).To(MatchError("Missing fields"))
		})

		It("accepts zero and replaces an existing value", func() {
			_, err := service.Set(balance.SetBalanceDTO{MonthKey: "2024-01", StartingBalance: amount(100)})
			Expect(err).NotTo(HaveOccurred())

			b, err := service.Set(balance.SetBalanceDTO{MonthKey: "2024-01", StartingBalance: amount(0)})
			Expect(err).NotTo(HaveOccurred())
			Expect(b.StartingBalance).To(BeZero())
			Expect(b.UpdatedAt).NotTo(BeNil())

			got, _ := service.Get("2024-01")
			Expect(got.StartingBalance).To(BeZero())
		})
	})
})
