package expense_test

import (
	"github.com/frahmantamala/household-expenses/internal/expense"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Filter", func() {
	list := []expense.Expense{
		{ID: 1, Date: "2024-01-03", Category: expense.CategoryFood, Payer: expense.PayerYou, Amount: 5},
		{ID: 2, Date: "2024-01-10", Category: expense.CategoryRent, Payer: expense.PayerSpouse, Amount: 900},
		{ID: 3, Date: "2024-01-10", Category: expense.CategoryFood, Payer: expense.PayerSpouse, Amount: 12},
	}

	ids := func(es []expense.Expense) []int64 {
		out := make([]int64, len(es))
		for i, e := range es {
			out[i] = e.ID
		}
		return out
	}

	It("sorts newest first with id as tie-break", func() {
		Expect(ids(expense.Apply(list, expense.FilterAll))).To(Equal([]int64{3, 2, 1}))
	})

	It("filters by payer", func() {
		f, err := expense.ParseFilter("spouse")
		Expect(err).NotTo(HaveOccurred())
		Expect(ids(expense.Apply(list, f))).To(Equal([]int64{3, 2}))
	})

	It("filters by category", func() {
		f, err := expense.ParseFilter("food")
		Expect(err).NotTo(HaveOccurred())
		Expect(ids(expense.Apply(list, f))).To(Equal([]int64{3, 1}))
	})

	It("does not reorder the input", func() {
		expense.Apply(list, expense.FilterAll)
		Expect(ids(list)).To(Equal([]int64{1, 2, 3}))
	})

	It("rejects unknown filters", func() {
		_, err := expense.ParseFilter("pets")
		Expect(err).To(HaveOccurred())

		f, err := expense.ParseFilter("")
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(Equal(expense.FilterAll))
	})

	It("labels categories", func() {
		Expect(expense.CategoryCreditCard.Label()).To(Equal("Credit-card"))
	})
})
