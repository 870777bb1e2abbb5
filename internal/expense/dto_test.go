package expense_test

import (
	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/expense"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CreateExpenseDTO", func() {
	var dto expense.CreateExpenseDTO

	BeforeEach(func() {
		dto = expense.CreateExpenseDTO{
			Description: "Coffee",
			Amount:      amount(3.5),
			Date:        "2024-01-05",
			Category:    "food",
			Payer:       "you",
		}
	})

	Describe("Validate", func() {
		It("accepts a complete expense", func() {
			Expect(dto.Validate()).To(Succeed())
		})

		It("rejects a zero amount", func() {
			dto.Amount = amount(0)
			err := dto.Validate()
			Expect(err).To(HaveOccurred())
			Expect(errors.IsType(err, errors.ErrorTypeValidation)).To(BeTrue())
		})

		It("rejects a missing description", func() {
			dto.Description = ""
			Expect(dto.Validate()).To(MatchError(ContainSubstring("description is required")))
		})

		It("rejects unknown categories and payers", func() {
			dto.Category = "snacks"
			dto.Payer = "neighbour"
			err := dto.Validate()
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Details.(errors.ValidationErrors).Errors).To(HaveLen(2))
		})

		It("rejects malformed dates", func() {
			dto.Date = "05/01/2024"
			Expect(dto.Validate()).To(HaveOccurred())
		})
	})

	Describe("CheckRequired", func() {
		It("only checks presence", func() {
			dto.Category = "snacks"
			dto.Amount = amount(-1)
			Expect(dto.CheckRequired()).To(Succeed())
		})

		It("reports missing fields", func() {
			dto.Amount = nil
			Expect(dto.CheckRequired()).To(MatchError("Missing fields"))
		})
	})

	It("keeps only named items with positive amounts", func() {
		dto.Items = []expense.ItemDTO{
			{Name: "milk", Amount: amount(1.2)},
			{Name: "", Amount: amount(2)},
			{Name: "bread", Amount: amount(0)},
			{Name: "eggs"},
		}
		kept := dto.KeptItems()
		Expect(kept).To(HaveLen(1))
		Expect(kept[0].Name).To(Equal("milk"))
	})
})

var _ = Describe("AddItemDTO", func() {
	It("requires an expense, a name and a positive amount", func() {
		Expect(expense.AddItemDTO{ExpenseID: 1, Name: "milk", Amount: 1}.Validate()).To(Succeed())
		Expect(expense.AddItemDTO{Name: "milk", Amount: 1}.Validate()).To(MatchError("Invalid item payload"))
		Expect(expense.AddItemDTO{ExpenseID: 1, Name: " ", Amount: 1}.Validate()).To(HaveOccurred())
		Expect(expense.AddItemDTO{ExpenseID: 1, Name: "milk", Amount: 0}.Validate()).To(HaveOccurred())
	})
})
