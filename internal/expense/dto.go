package expense

import (
	"strings"

	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/core/common/validation"
	"github.com/frahmantamala/household-expenses/internal/month"
)

type ItemDTO struct {
	Name   string   `json:"name"`
	Amount *float64 `json:"amount"`
}

// CreateExpenseDTO is the body of POST /expenses.
type CreateExpenseDTO struct {
	Description   string    `json:"description"`
	Amount        *float64  `json:"amount"`
	Date          string    `json:"date"`
	Category      string    `json:"category"`
	Payer         string    `json:"payer"`
	Items         []ItemDTO `json:"items"`
	ReceiptName   string    `json:"receipt_name,omitempty"`
	ReceiptBase64 string    `json:"receipt_base64,omitempty"`
}

var ErrMissingFields = errors.NewValidationError("Missing fields", errors.ErrCodeMissingFields)

// CheckRequired is the server-side presence check; category and payer values are not policed.
func (d CreateExpenseDTO) CheckRequired() error {
	if d.Description == "" || d.Amount == nil || d.Date == "" || d.Category == "" || d.Payer == "" {
		return ErrMissingFields
	}
	if _, err := month.FromDate(d.Date); err != nil {
		return errors.NewValidationError("Invalid date", errors.ErrCodeInvalidDate)
	}
	return nil
}

// Validate is the full client-side check run before anything is sent.
func (d CreateExpenseDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("description", d.Description).Required()
	v.Field("amount", d.Amount).Required().Positive(errors.ErrCodeInvalidAmount)
	v.Field("date", d.Date).Required().Date(month.DateLayout)
	v.Field("category", d.Category).Required().OneOf(CategoryNames(), errors.ErrCodeInvalidCategory)
	v.Field("payer", d.Payer).Required().OneOf(PayerNames(), errors.ErrCodeInvalidPayer)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// KeptItems returns the items that carry a name and a positive amount.
func (d CreateExpenseDTO) KeptItems() []ItemDTO {
	kept := make([]ItemDTO, 0, len(d.Items))
	for _, it := range d.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" || it.Amount == nil || !(*it.Amount > 0) {
			continue
		}
		kept = append(kept, ItemDTO{Name: name, Amount: it.Amount})
	}
	return kept
}

// AddItemDTO is the body of POST /expense-items.
type AddItemDTO struct {
	ExpenseID int64   `json:"expense_id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
}

func (d AddItemDTO) Validate() error {
	if d.ExpenseID == 0 || strings.TrimSpace(d.Name) == "" || !(d.Amount > 0) {
		return errors.NewValidationError("Invalid item payload", errors.ErrCodeValidationFailed)
	}
	return nil
}

type ExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type ExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type ItemResponse struct {
	Item Item `json:"item"`
}
