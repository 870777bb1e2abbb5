package expense

import (
	"strings"

	expenseDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/expense"
	"github.com/frahmantamala/household-expenses/internal/month"
)

type Category string

const (
	CategoryFood                 Category = "food"
	CategoryUtilities            Category = "utilities"
	CategoryRent                 Category = "rent"
	CategoryGroceries            Category = "groceries"
	CategoryEntertainment        Category = "entertainment"
	CategoryTransportation       Category = "transportation"
	CategoryCreditCard           Category = "credit-card"
	CategoryInstallments         Category = "installments"
	CategoryApartmentInstallment Category = "apartment-installment"
	CategoryOther                Category = "other"
)

var Categories = []Category{
	CategoryFood,
	CategoryUtilities,
	CategoryRent,
	CategoryGroceries,
	CategoryEntertainment,
	CategoryTransportation,
	CategoryCreditCard,
	CategoryInstallments,
	CategoryApartmentInstallment,
	CategoryOther,
}

func CategoryNames() []string {
	out := make([]string, len(Categories))
	for i, c := range Categories {
		out[i] = string(c)
	}
	return out
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label capitalizes the first letter, matching how categories are titled on screen.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

type Payer string

const (
	PayerYou    Payer = "you"
	PayerSpouse Payer = "spouse"
)

var Payers = []Payer{PayerYou, PayerSpouse}

func PayerNames() []string {
	return []string{string(PayerYou), string(PayerSpouse)}
}

func (p Payer) Valid() bool {
	return p == PayerYou || p == PayerSpouse
}

type Item struct {
	ID        int64   `json:"id,omitempty"`
	ExpenseID int64   `json:"expense_id,omitempty"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
}

type Expense struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        string    `json:"date"`
	Category    Category  `json:"category"`
	Payer       Payer     `json:"payer"`
	MonthKey    month.Key `json:"month_key,omitempty"`
	ReceiptPath *string   `json:"receipt_path"`
	Items       []Item    `json:"items"`
}

func (e *Expense) HasReceipt() bool {
	return e.ReceiptPath != nil && *e.ReceiptPath != ""
}

func (e *Expense) ItemsTotal() float64 {
	var total float64
	for _, it := range e.Items {
		total += it.Amount
	}
	return total
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	items := make([]expenseDatamodel.ExpenseItem, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, expenseDatamodel.ExpenseItem{
			ID:        it.ID,
			ExpenseID: e.ID,
			Name:      it.Name,
			Amount:    it.Amount,
		})
	}
	return &expenseDatamodel.Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		Category:    string(e.Category),
		Payer:       string(e.Payer),
		MonthKey:    string(e.MonthKey),
		ReceiptPath: e.ReceiptPath,
		Items:       items,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	items := make([]Item, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, ItemFromDataModel(&it))
	}
	return &Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		Category:    Category(e.Category),
		Payer:       Payer(e.Payer),
		MonthKey:    month.Key(e.MonthKey),
		ReceiptPath: e.ReceiptPath,
		Items:       items,
	}
}

func ItemFromDataModel(it *expenseDatamodel.ExpenseItem) Item {
	return Item{
		ID:        it.ID,
		ExpenseID: it.ExpenseID,
		Name:      it.Name,
		Amount:    it.Amount,
	}
}
