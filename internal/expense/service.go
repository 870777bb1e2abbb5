package expense

import (
	"log/slog"

	errors "github.com/frahmantamala/household-expenses/internal"
	expenseDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/expense"
	"github.com/frahmantamala/household-expenses/internal/month"
)

// RepositoryAPI defines the data access methods for expenses and their items
type RepositoryAPI interface {
	ListByMonth(monthKey string) ([]*expenseDatamodel.Expense, error)
	GetByID(id int64) (*expenseDatamodel.Expense, error)
	Create(expense *expenseDatamodel.Expense) error
	UpdateReceiptPath(id int64, path string) error
	Delete(id int64) error
	CreateItem(item *expenseDatamodel.ExpenseItem) error
	DeleteItem(id int64) error
}

// ReceiptStore persists an uploaded receipt and returns its stored file name.
type ReceiptStore interface {
	Save(expenseID int64, name, base64Data string) (string, error)
}

type Service struct {
	repo     RepositoryAPI
	receipts ReceiptStore
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, receipts ReceiptStore, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		receipts: receipts,
		logger:   logger,
	}
}

// List returns a month's expenses newest first; an empty key lists everything.
func (s *Service) List(monthKey string) ([]Expense, error) {
	if monthKey != "" {
		if _, err := month.Parse(monthKey); err != nil {
			return nil, errors.NewValidationError("Invalid month", errors.ErrCodeInvalidMonth)
		}
	}

	rows, err := s.repo.ListByMonth(monthKey)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "month", monthKey)
		return nil, errors.NewInternalError("failed to list expenses", err)
	}

	out := make([]Expense, 0, len(rows))
	for _, row := range rows {
		out = append(out, *FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Create(dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.CheckRequired(); err != nil {
		return nil, err
	}
	key, _ := month.FromDate(dto.Date)

	items := make([]expenseDatamodel.ExpenseItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		if it.Name == "" || it.Amount == nil {
			continue
		}
		items = append(items, expenseDatamodel.ExpenseItem{Name: it.Name, Amount: *it.Amount})
	}

	row := &expenseDatamodel.Expense{
		Description: dto.Description,
		Amount:      *dto.Amount,
		Date:        dto.Date,
		Category:    dto.Category,
		Payer:       dto.Payer,
		MonthKey:    string(key),
		Items:       items,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create expense", "error", err)
		return nil, errors.NewInternalError("failed to create expense", err)
	}

	if dto.ReceiptName != "" && dto.ReceiptBase64 != "" && s.receipts != nil {
		// a broken receipt never blocks the expense itself
		path, err := s.receipts.Save(row.ID, dto.ReceiptName, dto.ReceiptBase64)
		if err != nil {
			s.logger.Warn("failed to store receipt", "error", err, "expense_id", row.ID)
		} else if err := s.repo.UpdateReceiptPath(row.ID, path); err != nil {
			s.logger.Warn("failed to record receipt path", "error", err, "expense_id", row.ID)
		} else {
			row.ReceiptPath = &path
		}
	}

	s.logger.Info("expense created", "expense_id", row.ID, "month", row.MonthKey)
	return FromDataModel(row), nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return errors.NewInternalError("failed to delete expense", err)
	}
	s.logger.Info("expense deleted", "expense_id", id)
	return nil
}

func (s *Service) AddItem(dto AddItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(dto.ExpenseID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load expense", err)
	}
	if existing == nil {
		return nil, errors.ErrExpenseNotFound
	}

	row := &expenseDatamodel.ExpenseItem{ExpenseID: dto.ExpenseID, Name: dto.Name, Amount: dto.Amount}
	if err := s.repo.CreateItem(row); err != nil {
		s.logger.Error("failed to create expense item", "error", err, "expense_id", dto.ExpenseID)
		return nil, errors.NewInternalError("failed to create expense item", err)
	}
	item := ItemFromDataModel(row)
	return &item, nil
}

func (s *Service) DeleteItem(id int64) error {
	if err := s.repo.DeleteItem(id); err != nil {
		s.logger.Error("failed to delete expense item", "error", err, "item_id", id)
		return errors.NewInternalError("failed to delete expense item", err)
	}
	return nil
}
