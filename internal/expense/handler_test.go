package expense_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/household-expenses/internal/database"
	"github.com/frahmantamala/household-expenses/internal/database/dbtest"
	"github.com/frahmantamala/household-expenses/internal/expense"
	expenseRepository "github.com/frahmantamala/household-expenses/internal/expense/repository"
	"github.com/frahmantamala/household-expenses/internal/transport"
	"github.com/frahmantamala/household-expenses/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Expense Handler Integration", func() {
	var (
		db     *gorm.DB
		router *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = dbtest.Open()
		Expect(err).NotTo(HaveOccurred())

		repo := expenseRepository.NewExpenseRepository(db)
		service := expense.NewService(repo, nil, logger.Discard())
		handler := expense.NewHandler(transport.NewBaseHandler(logger.Discard()), service)

		router = chi.NewRouter()
		router.Get("/expenses", handler.ListExpenses)
		router.Post("/expenses", handler.CreateExpense)
		router.Delete("/expenses/{id}", handler.DeleteExpense)
		router.Post("/expense-items", handler.CreateItem)
		router.Delete("/expense-items/{id}", handler.DeleteItem)
	})

	AfterEach(func() {
		_ = database.Close(db)
	})

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	create := func(desc, date string, amt float64) expense.Expense {
		w := do(http.MethodPost, "/expenses", map[string]interface{}{
			"description": desc,
			"amount":      amt,
			"date":        date,
			"category":    "food",
			"payer":       "you",
			"items":       []map[string]interface{}{{"name": "part", "amount": 1.5}},
		})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var resp expense.ExpenseResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp.Expense
	}

	It("creates an expense and lists it under its month", func() {
		created := create("Coffee", "2024-01-05", 3.5)
		Expect(created.ID).NotTo(BeZero())
		Expect(created.Items).To(HaveLen(1))

		w := do(http.MethodGet, "/expenses?month=2024-01", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp expense.ExpensesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Expenses).To(HaveLen(1))
		Expect(resp.Expenses[0].Items).To(HaveLen(1))
		Expect(resp.Expenses[0].Items[0].Amount).To(Equal(1.5))
	})

	It("orders by date then id, newest first", func() {
		a := create("A", "2024-01-05", 1)
		b := create("B", "2024-01-20", 1)
		c := create("C", "2024-01-05", 1)

		w := do(http.MethodGet, "/expenses?month=2024-01", nil)
		var resp expense.ExpensesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())

		var got []int64
		for _, e := range resp.Expenses {
			got = append(got, e.ID)
		}
		Expect(got).To(Equal([]int64{b.ID, c.ID, a.ID}))
	})

	It("answers 400 with an error body when fields are missing", func() {
		w := do(http.MethodPost, "/expenses", map[string]interface{}{"description": "x"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var body transport.ErrorBody
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body.Error).To(Equal("Missing fields"))
	})

	It("deletes an expense with its items", func() {
		created := create("Coffee", "2024-01-05", 3.5)

		w := do(http.MethodDelete, "/expenses/"+itoa(created.ID), nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodGet, "/expenses?month=2024-01", nil)
		var resp expense.ExpensesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Expenses).To(BeEmpty())

		var count int64
		Expect(db.Table("expense_items").Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})

	It("rejects a non-numeric id", func() {
		w := do(http.MethodDelete, "/expenses/abc", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("adds and removes individual items", func() {
		created := create("Shop", "2024-01-05", 10)

		w := do(http.MethodPost, "/expense-items", map[string]interface{}{"expense_id": created.ID, "name": "bag", "amount": 0.2})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var resp expense.ItemResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())

		w = do(http.MethodDelete, "/expense-items/"+itoa(resp.Item.ID), nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodPost, "/expense-items", map[string]interface{}{"expense_id": created.ID, "name": "bag", "amount": 0})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
