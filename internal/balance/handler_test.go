package balance_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/household-expenses/internal/balance"
	balanceRepository "github.com/frahmantamala/household-expenses/internal/balance/repository"
	"github.com/frahmantamala/household-expenses/internal/database"
	"github.com/frahmantamala/household-expenses/internal/database/dbtest"
	"github.com/frahmantamala/household-expenses/internal/transport"
	"github.com/frahmantamala/household-expenses/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Balance Handler Integration", func() {
	var (
		db     *gorm.DB
		router *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = dbtest.Open()
		Expect(err).NotTo(HaveOccurred())

		service := balance.NewService(balanceRepository.NewBalanceRepository(db), logger.Discard())
		handler := balance.NewHandler(transport.NewBaseHandler(logger.Discard()), service)

		router = chi.NewRouter()
		router.Get("/balances", handler.GetBalance)
		router.Post("/balances", handler.SetBalance)
	})

	AfterEach(func() {
		_ = database.Close(db)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("answers a zero balance with a null timestamp for an unknown month", func() {
		w := do(http.MethodGet, "/balances?month=2024-05", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"month_key":"2024-05","starting_balance":0,"updated_at":null}`))
	})

	It("upserts and reads back", func() {
		w := do(http.MethodPost, "/balances", `{"month_key":"2024-05","starting_balance":1200}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodPost, "/balances", `{"month_key":"2024-05","starting_balance":1500.5}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodGet, "/balances?month=2024-05", "")
		var b balance.Balance
		Expect(json.NewDecoder(w.Body).Decode(&b)).To(Succeed())
		Expect(b.StartingBalance).To(Equal(1500.5))
		Expect(b.UpdatedAt).NotTo(BeNil())

		var count int64
		Expect(db.Table("balances").Count(&count).Error).To(Succeed())
		Expect(count).To(Equal(int64(1)))
	})

	It("lists every month when no month is given", func() {
		do(http.MethodPost, "/balances", `{"month_key":"2024-04","starting_balance":1}`)
		do(http.MethodPost, "/balances", `{"month_key":"2024-05","starting_balance":2}`)

		w := do(http.MethodGet, "/balances", "")
		var resp balance.BalancesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Balances).To(HaveLen(2))
		Expect(string(resp.Balances[0].MonthKey)).To(Equal("2024-05"))
	})

	It("answers 400 for a missing balance", func() {
		w := do(http.MethodPost, "/balances", `{"month_key":"2024-05"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(MatchJSON(`{"error":"Missing fields"}`))
	})
})
