package client_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"

	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/client"
	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/month"
	"github.com/frahmantamala/household-expenses/internal/user"
	"github.com/frahmantamala/household-expenses/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Client", func() {
	var (
		server *ghttp.Server
		c      *client.Client
		ctx    context.Context
		hits   int32
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = ghttp.NewServer()
		atomic.StoreInt32(&hits, 0)

		var err error
		c, err = client.New(client.Config{APIBaseURL: server.URL() + "/"}, logger.Discard(),
			client.WithUnauthorizedHook(func() { atomic.AddInt32(&hits, 1) }))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	It("rejects an empty base url", func() {
		_, err := client.New(client.Config{}, logger.Discard())
		Expect(err).To(HaveOccurred())
	})

	It("prefixes every path with /api", func() {
		Expect(c.BaseURL()).To(Equal(server.URL() + "/api"))
	})

	It("lists expenses for a month", func() {
		server.AppendHandlers(ghttp.CombineHandlers(
			ghttp.VerifyRequest(http.MethodGet, "/api/expenses", "month=2024-05"),
			ghttp.RespondWith(http.StatusOK, `{"expenses":[{"id":1,"description":"Milk","amount":3.5,"date":"2024-05-10","category":"groceries","payer":"you","receipt_path":null,"items":[]}]}`,
				http.Header{"Content-Type": []string{"application/json"}}),
		))

		list, err := c.ListExpenses(ctx, month.Key("2024-05"))
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].Description).To(Equal("Milk"))
		Expect(list[0].Payer).To(Equal(expense.PayerYou))
	})

	It("posts an expense as JSON", func() {
		amount := 12.5
		server.AppendHandlers(ghttp.CombineHandlers(
			ghttp.VerifyRequest(http.MethodPost, "/api/expenses"),
			ghttp.VerifyContentType("application/json"),
			ghttp.VerifyJSON(`{"description":"Rent","amount":12.5,"date":"2024-05-01","category":"rent","payer":"spouse","items":null}`),
			ghttp.RespondWith(http.StatusCreated, `{"expense":{"id":7,"description":"Rent","amount":12.5,"date":"2024-05-01","category":"rent","payer":"spouse","receipt_path":null,"items":[]}}`),
		))

		created, err := c.CreateExpense(ctx, expense.CreateExpenseDTO{
			Description: "Rent",
			Amount:      &amount,
			Date:        "2024-05-01",
			Category:    "rent",
			Payer:       "spouse",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(created.ID).To(Equal(int64(7)))
	})

	It("maps a 401 to ErrUnauthorized and fires the hook once", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusUnauthorized, `{"error":"Unauthorized"}`))

		_, err := c.ListSavings(ctx)
		Expect(errors.IsUnauthorized(err)).To(BeTrue())
		Expect(err).To(MatchError(errors.ErrUnauthorized))
		Expect(atomic.LoadInt32(&hits)).To(Equal(int32(1)))
	})

	It("keeps the server's message on a failed login", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusUnauthorized, `{"error":"Invalid credentials"}`))

		err := c.Login(ctx, "alice", "wrong", false)
		Expect(errors.IsUnauthorized(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("Invalid credentials"))
	})

	It("surfaces other rejections with status and message", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusForbidden, `{"error":"Forbidden"}`))

		err := c.DeleteSaving(ctx, 3)
		appErr, ok := errors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(errors.ErrorTypeExternal))
		Expect(appErr.StatusCode).To(Equal(http.StatusForbidden))
		Expect(appErr.Message).To(Equal("Forbidden"))
		Expect(atomic.LoadInt32(&hits)).To(BeZero())
	})

	It("falls back to the status text when the body carries no message", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, "boom"))

		_, err := c.GetBalance(ctx, month.Key("2024-05"))
		appErr, ok := errors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Message).To(Equal("Internal Server Error"))
	})

	It("reports transport failures as network errors", func() {
		server.Close()
		_, err := c.ListExpenses(ctx, month.Key("2024-05"))
		Expect(errors.IsType(err, errors.ErrorTypeNetwork)).To(BeTrue())
	})

	It("sends the balance with its month", func() {
		server.AppendHandlers(ghttp.CombineHandlers(
			ghttp.VerifyRequest(http.MethodPost, "/api/balances"),
			ghttp.VerifyJSON(`{"month_key":"2024-05","starting_balance":900}`),
			ghttp.RespondWith(http.StatusOK, `{"month_key":"2024-05","starting_balance":900,"updated_at":"2024-05-02T10:00:00Z"}`),
		))

		b, err := c.SetBalance(ctx, month.Key("2024-05"), 900)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.StartingBalance).To(Equal(900.0))
		Expect(b.UpdatedAt).NotTo(BeNil())
	})

	It("contributes to a goal", func() {
		server.AppendHandlers(ghttp.CombineHandlers(
			ghttp.VerifyRequest(http.MethodPost, "/api/savings/4/contribute"),
			ghttp.VerifyJSON(`{"amount":25}`),
			ghttp.RespondWith(http.StatusOK, `{"saving":{"id":4,"name":"Trip","target":100,"current":25}}`),
		))

		goal, err := c.Contribute(ctx, 4, 25)
		Expect(err).NotTo(HaveOccurred())
		Expect(goal.Current).To(Equal(25.0))
	})

	It("creates users through the admin endpoint", func() {
		server.AppendHandlers(ghttp.CombineHandlers(
			ghttp.VerifyRequest(http.MethodPost, "/api/admin/users"),
			ghttp.VerifyJSON(`{"username":"bob","password":"long-enough-pass","role":"viewer"}`),
			ghttp.RespondWith(http.StatusCreated, `{"success":true,"user_id":11}`),
		))

		id, err := c.CreateUser(ctx, user.CreateUserDTO{Username: "bob", Password: "long-enough-pass", Role: "viewer"})
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal(int64(11)))
	})

	It("escapes the receipt path as a single segment", func() {
		Expect(c.ReceiptURL("expense_1_a b/c.png")).To(HaveSuffix("/api/receipts/expense_1_a%20b%2Fc.png"))

		server.AppendHandlers(ghttp.CombineHandlers(
			ghttp.VerifyRequest(http.MethodGet, "/api/receipts/expense_1_scan.png"),
			ghttp.RespondWith(http.StatusOK, []byte{0x89, 'P', 'N', 'G'}),
		))
		data, err := c.Receipt(ctx, "expense_1_scan.png")
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]byte{0x89, 'P', 'N', 'G'}))
	})

	It("answers Me with the user from the session", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusOK, `{"authenticated":true,"user":{"id":1,"username":"admin","role":"admin"}}`))

		u, err := c.Me(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Username).To(Equal("admin"))
		Expect(u.Role.IsAdmin()).To(BeTrue())
	})

	Describe("session file", func() {
		var path string

		BeforeEach(func() {
			dir, err := os.MkdirTemp("", "household-client")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)
			path = filepath.Join(dir, "state", "session.json")
		})

		It("persists the session cookie and restores it into a fresh client", func() {
			server.AppendHandlers(
				ghttp.RespondWith(http.StatusOK, `{"success":true}`, http.Header{
					"Set-Cookie": []string{"session=abc123; Path=/; HttpOnly"},
				}),
				ghttp.CombineHandlers(
					func(w http.ResponseWriter, r *http.Request) {
						ck, err := r.Cookie("session")
						Expect(err).NotTo(HaveOccurred())
						Expect(ck.Value).To(Equal("abc123"))
					},
					ghttp.RespondWith(http.StatusOK, `{"authenticated":true,"user":{"id":1,"username":"admin","role":"admin"}}`),
				),
			)

			Expect(c.Login(ctx, "admin", "secret", false)).To(Succeed())
			Expect(c.SaveSession(path)).To(Succeed())

			info, err := os.Stat(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))

			fresh, err := client.New(client.Config{APIBaseURL: server.URL()}, logger.Discard())
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh.LoadSession(path)).To(Succeed())
			_, err = fresh.Me(ctx)
			Expect(err).NotTo(HaveOccurred())
		})

		It("treats a missing file as no session", func() {
			Expect(c.LoadSession(path)).To(Succeed())
		})

		It("removes the file when the jar is empty", func() {
			Expect(os.MkdirAll(filepath.Dir(path), 0o700)).To(Succeed())
			Expect(os.WriteFile(path, []byte(`{}`), 0o600)).To(Succeed())

			Expect(c.SaveSession(path)).To(Succeed())
			_, err := os.Stat(path)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})
})
