package app_test

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/app"
	"github.com/frahmantamala/household-expenses/internal/auth"
	"github.com/frahmantamala/household-expenses/internal/backend"
	"github.com/frahmantamala/household-expenses/internal/client"
	"github.com/frahmantamala/household-expenses/internal/database"
	"github.com/frahmantamala/household-expenses/internal/database/dbtest"
	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/month"
	"github.com/frahmantamala/household-expenses/internal/transfer"
	"github.com/frahmantamala/household-expenses/internal/user"
	"github.com/frahmantamala/household-expenses/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ app.API = (*client.Client)(nil)

func amount(v float64) *float64 {
	return &v
}

var _ = Describe("App", func() {
	var (
		ctx       context.Context
		db        *gorm.DB
		be        *backend.Backend
		server    *httptest.Server
		transport *countingTransport
		api       *client.Client
		view      *recordingView
		a         *app.App
	)

	may := month.Key("2024-05")

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = dbtest.Open()
		Expect(err).NotTo(HaveOccurred())

		cfg := &internal.Config{
			Database: internal.DatabaseConfig{Driver: database.DriverSQLite, Source: ":memory:"},
			Security: internal.SecurityConfig{
				SessionSecret: "0123456789abcdef0123456789abcdef",
				BCryptCost:    4,
				SessionTTL:    time.Hour,
				RememberTTL:   24 * time.Hour,
			},
			Receipts: internal.ReceiptsConfig{Dir: GinkgoT().TempDir()},
		}
		be, err = backend.New(cfg, db, logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		Expect(be.SeedAdmin(internal.SeedConfig{AdminUsername: "admin", AdminPassword: "admin-password-1"})).To(Succeed())
		_, err = be.Users.Create(user.CreateUserDTO{Username: "viewer", Password: "viewer-password-1", Role: "viewer"})
		Expect(err).NotTo(HaveOccurred())
		_, err = be.Users.Create(user.CreateUserDTO{Username: "editor", Password: "editor-password-1", Role: "editor"})
		Expect(err).NotTo(HaveOccurred())

		server = httptest.NewServer(be.Router)
		transport = newCountingTransport()
		api, err = client.New(client.Config{APIBaseURL: server.URL, Transport: transport}, logger.Discard())
		Expect(err).NotTo(HaveOccurred())

		view = &recordingView{}
		a = app.New(app.Deps{
			API:    api,
			View:   view,
			Logger: logger.Discard(),
			Month:  time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC),
			Now:    func() time.Time { return time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC) },
		})
	})

	AfterEach(func() {
		server.Close()
		_ = database.Close(db)
	})

	signIn := func(username, password string) {
		Expect(a.Login(ctx, username, password, false)).To(Succeed())
		view.reset()
	}

	addExpense := func(desc string, amt float64, date, category, payer string) {
		_, err := a.AddExpense(ctx, expense.CreateExpenseDTO{
			Description: desc,
			Amount:      amount(amt),
			Date:        date,
			Category:    category,
			Payer:       payer,
		})
		Expect(err).NotTo(HaveOccurred())
	}

	It("shows the sign-in screen when there is no session", func() {
		Expect(a.Start(ctx)).To(Succeed())
		Expect(view.authShown).To(Equal(1))
		Expect(a.Store()).To(BeNil())
	})

	It("rejects bad credentials without starting a session", func() {
		err := a.Login(ctx, "admin", "nope", false)
		Expect(internal.IsUnauthorized(err)).To(BeTrue())
		Expect(a.Gate().Authenticated()).To(BeFalse())
		Expect(view.alerts).To(ContainElement(ContainSubstring("Invalid credentials")))
	})

	It("runs the month pipeline in order", func() {
		signIn("admin", "admin-password-1")

		Expect(a.Refresh(ctx)).To(Succeed())
		Expect(view.calls).To(Equal([]string{"expenses", "summary", "balance", "categories", "dashboard", "sync"}))
	})

	It("re-fetches after a write and reflects the server state", func() {
		signIn("admin", "admin-password-1")

		addExpense("Rent", 900, "2024-05-01", "rent", "you")
		addExpense("Milk", 3.5, "2024-05-03", "groceries", "spouse")
		addExpense("Old", 50, "2024-04-10", "food", "you")

		Expect(view.list.Month).To(Equal(may))
		Expect(view.list.Expenses).To(HaveLen(2))
		Expect(view.list.Expenses[0].Description).To(Equal("Milk"))
		Expect(view.summary.Total).To(Equal(903.5))
		Expect(view.summary.You + view.summary.Spouse).To(Equal(903.5))
		Expect(view.dashboard.PrevMonth).To(Equal(month.Key("2024-04")))
		Expect(view.dashboard.Comparison.Prev).To(Equal(50.0))
		Expect(a.Store().Expenses(may)).To(HaveLen(2))

		id := view.list.Expenses[0].ID
		Expect(a.DeleteExpense(ctx, id)).To(Succeed())
		Expect(view.list.Expenses).To(HaveLen(1))
	})

	It("adds and removes items through a re-fetch", func() {
		signIn("editor", "editor-password-1")
		addExpense("Groceries", 40, "2024-05-02", "groceries", "you")
		id := view.list.Expenses[0].ID

		Expect(a.AddItem(ctx, expense.AddItemDTO{ExpenseID: id, Name: "Bread", Amount: 2.5})).To(Succeed())
		Expect(view.list.Expenses[0].Items).To(HaveLen(1))

		Expect(a.DeleteItem(ctx, view.list.Expenses[0].Items[0].ID)).To(Succeed())
		Expect(view.list.Expenses[0].Items).To(BeEmpty())
	})

	It("blocks viewer writes before any request is made", func() {
		signIn("viewer", "viewer-password-1")
		before := transport.Total()

		_, err := a.AddExpense(ctx, expense.CreateExpenseDTO{
			Description: "Coffee", Amount: amount(3), Date: "2024-05-02", Category: "food", Payer: "you",
		})
		Expect(err).To(MatchError(internal.ErrForbidden))
		Expect(a.DeleteExpense(ctx, 1)).To(MatchError(internal.ErrForbidden))
		_, err = a.ImportCSV(ctx, strings.NewReader("description,amount,date,category,payer\nA,1,2024-05-01,food,you\n"))
		Expect(err).To(MatchError(internal.ErrForbidden))

		Expect(transport.Total()).To(Equal(before))
		Expect(view.alerts).To(HaveLen(3))
	})

	It("keeps balance editing to admins", func() {
		signIn("editor", "editor-password-1")
		before := transport.Total()

		Expect(a.SaveStartingBalance(ctx, 100)).To(MatchError(internal.ErrForbidden))
		_, err := a.LoadSavings(ctx)
		Expect(err).To(MatchError(internal.ErrForbidden))
		Expect(transport.Total()).To(Equal(before))
	})

	It("validates on the client before calling the server", func() {
		signIn("admin", "admin-password-1")
		before := transport.Total()

		_, err := a.AddExpense(ctx, expense.CreateExpenseDTO{
			Description: "Coffee", Amount: amount(0), Date: "2024-05-02", Category: "food", Payer: "you",
		})
		Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
		Expect(a.SaveStartingBalance(ctx, -1)).To(MatchError(app.ErrNegativeBalance))
		Expect(a.AddSavingsGoal(ctx, "  ", 10)).To(HaveOccurred())
		Expect(a.Contribute(ctx, 1, 0)).To(HaveOccurred())
		_, err = a.AdminAddUser(ctx, user.CreateUserDTO{Username: "x"})
		Expect(err).To(MatchError(app.ErrMissingCredentials))

		Expect(transport.Total()).To(Equal(before))
	})

	It("saves the starting balance and shows what remains", func() {
		signIn("admin", "admin-password-1")
		addExpense("Rent", 900, "2024-05-01", "rent", "you")

		Expect(a.SaveStartingBalance(ctx, 500)).To(Succeed())
		Expect(view.balance.Starting).To(Equal(500.0))
		Expect(view.balance.Remaining).To(Equal(-400.0))
		Expect(view.balance.Overdrawn()).To(BeTrue())
		Expect(view.balance.Editable).To(BeTrue())
	})

	It("re-fetches on every month transition", func() {
		signIn("admin", "admin-password-1")
		Expect(a.Refresh(ctx)).To(Succeed())
		mayList := "GET /api/expenses?month=2024-05"
		before := transport.Count(mayList)

		Expect(a.NextMonth(ctx)).To(Succeed())
		Expect(view.list.Month).To(Equal(month.Key("2024-06")))
		Expect(a.PrevMonth(ctx)).To(Succeed())
		Expect(view.list.Month).To(Equal(may))

		// June's dashboard reads May as its previous month, then May reloads its list and its dashboard.
		Expect(transport.Count(mayList)).To(Equal(before + 3))
		Expect(transport.Count("GET /api/expenses?month=2024-06")).To(Equal(2))
	})

	It("shows the selected month even when its fetch fails", func() {
		signIn("admin", "admin-password-1")
		addExpense("Rent", 900, "2024-05-01", "rent", "you")
		Expect(view.list.Month).To(Equal(may))
		view.reset()

		transport.failOn("GET /api/expenses?month=2024-06")
		err := a.NextMonth(ctx)
		Expect(err).To(HaveOccurred())
		Expect(internal.IsType(err, internal.ErrorTypeNetwork)).To(BeTrue())

		Expect(a.Navigator().Key()).To(Equal(month.Key("2024-06")))
		Expect(view.list.Month).To(Equal(month.Key("2024-06")))
		Expect(view.list.Expenses).To(BeEmpty())
		Expect(view.balance.Month).To(Equal(month.Key("2024-06")))
		Expect(view.alerts).To(HaveLen(1))
		Expect(view.calls).NotTo(ContainElement("sync"))
	})

	It("filters the list but counts the whole month", func() {
		signIn("admin", "admin-password-1")
		addExpense("Rent", 900, "2024-05-01", "rent", "you")
		addExpense("Milk", 3.5, "2024-05-03", "groceries", "spouse")

		a.SetFilter(expense.Filter("spouse"))
		Expect(view.list.Expenses).To(HaveLen(1))
		Expect(view.list.Counter()).To(Equal("2 expense(s) this month"))

		a.SetFilter(expense.Filter("rent"))
		Expect(view.list.Expenses[0].Description).To(Equal("Rent"))
	})

	It("drops the session and the cache on a 401", func() {
		signIn("admin", "admin-password-1")
		Expect(a.Refresh(ctx)).To(Succeed())
		Expect(a.Store()).NotTo(BeNil())

		u, _ := url.Parse(server.URL)
		for _, ck := range api.Jar().Cookies(u) {
			if ck.Name == auth.CookieName {
				Expect(be.Auth.Logout(ctx, ck.Value)).To(Succeed())
			}
		}

		err := a.Refresh(ctx)
		Expect(internal.IsUnauthorized(err)).To(BeTrue())
		Expect(a.Gate().Authenticated()).To(BeFalse())
		Expect(a.Store()).To(BeNil())
		Expect(view.authShown).To(BeNumerically(">=", 1))
		Expect(view.alerts).To(BeEmpty())
	})

	It("logs out and forgets the cache", func() {
		signIn("admin", "admin-password-1")
		Expect(a.Logout(ctx)).To(Succeed())
		Expect(a.Store()).To(BeNil())

		Expect(a.Start(ctx)).To(Succeed())
		Expect(a.Gate().Authenticated()).To(BeFalse())
	})

	Describe("import and export", func() {
		It("imports a CSV row by row and re-fetches", func() {
			signIn("admin", "admin-password-1")

			res, err := a.ImportCSV(ctx, strings.NewReader(
				"description,amount,date,category,payer\nCoffee,3.50,2024-05-05,food,you\nBad,notanumber,2024-05-06,food,you\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal(transfer.Result{Success: 1, Failed: 1}))
			Expect(view.list.Expenses).To(HaveLen(1))
			Expect(view.list.Expenses[0].Description).To(Equal("Coffee"))
			Expect(view.notices).To(ContainElement("CSV import completed. Success: 1, Failed: 1"))
		})

		It("rejects a JSON document without balances and keeps the cache", func() {
			signIn("admin", "admin-password-1")
			addExpense("Rent", 900, "2024-05-01", "rent", "you")

			err := a.ImportJSON(strings.NewReader(`{"expenses":{"2023-01":[]}}`))
			Expect(internal.IsType(err, internal.ErrorTypeFormat)).To(BeTrue())
			Expect(a.Store().Months()).To(Equal([]month.Key{may}))
			Expect(a.Store().Expenses(may)).To(HaveLen(1))
		})

		It("exports the cached months and imports them back", func() {
			signIn("admin", "admin-password-1")
			addExpense("Rent", 900, "2024-05-01", "rent", "you")

			var out strings.Builder
			Expect(a.Export(&out, app.FormatJSON, nil)).To(Succeed())
			Expect(out.String()).To(ContainSubstring(`"exportDate": "2024-05-20T12:00:00Z"`))

			a.Store().Clear()
			Expect(a.ImportJSON(strings.NewReader(out.String()))).To(Succeed())
			Expect(view.list.Expenses).To(HaveLen(1))

			var csv strings.Builder
			Expect(a.Export(&csv, app.FormatCSV, []month.Key{may})).To(Succeed())
			Expect(csv.String()).To(ContainSubstring("Rent,900,2024-05-01,rent,you"))
		})
	})

	Describe("savings and users", func() {
		It("manages goals as admin", func() {
			signIn("admin", "admin-password-1")

			Expect(a.AddSavingsGoal(ctx, "Holiday", 1000)).To(Succeed())
			Expect(view.goals).To(HaveLen(1))

			Expect(a.Contribute(ctx, view.goals[0].ID, 250)).To(Succeed())
			Expect(view.goals[0].Current).To(Equal(250.0))
			Expect(view.goals[0].Progress()).To(Equal(25.0))

			Expect(a.DeleteSavingsGoal(ctx, view.goals[0].ID)).To(Succeed())
			Expect(view.goals).To(BeEmpty())
		})

		It("provisions users as admin", func() {
			signIn("admin", "admin-password-1")

			id, err := a.AdminAddUser(ctx, user.CreateUserDTO{Username: "sam", Password: "sam-password-42", Role: "user"})
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(BeNumerically(">", 0))

			users, err := a.AdminListUsers(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(4))
		})

		It("surfaces a server rejection as an alert", func() {
			signIn("admin", "admin-password-1")

			_, err := a.AdminAddUser(ctx, user.CreateUserDTO{Username: "viewer", Password: "another-pass-42"})
			Expect(err).To(HaveOccurred())
			Expect(view.alerts).To(ContainElement("Username already exists"))
		})
	})
})
