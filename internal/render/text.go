// Package render prints the application state as text tables, coloured when the stream is a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/frahmantamala/household-expenses/internal/aggregate"
	"github.com/frahmantamala/household-expenses/internal/app"
	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/money"
	"github.com/frahmantamala/household-expenses/internal/month"
	"github.com/frahmantamala/household-expenses/internal/savings"
	"github.com/frahmantamala/household-expenses/internal/session"
	"github.com/frahmantamala/household-expenses/internal/user"
)

const barWidth = 30

// Section selects what a TextView prints; the zero value prints everything.
type Section uint8

const (
	SectionExpenses Section = 1 << iota
	SectionSummary
	SectionBalance
	SectionCategories
	SectionDashboard
	SectionSync

	SectionAll = SectionExpenses | SectionSummary | SectionBalance | SectionCategories | SectionDashboard | SectionSync
)

type TextView struct {
	mu       sync.Mutex
	out      io.Writer
	errOut   io.Writer
	sections Section
	styles   styles
}

// styles are bound to the renderer of the stream they print to, so a pipe or a buffer gets plain text.
type styles struct {
	alert     lipgloss.Style
	muted     lipgloss.Style
	overspent lipgloss.Style
	barThis   lipgloss.Style
	barPrev   lipgloss.Style
}

func newStyles(out, errOut io.Writer) styles {
	o, e := lipgloss.NewRenderer(out), lipgloss.NewRenderer(errOut)
	return styles{
		alert:     e.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true),
		muted:     o.NewStyle().Foreground(lipgloss.Color("#7f849c")),
		overspent: o.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true),
		barThis:   o.NewStyle().Foreground(lipgloss.Color("#89b4fa")),
		barPrev:   o.NewStyle().Foreground(lipgloss.Color("#7f849c")),
	}
}

var _ app.View = (*TextView)(nil)

func NewTextView(out, errOut io.Writer, sections Section) *TextView {
	if sections == 0 {
		sections = SectionAll
	}
	return &TextView{out: out, errOut: errOut, sections: sections, styles: newStyles(out, errOut)}
}

func (v *TextView) show(s Section) bool {
	return v.sections&s != 0
}

func (v *TextView) printf(format string, args ...interface{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format, args...)
}

func (v *TextView) table(fn func(w *tabwriter.Writer)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	tw := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	fn(tw)
	tw.Flush()
}

func (v *TextView) ShowAuth() {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.errOut, v.styles.alert.Render("Not signed in. Run `household login <username>` first."))
}

func (v *TextView) ShowSession(u coreUser.User, c session.Controls) {
	v.printf("Signed in as %s (%s)\n", u.Username, u.Role)
}

func (v *TextView) RenderExpenses(l app.ExpenseList) {
	if !v.show(SectionExpenses) {
		return
	}
	v.printf("\n%s  [%s]  %s\n", l.Month.Label(), l.Filter, l.Counter())
	if len(l.Expenses) == 0 {
		v.printf("%s\n", v.styles.muted.Render("No expenses yet"))
		return
	}
	v.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tCATEGORY\tPAYER\tAMOUNT\tITEMS\tRECEIPT")
		for _, e := range l.Expenses {
			receipt := "-"
			if e.HasReceipt() {
				receipt = *e.ReceiptPath
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.Date, e.Description, e.Category.Label(), payerLabel(e.Payer),
				money.Format(e.Amount), itemsCell(e.Items), receipt)
		}
	})
}

func (v *TextView) RenderSummary(k month.Key, s aggregate.Summary) {
	if !v.show(SectionSummary) {
		return
	}
	v.printf("Total %s   You %s   Spouse %s\n", money.Format(s.Total), money.Format(s.You), money.Format(s.Spouse))
}

func (v *TextView) RenderBalance(b app.BalanceView) {
	if !v.show(SectionBalance) {
		return
	}
	remaining := money.Format(b.Remaining)
	if b.Overdrawn() {
		remaining = v.styles.overspent.Render(remaining + "  (overspent)")
	}
	v.printf("Starting balance %s   Remaining %s\n", money.Format(b.Starting), remaining)
}

func (v *TextView) RenderCategoryTotals(s aggregate.Summary) {
	if !v.show(SectionCategories) {
		return
	}
	if len(s.ByCategory) == 0 {
		v.printf("%s\n", v.styles.muted.Render("No expenses yet"))
		return
	}
	v.table(func(w *tabwriter.Writer) {
		for _, c := range s.Categories() {
			fmt.Fprintf(w, "%s\t%s\n", c.Label(), money.Format(s.ByCategory[c]))
		}
	})
}

func (v *TextView) RenderDashboard(d app.Dashboard) {
	if !v.show(SectionDashboard) {
		return
	}
	c := d.Comparison
	v.printf("\nThis month %s   Last month %s   Change %s\n", money.Format(c.This), money.Format(c.Prev), d.Change())
	if len(c.Bars) == 0 {
		return
	}
	v.table(func(w *tabwriter.Writer) {
		for _, b := range c.Bars {
			fmt.Fprintf(w, "%s\tthis\t%s\t%s\n", b.Category.Label(), bar(v.styles.barThis, b.ThisWidth), money.Format(b.This))
			fmt.Fprintf(w, "\tprev\t%s\t%s\n", bar(v.styles.barPrev, b.PrevWidth), money.Format(b.Prev))
		}
	})
}

func (v *TextView) RenderSavings(goals []savings.Goal, c session.Controls) {
	if len(goals) == 0 {
		v.printf("%s\n", v.styles.muted.Render("No savings goals yet"))
		return
	}
	v.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tCURRENT\tTARGET\tPROGRESS\t")
		for _, g := range goals {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s%%\t%s\n",
				g.ID, g.Name, money.Format(g.Current), money.Format(g.Target), money.Fixed(g.Progress(), 0), g.Band())
		}
	})
}

func (v *TextView) RenderUsers(users []user.User) {
	v.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tCREATED")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.CreatedAt.Format("2006-01-02"))
		}
	})
}

func (v *TextView) SyncInfo(msg string) {
	if !v.show(SectionSync) {
		return
	}
	v.printf("%s\n", msg)
}

func (v *TextView) Notify(msg string) {
	v.printf("%s\n", msg)
}

func (v *TextView) Alert(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.errOut, v.styles.alert.Render("error: "+msg))
}

func payerLabel(p expense.Payer) string {
	switch p {
	case expense.PayerYou:
		return "You"
	case expense.PayerSpouse:
		return "Spouse"
	}
	return string(p)
}

func itemsCell(items []expense.Item) string {
	if len(items) == 0 {
		return "-"
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s %s", it.Name, money.Format(it.Amount))
	}
	return strings.Join(parts, ", ")
}

// bar draws width percent of barWidth as a run of #, padded to barWidth so styled cells line up in the table.
func bar(style lipgloss.Style, width float64) string {
	n := int(width / 100 * barWidth)
	if width > 0 && n == 0 {
		n = 1
	}
	if n > barWidth {
		n = barWidth
	}
	pad := strings.Repeat(" ", barWidth-n)
	if n == 0 {
		return pad
	}
	return style.Render(strings.Repeat("#", n)) + pad
}
