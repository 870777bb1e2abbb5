// Package aggregate reduces a month of expenses to the totals shown on screen.
// Sums are kept at full float precision; rounding happens only when formatting.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/money"
)

type Summary struct {
	Total      float64
	ByCategory map[expense.Category]float64
	You        float64
	Spouse     float64
	Count      int
}

func Summarize(list []expense.Expense) Summary {
	s := Summary{ByCategory: make(map[expense.Category]float64)}
	for _, e := range list {
		s.Total += e.Amount
		s.ByCategory[e.Category] += e.Amount
		switch e.Payer {
		case expense.PayerYou:
			s.You += e.Amount
		case expense.PayerSpouse:
			s.Spouse += e.Amount
		}
		s.Count++
	}
	return s
}

// Categories returns the categories present in s sorted by name.
func (s Summary) Categories() []expense.Category {
	out := make([]expense.Category, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Bar is one category row of the month-over-month chart. Widths are percentages of the shared scale.
type Bar struct {
	Category  expense.Category
	This      float64
	Prev      float64
	ThisWidth float64
	PrevWidth float64
}

type Comparison struct {
	This  float64
	Prev  float64
	Diff  float64
	Pct   float64
	Scale float64
	Bars  []Bar
}

func Compare(this, prev Summary) Comparison {
	c := Comparison{
		This: this.Total,
		Prev: prev.Total,
		Diff: this.Total - prev.Total,
	}
	if prev.Total > 0 {
		c.Pct = c.Diff / prev.Total * 100
	}

	union := make(map[expense.Category]struct{}, len(this.ByCategory)+len(prev.ByCategory))
	c.Scale = 1
	for cat, v := range this.ByCategory {
		union[cat] = struct{}{}
		c.Scale = math.Max(c.Scale, v)
	}
	for cat, v := range prev.ByCategory {
		union[cat] = struct{}{}
		c.Scale = math.Max(c.Scale, v)
	}

	for cat := range union {
		t, p := this.ByCategory[cat], prev.ByCategory[cat]
		c.Bars = append(c.Bars, Bar{
			Category:  cat,
			This:      t,
			Prev:      p,
			ThisWidth: t / c.Scale * 100,
			PrevWidth: p / c.Scale * 100,
		})
	}
	sort.Slice(c.Bars, func(i, j int) bool { return c.Bars[i].Category < c.Bars[j].Category })
	return c
}

// FormatChange renders the difference line: "+£12.00 (10.0%)" or "£-3.00 (-20.0%)".
func FormatChange(diff, pct float64) string {
	sign := ""
	if diff >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%s (%s%%)", sign, money.Format(diff), money.Fixed(pct, 1))
}

// Remaining is what is left of the starting balance. It may be negative.
func Remaining(starting float64, s Summary) float64 {
	return starting - s.Total
}
