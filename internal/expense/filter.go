package expense

import (
	"fmt"
	"sort"
)

// Filter narrows a month's list by payer or category.
type Filter string

const FilterAll Filter = "all"

func ParseFilter(s string) (Filter, error) {
	switch {
	case s == "" || s == string(FilterAll):
		return FilterAll, nil
	case Payer(s).Valid(), Category(s).Valid():
		return Filter(s), nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

func (f Filter) Match(e Expense) bool {
	switch {
	case f == "" || f == FilterAll:
		return true
	case Payer(f).Valid():
		return e.Payer == Payer(f)
	default:
		return e.Category == Category(f)
	}
}

// Apply returns a filtered copy of list ordered newest first.
func Apply(list []Expense, f Filter) []Expense {
	out := make([]Expense, 0, len(list))
	for _, e := range list {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders by date descending, then id descending.
func SortNewestFirst(list []Expense) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date > list[j].Date
		}
		return list[i].ID > list[j].ID
	})
}
