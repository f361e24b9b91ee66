// Package report aggregates sale history into daily profit-and-loss
// figures.  Sales are grouped by the UTC calendar date of their timestamp;
// UTC is the one fixed zone the whole application uses (the database
// connection also pins loc=UTC).  Aggregation is a pure fold with no side
// effects, which keeps it trivially testable.
package report

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/iliyamo/shop-inventory/internal/model"
)

// DailyTotal is one row of the P&L report: aggregate revenue and profit
// for a single calendar date.
type DailyTotal struct {
	Date         string `json:"date"` // YYYY-MM-DD, UTC
	RevenueCents int64  `json:"revenue_cents"`
	ProfitCents  int64  `json:"profit_cents"`
	SaleCount    int64  `json:"sale_count"`
}

// DailyProfitAndLoss folds the sale history into per-day totals ordered by
// date ascending.  Input order does not matter.
func DailyProfitAndLoss(sales []model.Sale) []DailyTotal {
	byDate := make(map[string]*DailyTotal)
	for _, s := range sales {
		day := s.CreatedAt.UTC().Format("2006-01-02")
		t, ok := byDate[day]
		if !ok {
			t = &DailyTotal{Date: day}
			byDate[day] = t
		}
		t.RevenueCents += s.TotalCents
		t.ProfitCents += s.ProfitCents
		t.SaleCount++
	}

	out := make([]DailyTotal, 0, len(byDate))
	for _, t := range byDate {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// WriteCSV renders the P&L rows as CSV with a header line.  Amounts stay
// in cents; the consuming spreadsheet decides presentation.
func WriteCSV(w io.Writer, rows []DailyTotal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "revenue_cents", "profit_cents", "sale_count"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Date,
			strconv.FormatInt(r.RevenueCents, 10),
			strconv.FormatInt(r.ProfitCents, 10),
			strconv.FormatInt(r.SaleCount, 10),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
