// Package aggregate computes per-category and overall totals from classified
// transactions. Everything here is a pure function of its input: totals are
// recomputed on every call and never cached or persisted.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/convector/statement-analyzer/internal/domain/categorization"
	"github.com/convector/statement-analyzer/internal/domain/statement"
)

// Totals describes one category's transaction volume. Credit and Debit are
// magnitude sums over transactions typed Credit and Debit respectively;
// fallback descriptive types contribute to Count and Total only.
type Totals struct {
	Count  int
	Total  decimal.Decimal
	Credit decimal.Decimal
	Debit  decimal.Decimal
	Net    decimal.Decimal
}

// Summary holds totals for every category plus the synthetic grand-total row.
type Summary struct {
	// ByCategory has an entry for each of the fixed categories, including
	// those with zero transactions.
	ByCategory map[string]Totals
	// Grand is the TOTAL row. Its Total is Credit+Debit rather than the sum
	// of per-category Totals; the two differ only when descriptive fallback
	// types are present.
	Grand Totals
}

// Compute derives a Summary from the classifier's category mapping. The
// result is deterministic regardless of map iteration or transaction order.
func Compute(categories map[string][]statement.Transaction) Summary {
	summary := Summary{ByCategory: make(map[string]Totals, len(categorization.Categories))}

	for _, name := range categorization.Categories {
		totals := computeTotals(categories[name])
		summary.ByCategory[name] = totals

		summary.Grand.Count += totals.Count
		summary.Grand.Credit = summary.Grand.Credit.Add(totals.Credit)
		summary.Grand.Debit = summary.Grand.Debit.Add(totals.Debit)
	}

	summary.Grand.Total = summary.Grand.Credit.Add(summary.Grand.Debit)
	summary.Grand.Net = summary.Grand.Credit.Sub(summary.Grand.Debit)
	return summary
}

func computeTotals(txs []statement.Transaction) Totals {
	totals := Totals{Count: len(txs)}
	for _, tx := range txs {
		totals.Total = totals.Total.Add(tx.Amount)
		switch tx.Type {
		case statement.TypeCredit:
			totals.Credit = totals.Credit.Add(tx.Amount)
		case statement.TypeDebit:
			totals.Debit = totals.Debit.Add(tx.Amount)
		}
	}
	totals.Net = totals.Credit.Sub(totals.Debit)
	return totals
}
