package accounting

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerResult is the outcome of scanning an ordered sequence of entries.
type LedgerResult struct {
	PerEntryBalance []decimal.Decimal
	TotalCredit     decimal.Decimal
	TotalDebit      decimal.Decimal
	NetBalance      decimal.Decimal
}

// Accumulate scans entries in the given order starting from opening.
// PerEntryBalance[i] is opening plus the signed amounts of entries[0..i].
// It does not sort; callers pass entries in chronological order.
// Amounts keep full precision; rounding is a display concern.
func Accumulate(opening decimal.Decimal, entries []SignedEntry) LedgerResult {
	res := LedgerResult{
		PerEntryBalance: make([]decimal.Decimal, len(entries)),
		TotalCredit:     decimal.Zero,
		TotalDebit:      decimal.Zero,
		NetBalance:      opening,
	}
	balance := opening
	for i, e := range entries {
		switch e.Direction {
		case Debit:
			res.TotalDebit = res.TotalDebit.Add(e.Amount)
		default:
			res.TotalCredit = res.TotalCredit.Add(e.Amount)
		}
		balance = balance.Add(e.Signed())
		res.PerEntryBalance[i] = balance
	}
	res.NetBalance = balance
	return res
}

// SumBalance is opening plus every signed amount. The result does not depend on order.
func SumBalance(opening decimal.Decimal, entries []SignedEntry) decimal.Decimal {
	total := opening
	for _, e := range entries {
		total = total.Add(e.Signed())
	}
	return total
}

// SortChronologically orders items by date and then by sequence (usually creation time),
// both ascending. Items with equal keys keep their relative order.
func SortChronologically[T any](items []T, key func(T) (date time.Time, seq time.Time)) {
	slices.SortStableFunc(items, func(a, b T) int {
		da, sa := key(a)
		db, sb := key(b)
		if c := da.Compare(db); c != 0 {
			return c
		}
		return sa.Compare(sb)
	})
}
