// Package aggregate derives headline metrics from the cross-chain fold.
// Everything here is a pure function over GlobalAggregate.
package aggregate

import (
	"strings"
	"time"

	"github.com/yourorg/onchain-wrapped/internal/model"
)

// TopChain returns the chain label with the highest transaction count and
// that count. Ties break lexicographically on the label so repeated runs
// over the same data agree. Returns ("None", 0) when nothing was counted.
func TopChain(agg model.GlobalAggregate) (string, int) {
	top, count := "None", 0
	for label, c := range agg.ChainCounts {
		if c > count || (c == count && c > 0 && label < top) {
			top, count = label, c
		}
	}
	return top, count
}

// Dominance is the fraction of total transactions on the top chain,
// zero when there is no activity.
func Dominance(topCount, totalTx int) float64 {
	if totalTx == 0 {
		return 0
	}
	return float64(topCount) / float64(totalTx)
}

// BestDay returns the busiest day's ISO key, its display label in UK day
// ordering ("15 AUGUST 2025") and its count. Ties break on the smaller day
// key. With no activity the key and label are both "N/A".
func BestDay(agg model.GlobalAggregate) (string, string, int) {
	day, count := "", 0
	for k, c := range agg.Days {
		if c > count || (c == count && c > 0 && k < day) {
			day, count = k, c
		}
	}
	if day == "" {
		return "N/A", "N/A", 0
	}

	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day, "N/A", count
	}
	return day, strings.ToUpper(t.Format("2 January 2006")), count
}

// PeakMonth returns the month label with the highest count. Months compare
// by count first, then calendar order. Defaults to "December" with no data.
func PeakMonth(agg model.GlobalAggregate) string {
	month, count := "December", 0
	for label, c := range agg.Months {
		if c > count || (c == count && c > 0 && monthIndex(label) < monthIndex(month)) {
			month, count = label, c
		}
	}
	return month
}

var monthOrder = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func monthIndex(label string) int {
	for i, m := range monthOrder {
		if m == label {
			return i
		}
	}
	return len(monthOrder)
}
