package fetch

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourorg/onchain-wrapped/internal/classify"
	"github.com/yourorg/onchain-wrapped/internal/model"
	"github.com/yourorg/onchain-wrapped/internal/types"
)

// API is the surface of the indexing client the fetch loops consume.
// Satisfied by *Client; tests substitute a mock.
type API interface {
	TxPage(ctx context.Context, chain types.Chain, address string, page int) ([]model.Transaction, error)
	YearSummary(ctx context.Context, chain types.Chain, address string) ([]model.SummaryBucket, error)
}

// minTransferGas is the gas cost of a plain value transfer. Successful
// zero-value transactions below it with no log output are dust spam on
// chains flagged FilterSpam.
const minTransferGas = 21000

// FetchChain paginates one chain's transaction history for the address and
// accumulates stats for the target year. The loop stops on an empty page, on
// the first item outside the target year, when the shared wall-clock budget
// is exhausted, or on any request failure. Errors are absorbed: whatever was
// accumulated so far is returned. The budget check is cooperative: an
// in-flight page request is never aborted, but no further page is requested
// once elapsed time since start exceeds the budget.
func FetchChain(ctx context.Context, api API, chain types.Chain, address string, start time.Time, budget time.Duration, year int) model.ChainStats {
	stats := model.NewChainStats()

pages:
	for page := 0; ; page++ {
		if time.Since(start) > budget {
			logrus.WithFields(logrus.Fields{
				"chain": chain.Label,
				"page":  page,
			}).Debug("Fetch budget exhausted, stopping pagination")
			break
		}

		items, err := api.TxPage(ctx, chain, address, page)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"chain": chain.Label,
				"page":  page,
			}).WithError(err).Warn("Page fetch failed, returning partial stats")
			break
		}
		if len(items) == 0 {
			break
		}

		for _, tx := range items {
			ts, err := time.Parse(time.RFC3339, tx.BlockSignedAt)
			if err != nil {
				continue
			}
			ts = ts.UTC()
			if ts.Year() != year {
				// History has scrolled past the year boundary.
				break pages
			}
			if !countable(tx, chain) {
				continue
			}

			tx.ChainID = chain.ID

			stats.TxCount++
			stats.GasUSD += gasUSD(tx, chain)
			stats.Days[ts.Format("2006-01-02")]++
			stats.Months[ts.Format("January")]++
			stats.Categories[string(classify.Classify(tx).Category)]++
		}
	}

	return stats
}

// countable reports whether a transaction survives the spam filter.
// Unsuccessful transactions never count. A zero-value, low-gas transaction
// with no log events counts only on chains without the FilterSpam flag; any
// emitted log event marks a genuine contract interaction.
func countable(tx model.Transaction, chain types.Chain) bool {
	if !tx.Successful {
		return false
	}
	if !chain.FilterSpam {
		return true
	}
	if tx.Value == "0" && tx.GasSpent < minTransferGas && len(tx.LogEvents) == 0 {
		return false
	}
	return true
}

// gasUSD estimates one transaction's gas cost in USD. Exactly one branch
// fires: the API quote when present, otherwise the static average token
// price applied to the raw gas figures, otherwise the chain's floor estimate.
func gasUSD(tx model.Transaction, chain types.Chain) float64 {
	if tx.GasQuote != nil {
		return *tx.GasQuote
	}
	if tx.GasSpent > 0 && tx.GasPrice > 0 {
		return float64(tx.GasSpent) * float64(tx.GasPrice) * types.TokenPrice(chain.ID) / 1e18
	}
	return chain.MinGasUSD
}

// FetchSummaryMonths queries the whole-year summary once and returns month
// bucket counts for the target year. It exists to recover a peak month the
// time-boxed page loop may have missed; its counts feed the month map only.
func FetchSummaryMonths(ctx context.Context, api API, chain types.Chain, address string, year int) map[string]int {
	months := make(map[string]int)

	buckets, err := api.YearSummary(ctx, chain, address)
	if err != nil {
		logrus.WithField("chain", chain.Label).WithError(err).Debug("Summary fetch failed")
		return months
	}

	for _, b := range buckets {
		ts, err := time.Parse(time.RFC3339, b.Latest.BlockSignedAt)
		if err != nil {
			continue
		}
		ts = ts.UTC()
		if ts.Year() != year {
			continue
		}
		months[ts.Format("January")] += b.TotalCount
	}

	return months
}
