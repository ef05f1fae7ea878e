// Package report assembles the terminal response record from the aggregate.
package report

import (
	"fmt"

	"github.com/yourorg/onchain-wrapped/internal/aggregate"
	"github.com/yourorg/onchain-wrapped/internal/model"
	"github.com/yourorg/onchain-wrapped/internal/persona"
)

// Build folds the derived metrics and the persona engine output into one
// WrappedResult. The active_days figure deliberately carries the busiest
// single day's transaction count, matching the shipped public contract.
func Build(address string, year int, agg model.GlobalAggregate) model.WrappedResult {
	topChain, topCount := aggregate.TopChain(agg)
	dominance := aggregate.Dominance(topCount, agg.TotalTx)
	bestDayKey, bestDayLabel, bestDayCount := aggregate.BestDay(agg)

	m := persona.Metrics{
		TotalTx:      agg.TotalTx,
		TotalGasUSD:  agg.TotalGasUSD,
		ActiveChains: agg.ActiveChains,
		TopChain:     topChain,
		Dominance:    dominance,
		Categories:   agg.Categories,
	}

	rarity := persona.Rarity(m)

	return model.WrappedResult{
		Wallet: address,
		Year:   year,
		Summary: model.Summary{
			TotalTx:       agg.TotalTx,
			ActiveDays:    bestDayCount,
			ActiveDayDate: bestDayKey,
			ActiveLabel:   bestDayLabel,
			TotalGasUSD:   fmt.Sprintf("%.2f", agg.TotalGasUSD),
			PeakMonth:     aggregate.PeakMonth(agg),
		},
		Favorites: model.Favorites{
			TopChain:      topChain,
			TopChainCount: topCount,
		},
		Persona: persona.Pick(m, rarity),
		Traits:  persona.Traits(m),
		Rarity:  rarity,
	}
}
