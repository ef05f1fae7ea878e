package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourorg/onchain-wrapped/internal/model"
	"github.com/yourorg/onchain-wrapped/internal/otel"
	"github.com/yourorg/onchain-wrapped/internal/types"
	"go.opentelemetry.io/otel/attribute"
)

// chainResult carries one chain's fetch output back to the aggregator.
type chainResult struct {
	stats  model.ChainStats
	months map[string]int
}

// Aggregate runs the per-chain fetch loop and the whole-year summary query
// concurrently for every configured chain, then folds the results into one
// GlobalAggregate. All chains share the same start time for the pagination
// budget. No state is shared across chain goroutines: each owns its result
// slot exclusively, and folding happens strictly after the join, in the
// fixed chain order so repeated runs produce identical output.
func Aggregate(ctx context.Context, api API, address string, budget time.Duration, year int) model.GlobalAggregate {
	ctx, span := otel.Tracer().Start(ctx, "fetch.Aggregate")
	defer span.End()

	chains := types.Chains()
	start := time.Now()

	results := make([]chainResult, len(chains))

	var wg sync.WaitGroup
	for i, chain := range chains {
		wg.Add(1)
		go func(i int, chain types.Chain) {
			defer wg.Done()

			var inner sync.WaitGroup
			inner.Add(2)
			go func() {
				defer inner.Done()
				results[i].stats = FetchChain(ctx, api, chain, address, start, budget, year)
			}()
			go func() {
				defer inner.Done()
				// Independent of the pagination budget: one cheap call.
				results[i].months = FetchSummaryMonths(ctx, api, chain, address, year)
			}()
			inner.Wait()
		}(i, chain)
	}
	wg.Wait()

	agg := model.NewGlobalAggregate()
	for i, chain := range chains {
		agg.Fold(chain.Label, results[i].stats)
		agg.FoldMonths(results[i].months)
	}

	span.SetAttributes(
		attribute.Int("wrapped.total_tx", agg.TotalTx),
		attribute.Int("wrapped.active_chains", agg.ActiveChains),
	)

	logrus.WithFields(logrus.Fields{
		"address":       address,
		"total_tx":      agg.TotalTx,
		"active_chains": agg.ActiveChains,
		"elapsed":       time.Since(start),
	}).Info("Aggregation complete")

	return agg
}
