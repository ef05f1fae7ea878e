package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/onchain-wrapped/internal/fetch"
	"github.com/yourorg/onchain-wrapped/internal/model"
	"github.com/yourorg/onchain-wrapped/internal/types"
)

// stubAPI serves one chain's canned pages; every other chain is empty.
type stubAPI struct {
	chainName string
	pages     [][]model.Transaction
}

func (s *stubAPI) TxPage(_ context.Context, chain types.Chain, _ string, page int) ([]model.Transaction, error) {
	if chain.Name != s.chainName || page >= len(s.pages) {
		return nil, nil
	}
	return s.pages[page], nil
}

func (s *stubAPI) YearSummary(_ context.Context, _ types.Chain, _ string) ([]model.SummaryBucket, error) {
	return nil, nil
}

// marchOnBase returns 60 successful non-spam March transactions carrying a
// $0.50 gas quote each ($30 total).
func marchOnBase() *stubAPI {
	quote := 0.50
	txs := make([]model.Transaction, 60)
	for i := range txs {
		txs[i] = model.Transaction{
			ToAddress:     "0xdeadbeef00000000000000000000000000000000",
			Successful:    true,
			Value:         "1000",
			GasSpent:      21000,
			GasQuote:      &quote,
			BlockSignedAt: "2025-03-14T10:00:00Z",
		}
	}
	return &stubAPI{chainName: "base-mainnet", pages: [][]model.Transaction{txs}}
}

func TestBuildEndToEnd(t *testing.T) {
	api := marchOnBase()
	agg := fetch.Aggregate(context.Background(), api, "0xabc", 5*time.Second, 2025)
	result := Build("0xabc", 2025, agg)

	assert.Equal(t, "0xabc", result.Wallet)
	assert.Equal(t, 2025, result.Year)

	assert.Equal(t, 60, result.Summary.TotalTx)
	assert.Equal(t, 60, result.Summary.ActiveDays)
	assert.Equal(t, "2025-03-14", result.Summary.ActiveDayDate)
	assert.Equal(t, "14 MARCH 2025", result.Summary.ActiveLabel)
	assert.Equal(t, "30.00", result.Summary.TotalGasUSD)
	assert.Equal(t, "March", result.Summary.PeakMonth)

	assert.Equal(t, "Base", result.Favorites.TopChain)
	assert.Equal(t, 60, result.Favorites.TopChainCount)

	// All activity on one chain: the loyalist branch wins.
	assert.Equal(t, "BASED GOD", result.Persona.Title)

	assert.Equal(t, "Uncommon", result.Rarity.Tier)
	assert.Equal(t, "Top 30%", result.Rarity.Percentile)

	assert.Equal(t, []string{"Base Maxi"}, result.Traits)
}

func TestBuildIsIdempotent(t *testing.T) {
	api := marchOnBase()

	first := Build("0xabc", 2025, fetch.Aggregate(context.Background(), api, "0xabc", 5*time.Second, 2025))
	second := Build("0xabc", 2025, fetch.Aggregate(context.Background(), api, "0xabc", 5*time.Second, 2025))

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "two aggregations over the same data must serialize identically")
}

func TestBuildNoActivity(t *testing.T) {
	result := Build("0xabc", 2025, model.NewGlobalAggregate())

	assert.Equal(t, 0, result.Summary.TotalTx)
	assert.Equal(t, "N/A", result.Summary.ActiveDayDate)
	assert.Equal(t, "N/A", result.Summary.ActiveLabel)
	assert.Equal(t, "0.00", result.Summary.TotalGasUSD)
	assert.Equal(t, "December", result.Summary.PeakMonth)
	assert.Equal(t, "None", result.Favorites.TopChain)
	assert.Equal(t, "Common", result.Rarity.Tier)
	assert.Equal(t, "Top 50%", result.Rarity.Percentile)
	assert.Equal(t, "THE TOURIST", result.Persona.Title)
	assert.Empty(t, result.Traits)
}
