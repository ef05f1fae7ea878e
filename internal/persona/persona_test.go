package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRarityVolumeMonotonicity(t *testing.T) {
	tests := []struct {
		totalTx        int
		wantTier       string
		wantPercentile string
	}{
		{0, TierCommon, "Top 50%"},
		{10, TierCommon, "Top 50%"},
		{30, TierUncommon, "Top 30%"},
		{150, TierRare, "Top 15%"},
		{600, TierEpic, "Top 5%"},
		{1500, TierLegendary, "Top 1%"},
	}

	for _, tt := range tests {
		r := Rarity(Metrics{TotalTx: tt.totalTx, ActiveChains: 2})
		assert.Equal(t, tt.wantTier, r.Tier, "totalTx=%d", tt.totalTx)
		assert.Equal(t, tt.wantPercentile, r.Percentile, "totalTx=%d", tt.totalTx)
	}
}

func TestRarityGasOverride(t *testing.T) {
	r := Rarity(Metrics{TotalTx: 1500, TotalGasUSD: 1200})
	assert.Equal(t, TierEpic, r.Tier)
	assert.Equal(t, "Top 5% (Gas)", r.Percentile)
}

func TestRarityPolyglotOverride(t *testing.T) {
	// Volume alone would give Epic; gas alone would also force Epic.
	r := Rarity(Metrics{TotalTx: 600, ActiveChains: 5, TotalGasUSD: 2000})
	assert.Equal(t, TierUnique, r.Tier)
	assert.Equal(t, "The Polyglot", r.Percentile)

	// One chain short of polyglot.
	r = Rarity(Metrics{TotalTx: 600, ActiveChains: 4})
	assert.Equal(t, TierEpic, r.Tier)
}

func TestPickLoyalistBeatsBehavioral(t *testing.T) {
	m := Metrics{
		TotalTx:   60,
		Dominance: 0.95,
		TopChain:  "Base",
		Categories: map[string]int{
			"DEX": 30, // would otherwise be THE DEGEN
		},
	}
	p := Pick(m, Rarity(m))
	assert.Equal(t, "BASED GOD", p.Title)
}

func TestPickLoyalistTable(t *testing.T) {
	tests := []struct {
		chain string
		want  string
	}{
		{"Base", "BASED GOD"},
		{"Ethereum", "ETH MAXI"},
		{"Arbitrum", "ARBINAUT"},
		{"Optimism", "THE OPTIMIST"},
		{"Polygon", "MATIC MARINE"},
		{"BSC", "BSC BARON"},
		{"Avalanche", "AVAX APEX"},
		{"Gnosis", "THE LOYALIST"},
	}

	for _, tt := range tests {
		m := Metrics{TotalTx: 100, Dominance: 0.99, TopChain: tt.chain}
		assert.Equal(t, tt.want, Pick(m, Rarity(m)).Title, "chain=%s", tt.chain)
	}
}

func TestPickBehavioralOrder(t *testing.T) {
	tests := []struct {
		name string
		m    Metrics
		want string
	}{
		{"unique tier", Metrics{TotalTx: 600, ActiveChains: 5}, "THE CHOSEN ONE"},
		{"legendary tier", Metrics{TotalTx: 1500}, "THE WHALE"},
		{"dex heavy", Metrics{TotalTx: 60, Categories: map[string]int{"DEX": 21}}, "THE DEGEN"},
		{"bridge heavy", Metrics{TotalTx: 60, Categories: map[string]int{"BRIDGE": 6}}, "THE NOMAD"},
		{"nft heavy", Metrics{TotalTx: 60, Categories: map[string]int{"NFT": 11}}, "THE COLLECTOR"},
		{"epic tier", Metrics{TotalTx: 600}, "THE OPERATOR"},
		{"default", Metrics{TotalTx: 5}, "THE TOURIST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pick(tt.m, Rarity(tt.m)).Title)
		})
	}
}

func TestPickDegenBeatsNomad(t *testing.T) {
	m := Metrics{TotalTx: 60, Categories: map[string]int{"DEX": 21, "BRIDGE": 10, "NFT": 15}}
	assert.Equal(t, "THE DEGEN", Pick(m, Rarity(m)).Title)
}

func TestTraits(t *testing.T) {
	m := Metrics{
		TotalTx:      600,
		ActiveChains: 4,
		Dominance:    0.95,
		TopChain:     "Base",
		Categories:   map[string]int{"BRIDGE": 3, "DEX": 11, "NFT": 6},
	}

	// All six predicates fire; the list truncates to the first four in
	// evaluation order.
	got := Traits(m)
	assert.Equal(t, []string{"High Volume", "Chain Loyalist", "Bridge Hopper", "DeFi Native"}, got)
}

func TestTraitsMaxiNamesTopChain(t *testing.T) {
	m := Metrics{TotalTx: 10, Dominance: 0.99, TopChain: "Arbitrum"}
	assert.Equal(t, []string{"Arbitrum Maxi"}, Traits(m))
}

func TestTraitsEmpty(t *testing.T) {
	assert.Empty(t, Traits(Metrics{TotalTx: 3}))
}
