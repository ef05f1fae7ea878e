// Package persona maps aggregated wallet metrics to a rarity tier, a display
// persona and a bounded trait list. The whole engine is deterministic: an
// ordered list of predicates with two explicit overrides, no randomness.
package persona

import (
	"fmt"

	"github.com/yourorg/onchain-wrapped/internal/classify"
	"github.com/yourorg/onchain-wrapped/internal/model"
)

// Rarity tiers, loosest to tightest.
const (
	TierCommon    = "Common"
	TierUncommon  = "Uncommon"
	TierRare      = "Rare"
	TierEpic      = "Epic"
	TierLegendary = "Legendary"
	TierUnique    = "Unique"
)

// Metrics is the input slice of the aggregate the engine looks at.
type Metrics struct {
	TotalTx      int
	TotalGasUSD  float64
	ActiveChains int
	TopChain     string
	Dominance    float64
	Categories   map[string]int
}

// Rarity applies the volume ladder and the two overrides. The ladder is
// evaluated loosest to tightest and the tightest true threshold wins; the
// gas override then forces Epic, and the polyglot override trumps everything.
func Rarity(m Metrics) model.Rarity {
	r := model.Rarity{Tier: TierCommon, Percentile: "Top 50%"}
	if m.TotalTx > 20 {
		r = model.Rarity{Tier: TierUncommon, Percentile: "Top 30%"}
	}
	if m.TotalTx > 100 {
		r = model.Rarity{Tier: TierRare, Percentile: "Top 15%"}
	}
	if m.TotalTx > 500 {
		r = model.Rarity{Tier: TierEpic, Percentile: "Top 5%"}
	}
	if m.TotalTx > 1000 {
		r = model.Rarity{Tier: TierLegendary, Percentile: "Top 1%"}
	}

	if m.TotalGasUSD > 1000 {
		r = model.Rarity{Tier: TierEpic, Percentile: "Top 5% (Gas)"}
	}
	if m.ActiveChains >= 5 && m.TotalTx > 500 {
		r = model.Rarity{Tier: TierUnique, Percentile: "The Polyglot"}
	}

	return r
}

// loyalists keys chain-specific personas by top-chain label.
var loyalists = map[string]model.Persona{
	"Base":      {Title: "BASED GOD", Description: "You never left the superchain. Based.", ColorTheme: "blue"},
	"Ethereum":  {Title: "ETH MAXI", Description: "Mainnet or nothing. Gas fees are a lifestyle.", ColorTheme: "indigo"},
	"Arbitrum":  {Title: "ARBINAUT", Description: "Orbiting L1 at a fraction of the cost.", ColorTheme: "sky"},
	"Optimism":  {Title: "THE OPTIMIST", Description: "Glass half full, fees half empty.", ColorTheme: "red"},
	"Polygon":   {Title: "MATIC MARINE", Description: "Holding the purple line since 2021.", ColorTheme: "purple"},
	"BSC":       {Title: "BSC BARON", Description: "Where the volume lives.", ColorTheme: "yellow"},
	"Avalanche": {Title: "AVAX APEX", Description: "Subzero fees, red-hot throughput.", ColorTheme: "rose"},
}

// genericLoyalist covers dominant activity on a chain without its own entry.
var genericLoyalist = model.Persona{Title: "THE LOYALIST", Description: "One chain to rule them all.", ColorTheme: "slate"}

// Pick resolves the display persona, first match wins: chain loyalty, then
// rarity-driven personas, then behavioral categories, then the default.
func Pick(m Metrics, r model.Rarity) model.Persona {
	if m.Dominance > 0.90 && m.TotalTx > 50 {
		if p, ok := loyalists[m.TopChain]; ok {
			return p
		}
		return genericLoyalist
	}

	switch {
	case r.Tier == TierUnique:
		return model.Persona{Title: "THE CHOSEN ONE", Description: "Everywhere, all at once.", ColorTheme: "iridescent"}
	case r.Tier == TierLegendary:
		return model.Persona{Title: "THE WHALE", Description: "When you move, charts move.", ColorTheme: "gold"}
	case m.Categories[string(classify.CategoryDEX)] > 20:
		return model.Persona{Title: "THE DEGEN", Description: "Every candle is a buy signal.", ColorTheme: "green"}
	case m.Categories[string(classify.CategoryBridge)] > 5:
		return model.Persona{Title: "THE NOMAD", Description: "No chain can hold you.", ColorTheme: "teal"}
	case m.Categories[string(classify.CategoryNFT)] > 10:
		return model.Persona{Title: "THE COLLECTOR", Description: "Right-click savers hate you.", ColorTheme: "pink"}
	case r.Tier == TierEpic:
		return model.Persona{Title: "THE OPERATOR", Description: "Quietly moving serious volume.", ColorTheme: "violet"}
	default:
		return model.Persona{Title: "THE TOURIST", Description: "Just passing through.", ColorTheme: "slate"}
	}
}

// Traits collects qualitative badges in a fixed evaluation order and
// truncates to the first four.
func Traits(m Metrics) []string {
	traits := []string{}
	if m.TotalTx > 500 {
		traits = append(traits, "High Volume")
	}
	if m.ActiveChains >= 4 {
		traits = append(traits, "Chain Loyalist")
	}
	if m.Categories[string(classify.CategoryBridge)] > 2 {
		traits = append(traits, "Bridge Hopper")
	}
	if m.Categories[string(classify.CategoryDEX)] > 10 {
		traits = append(traits, "DeFi Native")
	}
	if m.Categories[string(classify.CategoryNFT)] > 5 {
		traits = append(traits, "JPEG Collector")
	}
	if m.Dominance > 0.9 {
		traits = append(traits, fmt.Sprintf("%s Maxi", m.TopChain))
	}

	if len(traits) > 4 {
		traits = traits[:4]
	}
	return traits
}
