// Package types contains shared type definitions used across multiple packages
package types

// Chain describes one blockchain network the aggregator scans.
type Chain struct {
	// Covalent network slug, e.g. "eth-mainnet"
	Name string `json:"name"`

	// Numeric chain id, e.g. 1 for Ethereum mainnet
	ID int64 `json:"chain_id"`

	// Human-readable label used in the response and persona tables
	Label string `json:"label"`

	// Tier groups chains by importance (1 = majors, 2 = optional extras)
	Tier int `json:"tier"`

	// FilterSpam enables the dust-transaction filter on chains where
	// near-zero gas prices make spam transfers economical
	FilterSpam bool `json:"filter_spam"`

	// TokenPriceUSD is a coarse static average price of the native token,
	// used only when the API does not return a USD gas quote
	TokenPriceUSD float64 `json:"token_price_usd"`

	// MinGasUSD is the static floor estimate for one transaction's gas
	// cost when neither a quote nor gas figures are available
	MinGasUSD float64 `json:"min_gas_usd"`
}

// chains is the fixed scan list. Defined once at startup, never mutated.
var chains = []Chain{
	{Name: "eth-mainnet", ID: 1, Label: "Ethereum", Tier: 1, FilterSpam: false, TokenPriceUSD: 3000, MinGasUSD: 0.50},
	{Name: "base-mainnet", ID: 8453, Label: "Base", Tier: 1, FilterSpam: true, TokenPriceUSD: 3000, MinGasUSD: 0.01},
	{Name: "matic-mainnet", ID: 137, Label: "Polygon", Tier: 1, FilterSpam: true, TokenPriceUSD: 0.50, MinGasUSD: 0.01},
	{Name: "optimism-mainnet", ID: 10, Label: "Optimism", Tier: 1, FilterSpam: true, TokenPriceUSD: 3000, MinGasUSD: 0.01},
	{Name: "arbitrum-mainnet", ID: 42161, Label: "Arbitrum", Tier: 1, FilterSpam: true, TokenPriceUSD: 3000, MinGasUSD: 0.01},
	{Name: "bsc-mainnet", ID: 56, Label: "BSC", Tier: 2, FilterSpam: true, TokenPriceUSD: 600, MinGasUSD: 0.05},
	{Name: "avalanche-mainnet", ID: 43114, Label: "Avalanche", Tier: 2, FilterSpam: true, TokenPriceUSD: 30, MinGasUSD: 0.02},
}

// Chains returns the configured scan list.
func Chains() []Chain {
	return chains
}

// TokenPrice returns the static average native token price for a chain id,
// or zero when the chain is unknown.
func TokenPrice(chainID int64) float64 {
	for _, c := range chains {
		if c.ID == chainID {
			return c.TokenPriceUSD
		}
	}
	return 0
}
