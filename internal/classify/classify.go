// Package classify maps transaction counterparties to a fixed category taxonomy.
package classify

import (
	"strings"

	"github.com/yourorg/onchain-wrapped/internal/model"
)

// Category is one bucket of the counterparty taxonomy.
type Category string

// Counterparty categories.
const (
	CategoryDEX         Category = "DEX"
	CategoryBridge      Category = "BRIDGE"
	CategoryAggregator  Category = "AGGREGATOR"
	CategoryNFT         Category = "NFT"
	CategoryInteraction Category = "INTERACTION"
)

// Entry is the classification result for one counterparty.
type Entry struct {
	Name     string
	Category Category
}

// universalRouters maps addresses that are identical on every chain.
var universalRouters = map[string]Entry{
	// Bridges & aggregators
	"0x1231deb6f5749ef6ce6943a275a1d3e7486f4eae": {Name: "Jumper (LI.FI)", Category: CategoryBridge},
	"0x1111111254fb6c44bac0bed2854e76f90643097d": {Name: "1inch", Category: CategoryAggregator},
	"0xdef1c0ded9bec7f1a1670819833240f027b25eff": {Name: "Matcha (0x)", Category: CategoryAggregator},
	"0x881d40237659c251811cec9c364ef91dc08d300c": {Name: "MetaMask Swap", Category: CategoryAggregator},
	"0x8731d54e9d02c286767d56ac9be2abd8b997fe3f": {Name: "Stargate", Category: CategoryBridge},
	"0x4d9079bb4165aeb4084c526a32695dcfd2f77381": {Name: "Across", Category: CategoryBridge},
	// DEXs
	"0x3fc91a3afd70395cd496c647d5a6cc9d4b2b7fad": {Name: "Uniswap", Category: CategoryDEX},
	// NFTs
	"0x00000000006c3852cbef3e08e8df289169ede581": {Name: "OpenSea", Category: CategoryNFT},
}

// chainRouters maps chain-specific contracts, keyed by chain id.
var chainRouters = map[int64]map[string]Entry{
	8453: { // Base
		"0xcf77a3ba9a5ca399b7c97c74d54e5b1beb874e43": {Name: "Aerodrome", Category: CategoryDEX},
		"0x4cd00e387622c35bddb9b4c962c136462338bc31": {Name: "Relay", Category: CategoryBridge},
		"0x327df1e6de05895d2ab08513aaed9eafc48e1a56": {Name: "Base Bridge", Category: CategoryBridge},
	},
	42161: { // Arbitrum
		"0xc873fecbd354f5a56e00e710b90ef4201db24488": {Name: "Camelot", Category: CategoryDEX},
		"0x05373188ec72a450ac4d801eca055ceaddb4a7ea": {Name: "Relay", Category: CategoryBridge},
	},
	56: { // BSC
		"0x10ed43c718714eb63d5aa57b78b54704e256024e": {Name: "PancakeSwap", Category: CategoryDEX},
	},
	43114: { // Avalanche
		"0x60ae616a2155ee3d9a68541ba4544862310933d4": {Name: "Trader Joe", Category: CategoryDEX},
	},
	137: { // Polygon
		"0xa5e0829caced8ffdd4de3c43696c57f7d7a678ff": {Name: "QuickSwap", Category: CategoryDEX},
	},
}

// Classify resolves a transaction's counterparty. It is a pure lookup:
// every input yields a result and no error path exists. Lookup order is the
// universal table, then the chain-scoped table, then API contract metadata.
func Classify(tx model.Transaction) Entry {
	if tx.ToAddress == "" {
		return Entry{Name: "Contract Deploy", Category: CategoryInteraction}
	}

	to := strings.ToLower(tx.ToAddress)

	if e, ok := universalRouters[to]; ok {
		return e
	}
	if routers, ok := chainRouters[tx.ChainID]; ok {
		if e, ok := routers[to]; ok {
			return e
		}
	}
	if tx.ContractName != "" {
		return Entry{Name: tx.ContractName, Category: CategoryInteraction}
	}

	return Entry{Name: "Unknown", Category: CategoryInteraction}
}
