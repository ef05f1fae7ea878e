// Package model defines the core data structures for the onchain-wrapped service.
package model

// LogEvent is a single decoded log entry attached to a transaction.
// Only its presence matters to the pipeline, so the shape stays minimal.
type LogEvent struct {
	SenderAddress string `json:"sender_address,omitempty"`
	SenderName    string `json:"sender_name,omitempty"`
}

// Transaction is one item from the paginated transaction list endpoint.
// ChainID is injected by the caller; the API does not echo it per item.
type Transaction struct {
	// Destination address; empty for contract deployments
	ToAddress string `json:"to_address"`

	// Whether the transaction succeeded on-chain
	Successful bool `json:"successful"`

	// Native value transferred, in wei, as a decimal string
	Value string `json:"value"`

	// Gas units consumed
	GasSpent int64 `json:"gas_spent"`

	// Gas price in wei
	GasPrice int64 `json:"gas_price"`

	// USD gas cost as quoted by the API; nil when no quote is available
	GasQuote *float64 `json:"gas_quote"`

	// ISO-8601 block timestamp
	BlockSignedAt string `json:"block_signed_at"`

	// Decoded log events; nil/empty for plain transfers
	LogEvents []LogEvent `json:"log_events"`

	// Contract name metadata when the API resolves the destination
	ContractName string `json:"contract_name,omitempty"`

	// Injected by the fetch loop before classification
	ChainID int64 `json:"-"`
}

// TxPage is the envelope of one transaction-list page.
type TxPage struct {
	Data struct {
		Items []Transaction `json:"items"`
	} `json:"data"`
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// SummaryBucket is one time bucket from the whole-year summary endpoint.
type SummaryBucket struct {
	TotalCount      int      `json:"total_count"`
	TotalGasCostUSD float64  `json:"total_gas_cost_usd"`
	Earliest        TxMarker `json:"earliest_transaction"`
	Latest          TxMarker `json:"latest_transaction"`
}

// TxMarker points at a single boundary transaction of a summary bucket.
type TxMarker struct {
	BlockSignedAt string `json:"block_signed_at"`
}

// SummaryPage is the envelope of the summary endpoint response.
type SummaryPage struct {
	Data struct {
		Items []SummaryBucket `json:"items"`
	} `json:"data"`
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ChainStats accumulates one chain's counted activity. It is owned
// exclusively by the fetch loop that builds it and folded into the global
// aggregate only after that loop has finished.
type ChainStats struct {
	TxCount    int
	GasUSD     float64
	Days       map[string]int // "2025-03-14" -> count
	Months     map[string]int // "March" -> count
	Categories map[string]int // classifier category -> count
}

// NewChainStats returns an empty accumulator with all maps initialized.
func NewChainStats() ChainStats {
	return ChainStats{
		Days:       make(map[string]int),
		Months:     make(map[string]int),
		Categories: make(map[string]int),
	}
}

// GlobalAggregate is the cross-chain fold of every ChainStats, built once
// per request after all chain fetches have joined.
type GlobalAggregate struct {
	TotalTx      int
	TotalGasUSD  float64
	ChainCounts  map[string]int // chain label -> count
	Days         map[string]int
	Months       map[string]int
	Categories   map[string]int
	ActiveChains int
}

// NewGlobalAggregate returns an empty aggregate with all maps initialized.
func NewGlobalAggregate() GlobalAggregate {
	return GlobalAggregate{
		ChainCounts: make(map[string]int),
		Days:        make(map[string]int),
		Months:      make(map[string]int),
		Categories:  make(map[string]int),
	}
}

// Fold merges one chain's stats into the aggregate. Maps merge by key-wise
// addition; ActiveChains increments only for chains that saw activity.
func (g *GlobalAggregate) Fold(label string, s ChainStats) {
	g.TotalTx += s.TxCount
	g.TotalGasUSD += s.GasUSD
	g.ChainCounts[label] = s.TxCount
	for k, v := range s.Days {
		g.Days[k] += v
	}
	for k, v := range s.Months {
		g.Months[k] += v
	}
	for k, v := range s.Categories {
		g.Categories[k] += v
	}
	if s.TxCount > 0 {
		g.ActiveChains++
	}
}

// FoldMonths merges whole-year summary buckets into the month map only.
// Summary counts never touch TotalTx or TotalGasUSD because the summary
// endpoint does not apply the spam filter.
func (g *GlobalAggregate) FoldMonths(months map[string]int) {
	for k, v := range months {
		g.Months[k] += v
	}
}

// Summary is the headline block of the response.
type Summary struct {
	TotalTx       int    `json:"total_tx"`
	ActiveDays    int    `json:"active_days"`
	ActiveDayDate string `json:"active_day_date"`
	ActiveLabel   string `json:"active_label"`
	TotalGasUSD   string `json:"total_gas_usd"`
	PeakMonth     string `json:"peak_month"`
}

// Favorites names the wallet's most used chain.
type Favorites struct {
	TopChain      string `json:"top_chain"`
	TopChainCount int    `json:"top_chain_count"`
}

// Persona is the qualitative label block.
type Persona struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ColorTheme  string `json:"color_theme"`
}

// Rarity is the tier/percentile block.
type Rarity struct {
	Tier       string `json:"tier"`
	Percentile string `json:"percentile"`
}

// WrappedResult is the terminal artifact handed to presentation.
// Constructed once per request, immutable afterwards.
type WrappedResult struct {
	Wallet    string    `json:"wallet"`
	Year      int       `json:"year"`
	Summary   Summary   `json:"summary"`
	Favorites Favorites `json:"favorites"`
	Persona   Persona   `json:"persona"`
	Traits    []string  `json:"traits"`
	Rarity    Rarity    `json:"rarity"`
}
