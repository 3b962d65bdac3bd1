package domain

// Coin represents one tracked cryptocurrency as returned by a single
// market snapshot fetch. Identity is the provider-assigned ID; every other
// field is replaced wholesale on each refresh (no partial merging).
type Coin struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Image         string  `json:"image"`
	CurrentPrice  float64 `json:"current_price"`
	MarketCap     float64 `json:"market_cap"`
	MarketCapRank int     `json:"market_cap_rank"`
	High24h       float64 `json:"high_24h"`
	Low24h        float64 `json:"low_24h"`

	// Change percentages can be absent from the provider response.
	// Nil means "not reported"; view sorting treats nil as 0.
	PriceChange24h *float64 `json:"price_change_percentage_24h"`
	PriceChange7d  *float64 `json:"price_change_percentage_7d_in_currency"`

	// Sparkline holds the provider's 7-day price sample series.
	Sparkline []float64 `json:"sparkline"`
}

// Change24h returns the 24h change percentage, or 0 if the provider
// omitted it.
func (c *Coin) Change24h() float64 {
	if c.PriceChange24h == nil {
		return 0
	}
	return *c.PriceChange24h
}

// Change7d returns the 7d change percentage, or 0 if the provider omitted it.
func (c *Coin) Change7d() float64 {
	if c.PriceChange7d == nil {
		return 0
	}
	return *c.PriceChange7d
}

// CapBucket classifies a market capitalization into a size class.
type CapBucket string

const (
	BucketAll   CapBucket = "all"
	BucketLarge CapBucket = "large"
	BucketMid   CapBucket = "mid"
	BucketSmall CapBucket = "small"
)

// Bucket thresholds in raw numeric units of the active currency.
// Boundaries are strict: a cap of exactly 10B is mid, exactly 1B is small.
const (
	largeCapFloor = 10_000_000_000
	midCapFloor   = 1_000_000_000
)

// Bucket returns the market-cap size class for a raw market cap value.
func Bucket(marketCap float64) CapBucket {
	if marketCap > largeCapFloor {
		return BucketLarge
	}
	if marketCap > midCapFloor {
		return BucketMid
	}
	return BucketSmall
}

// ValidBucket reports whether b is a recognized bucket filter value.
func ValidBucket(b CapBucket) bool {
	switch b {
	case BucketAll, BucketLarge, BucketMid, BucketSmall:
		return true
	}
	return false
}
