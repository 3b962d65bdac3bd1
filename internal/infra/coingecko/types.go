package coingecko

// marketEntry mirrors one element of the /coins/markets response.
type marketEntry struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Symbol         string   `json:"symbol"`
	Image          string   `json:"image"`
	CurrentPrice   float64  `json:"current_price"`
	MarketCap      float64  `json:"market_cap"`
	MarketCapRank  int      `json:"market_cap_rank"`
	High24h        float64  `json:"high_24h"`
	Low24h         float64  `json:"low_24h"`
	PriceChange24h *float64 `json:"price_change_percentage_24h"`
	PriceChange7d  *float64 `json:"price_change_percentage_7d_in_currency"`
	Sparkline7d    *struct {
		Price []float64 `json:"price"`
	} `json:"sparkline_in_7d"`
}

// marketChartResponse mirrors the /coins/{id}/market_chart response.
// Each prices element is a [timestamp_ms, price] pair.
type marketChartResponse struct {
	Prices [][2]float64 `json:"prices"`
}

// apiError mirrors CoinGecko's error envelope, e.g. on rate limiting.
type apiError struct {
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
}
