package domain

// Currency describes one supported display currency.
type Currency struct {
	Code   string `json:"code"`   // provider code, e.g. "usd"
	Symbol string `json:"symbol"` // display symbol, e.g. "$"
	Label  string `json:"label"`  // display label, e.g. "USD"
}

// DefaultCurrency is the active currency before the user picks one.
const DefaultCurrency = "usd"

// Currencies lists the supported display currencies in menu order.
var Currencies = []Currency{
	{Code: "usd", Symbol: "$", Label: "USD"},
	{Code: "eur", Symbol: "€", Label: "EUR"},
	{Code: "inr", Symbol: "₹", Label: "INR"},
	{Code: "gbp", Symbol: "£", Label: "GBP"},
	{Code: "jpy", Symbol: "¥", Label: "JPY"},
	{Code: "btc", Symbol: "₿", Label: "BTC"},
	{Code: "eth", Symbol: "Ξ", Label: "ETH"},
}

// CurrencyByCode looks up a supported currency by its provider code.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}
