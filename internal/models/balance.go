package models

// Balances is the pair of cash scalars the projections run on.
type Balances struct {
	Pesos float64 `json:"pesos"`
	Usd   float64 `json:"usd"`
}

type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
)
