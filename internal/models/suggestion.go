package models

// RateSuggestion is one externally-sourced bank rate, as returned by the
// grounded rate oracle. Only Name is guaranteed present.
type RateSuggestion struct {
	Name      string  `json:"name"`
	RatePesos float64 `json:"ratePesos"`
	RateUsd   float64 `json:"rateUsd"`
}

// SourceCitation points at a web source the oracle grounded its answer on.
type SourceCitation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Benefit is a single merchant discount inside a bank promotion.
type Benefit struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Discount    string `json:"discount,omitempty"`
}

// Promotion groups the day's benefits for one bank.
type Promotion struct {
	BankName string    `json:"bankName"`
	Benefits []Benefit `json:"benefits"`
}
