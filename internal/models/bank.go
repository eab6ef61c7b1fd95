package models

// Bank provenance values. A manual create/edit always forces SourceLocal;
// applying a rate suggestion always forces SourcePublic.
const (
	SourceLocal  = "local"
	SourcePublic = "public"
)

// Bank is one institution's current offer. Rates are nominal annual
// percentages (TNA): 35 means 35%/year.
type Bank struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	RatePesos float64 `json:"ratePesos"`
	RateUsd   float64 `json:"rateUsd"`
	Source    string  `json:"source"`
	// LastUpdated is a display timestamp, set only when Source becomes public.
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// SortKey values accepted by the registry's sorted view.
const (
	SortByName      = "name"
	SortByRatePesos = "ratePesos"
	SortByRateUsd   = "rateUsd"
)

type SortSpec struct {
	Key       string `json:"key"`
	Direction string `json:"direction"` // "asc" | "desc"
}

// Selection holds weak references into the registry: ids may dangle after a
// delete and resolve to "none" on lookup.
type Selection struct {
	SelectedBankID string `json:"selectedBankId,omitempty"`
	CurrentBankID  string `json:"currentBankId,omitempty"`
}
