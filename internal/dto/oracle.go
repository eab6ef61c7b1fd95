package dto

import (
	"github.com/Fersca/YieldMaster/internal/models"
)

// PublicRatesResult is the rate oracle's answer. A malformed model response
// yields Rates == empty, never an error.
type PublicRatesResult struct {
	Rates     []models.RateSuggestion `json:"rates"`
	Sources   []models.SourceCitation `json:"sources"`
	Timestamp string                  `json:"timestamp"`
}

// DiscountsResult is the discount oracle's answer, same fallback contract.
type DiscountsResult struct {
	Promotions []models.Promotion      `json:"promotions"`
	Sources    []models.SourceCitation `json:"sources"`
	Timestamp  string                  `json:"timestamp"`
}

// CaptureScanResult is the OCR oracle's answer for one statement photo.
type CaptureScanResult struct {
	Amount   float64 `json:"amount"`
	Detected bool    `json:"detected"`
}
