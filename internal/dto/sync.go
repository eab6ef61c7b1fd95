package dto

import (
	"github.com/Fersca/YieldMaster/internal/models"
)

// SyncStatus is the coordinator's externally visible state.
type SyncStatus struct {
	State         models.SyncState `json:"state"`
	SpreadsheetID string           `json:"spreadsheetId,omitempty"`
	LastError     string           `json:"lastError,omitempty"`
}

// LoginResult is what a successful sign-in returns to the caller.
type LoginResult struct {
	Profile models.Profile `json:"profile"`
	Sync    SyncStatus     `json:"sync"`
}
