package models

import (
	"time"
)

// Profile is the identity returned by the Google userinfo endpoint.
type Profile struct {
	Name       string `firestore:"name" json:"name"`
	Email      string `firestore:"email" json:"email"`
	PictureURL string `firestore:"pictureUrl" json:"pictureUrl"`
}

// SyncState is the coordinator's lifecycle position.
type SyncState string

const (
	SyncUnauthenticated SyncState = "unauthenticated"
	SyncBootstrapping   SyncState = "bootstrapping"
	SyncSynced          SyncState = "synced"
	SyncError           SyncState = "error"
)

// Session binds a Google credential to the external store handle for the
// lifetime of one sign-in. The credential is sealed before it touches disk.
type Session struct {
	Profile       Profile   `firestore:"profile" json:"profile"`
	SpreadsheetID string    `firestore:"spreadsheetId" json:"spreadsheetId,omitempty"`
	SealedToken   string    `firestore:"sealedToken" json:"-"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
}
