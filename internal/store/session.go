package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Fersca/YieldMaster/internal/models"
)

// sealer seals the Google credential before it is written to Firestore.
type sealer interface {
	Seal(ctx context.Context, plaintext string) (string, error)
	Open(ctx context.Context, ciphertext string) (string, error)
}

// sessionStore caches the active session so a process restart does not force
// a fresh sign-in. Single-user service, single well-known document.
type sessionStore struct {
	client *firestore.Client
	seal   sealer
}

func NewSessionStore(client *firestore.Client, seal sealer) *sessionStore {
	return &sessionStore{client: client, seal: seal}
}

func (s *sessionStore) doc() *firestore.DocumentRef {
	return s.client.Collection("sessions").Doc("current")
}

func (s *sessionStore) Save(ctx context.Context, profile models.Profile, token, spreadsheetID string) error {
	sealed, err := s.seal.Seal(ctx, token)
	if err != nil {
		return err
	}
	session := models.Session{
		Profile:       profile,
		SpreadsheetID: spreadsheetID,
		SealedToken:   sealed,
		CreatedAt:     time.Now(),
	}
	_, err = s.doc().Set(ctx, session)
	return err
}

func (s *sessionStore) SetSpreadsheetID(ctx context.Context, spreadsheetID string) error {
	_, err := s.doc().Update(ctx, []firestore.Update{
		{Path: "spreadsheetId", Value: spreadsheetID},
	})
	return err
}

// Load returns the cached session and the unsealed credential, or (nil, "")
// when no session is cached.
func (s *sessionStore) Load(ctx context.Context) (*models.Session, string, error) {
	doc, err := s.doc().Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	var session models.Session
	if err := doc.DataTo(&session); err != nil {
		return nil, "", err
	}
	token, err := s.seal.Open(ctx, session.SealedToken)
	if err != nil {
		return nil, "", err
	}
	return &session, token, nil
}

func (s *sessionStore) Clear(ctx context.Context) error {
	_, err := s.doc().Delete(ctx)
	return err
}
