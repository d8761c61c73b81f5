package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nostrgamer/bitcoinbudget/internal/kv"
	"github.com/nostrgamer/bitcoinbudget/internal/vault"
)

const verifierRecordID = "vault-verifier"

// ErrVaultExists indicates InitVault was called against an already
// initialized database.
var ErrVaultExists = errors.New("vault already initialized")

// ErrVaultNotInitialized indicates OpenSession was called before InitVault.
var ErrVaultNotInitialized = errors.New("vault not initialized")

// InitVault writes the password verifier record for a fresh database.
func InitVault(ctx context.Context, s kv.Store, password string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(password, "password"); err != nil {
		return err
	}
	if _, err := s.Get(ctx, StoreMeta, verifierRecordID); err == nil {
		return ErrVaultExists
	} else if !errors.Is(err, kv.ErrNotFound) {
		return err
	}

	verifier, err := vault.NewVerifier(password)
	if err != nil {
		return fmt.Errorf("failed to create verifier: %w", err)
	}
	payload, err := json.Marshal(verifier)
	if err != nil {
		return fmt.Errorf("failed to serialize verifier: %w", err)
	}
	return s.Add(ctx, StoreMeta, kv.Record{ID: verifierRecordID, Payload: payload})
}

// OpenSession checks the password against the stored verifier and returns a
// live vault session. Wrong passwords surface as vault.ErrInvalidPassword.
func OpenSession(ctx context.Context, s kv.Store, password string) (*vault.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	rec, err := s.Get(ctx, StoreMeta, verifierRecordID)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrVaultNotInitialized
	}
	if err != nil {
		return nil, err
	}

	var verifier vault.Envelope
	if err := json.Unmarshal(rec.Payload, &verifier); err != nil {
		return nil, fmt.Errorf("failed to parse verifier: %w", err)
	}
	return vault.Open(password, &verifier)
}
