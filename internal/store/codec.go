package store

import (
	"encoding/json"
	"fmt"

	"github.com/nostrgamer/bitcoinbudget/internal/kv"
	"github.com/nostrgamer/bitcoinbudget/internal/vault"
)

// seal serializes an entity and encrypts it into a kv record.
func seal(sess *vault.Session, id string, v any, indexes map[string]string) (kv.Record, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return kv.Record{}, fmt.Errorf("failed to serialize record: %w", err)
	}
	env, err := sess.Encrypt(plaintext)
	if err != nil {
		return kv.Record{}, fmt.Errorf("failed to encrypt record: %w", err)
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return kv.Record{}, fmt.Errorf("failed to serialize envelope: %w", err)
	}
	return kv.Record{ID: id, Payload: payload, Indexes: indexes}, nil
}

// open decrypts a kv record into out.
func open(sess *vault.Session, rec *kv.Record, out any) error {
	var env vault.Envelope
	if err := json.Unmarshal(rec.Payload, &env); err != nil {
		return fmt.Errorf("failed to parse envelope for %s: %w", rec.ID, err)
	}
	plaintext, err := sess.Decrypt(&env)
	if err != nil {
		return fmt.Errorf("failed to decrypt record %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("failed to parse record %s: %w", rec.ID, err)
	}
	return nil
}
