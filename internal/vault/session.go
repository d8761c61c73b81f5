package vault

import "errors"

// ErrSessionClosed indicates use of a session after Close.
var ErrSessionClosed = errors.New("vault session is closed")

// verifierPlaintext is the known content of the verifier record written at
// init time; decrypting it proves the password without a trial decrypt of
// real data.
const verifierPlaintext = "bitcoinbudget-vault-v1"

// Session carries the active credential through every store that needs it.
// It is acquired once at unlock and passed explicitly; there is no implicit
// process-wide password. Close drops the credential; all later operations
// fail with ErrSessionClosed.
type Session struct {
	password string
	open     bool
}

// NewVerifier produces the envelope a fresh database stores so later unlocks
// can check the password.
func NewVerifier(password string) (*Envelope, error) {
	return Encrypt([]byte(verifierPlaintext), password)
}

// Open validates the password against the stored verifier and returns a live
// session. A wrong password surfaces as ErrInvalidPassword.
func Open(password string, verifier *Envelope) (*Session, error) {
	plaintext, err := Decrypt(verifier, password)
	if err != nil {
		return nil, err
	}
	if string(plaintext) != verifierPlaintext {
		return nil, ErrInvalidPassword
	}
	return &Session{password: password, open: true}, nil
}

// Encrypt seals a record under the session credential.
func (s *Session) Encrypt(plaintext []byte) (*Envelope, error) {
	if !s.open {
		return nil, ErrSessionClosed
	}
	return Encrypt(plaintext, s.password)
}

// Decrypt opens a record sealed under the session credential.
func (s *Session) Decrypt(env *Envelope) ([]byte, error) {
	if !s.open {
		return nil, ErrSessionClosed
	}
	return Decrypt(env, s.password)
}

// Close drops the credential. Safe to call more than once.
func (s *Session) Close() {
	s.password = ""
	s.open = false
}
