package auth

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// TokenSlot holds the bearer token on its own.
	TokenSlot = "swms_token"
	// UserSlot holds the full session record as JSON.
	UserSlot = "swms_user"
)

// Slots is the durable key/value medium a Store writes to. *shared.Session
// satisfies it, so the record lives in the cookie-keyed Redis session.
type Slots interface {
	Get(key string) string
	Set(key, value string)
	Delete(key string)
}

// Store persists a single Session across requests.
type Store struct {
	slots Slots
}

// NewStore wraps the given slots.
func NewStore(slots Slots) *Store {
	return &Store{slots: slots}
}

// Save persists sess, overwriting any previous record.
func (s *Store) Save(sess Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("auth: encode session: %w", err)
	}
	s.slots.Set(TokenSlot, sess.Token)
	s.slots.Set(UserSlot, string(payload))
	return nil
}

// Load returns the persisted session. Missing or malformed data yields false.
func (s *Store) Load() (Session, bool) {
	raw := s.slots.Get(UserSlot)
	if strings.TrimSpace(raw) == "" {
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, false
	}
	if sess.Token == "" {
		return Session{}, false
	}
	return sess, true
}

// Clear removes both slots. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.slots.Delete(TokenSlot)
	s.slots.Delete(UserSlot)
}
