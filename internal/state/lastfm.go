package state

import (
	"encoding/json"
	"fmt"
	"time"
)

const lastfmSessionKey = "lastfm-session"

// LastfmSession represents a stored Last.fm session.
type LastfmSession struct {
	Username   string    `json:"username"`
	SessionKey string    `json:"session_key"`
	LinkedAt   time.Time `json:"linked_at"`
}

// GetLastfmSession returns the stored Last.fm session, or nil if not linked.
func GetLastfmSession(kv Interface) (*LastfmSession, error) {
	raw, ok, err := kv.Get(lastfmSessionKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil //nolint:nilnil // nil session means not linked, not an error
	}
	var s LastfmSession
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decode lastfm session: %w", err)
	}
	return &s, nil
}

// SaveLastfmSession stores the Last.fm session after successful authentication.
func SaveLastfmSession(kv Interface, username, sessionKey string) error {
	data, err := json.Marshal(LastfmSession{
		Username:   username,
		SessionKey: sessionKey,
		LinkedAt:   time.Now().Truncate(time.Second),
	})
	if err != nil {
		return err
	}
	return kv.Set(lastfmSessionKey, string(data))
}

// DeleteLastfmSession removes the stored Last.fm session (unlink).
func DeleteLastfmSession(kv Interface) error {
	return kv.Delete(lastfmSessionKey)
}
