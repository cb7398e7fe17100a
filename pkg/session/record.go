package session

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	recordVersion = 1
	keyPrefix     = "coreclad:session:"
)

type record struct {
	Version int       `json:"v"`
	Id      string    `json:"id"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	SavedAt time.Time `json:"saved_at"`
}

// StorageKey is where the record for a client lives.
func StorageKey(clientID string) string {
	return keyPrefix + clientID
}

func encodeRecord(id Identity, savedAt time.Time) ([]byte, error) {
	return json.Marshal(record{
		Version: recordVersion,
		Id:      id.Id,
		Email:   id.Email,
		Role:    id.Role,
		SavedAt: savedAt.UTC(),
	})
}

func decodeRecord(data []byte) (Identity, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if r.Version != recordVersion {
		return Identity{}, fmt.Errorf("%w: version %d", ErrMalformedRecord, r.Version)
	}

	id := Identity{Id: r.Id, Email: r.Email, Role: r.Role}
	if !id.Complete() {
		return Identity{}, fmt.Errorf("%w: incomplete identity", ErrMalformedRecord)
	}
	return id, nil
}
