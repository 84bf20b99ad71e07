package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// SyncState is the device-level synchronisation status returned by
// GET /sync/status.
type SyncState struct {
	DeviceID        string     `json:"device_id"`
	DriveConnected  bool       `json:"drive_connected"`
	LastPushAt      *Timestamp `json:"last_push_at"`
	LastPullAt      *Timestamp `json:"last_pull_at"`
	LastSyncHash    string     `json:"last_sync_hash,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
	DriveLastBackup string     `json:"drive_last_backup,omitempty"`
}

// Conflict describes local and remote snapshots that diverged since the
// last successful synchronisation. Conflicts are produced only by a pull.
type Conflict struct {
	Type         string `json:"type"`
	Message      string `json:"message"`
	LocalHash    string `json:"local_hash,omitempty"`
	LastSyncHash string `json:"last_sync_hash,omitempty"`
}

// ConflictList is the data payload of GET /sync/conflicts.
type ConflictList struct {
	Conflicts []Conflict `json:"conflicts"`
	Count     int        `json:"count"`
}

// Conflict types.
const (
	ConflictTypeVaultModified    = "vault_modified"
	ConflictTypeDivergentHistory = "divergent_history"
)

// ResolveStrategy selects how a pending conflict is settled.
type ResolveStrategy string

const (
	// StrategyKeepLocal keeps the local snapshot and marks it as the new
	// synchronisation base.
	StrategyKeepLocal ResolveStrategy = "keep_local"
	// StrategyUseRemote replaces the local snapshot with the remote one.
	// Local changes since the last sync are lost.
	StrategyUseRemote ResolveStrategy = "use_remote"
	// StrategyMerge asks the backend to merge both snapshots.
	StrategyMerge ResolveStrategy = "merge"
)

// Valid reports whether s is a known strategy.
func (s ResolveStrategy) Valid() bool {
	switch s {
	case StrategyKeepLocal, StrategyUseRemote, StrategyMerge:
		return true
	default:
		return false
	}
}

// Destructive reports whether the strategy discards local data.
func (s ResolveStrategy) Destructive() bool {
	return s == StrategyUseRemote
}

// ResolveRequest is the body of POST /sync/conflicts/resolve.
type ResolveRequest struct {
	Strategy ResolveStrategy `json:"strategy"`
}

// Timestamp is a point in time as the backend renders it: ISO-8601 with
// or without a zone offset. A missing offset is read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// UnmarshalJSON accepts null, an empty string, or one of timestampLayouts.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("unsupported timestamp %q", raw)
}

// MarshalJSON renders the time in RFC 3339 with nanoseconds.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
