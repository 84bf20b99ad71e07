package models

// ExportMetadata is written as metadata.json at the root of an emergency
// export archive.
type ExportMetadata struct {
	AppName    string     `json:"app_name"`
	Version    string     `json:"version"`
	ExportedAt Timestamp  `json:"exported_at"`
	VaultState VaultState `json:"vault_state"`
	Note       string     `json:"note"`
}

// HealthData is the data payload of GET /health.
type HealthData struct {
	Status string `json:"status"`
}
