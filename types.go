package main

// InspectReport describes a backup or export file without decrypting it.
type InspectReport struct {
	Path         string `json:"path"`
	Size         int    `json:"size"`
	Format       string `json:"format"`
	Version      string `json:"version,omitempty"`
	NeedsUpgrade bool   `json:"needs_upgrade"`
	Permissions  string `json:"permissions"`
}
