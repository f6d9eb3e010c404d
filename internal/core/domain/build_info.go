package domain

import "time"

// PackageRecord is stored for every package identity that has been built.
type PackageRecord struct {
	Reference  string      `json:"reference,omitzero"`
	IdentityID string      `json:"identity_id,omitzero"`
	Identity   IdentityKey `json:"identity,omitzero"`
	Flags      []string    `json:"flags,omitzero"`
	Timestamp  time.Time   `json:"timestamp,omitzero"`
}
