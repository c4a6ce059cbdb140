package types

import "encoding/json"

type TransferType string

const (
	TransferResources TransferType = "resources"
	TransferRoles     TransferType = "roles"
	TransferNeeds     TransferType = "needs"
	TransferUsers     TransferType = "users"
	TransferFull      TransferType = "full"
)

type ImportRequest struct {
	Type      TransferType    `json:"type"`
	Data      json.RawMessage `json:"data"`
	Overwrite bool            `json:"overwrite"`
}

type ImportResults struct {
	Created     int      `json:"created"`
	Updated     int      `json:"updated"`
	Skipped     int      `json:"skipped"`
	Unsupported int      `json:"unsupported"`
	Errors      []string `json:"errors"`
	Details     []string `json:"details"`
}

type ImportResponse struct {
	Message    string         `json:"message"`
	Results    *ImportResults `json:"results"`
	ImportedAt string         `json:"importedAt"`
}

type FullData struct {
	Resources []*Resource `json:"resources"`
	Roles     []*Role     `json:"roles"`
	Needs     []*Need     `json:"needs"`
	Users     []*User     `json:"users"`
}

type Counts struct {
	Resources int `json:"resources"`
	Roles     int `json:"roles"`
	Needs     int `json:"needs"`
	Users     int `json:"users"`
}

// Snapshot is the export document. Count is set for single-entity exports,
// Counts for full exports.
type Snapshot struct {
	Type       TransferType `json:"type"`
	Data       any          `json:"data"`
	ExportedAt string       `json:"exportedAt"`
	Count      *int         `json:"count,omitempty"`
	Counts     *Counts      `json:"counts,omitempty"`
}
