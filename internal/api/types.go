package api

import "github.com/credatlas/credatlas/internal/dataset"

// WelcomeResponse is the payload for GET /.
type WelcomeResponse struct {
	Message      string    `json:"message"`
	TotalRecords int       `json:"total_records"`
	Endpoints    Endpoints `json:"endpoints"`
}

// Endpoints is the directory of available routes in the welcome payload.
type Endpoints struct {
	AllData    string `json:"all_data"`
	SearchByID string `json:"search_by_id"`
	Stats      string `json:"stats"`
	Metrics    string `json:"metrics"`
}

// RecordsResponse is the payload for GET /records. Size is the count of
// records actually returned in Data, not the requested page size.
type RecordsResponse struct {
	Page          int              `json:"page"`
	Size          int              `json:"size"`
	TotalFiltered int              `json:"total_filtered"`
	Data          []dataset.Record `json:"data"`
}

// InstitutionResponse is the payload for GET /records/{insid}.
type InstitutionResponse struct {
	InsID int64            `json:"insid"`
	Count int              `json:"count"`
	Data  []dataset.Record `json:"data"`
}

// StatsResponse is the payload for GET /stats.
type StatsResponse struct {
	UniqueInstitutions int   `json:"unique_institutions"`
	UniqueCredentials  int   `json:"unique_credentials"`
	CredentialLevels   []any `json:"credential_levels"`
}

// detailResponse is the JSON error body for every failure status.
type detailResponse struct {
	Detail string `json:"detail"`
}
