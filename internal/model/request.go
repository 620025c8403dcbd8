package model

import "time"

// InternalExemptionsRequest is the upsert body received on the internal PUT
// endpoint: the external payload plus delta metadata from the upstream feed.
type InternalExemptionsRequest struct {
	ExternalData ExternalData `json:"external_data"`
	InternalData InternalData `json:"internal_data"`
}

type ExternalData struct {
	Exemptions *Exemptions `json:"exemptions,omitempty"`
}

type InternalData struct {
	DeltaAt   time.Time `json:"delta_at"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}
