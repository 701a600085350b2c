package models

// InfraScan is the raw host-infrastructure payload for the analyzed site.
// The shape is provider-defined and arbitrarily nested; the scoring side
// only searches it as flattened text.
type InfraScan map[string]any

// InfraOverview is the condensed host summary shown in the report.
type InfraOverview struct {
	Country     string `json:"country,omitempty"`
	CountryName string `json:"country_name,omitempty"`
	Org         string `json:"org,omitempty"`
}

// Technology is one fingerprinted technology of the start page. OSS is a
// three-state flag: the fingerprinter may not know.
type Technology struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Category    string `json:"category,omitempty"`
	OSS         *bool  `json:"oss,omitempty"`
	Description string `json:"description,omitempty"`
}
