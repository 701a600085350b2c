package models

// AnalysisRequest is one queued analysis job: the site to examine and how
// many pages of it to include.
type AnalysisRequest struct {
	URL      string `json:"url"`
	MaxPages int    `json:"max_pages"`
}
