package models

import (
	"bytes"
	"encoding/json"
)

// StatusCode holds the outcome of a link check: an HTTP status code, a
// transport error string such as "ERROR [Timeout]", or nothing at all when
// the link was never checked.
type StatusCode string

// Accepts both JSON numbers and strings, since upstream checkers report
// regular HTTP codes as numbers and transport failures as text.
func (s *StatusCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = StatusCode(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = StatusCode(n.String())
	return nil
}

// LinkFact is one checked link on a page, optionally tagged with a
// persistent identifier type (doi, handle, ark, urn, orcid, arxiv, uri).
type LinkFact struct {
	URL            string     `json:"url"`
	Status         StatusCode `json:"status"`
	PersistentType string     `json:"persistent_type,omitempty"`
}

// XMLEntry is one XML resource found during the XML/TEI scan.
type XMLEntry struct {
	URL   string `json:"url"`
	IsTEI bool   `json:"is_tei"`
}

// APIInterface is one detected machine interface (OAI-PMH, IIIF, REST...).
type APIInterface struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// DownloadItem is one downloadable artifact (XML, ZIP, CSV...).
type DownloadItem struct {
	URL  string `json:"url"`
	Kind string `json:"kind,omitempty"`
}

// Downloads groups the download findings of a single page.
type Downloads struct {
	Count int            `json:"count"`
	Items []DownloadItem `json:"items"`
}

// Vocabulary names a controlled vocabulary referenced in structured
// metadata. Upstream checkers emit either a bare string or an object
// carrying a source/type field.
type Vocabulary struct {
	Name string
}

func (v *Vocabulary) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		v.Name = ""
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &v.Name)
	}
	var obj struct {
		Source string `json:"source"`
		Type   string `json:"type"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Source != "" {
		v.Name = obj.Source
	} else {
		v.Name = obj.Type
	}
	return nil
}

func (v Vocabulary) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Name)
}

// StructuredMetadata is the per-page verdict of the structured metadata
// check (FAIR F2A/F2B).
type StructuredMetadata struct {
	HasStructuredMetadata  bool         `json:"has_structured_metadata"`
	ControlledVocabularies []Vocabulary `json:"controlled_vocabularies"`
	RDFTriples             int          `json:"rdf_triples"`
	Score                  *float64     `json:"score"`
}

// NormdataItem is one authority-data reference (GND, VIAF, Wikidata...).
type NormdataItem struct {
	Source string `json:"source"`
	URL    string `json:"url"`
}

// Normdata groups authority-data findings of a single page.
type Normdata struct {
	Items []NormdataItem `json:"items"`
}

// RepoLicense is the license attached to a repository. Hosts disagree on
// the shape: GitHub sends an object, GitLab sends a plain string.
type RepoLicense struct {
	Name string
}

func (l *RepoLicense) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		l.Name = ""
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &l.Name)
	}
	var obj struct {
		Name   string `json:"name"`
		SPDXID string `json:"spdx_id"`
		Key    string `json:"key"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	switch {
	case obj.Name != "":
		l.Name = obj.Name
	case obj.SPDXID != "":
		l.Name = obj.SPDXID
	default:
		l.Name = obj.Key
	}
	return nil
}

func (l RepoLicense) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Name)
}

// Repo is provider-shaped repository metadata from GitHub or GitLab.
type Repo struct {
	Name    string       `json:"name,omitempty"`
	URL     string       `json:"url,omitempty"`
	HTMLURL string       `json:"html_url,omitempty"`
	WebURL  string       `json:"web_url,omitempty"`
	License *RepoLicense `json:"license,omitempty"`
}

// CanonicalURL is the dedup key for a repository: the host's browser URL
// wins over the generic API URL.
func (r Repo) CanonicalURL() string {
	if r.HTMLURL != "" {
		return r.HTMLURL
	}
	if r.WebURL != "" {
		return r.WebURL
	}
	return r.URL
}

// FAIRResult is the outcome of an external FAIR-checker run for one page.
type FAIRResult struct {
	OK           bool     `json:"ok"`
	ScoreOverall *float64 `json:"score_overall"`
	Error        string   `json:"error,omitempty"`
}

// PageRecord is one crawled page with all enrichment the upstream
// analyzers attached to it. The scoring core reads it, never writes it.
type PageRecord struct {
	URL                string              `json:"url"`
	Title              string              `json:"title,omitempty"`
	RawHTML            string              `json:"raw_html,omitempty"`
	InternalLinks      []LinkFact          `json:"internal_links_all"`
	ExternalLinks      []LinkFact          `json:"external_links_all"`
	XMLScan            []XMLEntry          `json:"xml_scan"`
	XMLCandidates      []string            `json:"xml_candidates,omitempty"`
	APIInterfaces      []APIInterface      `json:"api_interfaces"`
	Downloads          *Downloads          `json:"downloads,omitempty"`
	StructuredMetadata *StructuredMetadata `json:"structured_metadata,omitempty"`
	Normdata           *Normdata           `json:"normdata,omitempty"`
	GitHubRepos        []Repo              `json:"github_repos"`
	GitLabRepos        []Repo              `json:"gitlab_repos"`
	FAIRChecker        *FAIRResult         `json:"fair_checker,omitempty"`
	LLM                *LLMAnalysis        `json:"llm_analysis,omitempty"`
}

// AllLinks returns internal and external link facts in page order.
func (p *PageRecord) AllLinks() []LinkFact {
	out := make([]LinkFact, 0, len(p.InternalLinks)+len(p.ExternalLinks))
	out = append(out, p.InternalLinks...)
	out = append(out, p.ExternalLinks...)
	return out
}
