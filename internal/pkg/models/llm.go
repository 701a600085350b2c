package models

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Hint is a free-text evidence value produced by the semantic extractor.
// The extractor does not guarantee a shape: a field may arrive as a single
// string, a list of strings, or be missing entirely.
type Hint []string

func (h *Hint) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*h = nil
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*h = Hint{v}
		return nil
	}
	if data[0] == '[' {
		var vs []string
		if err := json.Unmarshal(data, &vs); err != nil {
			return err
		}
		*h = Hint(vs)
		return nil
	}
	// Maps of strings occur for documentation-style fields; values only,
	// sorted so the result is deterministic.
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	vals := make([]string, 0, len(m))
	for _, v := range m {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	*h = Hint(vals)
	return nil
}

// Values returns the trimmed, non-empty entries of the hint.
func (h Hint) Values() []string {
	var out []string
	for _, v := range h {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Present reports whether the hint carries any usable text.
func (h Hint) Present() bool {
	return len(h.Values()) > 0
}

// LLMAnalysis is the semantic extraction payload of one page. Every field
// is optional; the extractor fills only what it found in the page text.
type LLMAnalysis struct {
	ProjectTitle             Hint `json:"project_title,omitempty"`
	Institution              Hint `json:"institution,omitempty"`
	RolesResponsibilities    Hint `json:"roles_responsibilities,omitempty"`
	FundingInformation       Hint `json:"funding_information,omitempty"`
	ContinuationStrategy     Hint `json:"continuation_strategy,omitempty"`
	ContactInfo              Hint `json:"contact_info,omitempty"`
	Community                Hint `json:"community,omitempty"`
	Documentation            Hint `json:"documentation,omitempty"`
	License                  Hint `json:"license,omitempty"`
	OpenSourceHint           Hint `json:"open_source_hint,omitempty"`
	IsolationHint            Hint `json:"isolation_hint,omitempty"`
	StaticizationHint        Hint `json:"staticization_hint,omitempty"`
	StructuredMetadataHint   Hint `json:"structured_metadata_hint,omitempty"`
	NormdataHint             Hint `json:"normdata_hint,omitempty"`
	TEIHint                  Hint `json:"tei_hint,omitempty"`
	APIHint                  Hint `json:"api_hint,omitempty"`
	DownloadsHint            Hint `json:"downloads_hint,omitempty"`
	RepositoriesHint         Hint `json:"repositories_hint,omitempty"`
	PersistentIdentifierHint Hint `json:"persistent_identifier_hint,omitempty"`
}

// Fields maps every extractor field name to its values, in a fixed order
// matching the JSON field names. Used by the aggregator to build the
// site-wide semantic payload without reflecting over the struct.
func (l *LLMAnalysis) Fields() []NamedHint {
	if l == nil {
		return nil
	}
	return []NamedHint{
		{"project_title", l.ProjectTitle},
		{"institution", l.Institution},
		{"roles_responsibilities", l.RolesResponsibilities},
		{"funding_information", l.FundingInformation},
		{"continuation_strategy", l.ContinuationStrategy},
		{"contact_info", l.ContactInfo},
		{"community", l.Community},
		{"documentation", l.Documentation},
		{"license", l.License},
		{"open_source_hint", l.OpenSourceHint},
		{"isolation_hint", l.IsolationHint},
		{"staticization_hint", l.StaticizationHint},
		{"structured_metadata_hint", l.StructuredMetadataHint},
		{"normdata_hint", l.NormdataHint},
		{"tei_hint", l.TEIHint},
		{"api_hint", l.APIHint},
		{"downloads_hint", l.DownloadsHint},
		{"repositories_hint", l.RepositoriesHint},
		{"persistent_identifier_hint", l.PersistentIdentifierHint},
	}
}

// NamedHint pairs a semantic field name with its values.
type NamedHint struct {
	Name string
	Hint Hint
}
