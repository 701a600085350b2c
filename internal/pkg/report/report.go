// Package report turns the site aggregate and scoring outcome into the
// view model rendered by the frontend: grouped indicator rows, readable
// labels, a strengths/weaknesses digest and a short textual conclusion.
package report

import (
	"net/url"
	"sort"
	"strings"

	"edanalyzer/internal/pkg/aggregate"
	"edanalyzer/internal/pkg/scoring"
)

// sectionOrder fixes the display order of the indicator groups.
var sectionOrder = []string{
	"Institution and governance",
	"Standardization and interoperability",
	"Openness of code, data and software",
	"Technical robustness and long-term availability",
	"FAIR (separate)",
}

// fieldsUI groups the indicator keys per display section.
var fieldsUI = map[string][]string{
	"Institution and governance": {
		scoring.KeyInstitution,
		scoring.KeyRoles,
		scoring.KeyFunding,
		scoring.KeyContinuation,
		scoring.KeyContact,
		scoring.KeyCommunity,
	},
	"Standardization and interoperability": {
		scoring.KeyTEIXML,
		scoring.KeyMetadata,
		scoring.KeyNormdata,
		scoring.KeyAPI,
		scoring.KeyDocs,
	},
	"Openness of code, data and software": {
		scoring.KeyRepos,
		scoring.KeyOpenClosed,
		scoring.KeyDownloads,
		scoring.KeyOpenLicense,
	},
	"Technical robustness and long-term availability": {
		scoring.KeyIsolation,
		scoring.KeyStaticization,
		scoring.KeyLinks,
		scoring.KeyPersistentIDs,
	},
	"FAIR (separate)": {
		scoring.KeyFAIROverall,
	},
}

// indicatorLabels maps indicator keys to their display names.
var indicatorLabels = map[string]string{
	scoring.KeyOpenClosed:    "Open source technologies",
	scoring.KeyFAIROverall:   "FAIR checker",
	scoring.KeyIsolation:     "Isolation",
	scoring.KeyStaticization: "Staticization",
	scoring.KeyLinks:         "Link functionality",
	scoring.KeyTEIXML:        "TEI presence",
	scoring.KeyDownloads:     "Downloads available",
	scoring.KeyMetadata:      "Structured metadata & vocabularies",
	scoring.KeyNormdata:      "Authority data links",
	scoring.KeyRepos:         "Repository available",
	scoring.KeyInstitution:   "Institution present",
	scoring.KeyRoles:         "Roles & responsibilities",
	scoring.KeyFunding:       "Funding stated",
	scoring.KeyContinuation:  "Continuation/preservation strategy",
	scoring.KeyContact:       "Contact information",
	scoring.KeyCommunity:     "Community / participation",
	scoring.KeyDocs:          "Documentation",
	scoring.KeyAPI:           "Technical API",
	scoring.KeyOpenLicense:   "Open license",
	scoring.KeyPersistentIDs: "Persistent identifiers",
}

// Item is one indicator row in the report.
type Item struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Verdict  string `json:"verdict"`
	Evidence string `json:"evidence"`
	Score    *int   `json:"score"`
}

// Section groups indicator rows under one heading.
type Section struct {
	Section string `json:"section"`
	Items   []Item `json:"items"`
}

// ViewModel is the full report as rendered by the frontend.
type ViewModel struct {
	ProjectName    string                 `json:"project_name"`
	ValidPages     int                    `json:"valid_pages"`
	HostingCountry string                 `json:"hosting_country"`
	HostingOrg     string                 `json:"hosting_org"`
	Rows           []Section              `json:"rows"`
	FAIR           scoring.IndicatorScore `json:"fair"`
	Strengths      []string               `json:"strengths"`
	Weaknesses     []string               `json:"weaknesses"`
	Conclusion     string                 `json:"conclusion"`
	Total          scoring.Total          `json:"total"`
	Labels         map[string]string      `json:"labels"`
	LLM            map[string][]string    `json:"llm_analysis_aggregated"`
	Stats          aggregate.Stats        `json:"stats"`
}

// Build assembles the view model. The conclusion field is left empty; it
// is filled in by the conclusion step afterwards.
func Build(r *aggregate.Result, outcome *scoring.Outcome) *ViewModel {
	rows := make([]Section, 0, len(sectionOrder))
	for _, section := range sectionOrder {
		keys := fieldsUI[section]
		items := make([]Item, 0, len(keys))
		for _, key := range keys {
			info := outcome.Global[key]
			verdict := info.Verdict
			if verdict == "" {
				verdict = "–"
			}
			label := indicatorLabels[key]
			if label == "" {
				label = key
			}
			items = append(items, Item{
				Key:      key,
				Label:    label,
				Verdict:  verdict,
				Evidence: info.Evidence,
				Score:    info.Score,
			})
		}
		rows = append(rows, Section{Section: section, Items: items})
	}

	strengths, weaknesses := buildStrengthsAndWeaknesses(outcome)

	return &ViewModel{
		ProjectName:    extractProjectName(r),
		ValidPages:     len(r.Pages),
		HostingCountry: hostingValue(r.InfraOverview.CountryName, r.InfraOverview.Country),
		HostingOrg:     hostingValue(r.InfraOverview.Org),
		Rows:           rows,
		FAIR:           outcome.Global[scoring.KeyFAIROverall],
		Strengths:      strengths,
		Weaknesses:     weaknesses,
		Total:          outcome.Total,
		Labels:         indicatorLabels,
		LLM:            r.LLM,
		Stats:          r.Stats,
	}
}

func hostingValue(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return "–"
}

func cleanTitle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// extractProjectName prefers the semantic project title, then the page
// title, then the host name of the start page.
func extractProjectName(r *aggregate.Result) string {
	if len(r.Pages) == 0 {
		return "Unnamed project"
	}
	first := r.Pages[0]
	if first.LLM != nil {
		if vals := first.LLM.ProjectTitle.Values(); len(vals) > 0 {
			return cleanTitle(vals[0])
		}
	}
	if strings.TrimSpace(first.Title) != "" {
		return cleanTitle(first.Title)
	}
	if u, err := url.Parse(first.URL); err == nil && u.Host != "" {
		return u.Host
	}
	return "Unnamed project"
}

// PrettyJoin renders aggregated semantic values for display, tagged as
// LLM-derived. Empty input renders as a dash.
func PrettyJoin(values []string) string {
	var kept []string
	for _, v := range values {
		if c := cleanTitle(v); c != "" {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return "–"
	}
	return strings.Join(kept, " // ") + " (LLM)"
}

// buildStrengthsAndWeaknesses derives the report digest from the
// indicator scores. An indicator can contribute to both lists, e.g.
// structured metadata without provable vocabularies.
func buildStrengthsAndWeaknesses(outcome *scoring.Outcome) (strengths, weaknesses []string) {
	s := func(key string) int {
		if score := outcome.Global[key].Score; score != nil {
			return *score
		}
		return -1
	}

	// Technical robustness
	if s(scoring.KeyIsolation) > 0 {
		strengths = append(strengths, "Evidence of isolating runtime environments found")
	} else {
		weaknesses = append(weaknesses, "No evidence of isolating runtime environments found")
	}

	if s(scoring.KeyStaticization) > 0 {
		strengths = append(strengths, "Evidence of staticization found")
	} else {
		weaknesses = append(weaknesses, "No evidence of staticization found")
	}

	switch lf := s(scoring.KeyLinks); {
	case lf >= 80:
		strengths = append(strengths, "Most internal links work reliably")
	case lf >= 50:
		weaknesses = append(weaknesses, "Some internal links are broken")
	case lf >= 0:
		weaknesses = append(weaknesses, "Many broken internal links")
	default:
		weaknesses = append(weaknesses, "Internal link functionality could not be assessed")
	}

	if s(scoring.KeyPersistentIDs) > 0 {
		strengths = append(strengths, "Persistent identifiers present")
	} else {
		weaknesses = append(weaknesses, "No persistent identifiers found")
	}

	// Standardization
	if s(scoring.KeyTEIXML) > 0 {
		strengths = append(strengths, "TEI-XML or structured edition data present")
	} else {
		weaknesses = append(weaknesses, "No TEI-XML files found")
	}

	switch s(scoring.KeyMetadata) {
	case 100:
		strengths = append(strengths, "Structured metadata and controlled vocabularies found")
	case 75:
		strengths = append(strengths, "Structured metadata present")
		weaknesses = append(weaknesses, "Vocabularies unclear or not provable")
	case 50:
		strengths = append(strengths, "LLM hints at structured metadata present")
		weaknesses = append(weaknesses, "No clear proof of structured vocabularies")
	default:
		weaknesses = append(weaknesses, "No evidence of structured metadata found")
	}

	if s(scoring.KeyNormdata) > 0 {
		strengths = append(strengths, "Authority data links present")
	} else {
		weaknesses = append(weaknesses, "No authority data links found")
	}

	if s(scoring.KeyAPI) > 0 {
		strengths = append(strengths, "Technical API interfaces provable")
	} else {
		weaknesses = append(weaknesses, "No technical APIs found")
	}

	if s(scoring.KeyDocs) > 0 {
		strengths = append(strengths, "Documentation present")
	} else {
		weaknesses = append(weaknesses, "No documentation found")
	}

	// Institution and governance
	if s(scoring.KeyInstitution) == 100 {
		strengths = append(strengths, "Clear institutional backing recognizable")
	} else {
		weaknesses = append(weaknesses, "Institutional backing not recognizable")
	}

	if s(scoring.KeyRoles) == 100 {
		strengths = append(strengths, "Roles and responsibilities documented")
	} else {
		weaknesses = append(weaknesses, "No roles or responsibilities recognizable")
	}

	if s(scoring.KeyFunding) == 100 {
		strengths = append(strengths, "Funding / project duration stated")
	} else {
		weaknesses = append(weaknesses, "No funding information present")
	}

	if s(scoring.KeyContinuation) == 100 {
		strengths = append(strengths, "Evidence of continuation/preservation present")
	} else {
		weaknesses = append(weaknesses, "No evidence of long-term preservation")
	}

	if s(scoring.KeyContact) == 100 {
		strengths = append(strengths, "Contact information present")
	} else {
		weaknesses = append(weaknesses, "No contact information found")
	}

	if s(scoring.KeyCommunity) == 100 {
		strengths = append(strengths, "Community participation provable")
	} else {
		weaknesses = append(weaknesses, "No community evidence found")
	}

	// Openness
	if s(scoring.KeyRepos) > 0 {
		strengths = append(strengths, "Code repository present")
	} else {
		weaknesses = append(weaknesses, "No repository found")
	}

	if s(scoring.KeyOpenClosed) > 0 {
		strengths = append(strengths, "Open source technologies provable")
	} else {
		weaknesses = append(weaknesses, "No open source technologies found")
	}

	switch s(scoring.KeyOpenLicense) {
	case 100:
		strengths = append(strengths, "Open license present")
	case 50:
		strengths = append(strengths, "Mixed license situation")
	default:
		weaknesses = append(weaknesses, "No open license")
	}

	if s(scoring.KeyDownloads) > 0 {
		strengths = append(strengths, "Downloadable data available")
	} else {
		weaknesses = append(weaknesses, "No download options present")
	}

	// FAIR checker
	switch fair := s(scoring.KeyFAIROverall); {
	case fair >= 70:
		strengths = append(strengths, "FAIR checker: high FAIR score")
	case fair >= 40:
		strengths = append(strengths, "FAIR checker: medium FAIR score")
	case fair >= 0:
		weaknesses = append(weaknesses, "FAIR checker: low FAIR score")
	default:
		weaknesses = append(weaknesses, "FAIR checker result not available")
	}

	sort.Strings(strengths)
	sort.Strings(weaknesses)
	return strengths, weaknesses
}
