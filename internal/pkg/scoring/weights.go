package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights maps indicator keys to their share of the total score. Keys
// missing from the map count as weight 0 and are excluded.
type Weights map[string]float64

// Indicator keys feeding the total. FAIR is reported alongside but never
// weighted in.
const (
	KeyIsolation     = "isolation"
	KeyStaticization = "staticization"
	KeyOpenClosed    = "wappalyzer_open_closed"
	KeyLinks         = "link_functionality"

	KeyInstitution  = "institution_present"
	KeyRoles        = "roles_responsibilities_present"
	KeyFunding      = "funding_present"
	KeyContinuation = "continuation_archiving_preservation_present"
	KeyContact      = "contact_info_present"
	KeyCommunity    = "community_present"
	KeyDocs         = "pi_documentation"
	KeyRepos        = "repos_oss_practice"
	KeyOpenLicense  = "open_license"

	KeyTEIXML        = "tei_xml_presence"
	KeyMetadata      = "f2ab_combined"
	KeyNormdata      = "normdata_presence"
	KeyAPI           = "api_presence"
	KeyDownloads     = "downloads_presence"
	KeyPersistentIDs = "persistent_ids"

	KeyFAIROverall = "fair_overall"
)

// expectedKeys is the full indicator set the report frontend relies on,
// including the unweighted FAIR entry.
var expectedKeys = []string{
	KeyInstitution,
	KeyRoles,
	KeyFunding,
	KeyContinuation,
	KeyContact,
	KeyCommunity,

	KeyTEIXML,
	KeyMetadata,
	KeyNormdata,
	KeyAPI,
	KeyDocs,
	KeyRepos,
	KeyOpenClosed,
	KeyDownloads,
	KeyOpenLicense,
	KeyIsolation,
	KeyStaticization,
	KeyLinks,
	KeyPersistentIDs,

	KeyFAIROverall,
}

// DefaultWeights treats every indicator equally. Adjust individual
// factors through a weights file to prioritize indicator groups without
// touching the scoring functions.
func DefaultWeights() Weights {
	w := Weights{}
	for _, key := range expectedKeys {
		if key == KeyFAIROverall {
			continue
		}
		w[key] = 1.0
	}
	return w
}

// LoadWeights reads a YAML weights file and overlays it on the defaults,
// so a file only needs to list the keys it changes.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	if path == "" {
		return w, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weights file: %w", err)
	}
	var overrides map[string]float64
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing weights file %s: %w", path, err)
	}
	for key, value := range overrides {
		w[key] = value
	}
	return w, nil
}
