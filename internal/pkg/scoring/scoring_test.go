package scoring

import (
	"strings"
	"testing"

	"edanalyzer/internal/pkg/aggregate"
	"edanalyzer/internal/pkg/models"
)

func boolPtr(v bool) *bool    { return &v }
func fPtr(v float64) *float64 { return &v }

func site(pages ...models.PageRecord) *aggregate.Result {
	return aggregate.Build(pages, nil, models.InfraOverview{}, nil)
}

func TestBandThresholds(t *testing.T) {
	cases := []struct {
		score    *int
		expected string
	}{
		{nil, "unknown"},
		{scorePtr(100), "sustainable"},
		{scorePtr(70), "sustainable"},
		{scorePtr(69), "partially sustainable"},
		{scorePtr(40), "partially sustainable"},
		{scorePtr(39), "not sustainable"},
		{scorePtr(0), "not sustainable"},
	}
	for _, c := range cases {
		if got := band(c.score); got != c.expected {
			t.Errorf("Expected band %q, got %q", c.expected, got)
		}
	}
}

func TestWeightedTotalRenormalizes(t *testing.T) {
	components := map[string]IndicatorScore{
		"a": {Score: scorePtr(100)},
		"b": {Score: scorePtr(50)},
		"c": {Score: nil}, // absent, must not drag the total down
	}
	weights := Weights{"a": 1.0, "b": 1.0, "c": 1.0}

	total := weightedTotal(components, weights)
	if total == nil {
		t.Fatal("Expected a total")
	}
	if *total != 75 {
		t.Errorf("Expected renormalized total 75, got %d", *total)
	}
}

func TestWeightedTotalNoUsableComponents(t *testing.T) {
	components := map[string]IndicatorScore{
		"a": {Score: nil},
		"b": {Score: scorePtr(80)},
	}
	if total := weightedTotal(components, Weights{"a": 1.0}); total != nil {
		t.Errorf("Expected nil total when no weighted component scored, got %d", *total)
	}
}

func TestIsOpenLicenseProprietaryWinsInsideOneName(t *testing.T) {
	if isOpenLicense("MIT License, all rights reserved") {
		t.Error("Expected proprietary patterns to win over open ones within a single name")
	}
	if !isOpenLicense("MIT License") {
		t.Error("Expected MIT to be recognized as open")
	}
	if isOpenLicense("") {
		t.Error("Expected empty name to be closed")
	}
	if !isOpenLicense("Apache License 2.0") {
		t.Error("Expected Apache to be recognized as open")
	}
}

func TestScoreOpenLicenseRepoOpenWinsOverProprietary(t *testing.T) {
	r := site(models.PageRecord{URL: "https://edition.example/"})
	r.GitHubRepos = []models.Repo{
		{Name: "a", HTMLURL: "https://github.com/org/a", License: &models.RepoLicense{Name: "MIT License"}},
		{Name: "b", HTMLURL: "https://github.com/org/b", License: &models.RepoLicense{Name: "All rights reserved"}},
	}

	got := scoreOpenLicense(r)
	if got.Score == nil || *got.Score != 100 {
		t.Fatalf("Expected 100 when any repo license is open, got %v", got.Score)
	}
}

func TestScoreOpenLicenseInstitutionalOnly(t *testing.T) {
	r := site(models.PageRecord{
		URL: "https://edition.example/",
		LLM: &models.LLMAnalysis{License: models.Hint{"CC BY 4.0"}},
	})
	got := scoreOpenLicense(r)
	if got.Score == nil || *got.Score != 50 {
		t.Fatalf("Expected 50 for open institutional license without repos, got %v", got.Score)
	}

	r = site(models.PageRecord{
		URL: "https://edition.example/",
		LLM: &models.LLMAnalysis{License: models.Hint{"All rights reserved"}},
	})
	got = scoreOpenLicense(r)
	if got.Score == nil || *got.Score != 0 {
		t.Fatalf("Expected 0 for proprietary institutional license, got %v", got.Score)
	}

	got = scoreOpenLicense(site(models.PageRecord{URL: "https://edition.example/"}))
	if got.Score != nil {
		t.Errorf("Expected nil score without any license information, got %d", *got.Score)
	}
}

func TestScoreLinkFunctionalityFirstStatusWins(t *testing.T) {
	links := []models.LinkFact{
		{URL: "https://edition.example/a", Status: "200"},
		{URL: "https://edition.example/a", Status: "404"}, // duplicate, later status ignored
		{URL: "https://edition.example/b", Status: "ERROR [Timeout]"},
	}

	got := scoreLinkFunctionality(links)
	if got.Score == nil {
		t.Fatal("Expected a score")
	}
	if *got.Score != 50 {
		t.Errorf("Expected 50 (1 of 2 links ok), got %d", *got.Score)
	}
	if got.Verdict != "1 of 2 links functional" {
		t.Errorf("Unexpected verdict %q", got.Verdict)
	}
}

func TestScoreLinkFunctionalityStatusTotality(t *testing.T) {
	// Every non-2xx/3xx status counts as a failure, including codes
	// outside the HTTP range and transport errors.
	links := []models.LinkFact{
		{URL: "https://a.example/", Status: "099"},
		{URL: "https://b.example/", Status: "700"},
		{URL: "https://c.example/", Status: "garbage"},
		{URL: "https://d.example/", Status: ""},
	}
	got := scoreLinkFunctionality(links)
	if got.Score == nil || *got.Score != 0 {
		t.Fatalf("Expected 0, got %v", got.Score)
	}

	if got := scoreLinkFunctionality(nil); got.Score != nil {
		t.Error("Expected nil score without link checks")
	}
}

func TestScoreIsolationPrecedence(t *testing.T) {
	// Technical evidence scores 100 regardless of hints.
	r := site(models.PageRecord{URL: "https://edition.example/"})
	r.Infra = models.InfraScan{"data": []any{"running docker 24.0 on ubuntu"}}
	got := scoreIsolation(r)
	if got.Score == nil || *got.Score != 100 {
		t.Fatalf("Expected 100 on technical isolation evidence, got %v", got.Score)
	}

	// Semantic hints alone score the midpoint.
	r = site(models.PageRecord{
		URL: "https://edition.example/",
		LLM: &models.LLMAnalysis{IsolationHint: models.Hint{"hosted in containers"}},
	})
	got = scoreIsolation(r)
	if got.Score == nil || *got.Score != 50 {
		t.Fatalf("Expected 50 on semantic-only isolation evidence, got %v", got.Score)
	}

	// No evidence at all drops the indicator.
	got = scoreIsolation(site(models.PageRecord{URL: "https://edition.example/"}))
	if got.Score != nil {
		t.Errorf("Expected nil score without isolation evidence, got %d", *got.Score)
	}
}

func TestScoreIsolationWordBoundary(t *testing.T) {
	r := site(models.PageRecord{URL: "https://edition.example/"})
	r.Infra = models.InfraScan{"banner": "cyborg themed website"}
	got := scoreIsolation(r)
	if got.Score != nil {
		t.Errorf("Expected no match inside larger words, got score %d", *got.Score)
	}
}

func TestScoreStaticizationMatching(t *testing.T) {
	r := site(models.PageRecord{URL: "https://edition.example/"})
	r.Technologies = []models.Technology{
		{Name: "Hugo"},
		{Name: "Netlify"},
		{Name: "WordPress"},
	}
	got := scoreStaticization(r)
	if got.Score == nil {
		t.Fatal("Expected a score")
	}
	if *got.Score != 67 {
		t.Errorf("Expected 67 (2 static of 3), got %d", *got.Score)
	}
	if got.Verdict != "Static technologies prevail" {
		t.Errorf("Unexpected verdict %q", got.Verdict)
	}
}

func TestScoreXMLTEIRequiresTEIFlag(t *testing.T) {
	// A scanned XML file that is not flagged as TEI is no evidence.
	r := site(models.PageRecord{
		URL:     "https://edition.example/",
		XMLScan: []models.XMLEntry{{URL: "https://edition.example/data.xml", IsTEI: false}},
	})
	got := scoreXMLTEI(r)
	if got.Score != nil {
		t.Fatalf("Expected nil score for unflagged xml entries, got %d", *got.Score)
	}

	// With only a semantic hint the indicator scores the midpoint.
	r = site(models.PageRecord{
		URL:     "https://edition.example/",
		XMLScan: []models.XMLEntry{{URL: "https://edition.example/data.xml", IsTEI: false}},
		LLM:     &models.LLMAnalysis{TEIHint: models.Hint{"edition encoded in TEI"}},
	})
	got = scoreXMLTEI(r)
	if got.Score == nil || *got.Score != 50 {
		t.Fatalf("Expected 50 on hint-only evidence, got %v", got.Score)
	}

	r = site(models.PageRecord{
		URL:     "https://edition.example/",
		XMLScan: []models.XMLEntry{{URL: "https://edition.example/doc.xml", IsTEI: true}},
	})
	got = scoreXMLTEI(r)
	if got.Score == nil || *got.Score != 100 {
		t.Fatalf("Expected 100 for a flagged TEI file, got %v", got.Score)
	}
}

func TestScoreXMLTEICountsFallbackEntries(t *testing.T) {
	// Pages without a scan fall back to the url heuristic; a synthesized
	// TEI entry must count as technical evidence.
	r := site(models.PageRecord{
		URL:           "https://edition.example/",
		XMLCandidates: []string{"https://edition.example/tei/doc.xml"},
	})
	got := scoreXMLTEI(r)
	if got.Score == nil || *got.Score != 100 {
		t.Fatalf("Expected 100 for a fallback-derived TEI entry, got %v", got.Score)
	}
}

func TestScoreOpenClosedDefaultsToClosed(t *testing.T) {
	got := scoreOpenClosed(site(models.PageRecord{URL: "https://edition.example/"}))
	if got.Score == nil || *got.Score != 0 {
		t.Fatalf("Expected 0 without any evidence, got %v", got.Score)
	}
}

func TestScoreOpenClosedFlagBeatsKeywords(t *testing.T) {
	r := site(models.PageRecord{URL: "https://edition.example/"})
	r.Technologies = []models.Technology{
		{Name: "Closed Thing", OSS: boolPtr(true), Description: "proprietary payware"},
		{Name: "Nginx", Description: "open source web server"},
	}
	got := scoreOpenClosed(r)
	if got.Score == nil || *got.Score != 100 {
		t.Fatalf("Expected 100 when the OSS flag overrides description keywords, got %v", got.Score)
	}
}

func TestScoreRepositoriesSuppressesDuplicateHints(t *testing.T) {
	r := site(models.PageRecord{
		URL: "https://edition.example/",
		LLM: &models.LLMAnalysis{RepositoriesHint: models.Hint{"https://github.com/org/edition"}},
	})
	r.GitHubRepos = []models.Repo{{Name: "edition", HTMLURL: "https://github.com/org/edition"}}

	got := scoreRepositories(r)
	if got.Score == nil || *got.Score != 100 {
		t.Fatalf("Expected 100 for a found repo, got %v", got.Score)
	}
	if strings.Contains(got.Evidence, "LLM hints") {
		t.Error("Expected the hint repeating the repo url to be suppressed")
	}
}

func TestLoadWeightsDefaults(t *testing.T) {
	w, err := LoadWeights("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(w) != len(expectedKeys)-1 {
		t.Errorf("Expected %d weighted keys, got %d", len(expectedKeys)-1, len(w))
	}
	if _, ok := w[KeyFAIROverall]; ok {
		t.Error("Expected fair_overall to carry no weight")
	}
	if w[KeyLinks] != 1.0 {
		t.Errorf("Expected default weight 1.0, got %v", w[KeyLinks])
	}
}

func TestComputeMinCriteriaGate(t *testing.T) {
	// A single scored indicator is below the gate.
	r := site(models.PageRecord{
		URL: "https://edition.example/",
		InternalLinks: []models.LinkFact{
			{URL: "https://edition.example/a", Status: "200"},
		},
	})

	outcome := Compute(r, DefaultWeights(), 5)
	if outcome.Total.Score != nil {
		t.Errorf("Expected no total below the minimum criteria count, got %d", *outcome.Total.Score)
	}
	if outcome.Total.Band != "no rating (insufficient data)" {
		t.Errorf("Unexpected band %q", outcome.Total.Band)
	}
}

func TestComputeFullKeySet(t *testing.T) {
	outcome := Compute(site(), DefaultWeights(), 5)
	for _, key := range expectedKeys {
		if _, ok := outcome.Global[key]; !ok {
			t.Errorf("Expected indicator %q in the outcome", key)
		}
	}
	if len(outcome.Global) != len(expectedKeys) {
		t.Errorf("Expected exactly %d indicators, got %d", len(expectedKeys), len(outcome.Global))
	}
}

func TestComputeExcludesFAIRFromTotal(t *testing.T) {
	r := site(
		models.PageRecord{
			URL: "https://edition.example/",
			InternalLinks: []models.LinkFact{
				{URL: "https://edition.example/a", Status: "200"},
			},
			XMLScan:     []models.XMLEntry{{URL: "https://edition.example/doc.xml", IsTEI: true}},
			FAIRChecker: &models.FAIRResult{OK: true, ScoreOverall: fPtr(10)},
			LLM: &models.LLMAnalysis{
				Institution:   models.Hint{"Example University"},
				ContactInfo:   models.Hint{"mail@edition.example"},
				Documentation: models.Hint{"edition guidelines published"},
			},
		},
	)

	outcome := Compute(r, DefaultWeights(), 5)
	if outcome.Total.Score == nil {
		t.Fatalf("Expected a total, note: %s", outcome.Total.Note)
	}
	// Five indicators scored 100, the open/closed default scored 0:
	// 500/6 = 83. A low FAIR score must not lower it further.
	if *outcome.Total.Score != 83 {
		t.Errorf("Expected total 83 with FAIR excluded, got %d", *outcome.Total.Score)
	}
	fair := outcome.Global[KeyFAIROverall]
	if fair.Score == nil || *fair.Score != 10 {
		t.Errorf("Expected the FAIR indicator itself to report 10, got %v", fair.Score)
	}
}

func TestComputeGovernancePresence(t *testing.T) {
	r := site(
		models.PageRecord{
			URL: "https://edition.example/",
			LLM: &models.LLMAnalysis{
				Institution: models.Hint{"Example University"},
			},
		},
	)

	outcome := Compute(r, DefaultWeights(), 5)
	inst := outcome.Global[KeyInstitution]
	if inst.Score == nil || *inst.Score != 100 {
		t.Fatalf("Expected institution presence to score 100, got %v", inst.Score)
	}
	if inst.Verdict != "Evidence present" {
		t.Errorf("Unexpected verdict %q", inst.Verdict)
	}
	funding := outcome.Global[KeyFunding]
	if funding.Score != nil {
		t.Errorf("Expected absent funding indicator, got %d", *funding.Score)
	}
}
