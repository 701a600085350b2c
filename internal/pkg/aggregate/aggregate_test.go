package aggregate

import (
	"reflect"
	"testing"

	"edanalyzer/internal/pkg/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildEmptyInput(t *testing.T) {
	result := Build(nil, nil, models.InfraOverview{}, nil)

	if result == nil {
		t.Fatal("Expected a result for empty input, got nil")
	}
	if len(result.Pages) != 0 {
		t.Errorf("Expected 0 pages, got %d", len(result.Pages))
	}
	if result.InternalLinks == nil || result.ExternalLinks == nil {
		t.Error("Expected empty link slices, got nil")
	}
	if result.Stats.TotalPages != 0 {
		t.Errorf("Expected total_pages 0, got %d", result.Stats.TotalPages)
	}
	if result.Stats.InternalOKRatePercent != nil {
		t.Error("Expected no ok rate for empty input")
	}
	if result.StructuredMetadataAvg != nil {
		t.Error("Expected nil structured metadata average for empty input")
	}
	if len(result.LLM) != 0 {
		t.Errorf("Expected empty llm payload, got %v", result.LLM)
	}
}

func TestBuildIdempotent(t *testing.T) {
	pages := []models.PageRecord{
		{
			URL: "https://edition.example/",
			InternalLinks: []models.LinkFact{
				{URL: "https://edition.example/a", Status: "200"},
				{URL: "https://edition.example/b", Status: "404"},
			},
			XMLScan: []models.XMLEntry{{URL: "https://edition.example/doc.xml", IsTEI: true}},
			LLM:     &models.LLMAnalysis{Institution: models.Hint{"Example University"}},
		},
	}

	first := Build(pages, nil, models.InfraOverview{}, nil)
	second := Build(pages, nil, models.InfraOverview{}, nil)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical results for repeated aggregation of the same pages")
	}
}

func TestBuildLinkClassification(t *testing.T) {
	pages := []models.PageRecord{
		{
			URL: "https://edition.example/",
			InternalLinks: []models.LinkFact{
				{URL: "https://edition.example/a", Status: "200"},
				{URL: "https://edition.example/b", Status: "301"},
				{URL: "https://edition.example/c", Status: "404"},
				{URL: "https://edition.example/d", Status: "ERROR [Timeout]"},
				{URL: "https://edition.example/e", Status: ""},
			},
			ExternalLinks: []models.LinkFact{
				{URL: "https://other.example/", Status: "500"},
			},
		},
	}

	result := Build(pages, nil, models.InfraOverview{}, nil)

	if result.Stats.InternalLinksOK != 2 {
		t.Errorf("Expected 2 ok internal links, got %d", result.Stats.InternalLinksOK)
	}
	if result.Stats.InternalLinksBad != 3 {
		t.Errorf("Expected 3 bad internal links, got %d", result.Stats.InternalLinksBad)
	}
	if len(result.BrokenInternal) != 3 {
		t.Errorf("Expected 3 broken internal links, got %d", len(result.BrokenInternal))
	}
	if len(result.ExternalLinks) != 1 {
		t.Errorf("Expected 1 external link, got %d", len(result.ExternalLinks))
	}
	if result.Stats.InternalOKRatePercent == nil {
		t.Fatal("Expected an ok rate")
	}
	if *result.Stats.InternalOKRatePercent != 40 {
		t.Errorf("Expected ok rate 40, got %v", *result.Stats.InternalOKRatePercent)
	}
}

func TestBuildXMLFallbackHeuristic(t *testing.T) {
	pages := []models.PageRecord{
		{
			URL: "https://edition.example/",
			XMLCandidates: []string{
				"https://edition.example/files/TEI-transcript.xml",
				"https://edition.example/files/sitemap.xml",
			},
		},
	}

	result := Build(pages, nil, models.InfraOverview{}, nil)

	if len(result.XMLEntries) != 2 {
		t.Fatalf("Expected 2 xml entries, got %d", len(result.XMLEntries))
	}
	if result.TEICount != 1 {
		t.Errorf("Expected 1 tei file from url heuristic, got %d", result.TEICount)
	}
	if !result.XMLEntries[0].IsTEI {
		t.Error("Expected 'TEI' in the url to mark the entry as tei")
	}
}

func TestBuildAPIDedupByTypeAndURL(t *testing.T) {
	pages := []models.PageRecord{
		{
			URL: "https://edition.example/",
			APIInterfaces: []models.APIInterface{
				{Type: "OAI-PMH", URL: "https://edition.example/oai"},
				{Type: "IIIF", URL: "https://edition.example/iiif"},
			},
		},
		{
			URL: "https://edition.example/about",
			APIInterfaces: []models.APIInterface{
				{Type: "OAI-PMH", URL: "https://edition.example/oai"},
				{Type: "REST", URL: "https://edition.example/oai"},
			},
		},
	}

	result := Build(pages, nil, models.InfraOverview{}, nil)

	if len(result.APIs) != 3 {
		t.Errorf("Expected 3 distinct api interfaces, got %d", len(result.APIs))
	}
	expectedTypes := []string{"IIIF", "OAI-PMH", "REST"}
	if !reflect.DeepEqual(result.APITypes, expectedTypes) {
		t.Errorf("Expected api types %v, got %v", expectedTypes, result.APITypes)
	}
}

func TestBuildRepoDedupPerHostFamily(t *testing.T) {
	pages := []models.PageRecord{
		{
			URL: "https://edition.example/",
			GitHubRepos: []models.Repo{
				{Name: "edition", HTMLURL: "https://github.com/org/edition"},
				{Name: "no-url-at-all"},
			},
			GitLabRepos: []models.Repo{
				{Name: "edition", WebURL: "https://gitlab.com/org/edition"},
			},
		},
		{
			URL: "https://edition.example/code",
			GitHubRepos: []models.Repo{
				{Name: "edition-dup", HTMLURL: "https://github.com/org/edition"},
				{Name: "tools", URL: "https://api.github.com/repos/org/tools"},
			},
		},
	}

	result := Build(pages, nil, models.InfraOverview{}, nil)

	if len(result.GitHubRepos) != 2 {
		t.Errorf("Expected 2 github repos after dedup, got %d", len(result.GitHubRepos))
	}
	if len(result.GitLabRepos) != 1 {
		t.Errorf("Expected 1 gitlab repo, got %d", len(result.GitLabRepos))
	}
	if result.GitHubRepos[0].Name != "edition" {
		t.Errorf("Expected first-seen repo to survive dedup, got %q", result.GitHubRepos[0].Name)
	}
}

func TestStructuredMetadataAverage(t *testing.T) {
	pages := []models.PageRecord{
		{
			StructuredMetadata: &models.StructuredMetadata{
				HasStructuredMetadata:  true,
				ControlledVocabularies: []models.Vocabulary{{Name: "GND"}},
			},
		},
		{
			StructuredMetadata: &models.StructuredMetadata{HasStructuredMetadata: true},
		},
		{
			LLM: &models.LLMAnalysis{StructuredMetadataHint: models.Hint{"schema.org markup mentioned"}},
		},
		{}, // contributes nothing
	}

	avg := StructuredMetadataAverage(pages)
	if avg == nil {
		t.Fatal("Expected an average")
	}
	if *avg != 75 {
		t.Errorf("Expected average 75, got %d", *avg)
	}

	if got := StructuredMetadataAverage(nil); got != nil {
		t.Errorf("Expected nil average for no pages, got %d", *got)
	}
}

func TestBuildFAIRHomepagePromotion(t *testing.T) {
	home := &models.FAIRResult{OK: true, ScoreOverall: floatPtr(81)}
	pages := []models.PageRecord{
		{URL: "https://edition.example/", FAIRChecker: home},
		{URL: "https://edition.example/about"},
		{URL: "https://edition.example/data", FAIRChecker: &models.FAIRResult{OK: false, Error: "timeout"}},
	}

	result := Build(pages, nil, models.InfraOverview{}, nil)

	if len(result.FAIRPages) != 2 {
		t.Errorf("Expected 2 fair results, got %d", len(result.FAIRPages))
	}
	if result.HomeFAIR != home {
		t.Error("Expected the start page result to be promoted to site level")
	}
}

func TestBuildMergeLLMCaseInsensitive(t *testing.T) {
	pages := []models.PageRecord{
		{
			URL: "https://edition.example/",
			LLM: &models.LLMAnalysis{
				Institution: models.Hint{"Example University", "DFG"},
				License:     models.Hint{"CC BY 4.0"},
			},
		},
		{
			URL: "https://edition.example/impressum",
			LLM: &models.LLMAnalysis{
				Institution: models.Hint{"example university", "Academy of Sciences"},
			},
		},
		{URL: "https://edition.example/no-llm"},
	}

	result := Build(pages, nil, models.InfraOverview{}, nil)

	expected := []string{"Academy of Sciences", "DFG", "Example University"}
	if !reflect.DeepEqual(result.LLM["institution"], expected) {
		t.Errorf("Expected institutions %v, got %v", expected, result.LLM["institution"])
	}
	if !reflect.DeepEqual(result.LLM["license"], []string{"CC BY 4.0"}) {
		t.Errorf("Expected license from a single page, got %v", result.LLM["license"])
	}
	if _, ok := result.LLM["tei_hint"]; ok {
		t.Error("Expected fields without values to stay absent from the merged payload")
	}
}

func TestBuildNormdataSources(t *testing.T) {
	pages := []models.PageRecord{
		{
			Normdata: &models.Normdata{Items: []models.NormdataItem{
				{Source: "GND", URL: "https://d-nb.info/gnd/1"},
				{Source: "", URL: "https://example.org/anon"},
				{Source: "Wikidata", URL: "https://www.wikidata.org/wiki/Q1"},
			}},
			StructuredMetadata: &models.StructuredMetadata{
				HasStructuredMetadata:  true,
				ControlledVocabularies: []models.Vocabulary{{Name: "VIAF"}},
			},
		},
	}

	result := Build(pages, nil, models.InfraOverview{}, nil)

	if len(result.NormItems) != 2 {
		t.Errorf("Expected 2 normdata items with a source, got %d", len(result.NormItems))
	}
	expected := []string{"GND", "VIAF", "Wikidata"}
	if !reflect.DeepEqual(result.NormSources, expected) {
		t.Errorf("Expected sources %v, got %v", expected, result.NormSources)
	}
}
