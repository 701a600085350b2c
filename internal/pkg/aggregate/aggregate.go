package aggregate

import (
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"edanalyzer/internal/pkg/logger"
	"edanalyzer/internal/pkg/metrics"
	"edanalyzer/internal/pkg/models"
	"edanalyzer/internal/pkg/normalize"
)

// Stats are the site-level counts shown in the report frontend.
type Stats struct {
	TotalPages              int      `json:"total_pages"`
	InternalLinksTotal      int      `json:"internal_links_total"`
	InternalLinksOK         int      `json:"internal_links_ok"`
	InternalLinksBad        int      `json:"internal_links_bad"`
	InternalOKRatePercent   *float64 `json:"internal_ok_rate_percent"`
	ExternalLinksTotal      int      `json:"external_links_total"`
	XMLEntriesCount         int      `json:"xml_entries_count"`
	TEIFilesCount           int      `json:"tei_files_count"`
	APIInterfacesCount      int      `json:"api_interfaces_count"`
	APITypes                []string `json:"api_types"`
	GitHubReposCount        int      `json:"github_repos_count"`
	GitLabReposCount        int      `json:"gitlab_repos_count"`
	StructuredMetadataScore *int     `json:"structured_metadata_score_average"`
	NormdataItemsCount      int      `json:"normdata_items_count"`
	NormdataSources         []string `json:"normdata_sources"`
	DownloadItemsCount      int      `json:"download_items_count"`
	FAIRCheckerCount        int      `json:"fair_checker_count"`
}

// PageFAIR pairs a page URL with its FAIR-checker outcome.
type PageFAIR struct {
	URL    string             `json:"url"`
	Result *models.FAIRResult `json:"result"`
}

// Result is the site aggregate: every per-page finding merged, deduplicated
// and counted once. Built once per analysis run, read-only afterwards.
type Result struct {
	Pages []models.PageRecord `json:"page_data"`

	// Link data
	InternalLinks  []models.LinkFact `json:"internal_link_checks"`
	BrokenInternal []models.LinkFact `json:"broken_internal_links"`
	ExternalLinks  []models.LinkFact `json:"external_links"`

	// Repositories
	GitHubRepos []models.Repo `json:"github_repos"`
	GitLabRepos []models.Repo `json:"gitlab_repos"`

	// XML/TEI
	XMLEntries []models.XMLEntry `json:"xml_scan_results"`
	TEICount   int               `json:"tei_files_count"`

	// API interfaces
	APIs     []models.APIInterface `json:"api_interfaces"`
	APITypes []string              `json:"api_types"`

	// Structured metadata
	StructuredMetadataAvg *int `json:"structured_metadata_score"`

	// Normdata
	NormItems   []models.NormdataItem `json:"normdata_items"`
	NormSources []string              `json:"normdata_sources"`

	// Downloads
	Downloads []models.DownloadItem `json:"download_items"`

	// FAIR checker
	FAIRPages []PageFAIR         `json:"fair_checker_results"`
	HomeFAIR  *models.FAIRResult `json:"fair_checker"`

	// Infrastructure
	Infra         models.InfraScan     `json:"infra_scan"`
	InfraOverview models.InfraOverview `json:"infra_overview"`
	Technologies  []models.Technology  `json:"technologies"`

	Stats Stats `json:"stats"`

	// Semantic payload: per extractor field, the union of all page values,
	// deduplicated case-insensitively and sorted.
	LLM map[string][]string `json:"llm_aggregated"`
}

// Build merges all page records into one site aggregate. The input pages
// are never mutated; running Build twice on the same slice yields equal
// results.
func Build(
	pages []models.PageRecord,
	infra models.InfraScan,
	overview models.InfraOverview,
	technologies []models.Technology,
) *Result {
	if len(pages) == 0 {
		logger.Log.Info("No pages to aggregate, returning empty result")
		return emptyResult(infra, overview, technologies)
	}

	logger.Log.Debug("Aggregating pages", zap.Int("pages", len(pages)))
	metrics.PagesAggregated.Add(float64(len(pages)))

	internal, broken, okCount, badCount := aggregateInternalLinks(pages)
	external := collectExternalLinks(pages)
	xmlEntries, teiCount := aggregateXML(pages)
	apis, apiTypes := aggregateAPIs(pages)
	github, gitlab := aggregateRepos(pages)
	smAvg := StructuredMetadataAverage(pages)
	normItems, normSources := collectNormdata(pages)
	downloads := collectDownloads(pages)
	fairPages, homeFAIR := collectFAIR(pages)
	llm := mergeLLM(pages)

	var okRate *float64
	if len(internal) > 0 {
		rate := float64(okCount) / float64(len(internal)) * 100
		okRate = &rate
	}

	return &Result{
		Pages:                 pages,
		InternalLinks:         internal,
		BrokenInternal:        broken,
		ExternalLinks:         external,
		GitHubRepos:           github,
		GitLabRepos:           gitlab,
		XMLEntries:            xmlEntries,
		TEICount:              teiCount,
		APIs:                  apis,
		APITypes:              apiTypes,
		StructuredMetadataAvg: smAvg,
		NormItems:             normItems,
		NormSources:           normSources,
		Downloads:             downloads,
		FAIRPages:             fairPages,
		HomeFAIR:              homeFAIR,
		Infra:                 infra,
		InfraOverview:         overview,
		Technologies:          technologies,
		LLM:                   llm,
		Stats: Stats{
			TotalPages:              len(pages),
			InternalLinksTotal:      len(internal),
			InternalLinksOK:         okCount,
			InternalLinksBad:        badCount,
			InternalOKRatePercent:   okRate,
			ExternalLinksTotal:      len(external),
			XMLEntriesCount:         len(xmlEntries),
			TEIFilesCount:           teiCount,
			APIInterfacesCount:      len(apis),
			APITypes:                apiTypes,
			GitHubReposCount:        len(github),
			GitLabReposCount:        len(gitlab),
			StructuredMetadataScore: smAvg,
			NormdataItemsCount:      len(normItems),
			NormdataSources:         normSources,
			DownloadItemsCount:      len(downloads),
			FAIRCheckerCount:        len(fairPages),
		},
	}
}

// emptyResult is the single well-defined shape for a run without pages:
// every collection empty, every statistic zero or absent.
func emptyResult(infra models.InfraScan, overview models.InfraOverview, technologies []models.Technology) *Result {
	return &Result{
		Pages:          []models.PageRecord{},
		InternalLinks:  []models.LinkFact{},
		BrokenInternal: []models.LinkFact{},
		ExternalLinks:  []models.LinkFact{},
		GitHubRepos:    []models.Repo{},
		GitLabRepos:    []models.Repo{},
		XMLEntries:     []models.XMLEntry{},
		APIs:           []models.APIInterface{},
		APITypes:       []string{},
		NormItems:      []models.NormdataItem{},
		NormSources:    []string{},
		Downloads:      []models.DownloadItem{},
		FAIRPages:      []PageFAIR{},
		Infra:          infra,
		InfraOverview:  overview,
		Technologies:   technologies,
		LLM:            map[string][]string{},
		Stats:          Stats{APITypes: []string{}, NormdataSources: []string{}},
	}
}

// aggregateInternalLinks flattens the internal links of all pages and
// classifies every status. The broken subset is collected separately.
func aggregateInternalLinks(pages []models.PageRecord) (all, broken []models.LinkFact, ok, bad int) {
	all = []models.LinkFact{}
	broken = []models.LinkFact{}
	for _, p := range pages {
		for _, l := range p.InternalLinks {
			all = append(all, l)
			if normalize.StatusOK(l.Status) {
				ok++
			} else {
				bad++
				broken = append(broken, l)
			}
		}
	}
	return all, broken, ok, bad
}

// collectExternalLinks flattens external links without any classification;
// they are informational only.
func collectExternalLinks(pages []models.PageRecord) []models.LinkFact {
	out := []models.LinkFact{}
	for _, p := range pages {
		out = append(out, p.ExternalLinks...)
	}
	return out
}

// aggregateXML merges all XML scan entries. Pages without a scan fall back
// to a naive heuristic over candidate URLs: a URL containing "tei" counts
// as a TEI hit.
func aggregateXML(pages []models.PageRecord) ([]models.XMLEntry, int) {
	entries := []models.XMLEntry{}
	tei := 0
	for _, p := range pages {
		if len(p.XMLScan) > 0 {
			for _, e := range p.XMLScan {
				entries = append(entries, e)
				if e.IsTEI {
					tei++
				}
			}
			continue
		}
		for _, u := range p.XMLCandidates {
			e := models.XMLEntry{
				URL:   u,
				IsTEI: strings.Contains(strings.ToLower(u), "tei"),
			}
			entries = append(entries, e)
			if e.IsTEI {
				tei++
			}
		}
	}
	entries = normalize.DedupBy(entries, func(e models.XMLEntry) string {
		return normalize.StripQueryFragment(e.URL)
	})
	// Recount after dedup so the count matches the surviving entries.
	tei = 0
	for _, e := range entries {
		if e.IsTEI {
			tei++
		}
	}
	return entries, tei
}

type apiKey struct {
	typ string
	url string
}

// aggregateAPIs flattens all detected interfaces and deduplicates them by
// (type, url).
func aggregateAPIs(pages []models.PageRecord) ([]models.APIInterface, []string) {
	all := []models.APIInterface{}
	for _, p := range pages {
		all = append(all, p.APIInterfaces...)
	}
	deduped := normalize.DedupBy(all, func(a models.APIInterface) apiKey {
		return apiKey{a.Type, a.URL}
	})
	typeSet := map[string]struct{}{}
	for _, a := range deduped {
		if a.Type != "" {
			typeSet[a.Type] = struct{}{}
		}
	}
	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)
	return deduped, types
}

// aggregateRepos deduplicates repositories per host family by their
// canonical browser URL.
func aggregateRepos(pages []models.PageRecord) (github, gitlab []models.Repo) {
	github = []models.Repo{}
	gitlab = []models.Repo{}
	for _, p := range pages {
		github = append(github, p.GitHubRepos...)
		gitlab = append(gitlab, p.GitLabRepos...)
	}
	keep := func(repos []models.Repo) []models.Repo {
		withURL := make([]models.Repo, 0, len(repos))
		for _, r := range repos {
			if r.CanonicalURL() != "" {
				withURL = append(withURL, r)
			}
		}
		return normalize.DedupBy(withURL, models.Repo.CanonicalURL)
	}
	return keep(github), keep(gitlab)
}

// StructuredMetadataAverage computes the mean structured-metadata score
// across pages: 100 for metadata with controlled vocabularies, 75 for
// metadata alone, 50 for a semantic hint only. Pages contributing nothing
// are excluded from the average; nil means no page contributed.
func StructuredMetadataAverage(pages []models.PageRecord) *int {
	var vals []int
	for _, p := range pages {
		sm := p.StructuredMetadata
		hasVocab := sm != nil && len(sm.ControlledVocabularies) > 0
		switch {
		case sm != nil && sm.HasStructuredMetadata && hasVocab:
			vals = append(vals, 100)
		case sm != nil && sm.HasStructuredMetadata:
			vals = append(vals, 75)
		case p.LLM != nil && p.LLM.StructuredMetadataHint.Present():
			vals = append(vals, 50)
		}
	}
	if len(vals) == 0 {
		return nil
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	avg := int(math.Round(float64(sum) / float64(len(vals))))
	return &avg
}

// collectNormdata gathers authority-data items with a usable source plus
// the controlled-vocabulary names mentioned in structured metadata.
func collectNormdata(pages []models.PageRecord) ([]models.NormdataItem, []string) {
	items := []models.NormdataItem{}
	sources := map[string]struct{}{}
	for _, p := range pages {
		if p.Normdata != nil {
			for _, it := range p.Normdata.Items {
				src := strings.TrimSpace(it.Source)
				if src == "" {
					continue
				}
				items = append(items, it)
				sources[src] = struct{}{}
			}
		}
		if p.StructuredMetadata != nil {
			for _, v := range p.StructuredMetadata.ControlledVocabularies {
				if name := strings.TrimSpace(v.Name); name != "" {
					sources[name] = struct{}{}
				}
			}
		}
	}
	out := make([]string, 0, len(sources))
	for s := range sources {
		out = append(out, s)
	}
	sort.Strings(out)
	return items, out
}

// collectDownloads flattens the download items of all pages, deduplicated
// by URL.
func collectDownloads(pages []models.PageRecord) []models.DownloadItem {
	all := []models.DownloadItem{}
	for _, p := range pages {
		if p.Downloads == nil {
			continue
		}
		all = append(all, p.Downloads.Items...)
	}
	return normalize.DedupBy(all, func(d models.DownloadItem) string { return d.URL })
}

// collectFAIR keeps every page with a FAIR-checker outcome and promotes
// the start page's result to the site level.
func collectFAIR(pages []models.PageRecord) ([]PageFAIR, *models.FAIRResult) {
	out := []PageFAIR{}
	for _, p := range pages {
		if p.FAIRChecker != nil {
			out = append(out, PageFAIR{URL: p.URL, Result: p.FAIRChecker})
		}
	}
	var home *models.FAIRResult
	if len(pages) > 0 {
		home = pages[0].FAIRChecker
	}
	return out, home
}

// mergeLLM unions the semantic payloads of all pages per field. Values are
// deduplicated case-insensitively and sorted so the output is stable no
// matter which page mentioned them first.
func mergeLLM(pages []models.PageRecord) map[string][]string {
	merged := map[string][]string{}
	seen := map[string]map[string]struct{}{}
	for _, p := range pages {
		for _, field := range p.LLM.Fields() {
			for _, v := range field.Hint.Values() {
				key := strings.ToLower(v)
				if seen[field.Name] == nil {
					seen[field.Name] = map[string]struct{}{}
				}
				if _, dup := seen[field.Name][key]; dup {
					continue
				}
				seen[field.Name][key] = struct{}{}
				merged[field.Name] = append(merged[field.Name], v)
			}
		}
	}
	for name := range merged {
		sort.Strings(merged[name])
	}
	return merged
}
