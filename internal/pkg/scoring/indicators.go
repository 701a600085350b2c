package scoring

import (
	"fmt"
	"math"
	"strings"

	"edanalyzer/internal/pkg/aggregate"
	"edanalyzer/internal/pkg/models"
	"edanalyzer/internal/pkg/normalize"
)

// The scorers below each evaluate one sustainability indicator from the
// site aggregate. Technical evidence always outranks semantic hints: a
// hard finding scores 100 (or a ratio), hints alone score 50, and no
// evidence at all returns a nil score so the indicator drops out of the
// total instead of dragging it down.

func techText(t models.Technology) string {
	return strings.TrimSpace(strings.ToLower(t.Name + " " + t.Description))
}

// collectHints gathers one semantic field across all pages, trimmed and
// deduplicated case-sensitively in first-seen order.
func collectHints(pages []models.PageRecord, pick func(*models.LLMAnalysis) models.Hint) []string {
	var out []string
	for _, p := range pages {
		if p.LLM == nil {
			continue
		}
		out = append(out, pick(p.LLM).Values()...)
	}
	return sortedUnique(out)
}

// scoreOpenClosed classifies fingerprinted technologies as open or closed
// source, by the fingerprinter's OSS flag first and strong description
// keywords second. With no technical signal the semantic hints carry a
// midpoint score; with nothing at all the site is conservatively treated
// as closed source.
func scoreOpenClosed(r *aggregate.Result) IndicatorScore {
	var openNames, closedNames []string
	seen := map[string]struct{}{}

	for _, t := range r.Technologies {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			name = "(unnamed)"
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if t.OSS != nil {
			if *t.OSS {
				openNames = append(openNames, name)
			} else {
				closedNames = append(closedNames, name)
			}
			continue
		}

		text := techText(t)
		if openSourceMatcher.Any(text) {
			openNames = append(openNames, name)
		}
		if closedSourceMatcher.Any(text) {
			closedNames = append(closedNames, name)
		}
	}

	hints := collectHints(r.Pages, func(l *models.LLMAnalysis) models.Hint { return l.OpenSourceHint })

	pos, neg := len(openNames), len(closedNames)
	denom := pos + neg

	var score int
	var verdict string
	switch {
	case denom == 0 && len(hints) == 0:
		score = 0
		verdict = "No open source evidence found (default assumption: closed source)"
	case denom == 0:
		score = 50
		verdict = "Semantic hints at open source (LLM only)"
	default:
		score = int(math.Round(100 * float64(pos) / float64(denom)))
		switch {
		case score == 100:
			verdict = "Evidence of open source"
		case score == 0:
			verdict = "Evidence of proprietary / closed source technologies"
		case score > 50:
			verdict = "Open source prevails"
		case score < 50:
			verdict = "Closed source prevails"
		default:
			verdict = "Mixed evidence"
		}
	}

	return IndicatorScore{
		Score:   scorePtr(score),
		Verdict: verdict,
		Evidence: joinEvidence(
			evidenceBlock("Open source technologies", sortedUnique(openNames)),
			evidenceBlock("Proprietary technologies", sortedUnique(closedNames)),
			evidenceBlock("LLM analysis", hints),
		),
	}
}

// scoreIsolation looks for container/VM terms in the infrastructure scan
// and technology fingerprints, word-boundary matched against the
// flattened text.
func scoreIsolation(r *aggregate.Result) IndicatorScore {
	var techParts []string
	for _, t := range r.Technologies {
		if text := techText(t); text != "" {
			techParts = append(techParts, text)
		}
	}
	combined := strings.Join(techParts, " | ") + " | " + normalize.FlattenText(r.Infra, "references", "html")

	matches := sortedUnique(isolationMatcher.Matches(combined))
	hints := collectHints(r.Pages, func(l *models.LLMAnalysis) models.Hint { return l.IsolationHint })

	evidence := joinEvidence(
		evidenceBlock("Technical evidence", matches),
		evidenceBlock("LLM analysis", hints),
	)

	switch {
	case len(matches) > 0 && len(hints) > 0:
		return IndicatorScore{scorePtr(100), "Technical and semantic evidence of isolation present", evidence}
	case len(matches) > 0:
		return IndicatorScore{scorePtr(100), "Technical evidence of an isolated environment present", evidence}
	case len(hints) > 0:
		return IndicatorScore{scorePtr(50), "Semantic hints at an isolated environment (LLM)", evidence}
	default:
		return IndicatorScore{nil, "No evidence of an isolated runtime environment found", ""}
	}
}

// scoreStaticization rates static vs. dynamic site architecture from the
// fingerprinted technology names, matched token-wise against the
// generator, host, framework and CMS lists.
func scoreStaticization(r *aggregate.Result) IndicatorScore {
	staticRefs := append(append([]string{}, staticSiteGenerators...), staticHostPlatforms...)
	dynamicRefs := append(append([]string{}, dynamicFrameworks...), cmsRuntimes...)

	var staticHits, dynamicHits []string
	for _, t := range r.Technologies {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		if ref, ok := normalize.MatchTechName(name, staticRefs); ok {
			staticHits = append(staticHits, ref)
			continue
		}
		if ref, ok := normalize.MatchTechName(name, dynamicRefs); ok {
			dynamicHits = append(dynamicHits, ref)
		}
	}

	hints := collectHints(r.Pages, func(l *models.LLMAnalysis) models.Hint { return l.StaticizationHint })

	pos, neg := len(staticHits), len(dynamicHits)
	denom := pos + neg

	evidence := joinEvidence(
		evidenceBlock("Static technologies", sortedUnique(staticHits)),
		evidenceBlock("Dynamic technologies", sortedUnique(dynamicHits)),
		evidenceBlock("LLM analysis", hints),
	)

	if denom == 0 && len(hints) == 0 {
		return IndicatorScore{nil, "No evidence of static or dynamic architecture found", ""}
	}
	if denom == 0 {
		return IndicatorScore{scorePtr(50), "Semantic hints at static architecture (LLM only)", evidence}
	}

	score := int(math.Round(100 * float64(pos) / float64(denom)))
	var verdict string
	switch {
	case score >= 80:
		verdict = "Evidence of static architecture"
	case score >= 60:
		verdict = "Static technologies prevail"
	case score >= 40:
		verdict = "Mixed or hybrid architecture"
	case score >= 20:
		verdict = "Dynamic technologies slightly prevail"
	default:
		verdict = "Evidence of dynamic architecture"
	}
	return IndicatorScore{scorePtr(score), verdict, evidence}
}

// scoreFAIROverall reports the external FAIR checker result for the start
// page. It never mixes in other sources and never feeds the total.
func scoreFAIROverall(r *aggregate.Result) IndicatorScore {
	fc := r.HomeFAIR
	if fc == nil || fc.ScoreOverall == nil {
		return IndicatorScore{nil, "No FAIR checker result available", "No FAIR overall score could be determined."}
	}
	score := int(math.Round(*fc.ScoreOverall))
	var evidence string
	switch {
	case score >= 70:
		evidence = "FAIR score high"
	case score >= 40:
		evidence = "FAIR score medium"
	default:
		evidence = "FAIR score low"
	}
	return IndicatorScore{scorePtr(score), fmt.Sprintf("FAIR overall: %d %%", score), evidence}
}

// scoreGovernanceSplit produces one presence indicator per governance
// category (institution, roles, funding, continuation, contact,
// community). The rating is purely qualitative: any usable hint scores
// 100.
func scoreGovernanceSplit(r *aggregate.Result) map[string]IndicatorScore {
	fields := []struct {
		key  string
		pick func(*models.LLMAnalysis) models.Hint
	}{
		{KeyInstitution, func(l *models.LLMAnalysis) models.Hint { return l.Institution }},
		{KeyRoles, func(l *models.LLMAnalysis) models.Hint { return l.RolesResponsibilities }},
		{KeyFunding, func(l *models.LLMAnalysis) models.Hint { return l.FundingInformation }},
		{KeyContinuation, func(l *models.LLMAnalysis) models.Hint { return l.ContinuationStrategy }},
		{KeyContact, func(l *models.LLMAnalysis) models.Hint { return l.ContactInfo }},
		{KeyCommunity, func(l *models.LLMAnalysis) models.Hint { return l.Community }},
	}

	out := make(map[string]IndicatorScore, len(fields))
	for _, f := range fields {
		// Dedup across pages, case-insensitively, first spelling wins.
		var unique []string
		seen := map[string]struct{}{}
		for _, p := range r.Pages {
			if p.LLM == nil {
				continue
			}
			for _, v := range f.pick(p.LLM).Values() {
				key := strings.ToLower(v)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				unique = append(unique, v)
			}
		}

		if len(unique) > 0 {
			out[f.key] = IndicatorScore{scorePtr(100), "Evidence present", evidenceBlock("LLM analysis", unique)}
		} else {
			out[f.key] = IndicatorScore{nil, "No evidence", ""}
		}
	}
	return out
}

// scoreDocumentation checks all pages for documentation hints (technical
// descriptions, edition guidelines, dataset notes).
func scoreDocumentation(r *aggregate.Result) IndicatorScore {
	hints := collectHints(r.Pages, func(l *models.LLMAnalysis) models.Hint { return l.Documentation })
	if len(hints) == 0 {
		return IndicatorScore{nil, "No evidence of documentation", ""}
	}
	return IndicatorScore{scorePtr(100), "Evidence of documentation present", evidenceBlock("LLM analysis", hints)}
}

// scoreStructuredMetadata rates structured metadata and controlled
// vocabularies as the per-page average: 100 with vocabularies, 75 with
// metadata alone, 50 on hints only.
func scoreStructuredMetadata(r *aggregate.Result) IndicatorScore {
	avg := aggregate.StructuredMetadataAverage(r.Pages)

	rdfTotal := 0
	for _, p := range r.Pages {
		if p.StructuredMetadata != nil && p.StructuredMetadata.RDFTriples > 0 {
			rdfTotal += p.StructuredMetadata.RDFTriples
		}
	}
	hints := collectHints(r.Pages, func(l *models.LLMAnalysis) models.Hint { return l.StructuredMetadataHint })

	var verdict string
	switch {
	case avg == nil:
		verdict = "No evidence of structured metadata"
	case *avg == 100:
		verdict = "Structured metadata and controlled vocabularies detected"
	case *avg == 75:
		verdict = "Structured metadata found"
	case *avg == 50:
		verdict = "LLM hints at structured metadata"
	default:
		verdict = "Partial structured metadata evidence"
	}

	var rdfBlock string
	if rdfTotal > 0 {
		rdfBlock = fmt.Sprintf("RDF triples total: %d", rdfTotal)
	}
	return IndicatorScore{avg, verdict, joinEvidence(rdfBlock, evidenceBlock("LLM analysis", hints))}
}

// scoreNormdata rates authority-data usage (GND, VIAF, Wikidata...).
func scoreNormdata(r *aggregate.Result) IndicatorScore {
	var sources []string
	for _, it := range r.NormItems {
		sources = append(sources, it.Source)
	}
	sources = sortedUnique(sources)
	hints := sortedUnique(r.LLM["normdata_hint"])

	evidence := joinEvidence(
		evidenceBlock("Authority data sources", sources),
		evidenceBlock("LLM analysis", hints),
	)

	switch {
	case len(sources) > 0:
		return IndicatorScore{scorePtr(100), "Evidence of authority data found", evidence}
	case len(hints) > 0:
		return IndicatorScore{scorePtr(50), "Only LLM hints at authority data found", evidence}
	default:
		return IndicatorScore{nil, "No evidence of authority data found", ""}
	}
}

// scoreDownloads rates downloadable artifacts (XML, TEI, ZIP, PDF...).
func scoreDownloads(r *aggregate.Result) IndicatorScore {
	var urls []string
	totalCount := 0
	for _, p := range r.Pages {
		if p.Downloads == nil {
			continue
		}
		totalCount += p.Downloads.Count
		for _, it := range p.Downloads.Items {
			if it.URL != "" {
				urls = append(urls, normalize.StripQueryFragment(it.URL))
			}
		}
	}
	urls = sortedUnique(urls)
	hints := collectHints(r.Pages, func(l *models.LLMAnalysis) models.Hint { return l.DownloadsHint })

	var downloadBlock string
	if totalCount > 0 {
		if len(urls) > 0 {
			downloadBlock = evidenceBlock("Downloads found", urls)
		} else {
			downloadBlock = "Downloads found: download links present"
		}
	}
	evidence := joinEvidence(downloadBlock, evidenceBlock("LLM analysis", hints))

	switch {
	case totalCount > 0:
		return IndicatorScore{scorePtr(100), "Downloads found", evidence}
	case len(hints) > 0:
		return IndicatorScore{scorePtr(50), "Only LLM hints at downloads found", evidence}
	default:
		return IndicatorScore{nil, "No evidence of downloads", ""}
	}
}

// scoreAPIPresence rates machine interfaces (OAI-PMH, IIIF, SPARQL,
// REST...).
func scoreAPIPresence(r *aggregate.Result) IndicatorScore {
	var entries []string
	for _, p := range r.Pages {
		for _, api := range p.APIInterfaces {
			apiType := strings.TrimSpace(api.Type)
			if apiType == "" {
				apiType = "API"
			}
			if api.URL != "" {
				entries = append(entries, fmt.Sprintf("%s (%s)", apiType, api.URL))
			} else {
				entries = append(entries, apiType)
			}
		}
	}
	entries = sortedUnique(entries)
	hints := collectHints(r.Pages, func(l *models.LLMAnalysis) models.Hint { return l.APIHint })

	evidence := joinEvidence(
		evidenceBlock("Technical APIs", entries),
		evidenceBlock("LLM analysis", hints),
	)

	switch {
	case len(entries) > 0:
		return IndicatorScore{scorePtr(100), "Technical APIs found", evidence}
	case len(hints) > 0:
		return IndicatorScore{scorePtr(50), "Only hints at APIs (LLM) found", evidence}
	default:
		return IndicatorScore{nil, "No evidence of APIs found", ""}
	}
}

// scoreXMLTEI rates XML/TEI presence from the scanned files. Only entries
// flagged as TEI count; plain XML files are not evidence on their own.
func scoreXMLTEI(r *aggregate.Result) IndicatorScore {
	var urls []string
	for _, entry := range r.XMLEntries {
		if entry.IsTEI && entry.URL != "" {
			urls = append(urls, normalize.StripQueryFragment(entry.URL))
		}
	}
	urls = sortedUnique(urls)
	hints := collectHints(r.Pages, func(l *models.LLMAnalysis) models.Hint { return l.TEIHint })

	evidence := joinEvidence(
		evidenceBlock("XML/TEI files", urls),
		evidenceBlock("LLM analysis", hints),
	)

	switch {
	case len(urls) > 0:
		return IndicatorScore{scorePtr(100), "XML/TEI files found", evidence}
	case len(hints) > 0:
		return IndicatorScore{scorePtr(50), "Only LLM hints at XML/TEI found", evidence}
	default:
		return IndicatorScore{nil, "No evidence of XML/TEI found", ""}
	}
}

// scoreRepositories rates public repository practice from the detected
// GitHub/GitLab repos. Semantic hints that merely repeat a found repo URL
// are suppressed.
func scoreRepositories(r *aggregate.Result) IndicatorScore {
	var links []string
	for _, repo := range r.GitHubRepos {
		if url := firstHTTP(repo.HTMLURL, repo.WebURL); url != "" {
			links = append(links, url)
		}
	}
	for _, repo := range r.GitLabRepos {
		if url := firstHTTP(repo.WebURL, repo.HTMLURL); url != "" {
			links = append(links, url)
		}
	}
	links = sortedUnique(links)

	linkSet := map[string]struct{}{}
	for _, l := range links {
		linkSet[l] = struct{}{}
	}
	var hints []string
	for _, h := range collectHints(r.Pages, func(l *models.LLMAnalysis) models.Hint { return l.RepositoriesHint }) {
		if _, dup := linkSet[h]; !dup {
			hints = append(hints, h)
		}
	}

	evidence := joinEvidence(
		evidenceBlock("Repositories found", links),
		evidenceBlock("LLM hints", hints),
	)

	switch {
	case len(links) > 0:
		return IndicatorScore{scorePtr(100), "Public GitHub/GitLab repositories found", evidence}
	case len(hints) > 0:
		return IndicatorScore{scorePtr(50), "Only hints at repositories (LLM fallback) found", evidence}
	default:
		return IndicatorScore{nil, "No evidence of repositories found", ""}
	}
}

func firstHTTP(urls ...string) string {
	for _, u := range urls {
		if strings.HasPrefix(u, "http") {
			return u
		}
	}
	return ""
}

// scoreLinkFunctionality rates internal link stability. Links are deduped
// by URL with the first observed status winning, then every status is
// classified as ok or fail.
func scoreLinkFunctionality(links []models.LinkFact) IndicatorScore {
	if len(links) == 0 {
		return IndicatorScore{nil, "No link checks available", ""}
	}

	deduped := normalize.DedupBy(links, func(l models.LinkFact) string { return strings.TrimSpace(l.URL) })
	var usable []models.LinkFact
	for _, l := range deduped {
		if strings.TrimSpace(l.URL) != "" {
			usable = append(usable, l)
		}
	}
	if len(usable) == 0 {
		return IndicatorScore{nil, "No assessable links detected", ""}
	}

	ok := 0
	for _, l := range usable {
		if normalize.StatusOK(l.Status) {
			ok++
		}
	}
	total := len(usable)
	score := int(math.Round(100 * float64(ok) / float64(total)))

	var evidence string
	switch {
	case score == 100:
		evidence = "All internal links work reliably."
	case score >= 90:
		evidence = "Most internal links work reliably."
	case score >= 70:
		evidence = "Link stability is solid overall, but some internal links are broken."
	case score >= 40:
		evidence = "Roughly half of the internal links work; there are clear technical problems."
	case score >= 10:
		evidence = "Most internal links are broken. Technical stability is limited."
	default:
		evidence = "Almost all internal links are broken. The site has severe technical problems."
	}

	return IndicatorScore{
		Score:    scorePtr(score),
		Verdict:  fmt.Sprintf("%d of %d links functional", ok, total),
		Evidence: evidence,
	}
}

// scorePersistentIDs rates persistent identifier usage (DOI, Handle, ARK,
// URN, ORCID, arXiv). Plain URIs do not count.
func scorePersistentIDs(r *aggregate.Result) IndicatorScore {
	var found []string
	for _, p := range r.Pages {
		for _, link := range p.AllLinks() {
			if link.PersistentType != "" && link.PersistentType != "uri" {
				found = append(found, fmt.Sprintf("%s: %s", link.PersistentType, link.URL))
			}
		}
	}
	found = sortedUnique(found)
	hints := collectHints(r.Pages, func(l *models.LLMAnalysis) models.Hint { return l.PersistentIdentifierHint })

	evidence := joinEvidence(
		evidenceBlock("Persistent identifiers", found),
		evidenceBlock("LLM analysis", hints),
	)

	switch {
	case len(found) > 0:
		return IndicatorScore{scorePtr(100), "Persistent identifiers detected", evidence}
	case len(hints) > 0:
		return IndicatorScore{scorePtr(50), "Semantic hints at persistent identifiers (LLM)", evidence}
	default:
		return IndicatorScore{nil, "No evidence of persistent identifiers found", ""}
	}
}

// scoreOpenLicense combines repository licenses with the institutional
// license stated on the site. Repository evidence wins: any open repo
// license scores 100 even if proprietary licenses coexist.
func scoreOpenLicense(r *aggregate.Result) IndicatorScore {
	var institutional []string
	for _, p := range r.Pages {
		if p.LLM != nil && p.LLM.License.Present() {
			institutional = p.LLM.License.Values()
			break
		}
	}
	instIsOpen := anyOpenLicense(institutional)

	repos := append(append([]models.Repo{}, r.GitHubRepos...), r.GitLabRepos...)
	var repoLicenses []string
	repoHasOpen := false
	repoHasProprietary := false
	for _, repo := range repos {
		if repo.License == nil || repo.License.Name == "" {
			continue
		}
		repoLicenses = append(repoLicenses, repo.License.Name)
		if isOpenLicense(repo.License.Name) {
			repoHasOpen = true
		} else {
			repoHasProprietary = true
		}
	}

	var score *int
	switch {
	case len(repos) > 0 && repoHasOpen:
		score = scorePtr(100)
	case len(repos) > 0 && repoHasProprietary:
		score = scorePtr(0)
	case instIsOpen:
		score = scorePtr(50)
	case len(repos) == 0 && len(institutional) > 0:
		score = scorePtr(0)
	}

	var verdict string
	switch {
	case score != nil && *score == 100:
		verdict = "Open license found (technical evidence)"
	case score != nil && *score == 50:
		verdict = "Open license per institutional/LLM statement"
	case score != nil && *score == 0:
		verdict = "Proprietary license found"
	default:
		verdict = "No license information found"
	}

	var instBlock string
	if len(institutional) > 0 {
		instBlock = "Institutional license (LLM): " + strings.Join(institutional, ", ")
	}
	return IndicatorScore{
		Score:   score,
		Verdict: verdict,
		Evidence: joinEvidence(
			evidenceBlock("Repository licenses", sortedUnique(repoLicenses)),
			instBlock,
		),
	}
}
