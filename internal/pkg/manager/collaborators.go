package manager

import (
	"context"

	"edanalyzer/internal/pkg/models"
)

// Collaborator contracts for the analysis pipeline. The crawler produces
// page records; the enrichment stages annotate them in place; the
// site-level collaborators inspect the host once. Every collaborator is
// optional: a nil entry skips its stage and a failing one degrades the
// run with a warning, it never aborts it.

// Crawler fetches the start page and up to maxPages pages of the site.
type Crawler interface {
	Crawl(ctx context.Context, siteURL string, maxPages int) ([]models.PageRecord, error)
}

// LinkChecker resolves the status of every internal and external link.
type LinkChecker interface {
	CheckLinks(ctx context.Context, pages []models.PageRecord) error
}

// PersistentIDDetector tags links carrying a persistent identifier
// (doi, handle, ark, urn, orcid, arxiv).
type PersistentIDDetector interface {
	DetectPersistentIDs(ctx context.Context, pages []models.PageRecord) error
}

// DownloadDetector finds downloadable artifacts on each page.
type DownloadDetector interface {
	DetectDownloads(ctx context.Context, pages []models.PageRecord) error
}

// MetadataChecker examines structured metadata (JSON-LD, RDF) and
// controlled vocabularies.
type MetadataChecker interface {
	CheckMetadata(ctx context.Context, pages []models.PageRecord) error
}

// NormdataCollector finds authority-data references (GND, VIAF,
// Wikidata...).
type NormdataCollector interface {
	CollectNormdata(ctx context.Context, pages []models.PageRecord) error
}

// APIDetector probes for machine interfaces (OAI-PMH, IIIF, SPARQL,
// REST).
type APIDetector interface {
	DetectAPIs(ctx context.Context, pages []models.PageRecord) error
}

// XMLAnalyzer scans linked XML resources and classifies TEI.
type XMLAnalyzer interface {
	AnalyzeXML(ctx context.Context, pages []models.PageRecord) error
}

// RepoAnalyzer resolves referenced GitHub/GitLab repositories.
type RepoAnalyzer interface {
	AnalyzeRepos(ctx context.Context, pages []models.PageRecord) error
}

// FAIRChecker runs the external FAIR assessment per page.
type FAIRChecker interface {
	CheckFAIR(ctx context.Context, pages []models.PageRecord) error
}

// SemanticExtractor fills the per-page semantic analysis.
type SemanticExtractor interface {
	Extract(ctx context.Context, pages []models.PageRecord) error
}

// InfraScanner inspects the hosting infrastructure of the site.
type InfraScanner interface {
	Scan(ctx context.Context, siteURL string) (models.InfraScan, models.InfraOverview, error)
}

// TechFingerprinter identifies the technologies serving the start page.
type TechFingerprinter interface {
	Fingerprint(ctx context.Context, siteURL string) ([]models.Technology, error)
}

// Collaborators bundles all pipeline dependencies.
type Collaborators struct {
	Crawler        Crawler
	Links          LinkChecker
	PersistentIDs  PersistentIDDetector
	Downloads      DownloadDetector
	Metadata       MetadataChecker
	Normdata       NormdataCollector
	APIs           APIDetector
	XML            XMLAnalyzer
	Repos          RepoAnalyzer
	FAIR           FAIRChecker
	Semantics      SemanticExtractor
	Infrastructure InfraScanner
	Fingerprinter  TechFingerprinter
}
