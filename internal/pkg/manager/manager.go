package manager

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"edanalyzer/internal/pkg/aggregate"
	"edanalyzer/internal/pkg/logger"
	"edanalyzer/internal/pkg/metrics"
	"edanalyzer/internal/pkg/models"
	"edanalyzer/internal/pkg/report"
	"edanalyzer/internal/pkg/scoring"
)

// AnalysisResult is everything one analysis run produces: the raw
// aggregate, the scoring outcome and the assembled report, plus any
// warnings about degraded stages.
type AnalysisResult struct {
	URL       string            `json:"url"`
	MaxPages  int               `json:"max_pages"`
	StartedAt time.Time         `json:"started_at"`
	Duration  string            `json:"duration"`
	Warnings  []string          `json:"warnings,omitempty"`
	Aggregate *aggregate.Result `json:"aggregate"`
	Scoring   *scoring.Outcome  `json:"scoring"`
	Report    *report.ViewModel `json:"report"`
}

// Manager runs the full analysis pipeline: crawl, enrich, aggregate,
// score, report.
type Manager struct {
	collaborators Collaborators
	concluder     report.Concluder
	weights       scoring.Weights
	minCriteria   int
}

func New(collaborators Collaborators, concluder report.Concluder, weights scoring.Weights, minCriteria int) *Manager {
	return &Manager{
		collaborators: collaborators,
		concluder:     concluder,
		weights:       weights,
		minCriteria:   minCriteria,
	}
}

// HandleAnalysis runs one complete analysis. Collaborator failures
// degrade the run and are recorded as warnings; a report is produced
// even when every stage fails.
func (m *Manager) HandleAnalysis(ctx context.Context, request models.AnalysisRequest) *AnalysisResult {
	started := time.Now()
	metrics.AnalysesTotal.Inc()
	logger.Log.Info("Starting analysis",
		zap.String("url", request.URL),
		zap.Int("max_pages", request.MaxPages))

	var warnings []string
	warn := func(stage string, err error) {
		metrics.CollaboratorFailures.WithLabelValues(stage).Inc()
		msg := fmt.Sprintf("%s failed: %v", stage, err)
		warnings = append(warnings, msg)
		logger.Log.Warn("Pipeline stage degraded",
			zap.String("stage", stage),
			zap.String("url", request.URL),
			zap.Error(err))
	}

	pages := m.crawl(ctx, request, warn)
	m.enrich(ctx, pages, warn)
	infra, overview := m.scanInfrastructure(ctx, request.URL, warn)
	technologies := m.fingerprint(ctx, request.URL, warn)

	agg := aggregate.Build(pages, infra, overview, technologies)
	outcome := scoring.Compute(agg, m.weights, m.minCriteria)
	view := report.Build(agg, outcome)
	if m.concluder != nil {
		view.Conclusion = m.concluder.Conclude(ctx, view)
	}

	duration := time.Since(started)
	metrics.AnalysisDuration.Observe(duration.Seconds())
	logger.Log.Info("Analysis finished",
		zap.String("url", request.URL),
		zap.Int("pages", len(pages)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", duration))

	return &AnalysisResult{
		URL:       request.URL,
		MaxPages:  request.MaxPages,
		StartedAt: started,
		Duration:  duration.String(),
		Warnings:  warnings,
		Aggregate: agg,
		Scoring:   outcome,
		Report:    view,
	}
}

func (m *Manager) crawl(ctx context.Context, request models.AnalysisRequest, warn func(string, error)) []models.PageRecord {
	if m.collaborators.Crawler == nil {
		warn("crawler", fmt.Errorf("not configured"))
		return nil
	}
	pages, err := runStage(ctx, "crawler", func(ctx context.Context) ([]models.PageRecord, error) {
		return m.collaborators.Crawler.Crawl(ctx, request.URL, request.MaxPages)
	})
	if err != nil {
		warn("crawler", err)
		return nil
	}
	return pages
}

type pipelineStage struct {
	name string
	run  func(context.Context, []models.PageRecord) error
}

// enrich runs all page-level collaborators in a fixed order. Stages are
// independent; a failure skips only that stage's annotations.
func (m *Manager) enrich(ctx context.Context, pages []models.PageRecord, warn func(string, error)) {
	if len(pages) == 0 {
		return
	}

	var stages []pipelineStage
	add := func(name string, run func(context.Context, []models.PageRecord) error) {
		stages = append(stages, pipelineStage{name, run})
	}
	if m.collaborators.Links != nil {
		add("link_checker", m.collaborators.Links.CheckLinks)
	}
	if m.collaborators.PersistentIDs != nil {
		add("persistent_id_detector", m.collaborators.PersistentIDs.DetectPersistentIDs)
	}
	if m.collaborators.Downloads != nil {
		add("download_detector", m.collaborators.Downloads.DetectDownloads)
	}
	if m.collaborators.Metadata != nil {
		add("metadata_checker", m.collaborators.Metadata.CheckMetadata)
	}
	if m.collaborators.Normdata != nil {
		add("normdata_collector", m.collaborators.Normdata.CollectNormdata)
	}
	if m.collaborators.APIs != nil {
		add("api_detector", m.collaborators.APIs.DetectAPIs)
	}
	if m.collaborators.XML != nil {
		add("xml_analyzer", m.collaborators.XML.AnalyzeXML)
	}
	if m.collaborators.Repos != nil {
		add("repo_analyzer", m.collaborators.Repos.AnalyzeRepos)
	}
	if m.collaborators.FAIR != nil {
		add("fair_checker", m.collaborators.FAIR.CheckFAIR)
	}
	if m.collaborators.Semantics != nil {
		add("semantic_extractor", m.collaborators.Semantics.Extract)
	}

	for _, stage := range stages {
		run := stage.run
		_, err := runStage(ctx, stage.name, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, run(ctx, pages)
		})
		if err != nil {
			warn(stage.name, err)
		}
	}
}

func (m *Manager) scanInfrastructure(ctx context.Context, siteURL string, warn func(string, error)) (models.InfraScan, models.InfraOverview) {
	if m.collaborators.Infrastructure == nil {
		return nil, models.InfraOverview{}
	}
	type scanResult struct {
		scan     models.InfraScan
		overview models.InfraOverview
	}
	result, err := runStage(ctx, "infra_scanner", func(ctx context.Context) (scanResult, error) {
		scan, overview, err := m.collaborators.Infrastructure.Scan(ctx, siteURL)
		return scanResult{scan, overview}, err
	})
	if err != nil {
		warn("infra_scanner", err)
		return nil, models.InfraOverview{}
	}
	return result.scan, result.overview
}

func (m *Manager) fingerprint(ctx context.Context, siteURL string, warn func(string, error)) []models.Technology {
	if m.collaborators.Fingerprinter == nil {
		return nil
	}
	technologies, err := runStage(ctx, "tech_fingerprinter", func(ctx context.Context) ([]models.Technology, error) {
		return m.collaborators.Fingerprinter.Fingerprint(ctx, siteURL)
	})
	if err != nil {
		warn("tech_fingerprinter", err)
		return nil
	}
	return technologies
}

// runStage executes one collaborator call and converts a panic into an
// error, so no collaborator can take down the pipeline.
func runStage[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Pipeline stage panicked",
				zap.String("stage", name),
				zap.Any("panic", r))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
