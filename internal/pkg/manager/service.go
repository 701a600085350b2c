package manager

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"edanalyzer/internal/pkg/cache"
	"edanalyzer/internal/pkg/config"
	"edanalyzer/internal/pkg/logger"
	"edanalyzer/internal/pkg/models"
	"edanalyzer/internal/pkg/queue"
	"edanalyzer/internal/pkg/sink"
	"edanalyzer/internal/pkg/worker"
)

// Service exposes the analysis pipeline over HTTP. Requests are queued
// and drained by a worker pool; finished results land in the cache and,
// when configured, in the bulk sink.
type Service struct {
	manager    *Manager
	queue      *queue.Queue
	workerPool *worker.WorkerPool
	cache      cache.ResultCache
	sink       *sink.BulkSink
	maxPages   int
	numWorkers int
	startTime  time.Time
}

// NewService wires the queue, worker pool, cache and sink around a
// manager. The cache and sink may be nil; the service then runs without
// result reuse or export.
func NewService(cfg *config.Config, mgr *Manager, resultCache cache.ResultCache, resultSink *sink.BulkSink) (*Service, error) {
	requestQueue, err := queue.CreateQueue(cfg.QueueCapacity)
	if err != nil {
		return nil, err
	}

	numWorkers := cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = 1
	}

	service := &Service{
		manager:    mgr,
		queue:      requestQueue,
		cache:      resultCache,
		sink:       resultSink,
		maxPages:   cfg.MaxPages,
		numWorkers: numWorkers,
		startTime:  time.Now(),
	}
	service.workerPool = worker.NewWorkerPool(numWorkers, requestQueue, service.process)
	return service, nil
}

// Start launches the worker pool and the HTTP server. It blocks until
// the server fails, so callers run it in a goroutine.
func (s *Service) Start(ctx context.Context, port string) {
	s.workerPool.Start(ctx)

	http.HandleFunc("/analyze", s.handleAnalyze)
	http.HandleFunc("/result", s.handleResult)
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", s.handleHealth)

	logger.Log.Info("HTTP analysis service listening", zap.String("address", ":"+port))

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Log.Fatal("Failed to start analysis service", zap.Error(err))
	}
}

// Stop waits for in-flight analyses to finish and flushes the sink.
// The caller cancels the worker context before calling Stop.
func (s *Service) Stop() {
	logger.Log.Info("Waiting for worker pool to finish in-flight analyses")
	s.workerPool.Wait()

	if s.sink != nil {
		logger.Log.Info("Worker pool shutdown complete, stopping result sink")
		s.sink.Stop()
	}

	logger.Log.Info("Analysis service stopped gracefully")
}

// process runs one queued request end to end. Cached results short-
// circuit the pipeline.
func (s *Service) process(ctx context.Context, request models.AnalysisRequest) {
	if s.cache != nil {
		var cached AnalysisResult
		if s.cache.Get(ctx, request.URL, &cached) {
			logger.Log.Info("Serving analysis from cache", zap.String("url", request.URL))
			return
		}
	}

	result := s.manager.HandleAnalysis(ctx, request)

	if s.cache != nil {
		s.cache.Set(ctx, request.URL, result)
	}
	if s.sink != nil {
		s.sink.Export(result)
	}
}

func (s *Service) handleAnalyze(writer http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(writer, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := request.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		http.Error(writer, "expected Content-Type: application/json", http.StatusUnsupportedMediaType)
		logger.Log.Warn("Unsupported Content-Type", zap.String("content_type", contentType))
		return
	}

	var analysisRequest models.AnalysisRequest
	if err := json.NewDecoder(request.Body).Decode(&analysisRequest); err != nil {
		http.Error(writer, "failed to decode request", http.StatusBadRequest)
		logger.Log.Warn("Failed to decode analysis request", zap.Error(err))
		return
	}
	if strings.TrimSpace(analysisRequest.URL) == "" {
		http.Error(writer, "url is required", http.StatusBadRequest)
		return
	}
	if analysisRequest.MaxPages <= 0 {
		analysisRequest.MaxPages = s.maxPages
	}

	if err := s.queue.Insert(analysisRequest); err != nil {
		http.Error(writer, "analysis queue is full", http.StatusServiceUnavailable)
		logger.Log.Error("Failed to enqueue analysis request", zap.Error(err))
		return
	}

	writer.WriteHeader(http.StatusAccepted)
	writer.Write([]byte("Analysis request enqueued"))
}

// handleResult serves a finished analysis from the cache.
func (s *Service) handleResult(writer http.ResponseWriter, request *http.Request) {
	siteURL := request.URL.Query().Get("url")
	if siteURL == "" {
		http.Error(writer, "url query parameter is required", http.StatusBadRequest)
		return
	}
	if s.cache == nil {
		http.Error(writer, "result cache is not configured", http.StatusNotFound)
		return
	}

	var result AnalysisResult
	if !s.cache.Get(request.Context(), siteURL, &result) {
		http.Error(writer, "no result for this url", http.StatusNotFound)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	json.NewEncoder(writer).Encode(result)
}

func (s *Service) handleHealth(writer http.ResponseWriter, request *http.Request) {
	health := struct {
		Status     string    `json:"status"`
		QueueDepth int       `json:"queue_depth"`
		Workers    int       `json:"workers"`
		Uptime     string    `json:"uptime"`
		StartTime  time.Time `json:"start_time"`
	}{
		Status:     "OK",
		QueueDepth: s.queue.Length(),
		Workers:    s.numWorkers,
		Uptime:     time.Since(s.startTime).String(),
		StartTime:  s.startTime,
	}

	writer.Header().Set("Content-Type", "application/json")
	json.NewEncoder(writer).Encode(health)
}
