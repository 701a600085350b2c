package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"edanalyzer/internal/pkg/logger"
	"edanalyzer/internal/pkg/metrics"
)

// BulkSink buffers finished analysis results and ships them in bulk to an
// Elasticsearch-compatible endpoint. A flush happens when the buffer
// reaches the threshold, when the interval elapses, or on Stop.
type BulkSink struct {
	mutex        sync.Mutex
	buffer       []any
	threshold    int
	flushChannel chan struct{}
	done         chan struct{}
	bulkURL      string
	indexName    string
	interval     time.Duration
}

// NewBulkSink starts the background flusher and returns the sink.
func NewBulkSink(bulkURL, indexName string, threshold int, interval time.Duration) *BulkSink {
	s := &BulkSink{
		buffer:       make([]any, 0, threshold),
		threshold:    threshold,
		flushChannel: make(chan struct{}, 1),
		done:         make(chan struct{}),
		bulkURL:      bulkURL,
		indexName:    indexName,
		interval:     interval,
	}
	go s.startFlushing()
	logger.Log.Info("Result sink started",
		zap.String("url", bulkURL),
		zap.String("index", indexName),
		zap.Int("threshold", threshold))
	return s
}

func (s *BulkSink) startFlushing() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.flushChannel:
			s.flush()
		case <-ticker.C:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

// Export adds a result to the buffer and signals a flush once the
// threshold is met.
func (s *BulkSink) Export(result any) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.buffer = append(s.buffer, result)
	if len(s.buffer) >= s.threshold {
		select {
		case s.flushChannel <- struct{}{}:
		default:
			// flush already signaled
		}
	}
}

// Stop flushes the remaining buffer and ends the background flusher.
func (s *BulkSink) Stop() {
	close(s.done)
}

// flush builds the NDJSON payload and sends it off.
func (s *BulkSink) flush() {
	s.mutex.Lock()
	if len(s.buffer) == 0 {
		s.mutex.Unlock()
		return
	}
	toExport := s.buffer
	s.buffer = make([]any, 0, s.threshold)
	s.mutex.Unlock()

	var payload bytes.Buffer
	for _, result := range toExport {
		meta := map[string]map[string]string{
			"index": {"_index": s.indexName},
		}
		metaLine, err := json.Marshal(meta)
		if err != nil {
			logger.Log.Error("Failed to marshal meta line", zap.Error(err))
			continue
		}
		payload.Write(metaLine)
		payload.WriteByte('\n')

		resultLine, err := json.Marshal(result)
		if err != nil {
			logger.Log.Error("Failed to marshal result", zap.Error(err))
			continue
		}
		payload.Write(resultLine)
		payload.WriteByte('\n')
	}

	logger.Log.Info("Flushing results to sink", zap.Int("count", len(toExport)))
	metrics.SinkFlushes.Inc()
	metrics.ResultsExported.Add(float64(len(toExport)))

	go s.sendBulkRequest(payload.Bytes())
}

func (s *BulkSink) sendBulkRequest(payload []byte) {
	request, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.bulkURL, bytes.NewReader(payload))
	if err != nil {
		logger.Log.Error("Failed to create bulk request", zap.Error(err))
		metrics.SinkFailures.Inc()
		return
	}
	request.Header.Set("Content-Type", "application/x-ndjson")

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		logger.Log.Error("Bulk request failed", zap.Error(err))
		metrics.SinkFailures.Inc()
		return
	}
	defer response.Body.Close()

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		logger.Log.Info("Bulk export successful", zap.Int("status_code", response.StatusCode))
	} else {
		logger.Log.Warn("Bulk export failed", zap.Int("status_code", response.StatusCode))
		metrics.SinkFailures.Inc()
	}
}
