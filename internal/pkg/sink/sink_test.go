package sink

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// Verifies that when the threshold is met, the BulkSink flushes the
// buffered results to the (simulated) bulk endpoint as NDJSON.
func TestBulkSinkFlushOnThreshold(t *testing.T) {
	payloadCh := make(chan []byte, 1)

	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("Failed to read request body: %v", err)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-ndjson" {
			t.Errorf("Expected Content-Type application/x-ndjson, got %q", ct)
		}
		payloadCh <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer testServer.Close()

	threshold := 2
	indexName := "test_analyses"
	// Long interval so the flush comes only from the threshold.
	s := NewBulkSink(testServer.URL, indexName, threshold, time.Minute)
	defer s.Stop()

	s.Export(map[string]string{"url": "https://edition.example/one"})
	s.Export(map[string]string{"url": "https://edition.example/two"})

	select {
	case payload := <-payloadCh:
		scanner := bufio.NewScanner(bytes.NewReader(payload))
		var lines []string
		for scanner.Scan() {
			if strings.TrimSpace(scanner.Text()) != "" {
				lines = append(lines, scanner.Text())
			}
		}
		expectedLines := threshold * 2
		if len(lines) != expectedLines {
			t.Errorf("Expected %d NDJSON lines (2 per result), got %d", expectedLines, len(lines))
		}

		var meta map[string]map[string]string
		if err := json.Unmarshal([]byte(lines[0]), &meta); err != nil {
			t.Errorf("Failed to unmarshal meta line: %v", err)
		}
		if meta["index"]["_index"] != indexName {
			t.Errorf("Expected _index to be %q, got %q", indexName, meta["index"]["_index"])
		}
	case <-time.After(3 * time.Second):
		t.Error("Timed out waiting for flush payload")
	}
}

// Verifies that Stop flushes whatever is still buffered.
func TestBulkSinkFlushOnStop(t *testing.T) {
	payloadCh := make(chan []byte, 1)

	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		payloadCh <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer testServer.Close()

	s := NewBulkSink(testServer.URL, "test_analyses", 10, time.Minute)
	s.Export(map[string]string{"url": "https://edition.example/"})
	s.Stop()

	select {
	case payload := <-payloadCh:
		if !bytes.Contains(payload, []byte("https://edition.example/")) {
			t.Errorf("Expected the buffered result in the payload, got %s", payload)
		}
	case <-time.After(3 * time.Second):
		t.Error("Timed out waiting for flush on stop")
	}
}
