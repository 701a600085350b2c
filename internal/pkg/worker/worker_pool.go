package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"edanalyzer/internal/pkg/logger"
	"edanalyzer/internal/pkg/models"
	"edanalyzer/internal/pkg/queue"
)

// Handler runs one queued analysis request to completion.
type Handler func(ctx context.Context, request models.AnalysisRequest)

// Manages a pool of workers that drain the analysis queue in parallel.
type WorkerPool struct {
	numWorkers int
	queue      *queue.Queue
	handler    Handler
	wg         sync.WaitGroup
}

// Creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int, queue *queue.Queue, handler Handler) *WorkerPool {
	return &WorkerPool{
		numWorkers: numWorkers,
		queue:      queue,
		handler:    handler,
	}
}

// Launches the worker goroutines
func (wp *WorkerPool) Start(ctx context.Context) {
	logger.Log.Info("Starting worker pool", zap.Int("workers", wp.numWorkers))

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.runWorker(ctx, i)
	}
}

// Blocks until all workers have finished
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// The main loop for each worker goroutine
func (wp *WorkerPool) runWorker(ctx context.Context, id int) {
	defer wp.wg.Done()

	logger.Log.Info("Worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("Worker received stop signal", zap.Int("worker_id", id))
			return
		default:
			request, err := wp.queue.Remove()
			if err != nil {
				// If queue is empty, wait a bit before trying again
				time.Sleep(200 * time.Millisecond)
				continue
			}

			logger.Log.Debug("Worker picked up request",
				zap.Int("worker_id", id),
				zap.String("url", request.URL))

			wp.handler(ctx, request)
		}
	}
}
