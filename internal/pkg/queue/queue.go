package queue

import (
	"errors"
	"sync"

	"edanalyzer/internal/pkg/models"
)

var (
	ErrQueueFull  = errors.New("queue is full")
	ErrQueueEmpty = errors.New("queue is empty")
)

// Queue is a bounded FIFO of pending analysis requests. The service
// enqueues, the worker pool drains.
type Queue struct {
	mu       sync.Mutex
	capacity int
	q        []models.AnalysisRequest
}

// CreateQueue returns an empty queue with the specified capacity.
func CreateQueue(capacity int) (*Queue, error) {
	if capacity <= 0 {
		return nil, errors.New("capacity should be greater than 0")
	}
	return &Queue{
		capacity: capacity,
		q:        make([]models.AnalysisRequest, 0, capacity),
	}, nil
}

// Insert appends a request, failing when the queue is at capacity.
func (q *Queue) Insert(item models.AnalysisRequest) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.q) >= q.capacity {
		return ErrQueueFull
	}
	q.q = append(q.q, item)
	return nil
}

// Remove pops the oldest request.
func (q *Queue) Remove() (models.AnalysisRequest, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.q) == 0 {
		return models.AnalysisRequest{}, ErrQueueEmpty
	}
	item := q.q[0]
	q.q = q.q[1:]
	return item, nil
}

// Length returns the number of pending requests.
func (q *Queue) Length() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.q)
}

// IsEmpty reports whether the queue holds no requests.
func (q *Queue) IsEmpty() bool {
	return q.Length() == 0
}
