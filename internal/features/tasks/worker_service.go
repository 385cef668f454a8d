package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"importhub/internal/config"

	"golang.org/x/sync/errgroup"
)

const taskPollingInterval = 1 * time.Second

type TaskHandler func(ctx context.Context, payload json.RawMessage) error

// TaskWorkerService runs a fixed pool of workers draining the task queue.
// Workers poll every second and run each task to completion before taking
// the next one. Only background instances start workers, web instances just
// dispatch.
type TaskWorkerService struct {
	queue        TaskQueue
	logger       *slog.Logger
	workersCount int

	handlersMutex sync.RWMutex
	handlers      map[TaskName]TaskHandler

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
}

func NewTaskWorkerService(queue TaskQueue, workersCount int, logger *slog.Logger) *TaskWorkerService {
	return &TaskWorkerService{
		queue:        queue,
		logger:       logger,
		workersCount: max(workersCount, 1),
		handlers:     make(map[TaskName]TaskHandler),
	}
}

func (s *TaskWorkerService) SetQueue(queue TaskQueue) {
	s.queue = queue
}

func (s *TaskWorkerService) SetWorkersCount(workersCount int) {
	s.workersCount = max(workersCount, 1)
}

func (s *TaskWorkerService) RegisterHandler(name TaskName, handler TaskHandler) {
	s.handlersMutex.Lock()
	defer s.handlersMutex.Unlock()

	s.handlers[name] = handler
}

func (s *TaskWorkerService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.group, s.ctx = errgroup.WithContext(s.ctx)

	s.logger.Info("Starting task workers",
		slog.Int("workerCount", s.workersCount),
		slog.Duration("interval", taskPollingInterval))

	for workerID := range s.workersCount {
		s.group.Go(func() error {
			s.runWorker(workerID)
			return nil
		})
	}
}

// StopWorkers cancels the workers and waits for running tasks to finish.
func (s *TaskWorkerService) StopWorkers() {
	if s.cancel == nil {
		return
	}

	s.cancel()
	_ = s.group.Wait()

	s.logger.Info("Task workers stopped")
}

// ExecuteBackgroundTasksForTest drains the queue on the calling goroutine so
// tests do not wait for the polling interval.
func (s *TaskWorkerService) ExecuteBackgroundTasksForTest(ctx context.Context) {
	s.drainQueue(ctx, 0)
}

func (s *TaskWorkerService) runWorker(workerID int) {
	ticker := time.NewTicker(taskPollingInterval)
	defer ticker.Stop()

	s.logger.Info("Task worker started", slog.Int("workerID", workerID))

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Task worker shutting down due to shutdown signal", slog.Int("workerID", workerID))
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Task worker shutting down", slog.Int("workerID", workerID))
			return

		case <-ticker.C:
			s.drainQueue(s.ctx, workerID)
		}
	}
}

func (s *TaskWorkerService) drainQueue(ctx context.Context, workerID int) {
	for ctx.Err() == nil && !config.IsShouldShutdown() {
		items, err := s.queue.DequeueBatch(TasksQueueKey, 1)
		if err != nil {
			s.logger.Error("Failed to dequeue task",
				slog.Int("workerID", workerID),
				slog.String("error", err.Error()))
			return
		}

		if len(items) == 0 {
			return
		}

		s.processTask(ctx, workerID, items[0])
	}
}

func (s *TaskWorkerService) processTask(ctx context.Context, workerID int, item []byte) {
	var task Task
	if err := json.Unmarshal(item, &task); err != nil {
		s.logger.Error("Dropping malformed task",
			slog.Int("workerID", workerID),
			slog.String("error", err.Error()))
		return
	}

	s.handlersMutex.RLock()
	handler, ok := s.handlers[task.Name]
	s.handlersMutex.RUnlock()

	if !ok {
		s.logger.Warn("No handler registered for task",
			slog.String("task", string(task.Name)),
			slog.String("taskID", task.ID.String()))
		return
	}

	startedAt := time.Now()
	if err := s.runHandler(ctx, handler, task.Payload); err != nil {
		s.logger.Error("Task failed",
			slog.Int("workerID", workerID),
			slog.String("task", string(task.Name)),
			slog.String("taskID", task.ID.String()),
			slog.String("error", err.Error()))
		return
	}

	s.logger.Info("Task completed",
		slog.Int("workerID", workerID),
		slog.String("task", string(task.Name)),
		slog.String("taskID", task.ID.String()),
		slog.Duration("duration", time.Since(startedAt)))
}

func (s *TaskWorkerService) runHandler(ctx context.Context, handler TaskHandler, payload json.RawMessage) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("task handler panicked: %v", recovered)
		}
	}()

	return handler(ctx, payload)
}
