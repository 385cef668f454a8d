package tasks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// TaskDispatcher enqueues tasks for the background workers. Every dispatch is
// a single enqueue attempt: tasks are delivered at most once.
type TaskDispatcher struct {
	queue  TaskQueue
	logger *slog.Logger
}

func NewTaskDispatcher(queue TaskQueue, logger *slog.Logger) *TaskDispatcher {
	return &TaskDispatcher{
		queue:  queue,
		logger: logger,
	}
}

func (d *TaskDispatcher) SetQueue(queue TaskQueue) {
	d.queue = queue
}

func (d *TaskDispatcher) Dispatch(name TaskName, payload any) (uuid.UUID, error) {
	encodedPayload, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode %s payload: %w", name, err)
	}

	task := &Task{
		ID:         uuid.New(),
		Name:       name,
		Payload:    encodedPayload,
		EnqueuedAt: time.Now().UTC(),
	}

	encodedTask, err := json.Marshal(task)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode %s task: %w", name, err)
	}

	if err := d.queue.Enqueue(TasksQueueKey, encodedTask); err != nil {
		return uuid.Nil, fmt.Errorf("failed to enqueue %s task: %w", name, err)
	}

	d.logger.Debug("Task dispatched", slog.String("task", string(name)), slog.String("taskID", task.ID.String()))

	return task.ID, nil
}

func (d *TaskDispatcher) DispatchServiceImporter(service string, importerID uuid.UUID) (uuid.UUID, error) {
	return d.Dispatch(TaskNameServiceImporter, &ServiceImporterPayload{
		Service:    service,
		ImporterID: importerID,
	})
}

func (d *TaskDispatcher) DispatchWelcomeEmail(userID uuid.UUID, isNewUser bool, reason string) (uuid.UUID, error) {
	return d.Dispatch(TaskNameSendWelcomeEmail, &SendWelcomeEmailPayload{
		UserID:    userID,
		IsNewUser: isNewUser,
		Reason:    reason,
	})
}
