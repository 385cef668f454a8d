package tasks_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"importhub/internal/features/tasks"
	tasks_testing "importhub/internal/features/tasks/testing"
	"importhub/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Dispatch_WritesEnvelopeToTasksQueue(t *testing.T) {
	queue := tasks_testing.NewMemoryQueue()
	dispatcher := tasks.NewTaskDispatcher(queue, logger.GetLogger())
	importerID := uuid.New()

	taskID, err := dispatcher.DispatchServiceImporter("github", importerID)
	require.NoError(t, err)

	queued := queue.Tasks()
	require.Len(t, queued, 1)
	assert.Equal(t, taskID, queued[0].ID)
	assert.Equal(t, tasks.TaskNameServiceImporter, queued[0].Name)
	assert.False(t, queued[0].EnqueuedAt.IsZero())

	var payload tasks.ServiceImporterPayload
	require.NoError(t, json.Unmarshal(queued[0].Payload, &payload))
	assert.Equal(t, "github", payload.Service)
	assert.Equal(t, importerID, payload.ImporterID)
}

func Test_Dispatch_WhenQueueFails_ReturnsError(t *testing.T) {
	queue := tasks_testing.NewMemoryQueue()
	queue.FailWith(errors.New("valkey is down"))
	dispatcher := tasks.NewTaskDispatcher(queue, logger.GetLogger())

	_, err := dispatcher.DispatchWelcomeEmail(uuid.New(), true, "imported")

	assert.ErrorContains(t, err, "valkey is down")
}

func Test_ExecuteBackgroundTasksForTest_RunsHandlersInQueueOrder(t *testing.T) {
	queue := tasks_testing.NewMemoryQueue()
	dispatcher := tasks.NewTaskDispatcher(queue, logger.GetLogger())
	worker := tasks.NewTaskWorkerService(queue, 1, logger.GetLogger())

	var handled []uuid.UUID
	worker.RegisterHandler(tasks.TaskNameSendWelcomeEmail, func(ctx context.Context, payload json.RawMessage) error {
		var welcome tasks.SendWelcomeEmailPayload
		if err := json.Unmarshal(payload, &welcome); err != nil {
			return err
		}

		handled = append(handled, welcome.UserID)
		return nil
	})

	first, second := uuid.New(), uuid.New()
	_, err := dispatcher.DispatchWelcomeEmail(first, true, "first")
	require.NoError(t, err)
	_, err = dispatcher.DispatchWelcomeEmail(second, true, "second")
	require.NoError(t, err)

	worker.ExecuteBackgroundTasksForTest(context.Background())

	assert.Equal(t, []uuid.UUID{first, second}, handled)
	assert.Empty(t, queue.Tasks())
}

func Test_ExecuteBackgroundTasksForTest_WhenHandlerFailsOrPanics_ContinuesWithNextTask(t *testing.T) {
	queue := tasks_testing.NewMemoryQueue()
	dispatcher := tasks.NewTaskDispatcher(queue, logger.GetLogger())
	worker := tasks.NewTaskWorkerService(queue, 1, logger.GetLogger())

	calls := 0
	worker.RegisterHandler(tasks.TaskNameServiceImporter, func(ctx context.Context, payload json.RawMessage) error {
		calls++
		switch calls {
		case 1:
			return errors.New("boom")
		case 2:
			panic("unexpected")
		}
		return nil
	})

	for range 3 {
		_, err := dispatcher.DispatchServiceImporter("jira", uuid.New())
		require.NoError(t, err)
	}

	require.NoError(t, queue.Enqueue(tasks.TasksQueueKey, []byte("not json")))
	_, err := dispatcher.Dispatch("unknown_task", map[string]string{})
	require.NoError(t, err)

	worker.ExecuteBackgroundTasksForTest(context.Background())

	assert.Equal(t, 3, calls)
	assert.Empty(t, queue.Tasks())
}

func Test_StartWorkers_ProcessesQueuedTasksUntilStopped(t *testing.T) {
	queue := tasks_testing.NewMemoryQueue()
	dispatcher := tasks.NewTaskDispatcher(queue, logger.GetLogger())
	worker := tasks.NewTaskWorkerService(queue, 2, logger.GetLogger())

	var wg sync.WaitGroup
	wg.Add(3)
	worker.RegisterHandler(tasks.TaskNameSendWelcomeEmail, func(ctx context.Context, payload json.RawMessage) error {
		wg.Done()
		return nil
	})

	for range 3 {
		_, err := dispatcher.DispatchWelcomeEmail(uuid.New(), true, "worker")
		require.NoError(t, err)
	}

	worker.StartWorkers()
	defer worker.StopWorkers()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("tasks were not processed in time")
	}
}
