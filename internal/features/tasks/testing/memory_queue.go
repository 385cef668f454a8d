package tasks_testing

import (
	"encoding/json"
	"sync"

	"importhub/internal/features/tasks"
)

// MemoryQueue is an in-process task queue for tests.
type MemoryQueue struct {
	mutex sync.Mutex
	items map[string][][]byte
	err   error
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{items: make(map[string][][]byte)}
}

// FailWith makes every following Enqueue return err.
func (q *MemoryQueue) FailWith(err error) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	q.err = err
}

func (q *MemoryQueue) Enqueue(queueKey string, item []byte) error {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.err != nil {
		return q.err
	}

	q.items[queueKey] = append(q.items[queueKey], item)
	return nil
}

func (q *MemoryQueue) DequeueBatch(queueKey string, maxCount int) ([][]byte, error) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	queue := q.items[queueKey]
	count := min(maxCount, len(queue))

	batch := queue[:count]
	q.items[queueKey] = queue[count:]

	return batch, nil
}

// Tasks decodes the tasks still waiting in the shared task queue.
func (q *MemoryQueue) Tasks() []tasks.Task {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	result := make([]tasks.Task, 0, len(q.items[tasks.TasksQueueKey]))
	for _, item := range q.items[tasks.TasksQueueKey] {
		var task tasks.Task
		if err := json.Unmarshal(item, &task); err != nil {
			panic(err)
		}

		result = append(result, task)
	}

	return result
}

func (q *MemoryQueue) TasksByName(name tasks.TaskName) []tasks.Task {
	result := make([]tasks.Task, 0)
	for _, task := range q.Tasks() {
		if task.Name == name {
			result = append(result, task)
		}
	}

	return result
}
