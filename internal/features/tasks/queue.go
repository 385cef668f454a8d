package tasks

const TasksQueueKey = "importhub:tasks:queue"

// TaskQueue is a FIFO of encoded tasks. cache_utils.ValkeyQueueService is
// the production implementation.
type TaskQueue interface {
	Enqueue(queueKey string, item []byte) error
	DequeueBatch(queueKey string, maxCount int) ([][]byte, error)
}
