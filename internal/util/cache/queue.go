package cache_utils

import (
	"context"
	"time"

	"importhub/internal/cache"

	"github.com/valkey-io/valkey-go"
)

const DefaultQueueTimeout = 30 * time.Second

// ValkeyQueueService is a FIFO queue on top of a valkey list:
// producers LPUSH, consumers RPOP. The client is resolved on first use so the
// service can be constructed without a reachable valkey.
type ValkeyQueueService struct {
	timeout time.Duration
}

func NewValkeyQueueService() *ValkeyQueueService {
	return &ValkeyQueueService{
		timeout: DefaultQueueTimeout,
	}
}

func (q *ValkeyQueueService) Enqueue(queueKey string, item []byte) error {
	return q.EnqueueBatch(queueKey, [][]byte{item})
}

func (q *ValkeyQueueService) EnqueueBatch(queueKey string, items [][]byte) error {
	if len(items) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	client := cache.GetCache()

	cmds := make([]valkey.Completed, 0, len(items))
	for _, item := range items {
		cmds = append(cmds, client.B().Lpush().Key(queueKey).Element(string(item)).Build())
	}

	for _, result := range client.DoMulti(ctx, cmds...) {
		if result.Error() != nil {
			return result.Error()
		}
	}

	return nil
}

// DequeueBatch pops up to maxCount items without blocking. An empty queue
// yields an empty slice and no error.
func (q *ValkeyQueueService) DequeueBatch(queueKey string, maxCount int) ([][]byte, error) {
	if maxCount <= 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	client := cache.GetCache()

	cmds := make([]valkey.Completed, 0, maxCount)
	for range maxCount {
		cmds = append(cmds, client.B().Rpop().Key(queueKey).Build())
	}

	var results [][]byte
	for _, response := range client.DoMulti(ctx, cmds...) {
		if err := response.Error(); err != nil {
			if valkey.IsValkeyNil(err) {
				break
			}

			return results, err
		}

		data, err := response.AsBytes()
		if err != nil {
			return results, err
		}

		results = append(results, data)
	}

	return results, nil
}

func (q *ValkeyQueueService) QueueLength(queueKey string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	client := cache.GetCache()

	return client.Do(ctx, client.B().Llen().Key(queueKey).Build()).AsInt64()
}

func (q *ValkeyQueueService) ClearQueue(queueKey string) error {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	client := cache.GetCache()

	return client.Do(ctx, client.B().Del().Key(queueKey).Build()).Error()
}
