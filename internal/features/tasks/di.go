package tasks

import (
	cache_utils "importhub/internal/util/cache"
	"importhub/internal/util/logger"
)

const defaultTaskWorkersCount = 2

var taskQueue = cache_utils.NewValkeyQueueService()

var taskDispatcher = NewTaskDispatcher(taskQueue, logger.GetLogger())

var taskWorkerService = NewTaskWorkerService(taskQueue, defaultTaskWorkersCount, logger.GetLogger())

func GetTaskDispatcher() *TaskDispatcher {
	return taskDispatcher
}

func GetTaskWorkerService() *TaskWorkerService {
	return taskWorkerService
}
