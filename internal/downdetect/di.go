package downdetect

import (
	"importhub/internal/cache"
	"importhub/internal/storage"
	"importhub/internal/util/logger"
)

var downdetectService = NewDowndetectService(
	[]HealthCheck{
		{
			Name: "database",
			Check: func() error {
				return storage.GetDb().Exec("SELECT 1").Error
			},
		},
		{
			Name:  "cache",
			Check: cache.TestCacheConnection,
		},
	},
	"/",
)

var downdetectController = &DowndetectController{
	downdetectService,
	logger.GetLogger(),
}

func GetDowndetectController() *DowndetectController {
	return downdetectController
}
