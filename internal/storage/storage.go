package storage

import (
	"importhub/internal/config"
	"importhub/internal/util/logger"
	"os"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
)

func GetDb() *gorm.DB {
	dbOnce.Do(func() {
		db = openPostgresDb(config.GetEnv().DatabaseDsn)
	})

	return db
}

// UseDb installs the database returned by GetDb. It has effect only before
// the first GetDb call.
func UseDb(database *gorm.DB) {
	dbOnce.Do(func() {
		db = database
	})
}

func openPostgresDb(dsn string) *gorm.DB {
	log := logger.GetLogger()

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Warn),
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	sqlDB, err := database.DB()
	if err != nil {
		log.Error("Failed to get database handle", "error", err)
		os.Exit(1)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return database
}
