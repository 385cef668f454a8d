package test_utils

import (
	"importhub/internal/migrations"
	"importhub/internal/storage"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// in-memory database shared by every connection of a test binary
const testDatabaseDsn = "file:importhub_test?mode=memory&cache=shared"

// SetupTestDatabase installs the in-memory sqlite database as storage.GetDb
// and creates the schema in it. Call it from TestMain before m.Run.
func SetupTestDatabase() {
	storage.UseDb(openTestDb())

	if err := migrations.Run(storage.GetDb()); err != nil {
		panic(err)
	}
}

func openTestDb() *gorm.DB {
	database, err := gorm.Open(sqlite.Open(testDatabaseDsn), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		panic(err)
	}

	// sqlite allows one writer; a single connection also keeps the
	// in-memory database alive for the whole test binary
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	return database
}
