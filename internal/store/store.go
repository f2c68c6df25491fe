package store

import (
	"fmt"
	"time"

	"tingling/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every entity owned by the store, in migration order
var Models = []interface{}{
	&model.User{},
	&model.FriendRequest{},
	&model.Friendship{},
	&model.BlockedUser{},
	&model.Chat{},
	&model.ChatParticipant{},
	&model.Message{},
	&model.CallLog{},
	&model.Status{},
	&model.StatusView{},
}

// Open connects with the given dialector. Timestamps are stored in UTC and
// driver errors are translated to gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
func Open(dialector gorm.Dialector, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// OpenPostgres opens the production database and tunes the pool
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := Open(postgres.Open(dsn), logger.Warn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
