package storetest

import (
	"fmt"
	"strings"
	"testing"

	"tingling/internal/model"
	"tingling/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory sqlite database private to t, with
// foreign keys enforced so referential-integrity failures surface like they
// do on postgres.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	db, err := store.Open(sqlite.Open(dsn), logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// one connection keeps the shared in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedUser inserts a user with the given id and name
func SeedUser(t testing.TB, db *gorm.DB, id, name string) *model.User {
	t.Helper()

	user := &model.User{
		ID:         id,
		GoogleID:   "google-" + id,
		Name:       name,
		Emoji:      "🙂",
		CallStatus: model.CallStatusOffline,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return user
}
