// Package sqlitetest opens isolated in-memory stores for tests.
package sqlitetest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	repository "productivity-tracker.com/productivity-tracker/internal/repositories"
)

var seq atomic.Int64

func Open(t testing.TB) *repository.Gateway {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	gateway, err := repository.NewGateway(db)
	if err != nil {
		t.Fatalf("failed to configure database: %v", err)
	}
	if err := gateway.Ensure(); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() { _ = gateway.Close() })
	return gateway
}
