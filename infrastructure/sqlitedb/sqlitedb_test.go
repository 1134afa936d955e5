package sqlitedb

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

type widget struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func TestNewTestDBIsUsable(t *testing.T) {
	db, err := NewTestDB()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer Close(db)

	if err := StatusCheck(context.Background(), db); err != nil {
		t.Fatalf("status check: %v", err)
	}

	if err := db.AutoMigrate(&widget{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&widget{Name: "a"}).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	// A second statement must see the same in-memory database.
	var count int64
	if err := db.Model(&widget{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestQueryLoggingGoesThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	db, err := NewTestDB(WithLogger(log), WithLogQueries(true))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer Close(db)

	if err := db.Exec("SELECT 1").Error; err != nil {
		t.Fatalf("exec: %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte("component=gorm")) {
		t.Errorf("expected gorm record in log output, got %q", buf.String())
	}
}

func TestStatusCheckAfterClose(t *testing.T) {
	db, err := NewTestDB()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := Close(db); err != nil {
		t.Fatalf("close: %v", err)
	}

	if err := StatusCheck(context.Background(), db); err == nil {
		t.Error("status check succeeded on a closed database")
	}
}
