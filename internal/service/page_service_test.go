package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lvclicks/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPageTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:pages-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Page{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestPageSaveAndGet(t *testing.T) {
	gdb, cleanup := setupPageTestDB(t)
	defer cleanup()

	svc := NewPageService(gdb)

	page, err := svc.Save("about", "", "## Our Story\nWe capture weddings across the city.")
	if err != nil {
		t.Fatalf("failed to save about page: %v", err)
	}
	if page.Title != "About Us" {
		t.Fatalf("expected default title, got %q", page.Title)
	}

	updated, err := svc.Save("About", "The Studio", "Updated story.")
	if err != nil {
		t.Fatalf("failed to update about page: %v", err)
	}
	if updated.ID != page.ID {
		t.Fatalf("expected update to reuse the existing record")
	}
	if updated.Title != "The Studio" || updated.Content != "Updated story." {
		t.Fatalf("expected updated fields to persist")
	}

	fetched, err := svc.GetBySlug("about")
	if err != nil {
		t.Fatalf("failed to fetch about page: %v", err)
	}
	if fetched.Content != "Updated story." {
		t.Fatalf("unexpected content %q", fetched.Content)
	}
}

func TestPageSlugRestrictions(t *testing.T) {
	gdb, cleanup := setupPageTestDB(t)
	defer cleanup()

	svc := NewPageService(gdb)

	if _, err := svc.Save("pricing", "", "content"); !errors.Is(err, ErrPageSlugUnknown) {
		t.Fatalf("expected ErrPageSlugUnknown, got %v", err)
	}
	if _, err := svc.Save("about", "", "   "); !errors.Is(err, ErrPageContentMissing) {
		t.Fatalf("expected ErrPageContentMissing, got %v", err)
	}
	if _, err := svc.GetBySlug("pricing"); !errors.Is(err, ErrPageSlugUnknown) {
		t.Fatalf("expected ErrPageSlugUnknown, got %v", err)
	}
	if _, err := svc.GetBySlug("services"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}
