package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/lvclicks/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSettingsTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:settings-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.SiteSetting{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	gdb, cleanup := setupSettingsTestDB(t)
	defer cleanup()

	svc := NewSettingsService(gdb)

	settings, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("failed to load defaults: %v", err)
	}
	if settings.SiteName != "LV Clicks" {
		t.Fatalf("expected default site name, got %q", settings.SiteName)
	}

	updated, err := svc.UpdateSettings(SiteSettingsInput{
		SiteName:     " LV Clicks Studio ",
		ContactEmail: "hello@lvclicks.com",
		InstagramURL: "https://instagram.com/lvclicks",
	})
	if err != nil {
		t.Fatalf("failed to update settings: %v", err)
	}
	if updated.SiteName != "LV Clicks Studio" {
		t.Fatalf("expected trimmed site name, got %q", updated.SiteName)
	}

	reloaded, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("failed to reload settings: %v", err)
	}
	if reloaded.ContactEmail != "hello@lvclicks.com" {
		t.Fatalf("expected contact email to persist, got %q", reloaded.ContactEmail)
	}

	// 留空站点名称时回退默认值
	cleared, err := svc.UpdateSettings(SiteSettingsInput{})
	if err != nil {
		t.Fatalf("failed to clear settings: %v", err)
	}
	if cleared.SiteName != "LV Clicks" {
		t.Fatalf("expected fallback site name, got %q", cleared.SiteName)
	}
}
