package service

import (
	"fmt"
	"strings"

	"github.com/lvclicks/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteSettings 描述后台可配置的站点信息。
type SiteSettings struct {
	SiteName       string
	Tagline        string
	ContactEmail   string
	ContactPhone   string
	InstagramURL   string
	WhatsAppNumber string
}

// SiteSettingsInput 用于更新站点设置。
type SiteSettingsInput struct {
	SiteName       string
	Tagline        string
	ContactEmail   string
	ContactPhone   string
	InstagramURL   string
	WhatsAppNumber string
}

// SettingsService 提供站点设置的读取与更新能力。
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService 构造 SettingsService。
func NewSettingsService(gdb *gorm.DB) *SettingsService {
	return &SettingsService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeyTagline,
	db.SettingKeyContactEmail,
	db.SettingKeyContactPhone,
	db.SettingKeyInstagramURL,
	db.SettingKeyWhatsAppNumber,
}

// GetSettings 读取站点设置，如未设置将返回默认值。
func (s *SettingsService) GetSettings() (SiteSettings, error) {
	result := SiteSettings{
		SiteName: "LV Clicks",
		Tagline:  "Capturing moments, crafting stories",
	}

	var records []db.SiteSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load site settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeySiteName:
			if strings.TrimSpace(record.Value) != "" {
				result.SiteName = record.Value
			}
		case db.SettingKeyTagline:
			if strings.TrimSpace(record.Value) != "" {
				result.Tagline = record.Value
			}
		case db.SettingKeyContactEmail:
			result.ContactEmail = record.Value
		case db.SettingKeyContactPhone:
			result.ContactPhone = record.Value
		case db.SettingKeyInstagramURL:
			result.InstagramURL = record.Value
		case db.SettingKeyWhatsAppNumber:
			result.WhatsAppNumber = record.Value
		}
	}

	return result, nil
}

// UpdateSettings 保存站点设置，未填写站点名称时回退默认值。
func (s *SettingsService) UpdateSettings(input SiteSettingsInput) (SiteSettings, error) {
	sanitized := SiteSettings{
		SiteName:       strings.TrimSpace(input.SiteName),
		Tagline:        strings.TrimSpace(input.Tagline),
		ContactEmail:   strings.TrimSpace(input.ContactEmail),
		ContactPhone:   strings.TrimSpace(input.ContactPhone),
		InstagramURL:   strings.TrimSpace(input.InstagramURL),
		WhatsAppNumber: strings.TrimSpace(input.WhatsAppNumber),
	}
	if sanitized.SiteName == "" {
		sanitized.SiteName = "LV Clicks"
	}

	values := map[string]string{
		db.SettingKeySiteName:       sanitized.SiteName,
		db.SettingKeyTagline:        sanitized.Tagline,
		db.SettingKeyContactEmail:   sanitized.ContactEmail,
		db.SettingKeyContactPhone:   sanitized.ContactPhone,
		db.SettingKeyInstagramURL:   sanitized.InstagramURL,
		db.SettingKeyWhatsAppNumber: sanitized.WhatsAppNumber,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range settingKeys {
			if err := upsertSetting(tx, key, values[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SiteSettings{}, fmt.Errorf("update site settings: %w", err)
	}

	return sanitized, nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SiteSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
