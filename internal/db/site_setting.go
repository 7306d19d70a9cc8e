package db

import "gorm.io/gorm"

// SiteSetting 存储后台可配置的站点级键值对。
type SiteSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SiteSetting) TableName() string {
	return "site_settings"
}

const (
	// SettingKeySiteName 表示站点名称。
	SettingKeySiteName = "site_name"
	// SettingKeyTagline 表示首页标语。
	SettingKeyTagline = "tagline"
	// SettingKeyContactEmail 表示对外联系邮箱。
	SettingKeyContactEmail = "contact_email"
	// SettingKeyContactPhone 表示对外联系电话。
	SettingKeyContactPhone = "contact_phone"
	// SettingKeyInstagramURL 表示 Instagram 主页链接。
	SettingKeyInstagramURL = "instagram_url"
	// SettingKeyWhatsAppNumber 表示 WhatsApp 号码。
	SettingKeyWhatsAppNumber = "whatsapp_number"
)
