package db

import (
	"time"

	"gorm.io/gorm"
)

// PortfolioImage 定义作品集图片模型。
// Category、URL 与 MediaObjectID 在创建后不再变更。
type PortfolioImage struct {
	gorm.Model
	URL           string    `gorm:"not null" json:"url"`
	MediaObjectID string    `gorm:"uniqueIndex;not null" json:"media_object_id"`
	Category      string    `gorm:"index;not null" json:"category"`
	IsLandingPage bool      `gorm:"default:false" json:"is_landing_page"`
	SortOrder     int       `gorm:"default:0" json:"order"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	UploadedAt    time.Time `json:"uploaded_at"`
}
