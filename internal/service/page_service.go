package service

import (
	"errors"
	"strings"

	"github.com/lvclicks/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound       = errors.New("page not found")
	ErrPageSlugUnknown    = errors.New("page slug is not supported")
	ErrPageContentMissing = errors.New("page content is required")
)

// 站点只有固定的几个内容页，slug 集合封闭。
var pageTitles = map[string]string{
	"about":    "About Us",
	"services": "Our Services",
	"contact":  "Contact",
}

// PageService provides access to static content pages such as About.
type PageService struct {
	db *gorm.DB
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// KnownSlug reports whether slug names one of the fixed content pages.
func KnownSlug(slug string) bool {
	_, ok := pageTitles[strings.ToLower(strings.TrimSpace(slug))]
	return ok
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !KnownSlug(slug) {
		return nil, ErrPageSlugUnknown
	}

	var page db.Page
	if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Save creates or updates the content of a fixed page.
func (s *PageService) Save(slug, title, content string) (*db.Page, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	defaultTitle, ok := pageTitles[slug]
	if !ok {
		return nil, ErrPageSlugUnknown
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrPageContentMissing
	}

	resolvedTitle := strings.TrimSpace(title)
	if resolvedTitle == "" {
		resolvedTitle = defaultTitle
	}

	var page db.Page
	err := s.db.Where("slug = ?", slug).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			page = db.Page{
				Slug:    slug,
				Title:   resolvedTitle,
				Content: trimmed,
			}
			if err := s.db.Create(&page).Error; err != nil {
				return nil, err
			}
			return &page, nil
		}
		return nil, err
	}

	page.Title = resolvedTitle
	page.Content = trimmed

	if err := s.db.Save(&page).Error; err != nil {
		return nil, err
	}

	return &page, nil
}
