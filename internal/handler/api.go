package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lvclicks/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	portfolio *service.PortfolioService
	pages     *service.PageService
	settings  *service.SettingsService
}

type siteViewModel struct {
	Name           string
	Tagline        string
	ContactEmail   string
	ContactPhone   string
	InstagramURL   string
	WhatsAppNumber string
}

const siteSettingsContextKey = "__site_settings"

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, media service.MediaStore) *API {
	return &API{
		db:        db,
		portfolio: service.NewPortfolioService(db, media),
		pages:     service.NewPageService(db),
		settings:  service.NewSettingsService(db),
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Portfolio exposes the portfolio service, mainly for tests and scripts.
func (a *API) Portfolio() *service.PortfolioService {
	return a.portfolio
}

func (a *API) siteSettings(c *gin.Context) siteViewModel {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if view, ok := cached.(siteViewModel); ok {
			return view
		}
	}

	settings, err := a.settings.GetSettings()
	if err != nil {
		c.Error(err)
	}

	view := siteViewModel{
		Name:           strings.TrimSpace(settings.SiteName),
		Tagline:        strings.TrimSpace(settings.Tagline),
		ContactEmail:   strings.TrimSpace(settings.ContactEmail),
		ContactPhone:   strings.TrimSpace(settings.ContactPhone),
		InstagramURL:   strings.TrimSpace(settings.InstagramURL),
		WhatsAppNumber: strings.TrimSpace(settings.WhatsAppNumber),
	}
	if view.Name == "" {
		view.Name = "LV Clicks"
	}

	c.Set(siteSettingsContextKey, view)
	return view
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	view := a.siteSettings(c)

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = gin.H{
			"name":           view.Name,
			"tagline":        view.Tagline,
			"contactEmail":   view.ContactEmail,
			"contactPhone":   view.ContactPhone,
			"instagramUrl":   view.InstagramURL,
			"whatsappNumber": view.WhatsAppNumber,
		}
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = view.Name
	}

	c.HTML(status, template, payload)
}
