package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lvclicks/internal/service"
)

type settingsPayload struct {
	SiteName       string `json:"site_name"`
	Tagline        string `json:"tagline"`
	ContactEmail   string `json:"contact_email"`
	ContactPhone   string `json:"contact_phone"`
	InstagramURL   string `json:"instagram_url"`
	WhatsAppNumber string `json:"whatsapp_number"`
}

// ShowSettings renders the admin site settings page.
func (a *API) ShowSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "settings.html", gin.H{
			"title": "Site Settings",
			"error": "Failed to load settings",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "settings.html", gin.H{
		"title":    "Site Settings",
		"settings": settings,
	})
}

// UpdateSettings saves the site settings.
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsPayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}

	settings, err := a.settings.UpdateSettings(service.SiteSettingsInput{
		SiteName:       payload.SiteName,
		Tagline:        payload.Tagline,
		ContactEmail:   payload.ContactEmail,
		ContactPhone:   payload.ContactPhone,
		InstagramURL:   payload.InstagramURL,
		WhatsAppNumber: payload.WhatsAppNumber,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings saved", "settings": settings})
}
