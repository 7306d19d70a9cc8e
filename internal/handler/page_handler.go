package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lvclicks/internal/service"
)

type pagePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ShowPageEditor renders the admin editor for a fixed content page.
func (a *API) ShowPageEditor(c *gin.Context) {
	slug := c.Param("slug")
	if !service.KnownSlug(slug) {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	page, err := a.pages.GetBySlug(slug)
	if err != nil && !errors.Is(err, service.ErrPageNotFound) {
		a.renderHTML(c, http.StatusInternalServerError, "page_edit.html", gin.H{
			"title": "Edit Page",
			"slug":  slug,
			"error": "Failed to load page content",
		})
		return
	}

	view := pageView(page)
	a.renderHTML(c, http.StatusOK, "page_edit.html", gin.H{
		"title":     "Edit Page",
		"slug":      slug,
		"content":   view["content"],
		"updatedAt": view["updatedAt"],
	})
}

// SavePage persists the markdown content for a fixed content page.
func (a *API) SavePage(c *gin.Context) {
	slug := c.Param("slug")

	var payload pagePayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}

	page, err := a.pages.Save(slug, payload.Title, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPageSlugUnknown):
			respondError(c, http.StatusNotFound, "Unknown page")
		case errors.Is(err, service.ErrPageContentMissing):
			respondError(c, http.StatusBadRequest, "Page content is required")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to save page")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Page saved",
		"page": gin.H{
			"slug":      page.Slug,
			"title":     page.Title,
			"content":   page.Content,
			"updatedAt": page.UpdatedAt.In(time.Local).Format("2006-01-02 15:04"),
		},
	})
}
