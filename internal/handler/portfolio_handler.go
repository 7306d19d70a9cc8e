package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lvclicks/internal/service"
)

type portfolioUpdatePayload struct {
	IsLandingPage *bool  `json:"is_landing_page"`
	Order         *int   `json:"order"`
	Category      string `json:"category"`
}

// ListPortfolioImages returns portfolio images, optionally filtered by
// category or restricted to landing images. Publicly accessible.
func (a *API) ListPortfolioImages(c *gin.Context) {
	filter := service.PortfolioFilter{
		LandingOnly: strings.EqualFold(c.Query("landingOnly"), "true"),
	}

	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		category, err := service.ParseCategory(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Unknown portfolio category")
			return
		}
		filter.Category = category
	}

	items, err := a.portfolio.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch portfolio images")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UploadPortfolioImage stores a new portfolio image from a multipart form.
func (a *API) UploadPortfolioImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Image file is required")
		return
	}

	// 检查文件类型
	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	item, err := a.portfolio.Upload(c.Request.Context(), service.UploadInput{
		Data:          data,
		Category:      c.PostForm("category"),
		IsLandingPage: strings.EqualFold(c.PostForm("is_landing_page"), "true"),
	})
	if err != nil {
		respondPortfolioError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Image uploaded", "item": item})
}

// UpdatePortfolioImage toggles the landing flag and/or changes display order.
func (a *API) UpdatePortfolioImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid image id")
		return
	}

	var payload portfolioUpdatePayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}

	item, err := a.portfolio.Update(c.Request.Context(), id, service.UpdateInput{
		IsLandingPage: payload.IsLandingPage,
		SortOrder:     payload.Order,
		Category:      payload.Category,
	})
	if err != nil {
		respondPortfolioError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image updated", "item": item})
}

// DeletePortfolioImage removes a portfolio image and its stored media.
func (a *API) DeletePortfolioImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid image id")
		return
	}

	if err := a.portfolio.Delete(c.Request.Context(), id); err != nil {
		respondPortfolioError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

// ShowPortfolioManagement renders the admin portfolio management page.
func (a *API) ShowPortfolioManagement(c *gin.Context) {
	category := strings.TrimSpace(c.DefaultQuery("category", service.CategoryWedding.String()))
	parsed, err := service.ParseCategory(category)
	if err != nil {
		parsed = service.CategoryWedding
	}

	items, err := a.portfolio.List(c.Request.Context(), service.PortfolioFilter{Category: parsed})
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "portfolio_manage.html", gin.H{
			"title": "Portfolio",
			"error": "Failed to load portfolio images",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "portfolio_manage.html", gin.H{
		"title":      "Portfolio",
		"items":      items,
		"category":   parsed.String(),
		"categories": service.Categories,
		"limit":      service.MaxImagesPerCategory,
	})
}

func respondPortfolioError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCategory):
		respondError(c, http.StatusBadRequest, "Unknown portfolio category")
	case errors.Is(err, service.ErrImageDataInvalid):
		respondError(c, http.StatusBadRequest, "Uploaded file is not a supported image")
	case errors.Is(err, service.ErrCategoryFull):
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("Maximum %d images allowed per category", service.MaxImagesPerCategory))
	case errors.Is(err, service.ErrImmutableCategory):
		respondError(c, http.StatusBadRequest, "Category cannot be changed after upload")
	case errors.Is(err, service.ErrImageNotFound):
		respondError(c, http.StatusNotFound, "Image not found")
	case errors.Is(err, service.ErrMediaStore):
		respondError(c, http.StatusBadGateway, "Media store request failed")
	default:
		respondError(c, http.StatusInternalServerError, "Portfolio store unavailable")
	}
}
