package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lvclicks/internal/db"
	"github.com/lvclicks/internal/service"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// categoryCard 用于首页分类卡片渲染
type categoryCard struct {
	Category string
	Label    string
	CoverURL string
}

// ShowHome renders the public home page: hero plus one landing image per
// category.
func (a *API) ShowHome(c *gin.Context) {
	landing, err := a.portfolio.List(c.Request.Context(), service.PortfolioFilter{LandingOnly: true})
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "home.html", gin.H{
			"title": "Home",
			"error": "Failed to load portfolio",
			"year":  time.Now().Year(),
		})
		return
	}

	covers := make(map[string]string, len(landing))
	for _, item := range landing {
		covers[item.Category] = item.URL
	}

	cards := make([]categoryCard, 0, len(service.Categories))
	for _, category := range service.Categories {
		cards = append(cards, categoryCard{
			Category: category.String(),
			Label:    category.Label(),
			CoverURL: covers[category.String()],
		})
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":      "Home",
		"cards":      cards,
		"canonical":  "/",
		"metaType":   "website",
		"year":       time.Now().Year(),
	})
}

// ShowCategoryGallery renders the public gallery for one category.
func (a *API) ShowCategoryGallery(c *gin.Context) {
	category, err := service.ParseCategory(c.Param("category"))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	items, err := a.portfolio.List(c.Request.Context(), service.PortfolioFilter{Category: category})
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "gallery.html", gin.H{
			"title": category.Label(),
			"error": "Failed to load gallery, please try again later",
			"year":  time.Now().Year(),
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "gallery.html", gin.H{
		"title":     category.Label(),
		"category":  category.String(),
		"label":     category.Label(),
		"items":     items,
		"canonical": "/portfolio/" + category.String(),
		"metaType":  "website",
		"year":      time.Now().Year(),
	})
}

// ShowPage renders a markdown content page such as About or Services.
func (a *API) ShowPage(c *gin.Context) {
	slug := c.Param("slug")
	if !service.KnownSlug(slug) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	page, err := a.pages.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			a.renderHTML(c, http.StatusOK, "page.html", gin.H{
				"title": slug,
				"year":  time.Now().Year(),
			})
			return
		}
		a.renderHTML(c, http.StatusInternalServerError, "page.html", gin.H{
			"title": slug,
			"error": "Failed to load page",
			"year":  time.Now().Year(),
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "page.html", gin.H{
		"title":     page.Title,
		"content":   renderMarkdown(page.Content),
		"canonical": "/" + page.Slug,
		"metaType":  "article",
		"year":      time.Now().Year(),
	})
}

// renderMarkdown 将 markdown 渲染为净化后的 HTML。
func renderMarkdown(markdown string) template.HTML {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(markdown), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(markdown))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// pageView keeps template data for admin page editors consistent.
func pageView(page *db.Page) gin.H {
	view := gin.H{"content": "", "updatedAt": ""}
	if page == nil {
		return view
	}
	view["content"] = page.Content
	if !page.UpdatedAt.IsZero() {
		view["updatedAt"] = page.UpdatedAt.In(time.Local).Format("2006-01-02 15:04")
	}
	return view
}
