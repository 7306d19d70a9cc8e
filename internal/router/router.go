package router

import (
	"html/template"
	"path/filepath"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/lvclicks/internal/config"
	"github.com/lvclicks/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, api *handler.API) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("lvclicks_session", store))

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"eq": func(a, b interface{}) bool {
			return a == b
		},
	})
	loadTemplates(r, "web/template/*.html")

	// 静态资源与媒体目录分开挂载：媒体目录可被配置到任意位置，
	// 即便 URL 仍停留在默认的 /static/media 下也要指向配置的目录
	r.Static("/static/css", "./web/static/css")
	r.Static("/static/js", "./web/static/js")
	r.Static(cfg.MediaURLPath, cfg.MediaDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 公开站点
	r.GET("/", api.ShowHome)
	r.GET("/portfolio/:category", api.ShowCategoryGallery)
	r.GET("/pages/:slug", api.ShowPage)
	r.GET("/api/portfolio", api.ListPortfolioImages)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台页面
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard", api.ShowDashboard)
			auth.GET("/portfolio", api.ShowPortfolioManagement)
			auth.GET("/pages/:slug/edit", api.ShowPageEditor)
			auth.GET("/settings", api.ShowSettings)
		}

		// JSON API 路由，未登录返回 401
		apiGroup := admin.Group("/api")
		apiGroup.Use(handler.APIAuthRequired())
		{
			apiGroup.GET("/portfolio", api.ListPortfolioImages)
			apiGroup.POST("/portfolio", api.UploadPortfolioImage)
			apiGroup.PATCH("/portfolio/:id", api.UpdatePortfolioImage)
			apiGroup.DELETE("/portfolio/:id", api.DeletePortfolioImage)

			apiGroup.PUT("/pages/:slug", api.SavePage)
			apiGroup.PUT("/settings", api.UpdateSettings)
		}
	}

	return r
}

// loadTemplates 仅在模板存在时加载，便于在无模板的测试环境中启动。
func loadTemplates(r *gin.Engine, pattern string) {
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return
	}
	r.LoadHTMLGlob(pattern)
}
