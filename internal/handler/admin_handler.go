package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/lvclicks/internal/db"
	"github.com/lvclicks/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Admin Login",
	})
}

// Login 处理管理员登录请求
func (a *API) Login(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	password := c.PostForm("password")

	// 查找管理员账号
	var user db.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "login_error.html", gin.H{"error": "Invalid email or password"})
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		c.HTML(http.StatusUnauthorized, "login_error.html", gin.H{"error": "Invalid email or password"})
		return
	}

	// 设置会话
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("user_name", user.Name)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login_error.html", gin.H{"error": "Failed to save session"})
		return
	}

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 处理管理员登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard 渲染后台主面板，展示每个分类的图片数量
func (a *API) ShowDashboard(c *gin.Context) {
	session := sessions.Default(c)
	name := session.Get("user_name")

	counts, err := a.portfolio.CategoryCounts(c.Request.Context())
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "dashboard.html", gin.H{
			"title": "Dashboard",
			"error": "Failed to load portfolio stats",
		})
		return
	}

	type categoryStat struct {
		Category string
		Label    string
		Count    int64
		Limit    int
	}

	stats := make([]categoryStat, 0, len(service.Categories))
	var total int64
	for _, category := range service.Categories {
		stats = append(stats, categoryStat{
			Category: category.String(),
			Label:    category.Label(),
			Count:    counts[category],
			Limit:    service.MaxImagesPerCategory,
		})
		total += counts[category]
	}

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":      "Dashboard",
		"name":       name,
		"stats":      stats,
		"totalCount": total,
	})
}

// AuthRequired 是后台页面的认证中间件，未登录时重定向到登录页。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIAuthRequired 保护后台 JSON 接口，未登录时返回 401。
func APIAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			respondError(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}
