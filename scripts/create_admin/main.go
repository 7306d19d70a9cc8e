package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lvclicks/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	name := flag.String("name", os.Getenv("ADMIN_NAME"), "admin display name")
	databasePath := flag.String("db", os.Getenv("DATABASE_PATH"), "database path")
	flag.Parse()

	trimmedEmail := strings.ToLower(strings.TrimSpace(*email))
	trimmedPassword := strings.TrimSpace(*password)
	if trimmedEmail == "" || trimmedPassword == "" {
		log.Fatal("email and password are required")
	}
	if len(trimmedPassword) < 6 {
		log.Fatal("password must be at least 6 characters long")
	}

	// 初始化数据库
	if err := db.Init(*databasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 检查是否已存在同邮箱的管理员
	var existing db.User
	err := db.DB.Where("email = ?", trimmedEmail).First(&existing).Error
	if err == nil {
		fmt.Println("管理员已存在，无需创建:", trimmedEmail)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to query users: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	displayName := strings.TrimSpace(*name)
	if displayName == "" {
		displayName = "Admin"
	}

	user := db.User{
		Email:    trimmedEmail,
		Password: string(hashed),
		Name:     displayName,
		Role:     db.RoleAdmin,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	fmt.Println("管理员创建成功")
	fmt.Println("邮箱:", user.Email)
	fmt.Println("登录地址: /admin/login")
}
