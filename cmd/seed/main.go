package main

import (
	"fmt"

	"github.com/roikaa/tamshopex/internal/config"
	"github.com/roikaa/tamshopex/internal/constants"
	"github.com/roikaa/tamshopex/internal/logger"
	"github.com/roikaa/tamshopex/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Electronics", Description: "Phones, laptops and other gadgets"},
		{Name: "Clothing", Description: "Apparel for every season"},
		{Name: "Home & Kitchen", Description: "Everything for the household"},
		{Name: "Books", Description: "Paperbacks and hardcovers"},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Name)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Name)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Name] = cat.ID
	}

	// 添加商品
	products := []models.Product{
		{
			Name:        "Smartphone X",
			Description: "6.1 inch display, 128GB storage, dual camera",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(699.99)),
			Stock:       50,
			CategoryID:  categoryIDs["Electronics"],
		},
		{
			Name:        "Laptop Pro",
			Description: "14 inch ultrabook with 16GB RAM and 512GB SSD",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(1299.99)),
			Stock:       30,
			CategoryID:  categoryIDs["Electronics"],
		},
		{
			Name:        "Wireless Earbuds",
			Description: "Active noise cancellation, 24h battery life",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(149.99)),
			Stock:       100,
			CategoryID:  categoryIDs["Electronics"],
		},
		{
			Name:        "Casual T-Shirt",
			Description: "100% cotton, available in multiple colors",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(19.99)),
			Stock:       200,
			CategoryID:  categoryIDs["Clothing"],
		},
		{
			Name:        "Denim Jeans",
			Description: "Slim fit stretch denim",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(49.99)),
			Stock:       150,
			CategoryID:  categoryIDs["Clothing"],
		},
		{
			Name:        "Coffee Maker",
			Description: "12-cup programmable drip coffee maker",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(89.99)),
			Stock:       40,
			CategoryID:  categoryIDs["Home & Kitchen"],
		},
		{
			Name:        "Chef Knife Set",
			Description: "5-piece stainless steel knife set with block",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(59.99)),
			Stock:       60,
			CategoryID:  categoryIDs["Home & Kitchen"],
		},
		{
			Name:        "The Go Programming Language",
			Description: "Donovan & Kernighan, paperback edition",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(39.99)),
			Stock:       80,
			CategoryID:  categoryIDs["Books"],
		},
	}

	for _, prod := range products {
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.Name)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("name = ?", prod.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Name)
			}
		} else {
			existing.Description = prod.Description
			existing.Price = prod.Price
			existing.Stock = prod.Stock
			existing.CategoryID = prod.CategoryID
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Name)
			}
		}
	}

	// 添加演示用户
	demoEmail := "demo@example.com"
	var existingUser models.User
	if err := models.DB.Where("email = ?", demoEmail).First(&existingUser).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash demo password: %v", err)
		} else {
			user := models.User{
				Name:         "Demo User",
				Email:        demoEmail,
				PasswordHash: string(hash),
				Role:         constants.UserRoleUser,
			}
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create demo user: %v", err)
			} else {
				stdLog.Printf("Created demo user: %s", demoEmail)
			}
		}
	} else {
		stdLog.Printf("Demo user already exists: %s", demoEmail)
	}

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 4 Categories")
	fmt.Println("- 8 Products")
	fmt.Println("- 1 Demo user (demo@example.com / demo-password)")
}
