// Command db_seed initializes the database with the admin account and the
// fixed content the public site expects: landing sections, site settings,
// starter categories and tech stacks. Seeding is idempotent; every record is
// upserted by its natural key so re-running never duplicates rows.
package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rynvlabs/cms/internal/config"
	"github.com/rynvlabs/cms/internal/database"
	"github.com/rynvlabs/cms/internal/models"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Init(database.Config{Path: cfg.DatabasePath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	if err := seed(db, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database seeded successfully.")
}

func seed(db *gorm.DB, cfg *config.Config) error {
	if err := seedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("admin: %w", err)
	}
	if err := seedTechStacks(db); err != nil {
		return fmt.Errorf("tech stacks: %w", err)
	}
	if err := seedCategories(db); err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	if err := seedLandingSections(db); err != nil {
		return fmt.Errorf("landing sections: %w", err)
	}
	if err := seedSiteSettings(db); err != nil {
		return fmt.Errorf("site settings: %w", err)
	}
	return nil
}

func seedAdmin(db *gorm.DB, email, password string) error {
	var existing models.Admin
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.Admin{
		Name:     "Administrator",
		Email:    email,
		Password: string(hash),
	}).Error
}

func seedTechStacks(db *gorm.DB) error {
	stacks := []models.TechStack{
		{Name: "React", Icon: "SiReact", Color: "#61DAFB"},
		{Name: "Laravel", Icon: "SiLaravel", Color: "#FF2D20"},
		{Name: "Node.js", Icon: "SiNodedotjs", Color: "#339933"},
		{Name: "ESP32", Icon: "SiEspressif", Color: "#E7352C"},
		{Name: "Arduino Mega", Icon: "SiArduino", Color: "#00979D"},
		{Name: "OpenCV", Icon: "SiOpencv", Color: "#5C3EE8"},
		{Name: "Firebase", Icon: "SiFirebase", Color: "#FFCA28"},
		{Name: "Flutter", Icon: "SiFlutter", Color: "#02569B"},
		{Name: "MQTT", Icon: "", Color: "#660066"},
		{Name: "Siemens PLC", Icon: "", Color: "#009999"},
	}
	for i, ts := range stacks {
		var existing models.TechStack
		err := db.Where("name = ?", ts.Name).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ts.SortOrder = i + 1
			err = db.Create(&ts).Error
		case err == nil:
			existing.Icon = ts.Icon
			existing.Color = ts.Color
			err = db.Save(&existing).Error
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func seedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "Software", Slug: "software", Type: "PROJECT", Color: "#3B82F6"},
		{Name: "IoT", Slug: "iot", Type: "PROJECT", Color: "#10B981"},
		{Name: "Automation", Slug: "automation", Type: "PROJECT", Color: "#F59E0B"},
	}
	for i, cat := range categories {
		var existing models.Category
		err := db.Where("slug = ?", cat.Slug).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			cat.SortOrder = i + 1
			err = db.Create(&cat).Error
		case err != nil:
			return err
		default:
			// keep admin edits on re-seed
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func seedLandingSections(db *gorm.DB) error {
	sections := []models.LandingSection{
		{
			SectionKey: "hero",
			Title:      "Menjembatani Logika Digital dengan Realitas Fisik",
			Subtitle:   "Spesialis dalam High-Performance Software, IoT Solutions, dan Industrial Automation.",
			Content: models.JSONMap{
				"ctaPrimary":   map[string]any{"text": "Jelajahi Solusi", "link": "#services"},
				"ctaSecondary": map[string]any{"text": "Research Academy", "link": "/academy"},
			},
		},
		{
			SectionKey: "services",
			Title:      "Apa yang Kami Rekayasa",
		},
		{
			SectionKey: "product",
			Title:      "Produk Unggulan",
			Content:    models.JSONMap{"featuredProductSlug": "smart-scales"},
		},
		{
			SectionKey: "portfolio",
			Title:      "Showcase Proyek",
		},
		{
			SectionKey: "academy",
			Title:      "Research Academy",
		},
		{
			SectionKey: "process",
			Title:      "Cara Kami Bekerja",
		},
		{
			SectionKey: "tech-ticker",
		},
		{
			SectionKey: "contact",
			Title:      "Mulai Proyek Anda",
		},
	}
	for i, section := range sections {
		var existing models.LandingSection
		err := db.Where("section_key = ?", section.SectionKey).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			section.SortOrder = i + 1
			section.IsVisible = true
			err = db.Create(&section).Error
		case err != nil:
			return err
		default:
			// keep admin edits on re-seed
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func seedSiteSettings(db *gorm.DB) error {
	settings := map[string]string{
		"siteName":     `"RYNV Labs"`,
		"contactEmail": `"hello@rynvlabs.com"`,
		"socials":      `{"github":"https://github.com/rynvlabs","linkedin":"https://linkedin.com/company/rynvlabs"}`,
	}
	for key, value := range settings {
		var existing models.SiteSetting
		err := db.Where("key = ?", key).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			err = db.Create(&models.SiteSetting{Key: key, Value: models.JSONValue(value)}).Error
		case err != nil:
			return err
		default:
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
