package repository

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rate-engine-service/internal/models"
)

// SeedBoxTemplates seeds the default global box templates companies can
// instantiate into their own catalog. Dimensions are inches, weights ounces.
// This is idempotent - it uses upsert keyed on SKU to avoid duplicates.
func SeedBoxTemplates(db *gorm.DB) error {
	templates := []models.BoxTemplate{
		{
			SKU:         "BOX-SM",
			Name:        "Small Box",
			Description: "Fits accessories and single small items.",
			Length:      10,
			Width:       8,
			Height:      4,
			MaxWeight:   24,
			Cost:        1.00,
			IsActive:    true,
		},
		{
			SKU:         "BOX-MD",
			Name:        "Medium Box",
			Description: "General purpose box for most single-item orders.",
			Length:      12,
			Width:       10,
			Height:      6,
			MaxWeight:   48,
			Cost:        1.50,
			IsActive:    true,
		},
		{
			SKU:         "BOX-LG",
			Name:        "Large Box",
			Description: "Multi-item orders and bulky products.",
			Length:      14,
			Width:       12,
			Height:      8,
			MaxWeight:   64,
			Cost:        2.00,
			IsActive:    true,
		},
		{
			SKU:         "BOX-XL",
			Name:        "Extra Large Box",
			Description: "Oversized orders; check carrier dimensional pricing.",
			Length:      18,
			Width:       16,
			Height:      12,
			MaxWeight:   120,
			Cost:        3.25,
			IsActive:    true,
		},
		{
			SKU:         "MAILER-PADDED",
			Name:        "Padded Mailer",
			Description: "Soft goods and small flat items.",
			Length:      12,
			Width:       9,
			Height:      1,
			MaxWeight:   16,
			Cost:        0.50,
			IsActive:    true,
		},
	}

	for _, template := range templates {
		result := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sku"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "length", "width", "height",
				"max_weight", "cost", "is_active", "updated_at",
			}),
		}).Create(&template)

		if result.Error != nil {
			log.Printf("Failed to seed box template %s: %v", template.SKU, result.Error)
			return result.Error
		}
	}

	log.Printf("Seeded %d box templates", len(templates))
	return nil
}
