// Package seeds loads master data fixtures from YAML files into the
// master tables. Existing rows are left untouched so seeding is safe to
// run repeatedly.
package seeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prognosis/internal/infrastructure/persistence/models"
	"prognosis/internal/shared/logger"
)

type ErrorCodeSeed struct {
	ErrorCode   string `yaml:"error_code"`
	Description string `yaml:"description"`
}

type CustomerSeed struct {
	CustomerID   int64  `yaml:"customer_id"`
	CustomerName string `yaml:"customer_name"`
	VehicleID    string `yaml:"vehicle_id"`
}

type SeedFile struct {
	ErrorCodes []ErrorCodeSeed `yaml:"error_codes"`
	Customers  []CustomerSeed  `yaml:"customers"`
}

// Load parses a seed file from disk.
func Load(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return &seed, nil
}

// Apply inserts the seed rows, skipping conflicts on the unique keys.
func Apply(db *gorm.DB, seed *SeedFile) error {
	log := logger.NewLogger().With("component", "seeds")

	if len(seed.ErrorCodes) > 0 {
		rows := make([]models.ErrorCodeMasterModel, len(seed.ErrorCodes))
		for i, ec := range seed.ErrorCodes {
			rows[i] = models.ErrorCodeMasterModel{
				ErrorCode:   ec.ErrorCode,
				Description: ec.Description,
			}
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to seed error codes: %w", err)
		}
		log.Info("seeded error codes", "count", len(rows))
	}

	if len(seed.Customers) > 0 {
		rows := make([]models.CustomerMasterModel, len(seed.Customers))
		for i, c := range seed.Customers {
			rows[i] = models.CustomerMasterModel{
				CustomerID:   c.CustomerID,
				CustomerName: c.CustomerName,
				VehicleID:    c.VehicleID,
			}
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to seed customers: %w", err)
		}
		log.Info("seeded customers", "count", len(rows))
	}

	return nil
}
