package migration

import (
	"fmt"

	"gorm.io/gorm"

	"prognosis/internal/infrastructure/persistence/models"
	"prognosis/internal/shared/logger"
)

// GormAutoMigrateStrategy migrates the schema directly from the model
// struct definitions. Intended for development environments only.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, modelList ...interface{}) error {
	if len(modelList) == 0 {
		modelList = AutoMigrateModels()
	}

	s.logger.Info("starting gorm auto migration", "models_count", len(modelList))

	if err := db.AutoMigrate(modelList...); err != nil {
		s.logger.Error("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}

	s.logger.Info("auto migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AutoMigrateModels returns all models managed by schema migration.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PrognosisTicketModel{},
		&models.VinDetailModel{},
		&models.TicketErrorCodeModel{},
		&models.CustomerMasterModel{},
		&models.ErrorCodeMasterModel{},
	}
}
