package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"prognosis/internal/infrastructure/persistence/models"
	db "prognosis/internal/shared/db"
)

// MasterDataRepository resolves vehicle and error code identifiers
// against the master tables. A lookup miss is not an error.
type MasterDataRepository struct {
	db *gorm.DB
}

func NewMasterDataRepository(database *gorm.DB) *MasterDataRepository {
	return &MasterDataRepository{db: database}
}

func (r *MasterDataRepository) CustomerIDByVehicle(ctx context.Context, vehicleID string) (int64, bool, error) {
	var model models.CustomerMasterModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("vehicle_id = ?", vehicleID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to look up customer for vehicle %s: %w", vehicleID, err)
	}

	return model.CustomerID, true, nil
}

func (r *MasterDataRepository) ErrorCodeID(ctx context.Context, errorCode string) (int64, bool, error) {
	var model models.ErrorCodeMasterModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("error_code = ?", errorCode).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to look up error code %s: %w", errorCode, err)
	}

	return model.ID, true, nil
}
