package models

// CustomerMasterModel maps fleet vehicle identifiers to the owning
// customer account. Many vehicles share one customer_id.
type CustomerMasterModel struct {
	ID           int64  `gorm:"primaryKey"`
	CustomerID   int64  `gorm:"not null;index"`
	CustomerName string `gorm:"size:100;not null"`
	VehicleID    string `gorm:"size:20;not null;uniqueIndex"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (CustomerMasterModel) TableName() string {
	return "customer_master"
}

// ErrorCodeMasterModel is the catalogue of known diagnostic trouble codes.
type ErrorCodeMasterModel struct {
	ID          int64  `gorm:"primaryKey"`
	ErrorCode   string `gorm:"size:20;not null;uniqueIndex"`
	Description string `gorm:"size:255"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (ErrorCodeMasterModel) TableName() string {
	return "prognosis_errorcode_master"
}
