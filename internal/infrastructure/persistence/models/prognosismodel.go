package models

// PrognosisTicketModel stores one auto-created diagnostic ticket per
// customer per ingested batch. AlertCount and VehicleCount are snapshots
// written at creation time.
type PrognosisTicketModel struct {
	ID                uint   `gorm:"primaryKey"`
	CustomerID        int64  `gorm:"not null;index"`
	AlertCount        int    `gorm:"not null;default:0"`
	VehicleCount      int    `gorm:"not null;default:0"`
	CallStatusID      int    `gorm:"not null;index"`
	Remarks           string `gorm:"type:text"`
	CustomerComplaint string `gorm:"type:text"`
	CreatedAt         int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt         int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (PrognosisTicketModel) TableName() string {
	return "prognosis_tickets"
}

// VinDetailModel stores one vehicle row per distinct VIN on a ticket.
// Location and coordinates come from the first alert seen for the VIN.
type VinDetailModel struct {
	ID        uint     `gorm:"primaryKey"`
	TicketID  uint     `gorm:"not null;index"`
	VinNo     string   `gorm:"size:20;not null;index"`
	Location  string   `gorm:"size:255"`
	Latitude  *float64 `gorm:"type:decimal(10,7)"`
	Longitude *float64 `gorm:"column:longitude;type:decimal(10,7)"`
	CreatedAt int64    `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64    `gorm:"autoUpdateTime:milli;not null"`
}

func (VinDetailModel) TableName() string {
	return "prognosis_vin_details"
}

// TicketErrorCodeModel stores one row per alert record attached to a
// vehicle on a ticket. The row carries both its ticket and vin detail.
type TicketErrorCodeModel struct {
	ID           uint   `gorm:"primaryKey"`
	TicketID     uint   `gorm:"not null;index"`
	VinDetailID  uint   `gorm:"not null;index"`
	ErrorCodeID  int64  `gorm:"not null;index"`
	ErrorType    string `gorm:"size:20;not null"`
	ErrorDesc    string `gorm:"size:255"`
	ErrorStatus  string `gorm:"size:20;not null;index"`
	OccurredAt   int64  `gorm:"not null;index"`
	ResolvedTime *int64
	CreatedAt    int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (TicketErrorCodeModel) TableName() string {
	return "prognosis_ticket_errorcodes"
}
