package prognosis

import (
	"fmt"
	"time"

	vo "prognosis/internal/domain/prognosis/valueobjects"
)

// Ticket is the aggregate created for one customer from a batch of
// diagnostic alerts. The alert and vehicle counts are snapshots taken
// at creation time and are not recalculated afterwards.
type Ticket struct {
	id                uint
	customerID        int64
	alertCount        int
	vehicleCount      int
	callStatus        vo.CallStatus
	remarks           string
	customerComplaint string
	vehicles          []*VehicleRecord
	createdAt         time.Time
	updatedAt         time.Time
}

// NewTicket builds a ticket for a customer from the grouped vehicle
// records. alertCount is the number of batch records seen for the
// customer, which can exceed the stored error rows when individual
// error codes fail to resolve. The vehicle count is the number of
// distinct VINs.
func NewTicket(customerID int64, alertCount int, vehicles []*VehicleRecord) (*Ticket, error) {
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if len(vehicles) == 0 {
		return nil, fmt.Errorf("at least one vehicle record is required")
	}
	if alertCount <= 0 {
		return nil, fmt.Errorf("alert count must be positive")
	}

	now := time.Now()
	return &Ticket{
		customerID:   customerID,
		alertCount:   alertCount,
		vehicleCount: len(vehicles),
		callStatus:   vo.CallStatusOpen,
		remarks:      fmt.Sprintf("Auto-created ticket for %d vehicles with %d alerts", len(vehicles), alertCount),
		vehicles:     vehicles,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructTicket(
	id uint,
	customerID int64,
	alertCount int,
	vehicleCount int,
	callStatus vo.CallStatus,
	remarks string,
	customerComplaint string,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}

	return &Ticket{
		id:                id,
		customerID:        customerID,
		alertCount:        alertCount,
		vehicleCount:      vehicleCount,
		callStatus:        callStatus,
		remarks:           remarks,
		customerComplaint: customerComplaint,
		vehicles:          []*VehicleRecord{},
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) CustomerID() int64 {
	return t.customerID
}

// AlertCount returns the alert count recorded at creation. It is not
// kept in sync with the stored error rows.
func (t *Ticket) AlertCount() int {
	return t.alertCount
}

// VehicleCount returns the vehicle count recorded at creation.
func (t *Ticket) VehicleCount() int {
	return t.vehicleCount
}

func (t *Ticket) CallStatus() vo.CallStatus {
	return t.callStatus
}

func (t *Ticket) Remarks() string {
	return t.remarks
}

func (t *Ticket) CustomerComplaint() string {
	return t.customerComplaint
}

func (t *Ticket) Vehicles() []*VehicleRecord {
	vehiclesCopy := make([]*VehicleRecord, len(t.vehicles))
	copy(vehiclesCopy, t.vehicles)
	return vehiclesCopy
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// AttachVehicles replaces the vehicle list, used when loading from storage.
func (t *Ticket) AttachVehicles(vehicles []*VehicleRecord) {
	t.vehicles = vehicles
}

func (t *Ticket) SetCustomerComplaint(complaint string) {
	t.customerComplaint = complaint
	t.updatedAt = time.Now()
}

// ChangeCallStatus moves the ticket to a new call handling state.
func (t *Ticket) ChangeCallStatus(newStatus vo.CallStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid call status: %d", newStatus)
	}
	t.callStatus = newStatus
	t.updatedAt = time.Now()
	return nil
}

// StoredErrorCount returns the number of error rows attached to the
// loaded vehicles. It can differ from AlertCount.
func (t *Ticket) StoredErrorCount() int {
	count := 0
	for _, v := range t.vehicles {
		count += v.ErrorCount()
	}
	return count
}
