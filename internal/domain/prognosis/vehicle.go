package prognosis

import (
	"fmt"
	"time"
)

// VehicleRecord groups the diagnostic errors reported for one VIN
// within a ticket. Location and coordinates come from the first alert
// seen for the vehicle in a batch.
type VehicleRecord struct {
	id        uint
	ticketID  uint
	vinNo     string
	location  string
	latitude  *float64
	longitude *float64
	errors    []*ErrorRecord
	createdAt time.Time
	updatedAt time.Time
}

func NewVehicleRecord(vinNo, location string, latitude, longitude *float64) (*VehicleRecord, error) {
	if len(vinNo) == 0 {
		return nil, fmt.Errorf("vin number is required")
	}

	now := time.Now()
	return &VehicleRecord{
		vinNo:     vinNo,
		location:  location,
		latitude:  latitude,
		longitude: longitude,
		errors:    []*ErrorRecord{},
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructVehicleRecord(
	id uint,
	ticketID uint,
	vinNo string,
	location string,
	latitude, longitude *float64,
	createdAt, updatedAt time.Time,
) (*VehicleRecord, error) {
	if id == 0 {
		return nil, fmt.Errorf("vehicle record ID cannot be zero")
	}
	if len(vinNo) == 0 {
		return nil, fmt.Errorf("vin number is required")
	}

	return &VehicleRecord{
		id:        id,
		ticketID:  ticketID,
		vinNo:     vinNo,
		location:  location,
		latitude:  latitude,
		longitude: longitude,
		errors:    []*ErrorRecord{},
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (v *VehicleRecord) ID() uint {
	return v.id
}

func (v *VehicleRecord) TicketID() uint {
	return v.ticketID
}

func (v *VehicleRecord) VinNo() string {
	return v.vinNo
}

func (v *VehicleRecord) Location() string {
	return v.location
}

func (v *VehicleRecord) Latitude() *float64 {
	return v.latitude
}

func (v *VehicleRecord) Longitude() *float64 {
	return v.longitude
}

func (v *VehicleRecord) Errors() []*ErrorRecord {
	errorsCopy := make([]*ErrorRecord, len(v.errors))
	copy(errorsCopy, v.errors)
	return errorsCopy
}

func (v *VehicleRecord) CreatedAt() time.Time {
	return v.createdAt
}

func (v *VehicleRecord) UpdatedAt() time.Time {
	return v.updatedAt
}

func (v *VehicleRecord) SetID(id uint) error {
	if v.id != 0 {
		return fmt.Errorf("vehicle record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("vehicle record ID cannot be zero")
	}
	v.id = id
	return nil
}

func (v *VehicleRecord) SetTicketID(ticketID uint) {
	v.ticketID = ticketID
}

// AddError appends a diagnostic error to this vehicle.
func (v *VehicleRecord) AddError(record *ErrorRecord) error {
	if record == nil {
		return fmt.Errorf("error record cannot be nil")
	}
	v.errors = append(v.errors, record)
	v.updatedAt = time.Now()
	return nil
}

// AttachErrors replaces the error list, used when loading from storage.
func (v *VehicleRecord) AttachErrors(records []*ErrorRecord) {
	v.errors = records
}

// ErrorCount returns the number of errors attached to this vehicle.
func (v *VehicleRecord) ErrorCount() int {
	return len(v.errors)
}
