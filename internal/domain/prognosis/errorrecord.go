package prognosis

import (
	"fmt"
	"time"

	"prognosis/internal/shared/constants"
)

// ErrorRecord is a single diagnostic trouble code reported for a vehicle.
// It references both its ticket and the vin detail it was reported on.
type ErrorRecord struct {
	id           uint
	ticketID     uint
	vinDetailID  uint
	errorCodeID  int64
	errorType    string
	errorDesc    string
	errorStatus  string
	occurredAt   time.Time
	resolvedTime *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewErrorRecord(errorCodeID int64, errorType string, occurredAt time.Time) (*ErrorRecord, error) {
	if errorCodeID == 0 {
		return nil, fmt.Errorf("error code ID is required")
	}
	if len(errorType) == 0 {
		return nil, fmt.Errorf("error type is required")
	}

	now := time.Now()
	return &ErrorRecord{
		errorCodeID: errorCodeID,
		errorType:   errorType,
		errorDesc:   fmt.Sprintf("Error %s detected", errorType),
		errorStatus: constants.ErrorStatusActive,
		occurredAt:  occurredAt,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructErrorRecord(
	id uint,
	ticketID uint,
	vinDetailID uint,
	errorCodeID int64,
	errorType string,
	errorDesc string,
	errorStatus string,
	occurredAt time.Time,
	resolvedTime *time.Time,
	createdAt, updatedAt time.Time,
) (*ErrorRecord, error) {
	if id == 0 {
		return nil, fmt.Errorf("error record ID cannot be zero")
	}
	if len(errorType) == 0 {
		return nil, fmt.Errorf("error type is required")
	}

	return &ErrorRecord{
		id:           id,
		ticketID:     ticketID,
		vinDetailID:  vinDetailID,
		errorCodeID:  errorCodeID,
		errorType:    errorType,
		errorDesc:    errorDesc,
		errorStatus:  errorStatus,
		occurredAt:   occurredAt,
		resolvedTime: resolvedTime,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (e *ErrorRecord) ID() uint {
	return e.id
}

func (e *ErrorRecord) TicketID() uint {
	return e.ticketID
}

func (e *ErrorRecord) VinDetailID() uint {
	return e.vinDetailID
}

func (e *ErrorRecord) ErrorCodeID() int64 {
	return e.errorCodeID
}

func (e *ErrorRecord) ErrorType() string {
	return e.errorType
}

func (e *ErrorRecord) ErrorDesc() string {
	return e.errorDesc
}

func (e *ErrorRecord) ErrorStatus() string {
	return e.errorStatus
}

func (e *ErrorRecord) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *ErrorRecord) ResolvedTime() *time.Time {
	return e.resolvedTime
}

func (e *ErrorRecord) CreatedAt() time.Time {
	return e.createdAt
}

func (e *ErrorRecord) UpdatedAt() time.Time {
	return e.updatedAt
}

func (e *ErrorRecord) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("error record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("error record ID cannot be zero")
	}
	e.id = id
	return nil
}

func (e *ErrorRecord) SetTicketID(ticketID uint) {
	e.ticketID = ticketID
}

func (e *ErrorRecord) SetVinDetailID(vinDetailID uint) {
	e.vinDetailID = vinDetailID
}

// Resolve marks the record as resolved at the given time. Resolving twice
// is a no-op so replays do not move the resolution time.
func (e *ErrorRecord) Resolve(at time.Time) {
	if e.resolvedTime != nil {
		return
	}
	e.errorStatus = constants.ErrorStatusResolved
	e.resolvedTime = &at
	e.updatedAt = at
}
