package prognosis

import (
	"context"
	"time"

	vo "prognosis/internal/domain/prognosis/valueobjects"
)

// TicketRepository persists diagnostic tickets with their vehicle and
// error records.
type TicketRepository interface {
	// Save stores the ticket together with its vehicles and errors.
	Save(ctx context.Context, ticket *Ticket) error
	// GetByID loads a ticket with vehicles and errors attached.
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	// List returns tickets matching the filter plus the total count.
	// Vehicles and errors are attached to each returned ticket.
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	// GetStats aggregates ticket volumes created in [from, to).
	GetStats(ctx context.Context, from, to time.Time) (*TicketStats, error)
}

// TicketFilter narrows List results. DateTo is exclusive.
type TicketFilter struct {
	CustomerID  *int64
	CallStatus  *vo.CallStatus
	DateFrom    *time.Time
	DateTo      *time.Time
	MinVehicles *int
	MaxVehicles *int
	MinAlerts   *int
	MaxAlerts   *int
	Search      string
	Page        int
	PageSize    int
}

// TicketStats holds aggregate counters over a creation time window.
// TotalErrors counts persisted error rows, not alert_count snapshots.
type TicketStats struct {
	TotalTickets  int64
	TotalErrors   int64
	TotalVehicles int64
	ByCallStatus  map[int]int64
}

// MasterDataRepository resolves external identifiers against the master
// tables. A lookup miss returns found=false with a nil error.
type MasterDataRepository interface {
	CustomerIDByVehicle(ctx context.Context, vehicleID string) (customerID int64, found bool, err error)
	ErrorCodeID(ctx context.Context, errorCode string) (id int64, found bool, err error)
}
