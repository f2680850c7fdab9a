package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prognosis/internal/domain/prognosis"
	"prognosis/internal/shared/errors"
)

func TestGetTicketDetail_Success(t *testing.T) {
	vehicle, err := prognosis.NewVehicleRecord("MH12AB1234", "Pune", nil, nil)
	require.NoError(t, err)

	early := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	late := time.Date(2025, 1, 15, 11, 0, 0, 0, time.UTC)

	for i, spec := range []struct {
		code string
		at   time.Time
	}{
		{"P0101", early},
		{"B1000", late},
		{"P0101", early},
	} {
		record, err := prognosis.NewErrorRecord(int64(i+1), spec.code, spec.at)
		require.NoError(t, err)
		require.NoError(t, vehicle.AddError(record))
	}

	ticket, err := prognosis.NewTicket(7, 3, []*prognosis.VehicleRecord{vehicle})
	require.NoError(t, err)
	require.NoError(t, ticket.SetID(42))

	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*prognosis.Ticket, error) {
			assert.Equal(t, uint(42), ticketID)
			return ticket, nil
		},
	}

	uc := NewGetTicketDetailUseCase(repo, &mockLogger{})

	result, err := uc.Execute(context.Background(), GetTicketDetailQuery{TicketID: 42})
	require.NoError(t, err)

	detail := result.Ticket
	assert.Equal(t, uint(42), detail.ID)
	assert.Equal(t, int64(7), detail.CustomerID)
	assert.Equal(t, "Open", detail.StatusDisplay)
	require.Len(t, detail.Vehicles, 1)
	require.Len(t, detail.Vehicles[0].ErrorCodes, 3)

	info := detail.Vehicles[0].ErrorCodes[0].ErrorCodeInfo
	assert.Equal(t, "HIGH", info.Severity)
	assert.Equal(t, "Powertrain", info.Category)

	// Distinct error types in first-seen order, latest occurrence wins.
	assert.Equal(t, 1, detail.Summary.TotalVehicles)
	assert.Equal(t, 3, detail.Summary.TotalErrors)
	assert.Equal(t, []string{"P0101", "B1000"}, detail.Summary.UniqueErrorTypes)
	assert.Equal(t, map[string]int{"ACTIVE": 3}, detail.Summary.ErrorStatusBreakdown)
	assert.Equal(t, []string{"Pune"}, detail.Summary.Locations)
	require.NotNil(t, detail.Summary.LatestErrorTime)
	assert.Equal(t, late, *detail.Summary.LatestErrorTime)
}

func TestGetTicketDetail_SummaryLimits(t *testing.T) {
	var vehicles []*prognosis.VehicleRecord
	for v := 0; v < 7; v++ {
		vehicle, err := prognosis.NewVehicleRecord(fmt.Sprintf("MH12AB%04d", v), fmt.Sprintf("City %d", v), nil, nil)
		require.NoError(t, err)
		for c := 0; c < 2; c++ {
			record, err := prognosis.NewErrorRecord(1, fmt.Sprintf("P%02d%02d", v, c), time.Now())
			require.NoError(t, err)
			require.NoError(t, vehicle.AddError(record))
		}
		vehicles = append(vehicles, vehicle)
	}

	ticket, err := prognosis.NewTicket(1, 2*len(vehicles), vehicles)
	require.NoError(t, err)
	require.NoError(t, ticket.SetID(1))

	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*prognosis.Ticket, error) {
			return ticket, nil
		},
	}

	uc := NewGetTicketDetailUseCase(repo, &mockLogger{})

	result, err := uc.Execute(context.Background(), GetTicketDetailQuery{TicketID: 1})
	require.NoError(t, err)

	// Display lists are capped but the totals cover every row.
	assert.Len(t, result.Ticket.Summary.UniqueErrorTypes, 10)
	assert.Len(t, result.Ticket.Summary.Locations, 5)
	assert.Equal(t, 7, result.Ticket.Summary.TotalVehicles)
	assert.Equal(t, 14, result.Ticket.Summary.TotalErrors)
	assert.Equal(t, map[string]int{"ACTIVE": 14}, result.Ticket.Summary.ErrorStatusBreakdown)
}

func TestGetTicketDetail_NotFound(t *testing.T) {
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*prognosis.Ticket, error) {
			return nil, errors.NewNotFoundError("ticket not found")
		},
	}

	uc := NewGetTicketDetailUseCase(repo, &mockLogger{})

	_, err := uc.Execute(context.Background(), GetTicketDetailQuery{TicketID: 99})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetTicketDetail_RequiresID(t *testing.T) {
	uc := NewGetTicketDetailUseCase(&mockTicketRepository{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), GetTicketDetailQuery{})
	assert.True(t, errors.IsValidationError(err))
}
