package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prognosis/internal/domain/prognosis"
	"prognosis/internal/shared/errors"
)

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func sampleTicket(t *testing.T, customerID int64, vins map[string][]string) *prognosis.Ticket {
	t.Helper()
	var vehicles []*prognosis.VehicleRecord
	for vin, codes := range vins {
		vehicle, err := prognosis.NewVehicleRecord(vin, "Pune", nil, nil)
		require.NoError(t, err)
		for i, code := range codes {
			record, err := prognosis.NewErrorRecord(int64(i+1), code, time.Now())
			require.NoError(t, err)
			require.NoError(t, vehicle.AddError(record))
		}
		vehicles = append(vehicles, vehicle)
	}
	alerts := 0
	for _, v := range vehicles {
		alerts += v.ErrorCount()
	}
	ticket, err := prognosis.NewTicket(customerID, alerts, vehicles)
	require.NoError(t, err)
	require.NoError(t, ticket.SetID(1))
	return ticket
}

func TestListTickets_Defaults(t *testing.T) {
	var captured prognosis.TicketFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter prognosis.TicketFilter) ([]*prognosis.Ticket, int64, error) {
			captured = filter
			return []*prognosis.Ticket{sampleTicket(t, 1, map[string][]string{"MH12AB1234": {"P0101"}})}, 1, nil
		},
	}

	uc := NewListTicketsUseCase(repo, &mockLogger{})

	result, err := uc.Execute(context.Background(), ListTicketsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 20, captured.PageSize)
	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Tickets, 1)
	assert.Equal(t, "Open", result.Tickets[0].StatusDisplay)
}

func TestListTickets_PageSizeCapped(t *testing.T) {
	var captured prognosis.TicketFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter prognosis.TicketFilter) ([]*prognosis.Ticket, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}

	uc := NewListTicketsUseCase(repo, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListTicketsQuery{Page: 3, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 3, captured.Page)
	assert.Equal(t, 100, captured.PageSize)
}

func TestListTickets_DateWindow(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	var captured prognosis.TicketFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter prognosis.TicketFilter) ([]*prognosis.Ticket, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}

	uc := NewListTicketsUseCase(repo, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListTicketsQuery{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)

	require.NotNil(t, captured.DateFrom)
	require.NotNil(t, captured.DateTo)
	assert.Equal(t, from, *captured.DateFrom)
	// The inclusive to-date becomes an exclusive bound one day later.
	assert.Equal(t, to.Add(24*time.Hour), *captured.DateTo)
}

func TestListTickets_RejectsBadRanges(t *testing.T) {
	uc := NewListTicketsUseCase(&mockTicketRepository{}, &mockLogger{})
	day1 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	farOut := day2.AddDate(1, 0, 1)

	tests := []struct {
		name  string
		query ListTicketsQuery
	}{
		{"inverted dates", ListTicketsQuery{DateFrom: &day1, DateTo: &day2}},
		{"range over a year", ListTicketsQuery{DateFrom: &day2, DateTo: &farOut}},
		{"invalid call status", ListTicketsQuery{CallStatusID: intPtr(99)}},
		{"inverted vehicle bounds", ListTicketsQuery{MinVehicles: intPtr(5), MaxVehicles: intPtr(2)}},
		{"inverted alert bounds", ListTicketsQuery{MinAlerts: intPtr(10), MaxAlerts: intPtr(1)}},
		{"zero customer id", ListTicketsQuery{CustomerID: int64Ptr(0)}},
		{"negative customer id", ListTicketsQuery{CustomerID: int64Ptr(-1)}},
		{"zero min vehicles", ListTicketsQuery{MinVehicles: intPtr(0)}},
		{"zero max vehicles", ListTicketsQuery{MaxVehicles: intPtr(0)}},
		{"negative min alerts", ListTicketsQuery{MinAlerts: intPtr(-3)}},
		{"zero max alerts", ListTicketsQuery{MaxAlerts: intPtr(0)}},
		{"short search term", ListTicketsQuery{Search: "x"}},
		{"search cleaned to nothing", ListTicketsQuery{Search: `';`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.query)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestListTickets_SearchSanitized(t *testing.T) {
	var captured prognosis.TicketFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter prognosis.TicketFilter) ([]*prognosis.Ticket, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}

	uc := NewListTicketsUseCase(repo, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListTicketsQuery{Search: `veh';icles`})
	require.NoError(t, err)
	assert.Equal(t, "vehicles", captured.Search)

	_, err = uc.Execute(context.Background(), ListTicketsQuery{Search: "x"})
	assert.True(t, errors.IsValidationError(err), "too-short terms fail the request")
}

func TestListTickets_RepositoryError(t *testing.T) {
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter prognosis.TicketFilter) ([]*prognosis.Ticket, int64, error) {
			return nil, 0, assert.AnError
		},
	}

	uc := NewListTicketsUseCase(repo, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListTicketsQuery{})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeInternal, appErr.Type)
}
