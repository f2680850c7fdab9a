package prognosis

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "prognosis/internal/application/prognosis/dto"
	"prognosis/internal/application/prognosis/usecases"
	"prognosis/internal/interfaces/http/handlers/testutil"
	"prognosis/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockIngestAlertsUC struct {
	result *usecases.IngestAlertsResult
	err    error
	gotCmd usecases.IngestAlertsCommand
}

func (m *mockIngestAlertsUC) Execute(_ context.Context, cmd usecases.IngestAlertsCommand) (*usecases.IngestAlertsResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockListTicketsUC struct {
	result   *usecases.ListTicketsResult
	err      error
	gotQuery usecases.ListTicketsQuery
}

func (m *mockListTicketsUC) Execute(_ context.Context, query usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.gotQuery = query
	return m.result, m.err
}

type mockGetTicketDetailUC struct {
	result *usecases.GetTicketDetailResult
	err    error
}

func (m *mockGetTicketDetailUC) Execute(_ context.Context, _ usecases.GetTicketDetailQuery) (*usecases.GetTicketDetailResult, error) {
	return m.result, m.err
}

type mockListCustomerTicketsUC struct {
	result   *usecases.ListCustomerTicketsResult
	err      error
	gotQuery usecases.ListCustomerTicketsQuery
}

func (m *mockListCustomerTicketsUC) Execute(_ context.Context, query usecases.ListCustomerTicketsQuery) (*usecases.ListCustomerTicketsResult, error) {
	m.gotQuery = query
	return m.result, m.err
}

type mockGetTicketStatsUC struct {
	result   *usecases.GetTicketStatsResult
	err      error
	gotQuery usecases.GetTicketStatsQuery
}

func (m *mockGetTicketStatsUC) Execute(_ context.Context, query usecases.GetTicketStatsQuery) (*usecases.GetTicketStatsResult, error) {
	m.gotQuery = query
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
	ingestAlertsUC        usecases.IngestAlertsExecutor
	listTicketsUC         usecases.ListTicketsExecutor
	getTicketDetailUC     usecases.GetTicketDetailExecutor
	listCustomerTicketsUC usecases.ListCustomerTicketsExecutor
	getTicketStatsUC      usecases.GetTicketStatsExecutor
}

func newTestTicketHandler(deps testDeps) *TicketHandler {
	return NewTicketHandler(
		deps.ingestAlertsUC,
		deps.listTicketsUC,
		deps.getTicketDetailUC,
		deps.listCustomerTicketsUC,
		deps.getTicketStatsUC,
		testutil.NewMockLogger(),
	)
}

// =====================================================================
// TestTicketHandler_IngestAlerts
// =====================================================================

func TestTicketHandler_IngestAlerts_Success(t *testing.T) {
	mockUC := &mockIngestAlertsUC{
		result: &usecases.IngestAlertsResult{
			Tickets: []usecases.CreatedTicket{
				{TicketID: 1, CustomerID: 1, VehicleCount: 2, AlertCount: 2},
				{TicketID: 2, CustomerID: 2, VehicleCount: 1, AlertCount: 1},
			},
			TicketIDs:        []uint{1, 2},
			TicketsCreated:   2,
			RecordsReceived:  3,
			RecordsProcessed: 3,
		},
	}
	handler := newTestTicketHandler(testDeps{ingestAlertsUC: mockUC})

	reqBody := IngestRequest{Data: []AlertItem{
		{VehicleID: "MH12AB1234", ErrorCode: "P0101", DateTime: "15.01.2025 10.30.45", VehicleLocation: "Pune"},
		{VehicleID: "MH14XY9999", ErrorCode: "B1000", DateTime: "15.01.2025 10.31.00"},
		{VehicleID: "KA01ZZ0001", ErrorCode: "P0420", DateTime: "15.01.2025 10.32.00"},
	}}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)

	handler.IngestAlerts(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, mockUC.gotCmd.Records, 3)
	assert.Equal(t, "MH12AB1234", mockUC.gotCmd.Records[0].VehicleID)
	assert.Equal(t, "Pune", mockUC.gotCmd.Records[0].Location)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	var created []CreatedTicketDTO
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.Len(t, created, 2)
	assert.Equal(t, uint(1), created[0].TicketID)
	assert.Equal(t, int64(2), created[1].CustomerID)
}

func TestTicketHandler_IngestAlerts_EmptyBatch(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	reqBody := map[string]interface{}{"data": []interface{}{}}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)

	handler.IngestAlerts(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestTicketHandler_IngestAlerts_MalformedBody(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", "not an object")

	handler.IngestAlerts(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_IngestAlerts_UseCaseError(t *testing.T) {
	mockUC := &mockIngestAlertsUC{
		err: errors.NewValidationError("no valid alert records in batch"),
	}
	handler := newTestTicketHandler(testDeps{ingestAlertsUC: mockUC})

	reqBody := IngestRequest{Data: []AlertItem{
		{VehicleID: "ZZ99ZZ9999", ErrorCode: "P0101", DateTime: "15.01.2025 10.30.45"},
	}}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)

	handler.IngestAlerts(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

// =====================================================================
// TestTicketHandler_ListTickets
// =====================================================================

func TestTicketHandler_ListTickets_Success(t *testing.T) {
	mockUC := &mockListTicketsUC{
		result: &usecases.ListTicketsResult{
			Tickets: []ticketdto.TicketListItemDTO{
				{ID: 1, CustomerID: 1, AlertCount: 3, VehicleCount: 2, StatusDisplay: "Open"},
			},
			TotalCount: 1,
			Page:       1,
			PageSize:   20,
		},
	}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)

	handler.ListTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestTicketHandler_ListTickets_WithFilters(t *testing.T) {
	mockUC := &mockListTicketsUC{
		result: &usecases.ListTicketsResult{
			Tickets:  []ticketdto.TicketListItemDTO{},
			Page:     2,
			PageSize: 50,
		},
	}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetQueryParams(c, map[string]string{
		"customer_id":    "7",
		"call_status_id": "2",
		"date_from":      "2025-01-01",
		"date_to":        "2025-01-31",
		"min_alerts":     "1",
		"search":         "vehicles",
		"page":           "2",
		"page_size":      "50",
	})

	handler.ListTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)

	query := mockUC.gotQuery
	require.NotNil(t, query.CustomerID)
	assert.Equal(t, int64(7), *query.CustomerID)
	require.NotNil(t, query.CallStatusID)
	assert.Equal(t, 2, *query.CallStatusID)
	require.NotNil(t, query.DateFrom)
	require.NotNil(t, query.DateTo)
	require.NotNil(t, query.MinAlerts)
	assert.Equal(t, 1, *query.MinAlerts)
	assert.Equal(t, "vehicles", query.Search)
	assert.Equal(t, 2, query.Page)
	assert.Equal(t, 50, query.PageSize)
}

func TestTicketHandler_ListTickets_InvalidQueryParams(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{"bad customer_id", map[string]string{"customer_id": "abc"}},
		{"bad call_status_id", map[string]string{"call_status_id": "open"}},
		{"bad date_from", map[string]string{"date_from": "01.01.2025"}},
		{"bad min_vehicles", map[string]string{"min_vehicles": "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestTicketHandler(testDeps{})

			c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
			testutil.SetQueryParams(c, tt.params)

			handler.ListTickets(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestTicketHandler_ListTickets_UseCaseError(t *testing.T) {
	mockUC := &mockListTicketsUC{
		err: errors.NewInternalError("failed to list tickets"),
	}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)

	handler.ListTickets(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// =====================================================================
// TestTicketHandler_GetTicketDetail
// =====================================================================

func TestTicketHandler_GetTicketDetail_Success(t *testing.T) {
	mockUC := &mockGetTicketDetailUC{
		result: &usecases.GetTicketDetailResult{
			Ticket: ticketdto.TicketDetailDTO{
				ID:            1,
				CustomerID:    7,
				StatusDisplay: "Open",
			},
		},
	}
	handler := newTestTicketHandler(testDeps{getTicketDetailUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/1", nil)
	testutil.SetURLParam(c, "id", "1")

	handler.GetTicketDetail(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestTicketHandler_GetTicketDetail_InvalidID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-1"} {
		t.Run(id, func(t *testing.T) {
			handler := newTestTicketHandler(testDeps{})

			c, w := testutil.NewTestContext(http.MethodGet, "/tickets/"+id, nil)
			testutil.SetURLParam(c, "id", id)

			handler.GetTicketDetail(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestTicketHandler_GetTicketDetail_NotFound(t *testing.T) {
	mockUC := &mockGetTicketDetailUC{
		err: errors.NewNotFoundError("ticket not found"),
	}
	handler := newTestTicketHandler(testDeps{getTicketDetailUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/999", nil)
	testutil.SetURLParam(c, "id", "999")

	handler.GetTicketDetail(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// TestTicketHandler_ListCustomerTickets
// =====================================================================

func TestTicketHandler_ListCustomerTickets_Success(t *testing.T) {
	mockUC := &mockListCustomerTicketsUC{
		result: &usecases.ListCustomerTicketsResult{
			CustomerID: 7,
			Tickets:    []ticketdto.TicketListItemDTO{{ID: 1, CustomerID: 7}},
			TotalCount: 1,
			Page:       1,
			PageSize:   20,
		},
	}
	handler := newTestTicketHandler(testDeps{listCustomerTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/customers/7/tickets", nil)
	testutil.SetURLParam(c, "id", "7")

	handler.ListCustomerTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), mockUC.gotQuery.CustomerID)
}

func TestTicketHandler_ListCustomerTickets_InvalidID(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/customers/xyz/tickets", nil)
	testutil.SetURLParam(c, "id", "xyz")

	handler.ListCustomerTickets(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// TestTicketHandler_GetTicketStats
// =====================================================================

func TestTicketHandler_GetTicketStats_Success(t *testing.T) {
	mockUC := &mockGetTicketStatsUC{
		result: &usecases.GetTicketStatsResult{
			Days:                 30,
			Period:               "Last 30 days",
			TotalTickets:         5,
			TotalErrors:          12,
			TotalVehicles:        8,
			AvgErrorsPerTicket:   2.4,
			AvgVehiclesPerTicket: 1.6,
			StatusBreakdown:      map[string]int64{"status_1": 5},
		},
	}
	handler := newTestTicketHandler(testDeps{getTicketStatsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/stats", nil)
	testutil.SetQueryParams(c, map[string]string{"days": "30"})

	handler.GetTicketStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, mockUC.gotQuery.Days)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	var stats StatsResponse
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, "Last 30 days", stats.Period)
	assert.Equal(t, int64(12), stats.TotalErrors)
	assert.Equal(t, int64(5), stats.StatusBreakdown["status_1"])
}

func TestTicketHandler_GetTicketStats_DefaultsWhenOmitted(t *testing.T) {
	mockUC := &mockGetTicketStatsUC{
		result: &usecases.GetTicketStatsResult{Days: 30, StatusBreakdown: map[string]int64{}},
	}
	handler := newTestTicketHandler(testDeps{getTicketStatsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/stats", nil)

	handler.GetTicketStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, mockUC.gotQuery.Days)
}

func TestTicketHandler_GetTicketStats_NonNumericDays(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/stats", nil)
	testutil.SetQueryParams(c, map[string]string{"days": "month"})

	handler.GetTicketStats(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
