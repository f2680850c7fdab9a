package prognosis

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"prognosis/internal/application/prognosis/usecases"
	"prognosis/internal/shared/errors"
	"prognosis/internal/shared/utils"
)

// queryDateLayout is the format for date_from/date_to query parameters.
const queryDateLayout = "2006-01-02"

// AlertItem is one raw alert in an ingest request. Coordinates are
// carried as decimal strings on the wire. Per-record validation
// happens in the use case so a bad record drops without failing the
// whole batch.
type AlertItem struct {
	VehicleID       string `json:"vehicle_id"`
	ErrorCode       string `json:"error_code"`
	DateTime        string `json:"datetime"`
	Latitude        string `json:"location_lat"`
	Longitude       string `json:"location_long"`
	VehicleLocation string `json:"vehicle_location"`
}

// IngestRequest is the POST /tickets payload.
type IngestRequest struct {
	Data []AlertItem `json:"data" binding:"required,min=1,max=1000"`
}

func (r *IngestRequest) ToCommand() usecases.IngestAlertsCommand {
	records := make([]usecases.AlertRecord, len(r.Data))
	for i, item := range r.Data {
		records[i] = usecases.AlertRecord{
			VehicleID: item.VehicleID,
			ErrorCode: item.ErrorCode,
			DateTime:  item.DateTime,
			Latitude:  item.Latitude,
			Longitude: item.Longitude,
			Location:  item.VehicleLocation,
		}
	}
	return usecases.IngestAlertsCommand{Records: records}
}

// CreatedTicketDTO is one entry in the ingest response list.
type CreatedTicketDTO struct {
	TicketID     uint  `json:"ticket_id"`
	CustomerID   int64 `json:"customer_id"`
	VehicleCount int   `json:"vehicle_count"`
	AlertCount   int   `json:"alert_count"`
}

func toCreatedTicketDTOs(result *usecases.IngestAlertsResult) []CreatedTicketDTO {
	items := make([]CreatedTicketDTO, len(result.Tickets))
	for i, t := range result.Tickets {
		items[i] = CreatedTicketDTO{
			TicketID:     t.TicketID,
			CustomerID:   t.CustomerID,
			VehicleCount: t.VehicleCount,
			AlertCount:   t.AlertCount,
		}
	}
	return items
}

// StatsResponse is the GET /tickets/stats payload. total_errors counts
// stored error rows and status_breakdown is keyed status_<n>.
type StatsResponse struct {
	Days                 int              `json:"days"`
	Period               string           `json:"period"`
	TotalTickets         int64            `json:"total_tickets"`
	TotalErrors          int64            `json:"total_errors"`
	TotalVehicles        int64            `json:"total_vehicles"`
	AvgErrorsPerTicket   float64          `json:"avg_errors_per_ticket"`
	AvgVehiclesPerTicket float64          `json:"avg_vehicles_per_ticket"`
	StatusBreakdown      map[string]int64 `json:"status_breakdown"`
}

func toStatsResponse(result *usecases.GetTicketStatsResult) StatsResponse {
	return StatsResponse{
		Days:                 result.Days,
		Period:               result.Period,
		TotalTickets:         result.TotalTickets,
		TotalErrors:          result.TotalErrors,
		TotalVehicles:        result.TotalVehicles,
		AvgErrorsPerTicket:   result.AvgErrorsPerTicket,
		AvgVehiclesPerTicket: result.AvgVehiclesPerTicket,
		StatusBreakdown:      result.StatusBreakdown,
	}
}

// parseListTicketsQuery reads the list filter from query parameters.
// Malformed values fail the request instead of being silently ignored.
func parseListTicketsQuery(c *gin.Context) (usecases.ListTicketsQuery, error) {
	var query usecases.ListTicketsQuery

	if v := c.Query("customer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return query, errors.NewValidationError("invalid customer_id")
		}
		query.CustomerID = &id
	}

	if v := c.Query("call_status_id"); v != "" {
		status, err := strconv.Atoi(v)
		if err != nil {
			return query, errors.NewValidationError("invalid call_status_id")
		}
		query.CallStatusID = &status
	}

	var err error
	if query.DateFrom, err = parseQueryDate(c, "date_from"); err != nil {
		return query, err
	}
	if query.DateTo, err = parseQueryDate(c, "date_to"); err != nil {
		return query, err
	}

	if query.MinVehicles, err = parseQueryIntPtr(c, "min_vehicles"); err != nil {
		return query, err
	}
	if query.MaxVehicles, err = parseQueryIntPtr(c, "max_vehicles"); err != nil {
		return query, err
	}
	if query.MinAlerts, err = parseQueryIntPtr(c, "min_alerts"); err != nil {
		return query, err
	}
	if query.MaxAlerts, err = parseQueryIntPtr(c, "max_alerts"); err != nil {
		return query, err
	}

	query.Search = c.Query("search")
	query.Page, query.PageSize = parsePageParams(c)

	return query, nil
}

func parseQueryDate(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(queryDateLayout, v)
	if err != nil {
		return nil, errors.NewValidationError("invalid " + name + ", expected YYYY-MM-DD")
	}
	return &t, nil
}

func parseQueryIntPtr(c *gin.Context, name string) (*int, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, errors.NewValidationError("invalid " + name)
	}
	return &n, nil
}

// parsePageParams reads pagination parameters with defaults applied.
func parsePageParams(c *gin.Context) (page, pageSize int) {
	p := utils.ParsePagination(c)
	return p.Page, p.PageSize
}
