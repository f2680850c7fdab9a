package dto

import (
	"time"

	"prognosis/internal/domain/prognosis"
	vo "prognosis/internal/domain/prognosis/valueobjects"
)

// TicketListItemDTO is the list projection of a ticket. AlertCount and
// VehicleCount are the stored creation-time snapshots, the Actual
// fields reflect the rows currently attached.
type TicketListItemDTO struct {
	ID                 uint                `json:"id"`
	CustomerID         int64               `json:"customer_id"`
	AlertCount         int                 `json:"alert_count"`
	VehicleCount       int                 `json:"vehicle_count"`
	VehicleCountActual int                 `json:"vehicle_count_actual"`
	ErrorCount         int                 `json:"error_count"`
	CallStatusID       int                 `json:"call_status_id"`
	StatusDisplay      string              `json:"status_display"`
	Remarks            string              `json:"remarks"`
	Vehicles           []VehicleSummaryDTO `json:"vehicles"`
	ErrorsSummary      []ErrorSummaryDTO   `json:"errors_summary"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// VehicleSummaryDTO is the abbreviated vehicle shape used in list items.
type VehicleSummaryDTO struct {
	ID       uint   `json:"id"`
	VinNo    string `json:"vin"`
	Location string `json:"location"`
}

// ErrorSummaryDTO is the abbreviated error shape used in list items.
type ErrorSummaryDTO struct {
	ID          uint   `json:"id"`
	ErrorType   string `json:"error_type"`
	ErrorStatus string `json:"status"`
}

// ErrorCodeInfoDTO classifies a diagnostic trouble code.
type ErrorCodeInfoDTO struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Category string `json:"category"`
}

type ErrorCodeDTO struct {
	ID            uint             `json:"id"`
	ErrorCodeID   int64            `json:"error_code_id"`
	ErrorType     string           `json:"error_type"`
	ErrorDesc     string           `json:"error_desc"`
	ErrorStatus   string           `json:"error_status"`
	OccurredAt    time.Time        `json:"occurred_at"`
	ResolvedTime  *time.Time       `json:"resolved_time,omitempty"`
	ErrorCodeInfo ErrorCodeInfoDTO `json:"error_code_info"`
}

type VehicleDTO struct {
	ID         uint           `json:"id"`
	VinNo      string         `json:"vin_no"`
	Location   string         `json:"location"`
	Latitude   *float64       `json:"latitude,omitempty"`
	Longitude  *float64       `json:"longitude,omitempty"`
	ErrorCodes []ErrorCodeDTO `json:"error_codes"`
}

// TicketSummaryDTO condenses the errors on a ticket for the detail view.
// TotalErrors counts the rows attached to the loaded vehicles and can
// trail the ticket's alert_count snapshot.
type TicketSummaryDTO struct {
	TotalVehicles        int            `json:"total_vehicles"`
	TotalErrors          int            `json:"total_errors"`
	UniqueErrorTypes     []string       `json:"unique_error_types"`
	ErrorStatusBreakdown map[string]int `json:"error_status_breakdown"`
	Locations            []string       `json:"unique_locations"`
	LatestErrorTime      *time.Time     `json:"latest_error_time,omitempty"`
}

type TicketDetailDTO struct {
	ID                uint             `json:"id"`
	CustomerID        int64            `json:"customer_id"`
	AlertCount        int              `json:"alert_count"`
	VehicleCount      int              `json:"vehicle_count"`
	CallStatusID      int              `json:"call_status_id"`
	StatusDisplay     string           `json:"status_display"`
	Remarks           string           `json:"remarks"`
	CustomerComplaint string           `json:"customer_complaint,omitempty"`
	Vehicles          []VehicleDTO     `json:"vehicles"`
	Summary           TicketSummaryDTO `json:"summary"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

const (
	maxVehicleSummaries = 5
	maxErrorSummaries   = 5
	maxSummaryErrors    = 10
	maxSummaryLocations = 5
)

func ToTicketListItemDTO(t *prognosis.Ticket) TicketListItemDTO {
	vehicles := t.Vehicles()

	vehicleSummaries := make([]VehicleSummaryDTO, 0, maxVehicleSummaries)
	errorSummaries := make([]ErrorSummaryDTO, 0, maxErrorSummaries)
	for _, v := range vehicles {
		if len(vehicleSummaries) < maxVehicleSummaries {
			vehicleSummaries = append(vehicleSummaries, VehicleSummaryDTO{
				ID:       v.ID(),
				VinNo:    v.VinNo(),
				Location: v.Location(),
			})
		}
		for _, e := range v.Errors() {
			if len(errorSummaries) == maxErrorSummaries {
				break
			}
			errorSummaries = append(errorSummaries, ErrorSummaryDTO{
				ID:          e.ID(),
				ErrorType:   e.ErrorType(),
				ErrorStatus: e.ErrorStatus(),
			})
		}
	}

	return TicketListItemDTO{
		ID:                 t.ID(),
		CustomerID:         t.CustomerID(),
		AlertCount:         t.AlertCount(),
		VehicleCount:       t.VehicleCount(),
		VehicleCountActual: len(vehicles),
		ErrorCount:         t.StoredErrorCount(),
		CallStatusID:       t.CallStatus().Int(),
		StatusDisplay:      t.CallStatus().Display(),
		Remarks:            t.Remarks(),
		Vehicles:           vehicleSummaries,
		ErrorsSummary:      errorSummaries,
		CreatedAt:          t.CreatedAt(),
		UpdatedAt:          t.UpdatedAt(),
	}
}

func ToTicketDetailDTO(t *prognosis.Ticket) TicketDetailDTO {
	vehicles := t.Vehicles()

	vehicleDTOs := make([]VehicleDTO, 0, len(vehicles))
	for _, v := range vehicles {
		vehicleDTOs = append(vehicleDTOs, toVehicleDTO(v))
	}

	return TicketDetailDTO{
		ID:                t.ID(),
		CustomerID:        t.CustomerID(),
		AlertCount:        t.AlertCount(),
		VehicleCount:      t.VehicleCount(),
		CallStatusID:      t.CallStatus().Int(),
		StatusDisplay:     t.CallStatus().Display(),
		Remarks:           t.Remarks(),
		CustomerComplaint: t.CustomerComplaint(),
		Vehicles:          vehicleDTOs,
		Summary:           buildSummary(vehicles),
		CreatedAt:         t.CreatedAt(),
		UpdatedAt:         t.UpdatedAt(),
	}
}

func toVehicleDTO(v *prognosis.VehicleRecord) VehicleDTO {
	records := v.Errors()
	errorDTOs := make([]ErrorCodeDTO, 0, len(records))
	for _, e := range records {
		errorDTOs = append(errorDTOs, ErrorCodeDTO{
			ID:           e.ID(),
			ErrorCodeID:  e.ErrorCodeID(),
			ErrorType:    e.ErrorType(),
			ErrorDesc:    e.ErrorDesc(),
			ErrorStatus:  e.ErrorStatus(),
			OccurredAt:   e.OccurredAt(),
			ResolvedTime: e.ResolvedTime(),
			ErrorCodeInfo: ErrorCodeInfoDTO{
				Code:     e.ErrorType(),
				Severity: string(vo.DTCSeverity(e.ErrorType())),
				Category: string(vo.DTCCategoryOf(e.ErrorType())),
			},
		})
	}

	return VehicleDTO{
		ID:         v.ID(),
		VinNo:      v.VinNo(),
		Location:   v.Location(),
		Latitude:   v.Latitude(),
		Longitude:  v.Longitude(),
		ErrorCodes: errorDTOs,
	}
}

// buildSummary keeps first-seen order for distinct error types and
// locations, truncated to their display limits. The status breakdown
// and totals cover every attached error row.
func buildSummary(vehicles []*prognosis.VehicleRecord) TicketSummaryDTO {
	summary := TicketSummaryDTO{
		TotalVehicles:        len(vehicles),
		UniqueErrorTypes:     []string{},
		ErrorStatusBreakdown: map[string]int{},
		Locations:            []string{},
	}

	seenTypes := make(map[string]bool)
	seenLocations := make(map[string]bool)
	var latest *time.Time

	for _, v := range vehicles {
		if loc := v.Location(); loc != "" && !seenLocations[loc] && len(summary.Locations) < maxSummaryLocations {
			seenLocations[loc] = true
			summary.Locations = append(summary.Locations, loc)
		}

		for _, e := range v.Errors() {
			summary.TotalErrors++
			summary.ErrorStatusBreakdown[e.ErrorStatus()]++

			if et := e.ErrorType(); !seenTypes[et] && len(summary.UniqueErrorTypes) < maxSummaryErrors {
				seenTypes[et] = true
				summary.UniqueErrorTypes = append(summary.UniqueErrorTypes, et)
			}

			occurred := e.OccurredAt()
			if latest == nil || occurred.After(*latest) {
				t := occurred
				latest = &t
			}
		}
	}

	summary.LatestErrorTime = latest
	return summary
}
